package task

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/container"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/input"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/randengine"
)

// 随机生成车辆的转向意图权重：Left, Straight, Right
var turnWeights = []float64{0.33, 0.335, 0.335}

// spawner 车辆生成器
// 功能：按步数释放脚本指定的车辆，并以给定概率在仿真区域边缘随机生成车辆
type spawner struct {
	scripted    *container.PriorityQueue[vehicle.Spawn] // 优先级为生成步数
	probability float64
	velocity    float64
	laneOffset  float64
	center      geometry.Point
	world       config.World
	generator   *randengine.Engine
}

func newSpawner(rc *config.RuntimeConfig, scripted []input.ScriptedSpawn) *spawner {
	s := &spawner{
		scripted:    container.NewPriorityQueue[vehicle.Spawn](),
		probability: rc.S.Probability,
		velocity:    rc.S.Velocity,
		laneOffset:  rc.S.LaneOffset,
		center:      geometry.Point{X: rc.J.Center.X, Y: rc.J.Center.Y},
		world:       rc.J.World,
		generator:   randengine.New(rc.S.Seed),
	}
	for _, ss := range scripted {
		s.scripted.Push(ss.Spawn, float64(ss.Step))
	}
	s.scripted.Heapify()
	return s
}

// Spawns 获取第step步需要生成的车辆
// 说明：早于step的脚本车辆（起始步之前）同样在本步生成
func (s *spawner) Spawns(step int32) []vehicle.Spawn {
	res := make([]vehicle.Spawn, 0)
	for s.scripted.Len() > 0 {
		if _, priority := s.scripted.First(); priority > float64(step) {
			break
		}
		sp, _ := s.scripted.HeapPop()
		res = append(res, sp)
	}
	if s.probability > 0 && s.generator.PTrue(s.probability) {
		res = append(res, s.random())
	}
	return res
}

// random 随机生成一辆车
// 功能：随机选择行驶方向与转向意图，在对应边缘、对应车道上生成
// 算法说明：
// 1. 方向均匀分布，转向意图按turnWeights分布，车道与转向意图一致
// 2. 车辆从行驶方向的反方向边缘进入，直行车道位于路口中心线上，左右车道偏离laneOffset
func (s *spawner) random() vehicle.Spawn {
	direction := entity.MovementDirection(s.generator.Intn(entity.NumMovementDirections))
	turn := entity.TurnDirection(s.generator.DiscreteDistribution(turnWeights))
	lane := entity.LaneMiddle
	switch turn {
	case entity.TurnLeft:
		lane = entity.LaneLeft
	case entity.TurnRight:
		lane = entity.LaneRight
	}
	return vehicle.Spawn{
		Direction: direction,
		Turn:      turn,
		Lane:      lane,
		Position:  s.entry(direction, lane),
		V:         s.velocity,
	}
}

// entry 车辆进入仿真区域的位置
// 左转车道位于行驶方向的右侧，右转车道位于左侧（屏幕坐标系，y轴向下）
// 例如向上行驶时左转车道在x+laneOffset处
func (s *spawner) entry(d entity.MovementDirection, l entity.Lane) geometry.Point {
	offset := 0.
	switch l {
	case entity.LaneLeft:
		offset = s.laneOffset
	case entity.LaneRight:
		offset = -s.laneOffset
	}
	c, w := s.center, s.world
	switch d {
	case entity.Up:
		return geometry.Point{X: c.X + offset, Y: w.MaxY}
	case entity.Down:
		return geometry.Point{X: c.X - offset, Y: w.MinY}
	case entity.Left:
		return geometry.Point{X: w.MaxX, Y: c.Y - offset}
	default:
		return geometry.Point{X: w.MinX, Y: c.Y + offset}
	}
}
