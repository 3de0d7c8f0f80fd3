package vehicle

import (
	"fmt"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/container"
)

// Vehicle 车辆实体数据结构
// 功能：管理车辆的运动学状态与派生量（到路口的距离与时间）
// 说明：位置、速度等只在更新阶段由Integrator与管理器写入，其他时刻只读
type Vehicle struct {
	container.IncrementalItemBase

	id   int32
	size float64 // 车长

	position     geometry.Point
	v            float64 // 速度
	a            float64 // 加速度
	cruiseV      float64 // 巡航速度，停车等待预约后以该速度重新起步
	direction    entity.MovementDirection
	turn         entity.TurnDirection
	lane         entity.Lane
	distanceToIn float64 // 到路口参考点的距离
	timeToIn     float64 // 到达路口的时间

	crossed bool // 已经执行过路口转向
	held    bool // 因预约被拒绝而停车等待
}

// Spawn 车辆生成参数
type Spawn struct {
	Direction entity.MovementDirection
	Turn      entity.TurnDirection
	Lane      entity.Lane
	Position  geometry.Point
	V         float64
	A         float64
	Size      float64
}

// newVehicle 创建车辆
// 功能：根据生成参数创建车辆并立即计算到路口的距离与时间
func newVehicle(id int32, s Spawn, center geometry.Point) *Vehicle {
	v := &Vehicle{
		id:        id,
		size:      s.Size,
		position:  s.Position,
		v:         s.V,
		a:         s.A,
		cruiseV:   s.V,
		direction: s.Direction,
		turn:      s.Turn,
		lane:      s.Lane,
	}
	v.refresh(center)
	return v
}

// refresh 重新计算到路口的距离与时间，静止时时间为无穷大
func (v *Vehicle) refresh(center geometry.Point) {
	v.distanceToIn = geometry.Distance2D(v.position, center)
	v.refreshTime()
}

func (v *Vehicle) refreshTime() {
	if v.v != 0 {
		v.timeToIn = v.distanceToIn / v.v
	} else {
		v.timeToIn = mathutil.INF
	}
}

// setV 修改速度并刷新到达时间
func (v *Vehicle) setV(newV float64) {
	v.v = newV
	v.refreshTime()
}

// resume 匀速行驶且未停车等待的车辆恢复巡航速度
func (v *Vehicle) resume() {
	if !v.held && v.a == 0 && v.v < v.cruiseV {
		v.setV(v.cruiseV)
	}
}

// UpdateDirectionAtIntersection 在路口执行转向
// 功能：确定转向意图并旋转行驶方向
// 参数：laneAware-是否根据车道推断转向
// 算法说明：
// 1. 按车道推断时：左车道左转，中车道直行，右车道右转；否则使用车辆自身的转向意图
// 2. 直行方向不变；左转按Up→Left→Down→Right→Up循环；右转按相反方向循环
func (v *Vehicle) UpdateDirectionAtIntersection(laneAware bool) {
	if laneAware {
		v.turn = v.lane.Turn()
	}
	switch v.turn {
	case entity.TurnLeft:
		v.direction = turnLeft(v.direction)
	case entity.TurnRight:
		v.direction = turnRight(v.direction)
	}
}

func turnLeft(d entity.MovementDirection) entity.MovementDirection {
	switch d {
	case entity.Up:
		return entity.Left
	case entity.Left:
		return entity.Down
	case entity.Down:
		return entity.Right
	default:
		return entity.Up
	}
}

func turnRight(d entity.MovementDirection) entity.MovementDirection {
	switch d {
	case entity.Up:
		return entity.Right
	case entity.Right:
		return entity.Down
	case entity.Down:
		return entity.Left
	default:
		return entity.Up
	}
}

// getter

func (v *Vehicle) ID() int32 { return v.id }
func (v *Vehicle) V() float64 { return v.v }
func (v *Vehicle) A() float64 { return v.a }
func (v *Vehicle) Size() float64 { return v.size }
func (v *Vehicle) Direction() entity.MovementDirection { return v.direction }
func (v *Vehicle) Turn() entity.TurnDirection { return v.turn }
func (v *Vehicle) Lane() entity.Lane { return v.lane }
func (v *Vehicle) Position() geometry.Point { return v.position }
func (v *Vehicle) DistanceToIntersection() float64 { return v.distanceToIn }
func (v *Vehicle) TimeToIntersection() float64 { return v.timeToIn }

// Crossed 是否已经通过路口（转向已执行）
func (v *Vehicle) Crossed() bool { return v.crossed }

// Held 是否因预约被拒绝而停车等待
func (v *Vehicle) Held() bool { return v.held }

func (v *Vehicle) String() string {
	return fmt.Sprintf("Vehicle{id=%d, pos=%v, v=%.2f, %v/%v, lane=%v, d=%.2f}",
		v.id, v.position, v.v, v.direction, v.turn, v.lane, v.distanceToIn)
}

// requestView 申请预约时使用的车辆快照
// 停车等待的车辆以巡航速度计算时间窗
type requestView struct {
	*Vehicle
	v float64
}

func (r requestView) V() float64 { return r.v }
