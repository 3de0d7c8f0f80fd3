package vehicle

import (
	"git.fiblab.net/general/common/v2/geometry"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity"
)

// Integrator 运动积分器
// 功能：每步根据加速度与行驶方向推进车辆速度与位置，并刷新到路口的距离与时间
type Integrator struct {
	MaxV          float64         // 最大速度
	Center        geometry.Point // 路口参考点
	TurnThreshold float64         // 到路口距离小于该值时执行转向
	LaneAware     bool            // 是否根据车道推断转向
}

// Update 推进一辆车一个时间步
// 功能：更新速度、位置与派生量，必要时在路口执行一次转向
// 参数：v-车辆，dt-时间步长
// 算法说明：
// 1. v += a*dt，限制在[0, MaxV]；停车等待预约的车辆保持静止
// 2. 沿行驶方向移动v*dt：Up使y减小，Down使y增大，Left使x减小，Right使x增大
// 3. 重新计算到路口的欧氏距离与到达时间（静止时为无穷大）
// 4. 首次进入转向阈值范围时执行转向并标记crossed，之后不再触发
func (g *Integrator) Update(v *Vehicle, dt float64) {
	if v.held {
		// 停车等待预约
		v.setV(0)
		return
	}
	v.v = lo.Clamp(v.v+v.a*dt, 0, g.MaxV)

	ds := v.v * dt
	switch v.direction {
	case entity.Up:
		v.position.Y -= ds
	case entity.Down:
		v.position.Y += ds
	case entity.Left:
		v.position.X -= ds
	case entity.Right:
		v.position.X += ds
	}
	v.refresh(g.Center)

	if !v.crossed && v.distanceToIn < g.TurnThreshold {
		v.UpdateDirectionAtIntersection(g.LaneAware)
		v.crossed = true
		log.Debugf("vehicle %d crossed junction, now %v", v.id, v.direction)
	}
}
