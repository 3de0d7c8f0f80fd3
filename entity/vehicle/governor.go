package vehicle

import (
	"math"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/parallel"
)

// Adjustment 跟车限速结果
type Adjustment struct {
	Vehicle *Vehicle
	V       float64 // 下一步的速度
}

// Governor 跟车距离限制器
// 功能：为每辆车找到同向最近的前车，车距小于安全距离时将速度限制为前车速度
type Governor struct {
	SafetyDistance float64
}

// Ahead 查找同方向上最近的前车
// 功能：在同方向、到路口距离严格更小的车辆中选择距离最小者
// 参数：self-本车，vehicles-所有车辆
// 返回：前车，不存在时返回nil
// 说明：距离相同时选择ID最小者，保证结果与遍历顺序无关
func Ahead(self *Vehicle, vehicles []*Vehicle) *Vehicle {
	var ahead *Vehicle
	for _, o := range vehicles {
		if o == self || o.direction != self.direction {
			continue
		}
		if o.distanceToIn >= self.distanceToIn {
			continue
		}
		if ahead == nil ||
			o.distanceToIn < ahead.distanceToIn ||
			(o.distanceToIn == ahead.distanceToIn && o.id < ahead.id) {
			ahead = o
		}
	}
	return ahead
}

// limit 根据前车计算本车下一步的速度
// 车距小于安全距离时不超过前车当前速度，否则保持不变
func (g *Governor) limit(self, ahead *Vehicle) float64 {
	gap := geometry.Distance2D(self.position, ahead.position)
	if gap < g.SafetyDistance {
		return math.Min(self.v, ahead.v)
	}
	return self.v
}

// Adjust 收集阶段：基于同一份快照计算所有需要调整的速度
// 功能：只读取车辆状态，不做任何修改
// 返回：需要调整速度的车辆列表
func (g *Governor) Adjust(vehicles []*Vehicle) []Adjustment {
	return parallel.GoMapFilter(vehicles, func(v *Vehicle) (Adjustment, bool) {
		ahead := Ahead(v, vehicles)
		if ahead == nil {
			return Adjustment{}, false
		}
		if newV := g.limit(v, ahead); newV != v.v {
			return Adjustment{Vehicle: v, V: newV}, true
		}
		return Adjustment{}, false
	})
}

// Apply 写回阶段：统一写入收集阶段的结果，并重新计算到达时间
func (g *Governor) Apply(adjustments []Adjustment) {
	for _, adj := range adjustments {
		adj.Vehicle.setV(adj.V)
	}
}
