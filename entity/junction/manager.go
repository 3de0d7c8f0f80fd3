package junction

import (
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity"
)

// Stats 预约统计
type Stats struct {
	Granted  int64 // 批准次数
	Rejected int64 // 拒绝次数
	Evicted  int64 // 被抢占的预约数
	Expired  int64 // 过期清理的预约数
}

// ReservationManager 路口预约管理器
// 功能：为即将通过路口的车辆分配互斥的时空占用窗口，处理新申请与已有预约之间的冲突
// 说明：预约集合只能通过RequestReservation/Release/Prepare修改，所有修改在同一把锁内完成
type ReservationManager struct {
	ctx entity.ITaskContext

	mtx          sync.Mutex
	reservations []Reservation // 当前有效的预约
	stats        Stats
}

// NewManager 创建路口预约管理器实例
// 功能：初始化预约管理器，创建内部数据结构
// 参数：ctx-任务上下文，可以为nil（单独使用调度器时）
// 返回：新创建的预约管理器实例
func NewManager(ctx entity.ITaskContext) *ReservationManager {
	return &ReservationManager{
		ctx:          ctx,
		reservations: make([]Reservation, 0),
	}
}

// window 计算车辆的路口占用时间窗
// 进入时刻 = now + 到路口距离/速度，通过时长 = 车长/速度
func window(now float64, v entity.IVehicle) (start, end float64) {
	velocity := v.V()
	if velocity <= 0 {
		log.Panicf("vehicle %d requests reservation with velocity %v", v.ID(), velocity)
	}
	start = now + v.DistanceToIntersection()/velocity
	end = start + v.Size()/velocity
	return
}

// RequestReservation 申请路口预约
// 功能：计算车辆的时间窗，与所有已有预约进行冲突检测，批准或拒绝
// 参数：now-当前仿真时间，v-车辆快照（速度必须大于0）
// 返回：批准时返回nil，否则返回包装了ErrReservationConflict的错误
// 算法说明：
// 1. 计算时间窗[start, end]
// 2. 遍历已有预约（跳过本车自己的旧预约）：
//   - 不冲突：跳过
//   - 冲突且本申请开始得更早：标记为待抢占
//   - 冲突且已有预约开始得不晚于本申请：立即拒绝，不做任何修改
//
// 3. 删除所有被标记的预约与本车旧预约，插入新预约
// 说明：最早开始者优先，新申请只能抢占开始得更晚的冲突预约
func (m *ReservationManager) RequestReservation(now float64, v entity.IVehicle) error {
	start, end := window(now, v)
	id, turn, dir := v.ID(), v.Turn(), v.Direction()

	m.mtx.Lock()
	defer m.mtx.Unlock()

	evict := make(map[int]struct{})
	for i := range m.reservations {
		held := &m.reservations[i]
		if held.VehicleID == id {
			continue
		}
		if !conflicts(start, end, turn, dir, held) {
			continue
		}
		if start < held.Start {
			evict[i] = struct{}{}
		} else {
			m.stats.Rejected++
			log.Debugf("vehicle %d [%.3f, %.3f] rejected by %v", id, start, end, held)
			return fmt.Errorf("%w: vehicle %d blocked by vehicle %d", ErrReservationConflict, id, held.VehicleID)
		}
	}

	kept := m.reservations[:0]
	for i, r := range m.reservations {
		if _, ok := evict[i]; ok {
			log.Debugf("vehicle %d evicts %v", id, r)
			continue
		}
		if r.VehicleID == id {
			continue
		}
		kept = append(kept, r)
	}
	m.reservations = append(kept, Reservation{
		VehicleID: id,
		Turn:      turn,
		Direction: dir,
		Lane:      v.Lane(),
		Start:     start,
		End:       end,
	})
	m.stats.Evicted += int64(len(evict))
	m.stats.Granted++
	return nil
}

// Release 释放车辆持有的预约
// 功能：车辆离场时删除其预约，不存在时什么都不做
func (m *ReservationManager) Release(vehicleID int32) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.reservations = lo.Reject(m.reservations, func(r Reservation, _ int) bool {
		return r.VehicleID == vehicleID
	})
}

// Prepare 准备阶段，清理已经结束的预约
// 参数：now-当前仿真时间，End < now的预约不再有效
func (m *ReservationManager) Prepare(now float64) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	before := len(m.reservations)
	m.reservations = lo.Filter(m.reservations, func(r Reservation, _ int) bool {
		return r.End >= now
	})
	m.stats.Expired += int64(before - len(m.reservations))
}

// Reservations 获取当前所有预约的副本，按开始时刻排序
func (m *ReservationManager) Reservations() []Reservation {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	res := slices.Clone(m.reservations)
	slices.SortFunc(res, func(a, b Reservation) int {
		if a.Start != b.Start {
			if a.Start < b.Start {
				return -1
			}
			return 1
		}
		return int(a.VehicleID - b.VehicleID)
	})
	return res
}

// Get 查询车辆持有的预约
func (m *ReservationManager) Get(vehicleID int32) (Reservation, bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return lo.Find(m.reservations, func(r Reservation) bool {
		return r.VehicleID == vehicleID
	})
}

// Len 当前预约数
func (m *ReservationManager) Len() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return len(m.reservations)
}

// Stats 获取预约统计
func (m *ReservationManager) Stats() Stats {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.stats
}
