package vehicle

import (
	"fmt"
	"slices"
	"sync"

	"git.fiblab.net/general/common/v2/geometry"
	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/container"
)

// GlobalRuntime 全局运行时数据结构
// 功能：记录生成、离场、停车等待等累计数据
type GlobalRuntime struct {
	NumSpawned  int32 // 已生成的车辆
	NumFinished int32 // 已驶出仿真区域的车辆
	NumHeld     int32 // 当前停车等待预约的车辆
}

// VehicleManager 车辆管理器
// 功能：管理所有车辆，按固定顺序执行运动积分、跟车限速、路口预约申请与离场
type VehicleManager struct {
	ctx entity.ITaskContext

	data     map[int32]*Vehicle
	vehicles *container.IncrementalArray[*Vehicle]

	inserted      []*Vehicle // 新加入的车辆，Prepare后生效
	insertedMutex sync.Mutex
	nextID        int32

	integrator Integrator
	governor   Governor
	approach   float64      // 申请预约的距离阈值
	world      config.World // 仿真区域
	runtime    GlobalRuntime
}

// NewManager 创建车辆管理器实例
// 功能：根据运行时配置初始化积分器、跟车限制器与内部数据结构
// 参数：ctx-任务上下文
// 返回：新创建的车辆管理器实例
func NewManager(ctx entity.ITaskContext) *VehicleManager {
	rc := ctx.RuntimeConfig()
	return &VehicleManager{
		ctx:      ctx,
		data:     make(map[int32]*Vehicle),
		vehicles: container.NewIncrementalArray[*Vehicle](),
		inserted: make([]*Vehicle, 0),
		nextID:   1,
		integrator: Integrator{
			MaxV:          rc.V.MaxV,
			Center:        geometry.Point{X: rc.J.Center.X, Y: rc.J.Center.Y},
			TurnThreshold: rc.J.TurnThreshold,
			LaneAware:     rc.C.LaneAware,
		},
		governor: Governor{SafetyDistance: rc.V.SafetyDistance},
		approach: rc.J.ApproachThreshold,
		world:    rc.J.World,
	}
}

// Add 添加新车辆（Prepare后生效）
// 功能：分配ID并创建车辆，车长未指定时使用配置的缺省车长，按车道推断转向时由车道决定转向意图
// 参数：s-生成参数
// 返回：新创建的车辆
// 说明：使用互斥锁保证线程安全
func (m *VehicleManager) Add(s Spawn) *Vehicle {
	if s.Size <= 0 {
		s.Size = m.ctx.RuntimeConfig().V.Size
	}
	if m.integrator.LaneAware {
		// 预约与路口转向使用同一个转向意图
		s.Turn = s.Lane.Turn()
	}
	m.insertedMutex.Lock()
	defer m.insertedMutex.Unlock()
	v := newVehicle(m.nextID, s, m.integrator.Center)
	m.nextID++
	m.inserted = append(m.inserted, v)
	return v
}

// Get 根据ID获取车辆，如果不存在则panic
func (m *VehicleManager) Get(id int32) entity.IVehicle {
	if v, ok := m.data[id]; !ok {
		log.Panicf("no id %d in vehicle data", id)
		return nil
	} else {
		return v
	}
}

// GetOrError 根据ID获取车辆，如果不存在则返回错误
func (m *VehicleManager) GetOrError(id int32) (entity.IVehicle, error) {
	if v, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %d in vehicle data", id)
	} else {
		return v, nil
	}
}

// Len 在场车辆数
func (m *VehicleManager) Len() int {
	return m.vehicles.Len()
}

// Vehicles 在场车辆，按ID升序
func (m *VehicleManager) Vehicles() []*Vehicle {
	vs := slices.Clone(m.vehicles.Data())
	slices.SortFunc(vs, func(a, b *Vehicle) int { return int(a.id - b.id) })
	return vs
}

// Runtime 全局运行时数据
func (m *VehicleManager) Runtime() GlobalRuntime {
	return m.runtime
}

// Prepare 准备阶段：新车辆加入、离场车辆删除
func (m *VehicleManager) Prepare() {
	m.insertedMutex.Lock()
	for _, v := range m.inserted {
		if _, ok := m.data[v.id]; ok {
			log.Panicf("vehicle: same id %d between new vehicle and existed vehicle", v.id)
		}
		m.data[v.id] = v
		m.vehicles.Add(v)
		m.runtime.NumSpawned++
	}
	m.inserted = []*Vehicle{}
	m.insertedMutex.Unlock()

	m.vehicles.Prepare()
}

// Update 更新阶段
// 功能：按固定顺序完成一步内所有车辆相关的计算
// 参数：dt-时间步长，t-当前仿真时间
// 算法说明：
// 1. 运动积分：所有车辆先完成位置、速度与派生量的更新（各车只写自己，可并行）
//   - 匀速行驶（加速度为0）且未停车等待的车辆恢复巡航速度，再由跟车限速重新限制
//
// 2. 跟车限速：基于第1步后的同一份快照收集限速结果，再统一写回
// 3. 路口预约：进入申请范围且尚未通过路口的车辆按ID顺序申请预约，被拒绝的车辆停车
// 4. 离场：驶出仿真区域的车辆释放预约并在下一次Prepare时删除
func (m *VehicleManager) Update(dt float64, t float64) {
	vehicles := m.Vehicles()

	parallel.GoFor(vehicles, func(v *Vehicle) {
		m.integrator.Update(v, dt)
		v.resume()
	})

	m.governor.Apply(m.governor.Adjust(vehicles))

	m.requestReservations(vehicles, t)

	for _, v := range vehicles {
		if m.outOfWorld(v) {
			m.remove(v)
		}
	}
	m.runtime.NumHeld = int32(lo.CountBy(vehicles, func(v *Vehicle) bool { return v.held }))
}

// requestReservations 向路口申请预约
// 停车等待的车辆以巡航速度申请，批准后恢复巡航速度；被拒绝的车辆速度置0
func (m *VehicleManager) requestReservations(vehicles []*Vehicle, t float64) {
	junction := m.ctx.JunctionManager()
	for _, v := range vehicles {
		if v.crossed || v.distanceToIn >= m.approach || v.distanceToIn <= 0 {
			continue
		}
		requestV := v.v
		if v.held || requestV == 0 {
			requestV = v.cruiseV
		}
		if requestV <= 0 {
			continue
		}
		if err := junction.RequestReservation(t, requestView{Vehicle: v, v: requestV}); err != nil {
			if !v.held {
				log.Debugf("vehicle %d holds: %v", v.id, err)
			}
			v.held = true
			v.setV(0)
			continue
		}
		if v.held {
			v.held = false
			v.setV(requestV)
		}
	}
}

// outOfWorld 车辆是否已经通过路口并驶出仿真区域
func (m *VehicleManager) outOfWorld(v *Vehicle) bool {
	p := v.position
	return p.X < m.world.MinX || p.X > m.world.MaxX || p.Y < m.world.MinY || p.Y > m.world.MaxY
}

// remove 删除车辆（Prepare后生效）
func (m *VehicleManager) remove(v *Vehicle) {
	m.ctx.JunctionManager().Release(v.id)
	delete(m.data, v.id)
	m.vehicles.Remove(v)
	m.runtime.NumFinished++
	log.Debugf("vehicle %d left the world at %v", v.id, v.position)
}
