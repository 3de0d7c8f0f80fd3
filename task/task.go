package task

import (
	"sync/atomic"

	"github.com/tsinghua-fib-lab/aim-sim-oss/clock"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity/junction"
	"github.com/tsinghua-fib-lab/aim-sim-oss/entity/vehicle"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/input"
)

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态
// 说明：管理时钟、车辆与路口管理器、运行时配置与车辆生成器
type Context struct {
	// 关闭指令
	closed atomic.Bool

	// 时钟
	clock *clock.Clock

	// 车辆管理器
	vehicleManager *vehicle.VehicleManager
	// 路口预约管理器
	junctionManager *junction.ReservationManager

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig

	// 车辆生成器
	spawner *spawner
}

// NewContext 创建新的仿真任务上下文
// 功能：填充缺省配置，创建时钟、管理器与车辆生成器
// 参数：c-配置对象，in-输入数据（可以为nil）
// 返回：初始化完成的Context实例
func NewContext(c config.Config, in *input.Input) *Context {
	ctx := &Context{}
	ctx.runtimeConfig = config.NewRuntimeConfig(c)
	ctx.clock = clock.New(ctx.runtimeConfig.C.Step)

	// 新建各类模拟对象
	ctx.junctionManager = junction.NewManager(ctx)
	ctx.vehicleManager = vehicle.NewManager(ctx)

	var scripted []input.ScriptedSpawn
	if in != nil {
		scripted = in.Spawns
	}
	ctx.spawner = newSpawner(ctx.runtimeConfig, scripted)
	return ctx
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) VehicleManager() entity.IVehicleManager {
	return ctx.vehicleManager
}

func (ctx *Context) JunctionManager() entity.IJunctionManager {
	return ctx.junctionManager
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

// Vehicles 在场车辆，按ID升序
func (ctx *Context) Vehicles() []*vehicle.Vehicle {
	return ctx.vehicleManager.Vehicles()
}

// Reservations 当前所有预约
func (ctx *Context) Reservations() []junction.Reservation {
	return ctx.junctionManager.Reservations()
}

// Close 请求结束仿真，当前步完成后Run返回
func (ctx *Context) Close() {
	ctx.closed.Store(true)
}
