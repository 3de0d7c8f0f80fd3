package task

import (
	"flag"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// prepare 准备阶段，每步执行一次
// 功能：在每个仿真步骤开始时进行准备工作
// 算法说明：
// 1. 心跳日志：定期输出系统状态信息
// 2. 车辆生成：脚本车辆与随机车辆加入车辆管理器
// 3. 车辆管理器：新车辆加入、离场车辆删除
// 4. 路口管理器：清理已经结束的预约
func (ctx *Context) prepare() {
	if interval := int32(*heartBeatInterval); interval > 0 && ctx.clock.InternalStep%interval == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		runtime := ctx.vehicleManager.Runtime()
		stats := ctx.junctionManager.Stats()
		log.Infof(
			"STEP: %d(%d:%d:%.2f) vehicles: %d (spawned %d, finished %d, held %d) reservations: %d (granted %d, rejected %d, evicted %d)",
			ctx.clock.InternalStep,
			hour, minute, second,
			ctx.vehicleManager.Len(), runtime.NumSpawned, runtime.NumFinished, runtime.NumHeld,
			ctx.junctionManager.Len(), stats.Granted, stats.Rejected, stats.Evicted,
		)
	}

	for _, s := range ctx.spawner.Spawns(ctx.clock.InternalStep) {
		v := ctx.vehicleManager.Add(s)
		log.Debugf("step %d: spawn %v", ctx.clock.InternalStep, v)
	}

	ctx.vehicleManager.Prepare()
	ctx.junctionManager.Prepare(ctx.clock.T)
}

// update 更新阶段，每步执行一次
// 功能：推进所有车辆一个时间步，并处理路口预约
func (ctx *Context) update() {
	ctx.vehicleManager.Update(ctx.clock.DT, ctx.clock.T)
}

// Step 执行一步仿真：准备、更新、时钟前进
func (ctx *Context) Step() {
	ctx.prepare()
	ctx.update()
	log.Debugf("step %d: update complete", ctx.clock.InternalStep)
	ctx.clock.Tick()
}

// Run 运行
// 功能：从起始步运行到结束步，或者收到关闭指令为止
func (ctx *Context) Run() {
	ctx.clock.Init()
	log.Infof("engine start at step %d, end at step %d", ctx.clock.START_STEP, ctx.clock.END_STEP)
	for !ctx.clock.Done() && !ctx.closed.Load() {
		ctx.Step()
	}
	runtime := ctx.vehicleManager.Runtime()
	stats := ctx.junctionManager.Stats()
	log.Infof("engine complete at step %d: spawned %d, finished %d, granted %d, rejected %d, evicted %d, expired %d",
		ctx.clock.InternalStep, runtime.NumSpawned, runtime.NumFinished,
		stats.Granted, stats.Rejected, stats.Evicted, stats.Expired)
}
