package config

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// 缺省参数
const (
	defaultInterval          = 1.0
	defaultApproachThreshold = 60.0
	defaultTurnThreshold     = 25.0
	defaultMaxV              = 40.0
	defaultSafetyDistance    = 5.0
	defaultSize              = 10.0
	defaultSpawnVelocity     = 30.0
	defaultLaneOffset        = 22.0
)

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息，缺省项已经被填充
// 说明：将YAML配置转换为运行时可用的配置对象
type RuntimeConfig struct {
	All Config   // 全部配置
	C   Control  // 全局控制配置
	J   Junction // 路口配置
	V   Vehicle  // 车辆配置
	S   Spawn    // 生成配置
}

// NewRuntimeConfig 根据配置初始化全局变量
// 功能：创建运行时配置对象，填充缺省值
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
// 算法说明：
// 1. 时间间隔、阈值、车辆参数等未设置（<=0）时使用缺省值
// 2. 未设置仿真区域时以路口为中心、向四周扩展400米
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}

	if config.Control.Step.Interval <= 0 {
		config.Control.Step.Interval = defaultInterval
	}
	j := &config.Junction
	if j.ApproachThreshold <= 0 {
		j.ApproachThreshold = defaultApproachThreshold
	}
	if j.TurnThreshold <= 0 {
		j.TurnThreshold = defaultTurnThreshold
	}
	if j.World == (World{}) {
		j.World = World{
			MinX: j.Center.X - 400, MinY: j.Center.Y - 400,
			MaxX: j.Center.X + 400, MaxY: j.Center.Y + 400,
		}
	}
	v := &config.Vehicle
	if v.MaxV <= 0 {
		v.MaxV = defaultMaxV
	}
	if v.SafetyDistance <= 0 {
		v.SafetyDistance = defaultSafetyDistance
	}
	if v.Size <= 0 {
		v.Size = defaultSize
	}
	s := &config.Spawn
	if s.Velocity <= 0 {
		s.Velocity = defaultSpawnVelocity
	}
	if s.LaneOffset <= 0 {
		s.LaneOffset = defaultLaneOffset
	}

	if j.TurnThreshold <= s.LaneOffset {
		// 偏离中心线的车道上的车辆到路口参考点的距离始终不小于LaneOffset
		log.Warnf("junction.turn_threshold %v <= spawn.lane_offset %v, vehicles on side lanes will never turn",
			j.TurnThreshold, s.LaneOffset)
	}

	rc.All = config
	rc.C = config.Control
	rc.J = config.Junction
	rc.V = config.Vehicle
	rc.S = config.Spawn
	return rc
}

// Parse 严格解析YAML配置，出现未知字段时报错
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if c.Spawn.Probability < 0 || c.Spawn.Probability > 1 {
		return Config{}, fmt.Errorf("config: spawn.probability %v out of [0, 1]", c.Spawn.Probability)
	}
	return c, nil
}
