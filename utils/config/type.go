package config

// InputPath 指定输入数据来源的配置（MongoDB、文件系统）
// 功能：定义数据输入路径的配置结构，支持多种数据源
// 说明：File优先级高于MongoDB
type InputPath struct {
	DB   string `yaml:"db,omitempty"`   // 数据库名
	Col  string `yaml:"col,omitempty"`  // 集合名
	File string `yaml:"file,omitempty"` // 文件路径（优先级高于MongoDB）
}

// GetDb 获取数据库名
func (p InputPath) GetDb() string {
	return p.DB
}

// GetColl 获取集合名
func (p InputPath) GetColl() string {
	return p.Col
}

// Empty 是否未配置任何数据源
func (p InputPath) Empty() bool {
	return p.File == "" && (p.DB == "" || p.Col == "")
}

// Input 指定模拟器所有输入数据的配置项
// 功能：定义仿真系统的输入数据配置
// 说明：车辆生成脚本为可选项，不配置时只使用随机生成
type Input struct {
	URI      string     `yaml:"uri,omitempty"`      // MongoDB连接字符串
	Vehicles *InputPath `yaml:"vehicles,omitempty"` // 车辆生成脚本
}

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
// 说明：控制仿真的时间范围、步长和精度
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
type Control struct {
	Step      ControlStep `yaml:"step"`
	LaneAware bool        `yaml:"lane_aware,omitempty"` // 是否根据车道推断转向（左车道左转、中车道直行、右车道右转）
}

// Point 二维坐标
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// World 仿真区域范围，车辆驶出该范围后被移除
type World struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// Junction 路口配置
// 功能：定义路口参考点与各类判定阈值
type Junction struct {
	Center            Point   `yaml:"center"`                       // 路口参考点
	ApproachThreshold float64 `yaml:"approach_threshold,omitempty"` // 到路口距离小于该值时开始申请预约（米）
	TurnThreshold     float64 `yaml:"turn_threshold,omitempty"`     // 到路口距离小于该值时执行转向（米）
	World             World   `yaml:"world"`
}

// Vehicle 车辆公共参数
type Vehicle struct {
	MaxV           float64 `yaml:"max_v,omitempty"`           // 最大速度（米/秒）
	SafetyDistance float64 `yaml:"safety_distance,omitempty"` // 跟车安全距离（米）
	Size           float64 `yaml:"size,omitempty"`            // 默认车长（米）
}

// Spawn 随机生成车辆配置
type Spawn struct {
	Probability float64 `yaml:"probability"`        // 每步生成一辆车的概率，0表示关闭随机生成
	Velocity    float64 `yaml:"velocity,omitempty"` // 初始速度（米/秒）
	LaneOffset  float64 `yaml:"lane_offset,omitempty"`
	Seed        uint64  `yaml:"seed,omitempty"`
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
// 说明：包含输入、控制、路口、车辆、生成等所有配置项
type Config struct {
	Input    Input    `yaml:"input"`    // 输入
	Control  Control  `yaml:"control"`  // 模拟过程控制
	Junction Junction `yaml:"junction"` // 路口
	Vehicle  Vehicle  `yaml:"vehicle"`  // 车辆
	Spawn    Spawn    `yaml:"spawn"`    // 随机生成
}
