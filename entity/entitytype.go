package entity

import (
	"fmt"
	"strings"

	"git.fiblab.net/general/common/v2/geometry"
)

// MovementDirection 车辆当前行驶的方向（屏幕坐标系，y轴向下）
type MovementDirection int32

const (
	Up MovementDirection = iota
	Down
	Left
	Right
)

var movementDirectionNames = [...]string{"Up", "Down", "Left", "Right"}

func (d MovementDirection) String() string {
	if d < 0 || int(d) >= len(movementDirectionNames) {
		return fmt.Sprintf("MovementDirection(%d)", int32(d))
	}
	return movementDirectionNames[d]
}

// Opposite 反方向
func (d MovementDirection) Opposite() MovementDirection {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// TurnDirection 车辆在路口的转向意图
type TurnDirection int32

const (
	TurnLeft TurnDirection = iota
	TurnStraight
	TurnRight
)

var turnDirectionNames = [...]string{"Left", "Straight", "Right"}

func (t TurnDirection) String() string {
	if t < 0 || int(t) >= len(turnDirectionNames) {
		return fmt.Sprintf("TurnDirection(%d)", int32(t))
	}
	return turnDirectionNames[t]
}

// Lane 车道，在按车道推断转向的模式下决定转向意图
type Lane int32

const (
	LaneLeft Lane = iota
	LaneMiddle
	LaneRight
)

var laneNames = [...]string{"Left", "Middle", "Right"}

func (l Lane) String() string {
	if l < 0 || int(l) >= len(laneNames) {
		return fmt.Sprintf("Lane(%d)", int32(l))
	}
	return laneNames[l]
}

// Turn 车道对应的转向：左车道左转，中车道直行，右车道右转
func (l Lane) Turn() TurnDirection {
	switch l {
	case LaneLeft:
		return TurnLeft
	case LaneRight:
		return TurnRight
	default:
		return TurnStraight
	}
}

// 枚举数量，用于建表
const (
	NumMovementDirections = 4
	NumTurnDirections     = 3
	NumLanes              = 3
)

// ParseMovementDirection 从字符串解析行驶方向（不区分大小写）
func ParseMovementDirection(s string) (MovementDirection, error) {
	for i, name := range movementDirectionNames {
		if strings.EqualFold(name, s) {
			return MovementDirection(i), nil
		}
	}
	return 0, fmt.Errorf("unknown movement direction %q", s)
}

// ParseTurnDirection 从字符串解析转向
func ParseTurnDirection(s string) (TurnDirection, error) {
	for i, name := range turnDirectionNames {
		if strings.EqualFold(name, s) {
			return TurnDirection(i), nil
		}
	}
	return 0, fmt.Errorf("unknown turn direction %q", s)
}

// ParseLane 从字符串解析车道
func ParseLane(s string) (Lane, error) {
	for i, name := range laneNames {
		if strings.EqualFold(name, s) {
			return Lane(i), nil
		}
	}
	return 0, fmt.Errorf("unknown lane %q", s)
}

// entity/vehicle/vehicle.go的依赖倒置
// 预约管理器只通过该接口读取车辆快照
type IVehicle interface {
	ID() int32                       // 车辆ID
	V() float64                      // 速度（米/秒）
	Size() float64                   // 车长（米）
	Direction() MovementDirection    // 行驶方向
	Turn() TurnDirection             // 转向意图
	Lane() Lane                      // 所在车道
	Position() geometry.Point        // 位置
	DistanceToIntersection() float64 // 到路口参考点的距离
	TimeToIntersection() float64     // 到达路口的时间，静止时为无穷大
	String() string
}
