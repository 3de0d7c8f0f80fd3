package junction

import (
	"errors"
	"fmt"

	"github.com/tsinghua-fib-lab/aim-sim-oss/entity"
)

var (
	// ErrReservationConflict 申请的时间窗与一个不晚于它开始的已有预约冲突
	ErrReservationConflict = errors.New("reservation conflict")
)

// Reservation 路口时空预约
// 功能：记录一辆车对路口在[Start, End]时间段内的占用
type Reservation struct {
	VehicleID int32
	Turn      entity.TurnDirection
	Direction entity.MovementDirection
	Lane      entity.Lane
	Start     float64 // 进入路口的时刻（秒）
	End       float64 // 离开路口的时刻（秒），End >= Start
}

func (r Reservation) String() string {
	return fmt.Sprintf("Reservation{vehicle=%d, %v/%v, lane=%v, [%.3f, %.3f]}",
		r.VehicleID, r.Direction, r.Turn, r.Lane, r.Start, r.End)
}

// overlaps 时间窗[start, end]与预约是否重叠（端点相接视为重叠）
func (r *Reservation) overlaps(start, end float64) bool {
	return !(end < r.Start || start > r.End)
}

// conflictTable 时间重叠时的空间冲突表
// 下标：[turnA][turnB][dirA][dirB]
var conflictTable [entity.NumTurnDirections][entity.NumTurnDirections][entity.NumMovementDirections][entity.NumMovementDirections]bool

func init() {
	for ta := range entity.NumTurnDirections {
		for tb := range entity.NumTurnDirections {
			for da := range entity.NumMovementDirections {
				for db := range entity.NumMovementDirections {
					conflictTable[ta][tb][da][db] = spatialConflict(
						entity.TurnDirection(ta), entity.TurnDirection(tb),
						entity.MovementDirection(da), entity.MovementDirection(db),
					)
				}
			}
		}
	}
}

// spatialConflict 两个时间上重叠的通行是否在空间上冲突
// 算法说明：
// 1. 双方都直行且方向相反：轨迹不相交，不冲突
// 2. 任意一方左转：左转扫过整个路口，冲突
// 3. 其他情况一律视为冲突
func spatialConflict(ta, tb entity.TurnDirection, da, db entity.MovementDirection) bool {
	if ta == entity.TurnStraight && tb == entity.TurnStraight && da.Opposite() == db {
		return false
	}
	if ta == entity.TurnLeft || tb == entity.TurnLeft {
		return true
	}
	return true
}

// Compatible 两个时间上重叠的通行能否同时占用路口
func Compatible(ta, tb entity.TurnDirection, da, db entity.MovementDirection) bool {
	return !conflictTable[ta][tb][da][db]
}

// conflicts 申请的时间窗与已有预约是否冲突
func conflicts(start, end float64, turn entity.TurnDirection, dir entity.MovementDirection, held *Reservation) bool {
	if !held.overlaps(start, end) {
		return false
	}
	return conflictTable[turn][held.Turn][dir][held.Direction]
}

// Conflicts 两个预约是否冲突，用于校验预约集合的安全性
func Conflicts(a, b Reservation) bool {
	return conflicts(a.Start, a.End, a.Turn, a.Direction, &b)
}
