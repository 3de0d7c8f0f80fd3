package entity

// Manager依赖倒置

// entity/vehicle/manager.go的依赖倒置
type IVehicleManager interface {
	// 输入车辆ID，查找车辆，如果不存在则panic
	Get(id int32) IVehicle
	// 输入车辆ID，查找车辆，如果不存在则返回error
	GetOrError(id int32) (IVehicle, error)
	Len() int // 在场车辆数

	Prepare()                     // 准备阶段：车辆增删生效
	Update(dt float64, t float64) // 更新阶段
}

// entity/junction/manager.go的依赖倒置
type IJunctionManager interface {
	// 为车辆申请路口时空预约，冲突时返回ErrReservationConflict
	RequestReservation(now float64, v IVehicle) error
	Release(vehicleID int32) // 释放车辆持有的预约（车辆离场）

	Prepare(now float64) // 准备阶段：清理过期预约
}
