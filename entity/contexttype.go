package entity

import (
	"github.com/tsinghua-fib-lab/aim-sim-oss/clock"
	"github.com/tsinghua-fib-lab/aim-sim-oss/utils/config"
)

type ITaskContext interface {
	Clock() *clock.Clock
	VehicleManager() IVehicleManager
	JunctionManager() IJunctionManager
	RuntimeConfig() *config.RuntimeConfig
}
