package services

import (
	"strconv"
	"strings"

	"dispatch/internal/core/domain/model/driver"
)

// CapacitySettingPrefix prefixes the capacity setting key of every vehicle type.
const CapacitySettingPrefix = "capacity."

var defaultMaxActiveOrders = map[driver.VehicleType]int{
	driver.Motorbike: 3,
	driver.Car:       5,
	driver.Van:       10,
	driver.Truck:     20,
}

// CapacitySettingKey returns the settings key overriding the limit of vehicleType,
// e.g. "capacity.van".
func CapacitySettingKey(vehicleType driver.VehicleType) string {
	return CapacitySettingPrefix + vehicleType.String()
}

// DefaultMaxActiveOrders is the built-in limit. Unknown vehicle types get the
// motorbike limit, the most restrictive one.
func DefaultMaxActiveOrders(vehicleType driver.VehicleType) int {
	if limit, ok := defaultMaxActiveOrders[vehicleType]; ok {
		return limit
	}
	return defaultMaxActiveOrders[driver.Motorbike]
}

// MaxActiveOrders returns how many non-terminal assignments a driver with the
// given vehicle type may hold at once.
//
// A positive decimal override under CapacitySettingKey(vehicleType) wins;
// a missing, unparsable or non-positive value falls back to the default.
//
//	MaxActiveOrders(driver.Van, map[string]string{"capacity.van": "12"}) // 12
//	MaxActiveOrders(driver.Van, nil)                                     // 10
func MaxActiveOrders(vehicleType driver.VehicleType, settings map[string]string) int {
	fallback := DefaultMaxActiveOrders(vehicleType)
	if vehicleType.Validate() != nil {
		return fallback
	}

	raw, ok := settings[CapacitySettingKey(vehicleType)]
	if !ok {
		return fallback
	}
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
