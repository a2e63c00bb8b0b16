package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestMaxActiveOrders_Defaults(t *testing.T) {
	expected := map[driver.VehicleType]int{
		driver.Motorbike: 3,
		driver.Car:       5,
		driver.Van:       10,
		driver.Truck:     20,
	}

	for vt, limit := range expected {
		assert.Equal(t, limit, services.MaxActiveOrders(vt, nil), vt.String())
		assert.Equal(t, limit, services.MaxActiveOrders(vt, map[string]string{}), vt.String())
	}
}

func TestMaxActiveOrders_Overrides(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"valid override", "7", 7},
		{"surrounding whitespace", " 8 ", 8},
		{"zero falls back", "0", 5},
		{"negative falls back", "-2", 5},
		{"not a number falls back", "five", 5},
		{"decimal falls back", "5.5", 5},
		{"empty falls back", "", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := map[string]string{"capacity.car": tt.value}
			assert.Equal(t, tt.expected, services.MaxActiveOrders(driver.Car, settings))
		})
	}
}

func TestMaxActiveOrders_OverrideIsPerVehicleType(t *testing.T) {
	settings := map[string]string{"capacity.truck": "50"}

	assert.Equal(t, 50, services.MaxActiveOrders(driver.Truck, settings))
	assert.Equal(t, 3, services.MaxActiveOrders(driver.Motorbike, settings))
}

func TestMaxActiveOrders_UnknownVehicleType(t *testing.T) {
	settings := map[string]string{"capacity.hovercraft": "100"}

	assert.Equal(t, 3, services.MaxActiveOrders(driver.VehicleType("hovercraft"), settings))
}

func TestCapacitySettingKey(t *testing.T) {
	assert.Equal(t, "capacity.motorbike", services.CapacitySettingKey(driver.Motorbike))
}
