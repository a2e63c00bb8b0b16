package driver

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// VehicleType selects the capacity limit of a driver.
type VehicleType string

const (
	Motorbike VehicleType = "motorbike"
	Car       VehicleType = "car"
	Van       VehicleType = "van"
	Truck     VehicleType = "truck"
)

// VehicleTypes lists every supported vehicle type, smallest first.
func VehicleTypes() []VehicleType {
	return []VehicleType{Motorbike, Car, Van, Truck}
}

func ParseVehicleType(s string) (VehicleType, error) {
	vt := VehicleType(s)
	if err := vt.Validate(); err != nil {
		return "", err
	}
	return vt, nil
}

func (v VehicleType) Validate() error {
	switch v {
	case Motorbike, Car, Van, Truck:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicleType", fmt.Errorf("%q is not a supported vehicle type", string(v)))
	}
}

func (v VehicleType) String() string {
	return string(v)
}
