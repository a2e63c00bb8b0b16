package http

import (
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/assignment"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/order"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type AssignDispatchRequest struct {
	OrderID               string     `json:"orderId"`
	DriverID              string     `json:"driverId"`
	ShopID                string     `json:"shopId"`
	TrackingNumber        string     `json:"trackingNumber"`
	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	TransportCost         *float64   `json:"transportCost,omitempty"`
	Notes                 string     `json:"notes,omitempty"`
}

type AssignDispatchResponse struct {
	Success  bool             `json:"success"`
	Dispatch DispatchResponse `json:"dispatch"`
	Message  string           `json:"message"`
}

type DispatchDriver struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	VehicleType string  `json:"vehicleType,omitempty"`
	EmployeeID  *string `json:"employeeId,omitempty"`
}

type DispatchShop struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type DispatchResponse struct {
	ID                    string         `json:"id"`
	OrderID               string         `json:"orderId"`
	TrackingNumber        string         `json:"trackingNumber"`
	Status                string         `json:"status"`
	EstimatedDeliveryTime *time.Time     `json:"estimatedDeliveryTime,omitempty"`
	TransportCost         *float64       `json:"transportCost,omitempty"`
	Notes                 string         `json:"notes,omitempty"`
	CreatedBy             string         `json:"createdBy"`
	CreatedAt             time.Time      `json:"createdAt"`
	Driver                DispatchDriver `json:"driver"`
	Shop                  DispatchShop   `json:"shop"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type AssignmentResponse struct {
	ID          string     `json:"id"`
	DriverID    string     `json:"driverId"`
	OrderID     string     `json:"orderId"`
	Status      string     `json:"status"`
	CreatedBy   string     `json:"createdBy"`
	AssignedAt  time.Time  `json:"assignedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type UpdateAssignmentStatusResponse struct {
	Success    bool               `json:"success"`
	Assignment AssignmentResponse `json:"assignment"`
}

type OrderResponse struct {
	ID             string  `json:"id"`
	Status         string  `json:"status"`
	ShopID         *string `json:"shopId,omitempty"`
	TrackingNumber string  `json:"trackingNumber,omitempty"`
}

type UpdateOrderStatusResponse struct {
	Success bool          `json:"success"`
	Order   OrderResponse `json:"order"`
}

type WorkloadResponse struct {
	DriverID          string `json:"driverId"`
	VehicleType       string `json:"vehicleType"`
	Status            string `json:"status"`
	ActiveAssignments int    `json:"activeAssignments"`
	MaxActiveOrders   int    `json:"maxActiveOrders"`
}

func toDispatchResponse(view *queries.GetDispatchRecordQueryResponse) DispatchResponse {
	resp := DispatchResponse{
		ID:                    view.ID.String(),
		OrderID:               view.OrderID.String(),
		TrackingNumber:        view.TrackingNumber,
		Status:                view.Status,
		EstimatedDeliveryTime: view.EstimatedDeliveryTime,
		TransportCost:         view.TransportCost,
		Notes:                 view.Notes,
		CreatedBy:             view.CreatedBy,
		CreatedAt:             view.CreatedAt,
		Driver: DispatchDriver{
			ID:          view.Driver.ID.String(),
			Name:        view.Driver.Name,
			VehicleType: view.Driver.VehicleType,
		},
		Shop: DispatchShop{
			ID:   view.Shop.ID.String(),
			Name: view.Shop.Name,
		},
	}
	if view.Driver.EmployeeID != nil {
		employeeID := view.Driver.EmployeeID.String()
		resp.Driver.EmployeeID = &employeeID
	}
	return resp
}

// fromRecord is used when the joined view cannot be read back.
func fromRecord(r *dispatch.Record) DispatchResponse {
	return DispatchResponse{
		ID:                    r.ID().String(),
		OrderID:               r.OrderID().String(),
		TrackingNumber:        r.TrackingNumber(),
		Status:                string(r.Status()),
		EstimatedDeliveryTime: r.EstimatedDeliveryTime(),
		TransportCost:         r.TransportCost(),
		Notes:                 r.Notes(),
		CreatedBy:             r.CreatedBy(),
		CreatedAt:             r.CreatedAt(),
		Driver:                DispatchDriver{ID: r.DriverID().String()},
		Shop:                  DispatchShop{ID: r.ShopID().String()},
	}
}

func toAssignmentResponse(a *assignment.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID().String(),
		DriverID:    a.DriverID().String(),
		OrderID:     a.OrderID().String(),
		Status:      a.Status().String(),
		CreatedBy:   a.CreatedBy(),
		AssignedAt:  a.AssignedAt(),
		UpdatedAt:   a.UpdatedAt(),
		CompletedAt: a.CompletedAt(),
	}
}

func toOrderResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID().String(),
		Status:         o.Status().String(),
		TrackingNumber: o.TrackingNumber(),
	}
	if o.ShopID() != nil {
		shopID := o.ShopID().String()
		resp.ShopID = &shopID
	}
	return resp
}
