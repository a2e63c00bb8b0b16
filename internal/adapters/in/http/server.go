// Package http is the inbound REST adapter. Handlers translate requests into
// commands and queries and map application errors to status codes.
package http

import (
	"log/slog"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the use case handlers behind the REST API.
type Server struct {
	// Command handlers
	assignDispatchHandler         commands.AssignDispatchCommandHandler
	updateAssignmentStatusHandler commands.UpdateAssignmentStatusCommandHandler
	updateOrderStatusHandler      commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getDispatchRecordHandler queries.GetDispatchRecordQueryHandler
	getDriverWorkloadHandler queries.GetDriverWorkloadQueryHandler

	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewServer(
	assignDispatchHandler commands.AssignDispatchCommandHandler,
	updateAssignmentStatusHandler commands.UpdateAssignmentStatusCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getDispatchRecordHandler queries.GetDispatchRecordQueryHandler,
	getDriverWorkloadHandler queries.GetDriverWorkloadQueryHandler,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Server {
	return &Server{
		assignDispatchHandler:         assignDispatchHandler,
		updateAssignmentStatusHandler: updateAssignmentStatusHandler,
		updateOrderStatusHandler:      updateOrderStatusHandler,
		getDispatchRecordHandler:      getDispatchRecordHandler,
		getDriverWorkloadHandler:      getDriverWorkloadHandler,
		metrics:                       m,
		logger:                        logger.With("component", "http"),
	}
}

// NewEcho builds the echo instance with middleware and routes.
func NewEcho(s *Server, jwtSecret []byte, gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(RequestLogger(s.logger))
	e.Use(Observability(s.metrics))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1", Authenticate(jwtSecret))
	staff := RequireRoles(RoleEcommerce, RoleAdmin)

	api.POST("/dispatch/assign", s.AssignDispatch, staff)
	api.GET("/dispatch/:id", s.GetDispatch, staff)
	api.PATCH("/dispatch/assignments/:id/status", s.UpdateAssignmentStatus,
		RequireRoles(RoleDriver, RoleEcommerce, RoleAdmin))
	api.GET("/drivers/:id/workload", s.GetDriverWorkload, staff)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus, staff)

	return e
}

// AssignDispatch handles POST /api/v1/dispatch/assign.
func (s *Server) AssignDispatch(c echo.Context) error {
	var req AssignDispatchRequest
	if err := c.Bind(&req); err != nil {
		s.metrics.Dispatches.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return badRequest(c, err.Error())
	}

	user, _ := UserFromContext(c)
	requestedBy := user.Username
	if requestedBy == "" {
		requestedBy = user.ID
	}

	cmd, err := commands.NewAssignDispatchCommand(
		req.OrderID,
		req.DriverID,
		req.ShopID,
		req.TrackingNumber,
		dispatch.Details{
			EstimatedDeliveryTime: req.EstimatedDeliveryTime,
			TransportCost:         req.TransportCost,
			Notes:                 req.Notes,
		},
		requestedBy,
	)
	if err != nil {
		s.metrics.Dispatches.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return writeError(c, s.logger, err)
	}

	ctx := c.Request().Context()
	record, err := s.assignDispatchHandler.Handle(ctx, cmd)
	if err != nil {
		_, _, outcome := classify(err)
		s.metrics.Dispatches.WithLabelValues(outcome).Inc()
		return writeError(c, s.logger, err)
	}
	s.metrics.Dispatches.WithLabelValues(metrics.OutcomeAssigned).Inc()

	resp := fromRecord(record)
	if query, qErr := queries.NewGetDispatchRecordQuery(record.ID().String()); qErr == nil {
		if view, viewErr := s.getDispatchRecordHandler.Handle(ctx, query); viewErr == nil {
			resp = toDispatchResponse(view)
		} else {
			s.logger.WarnContext(ctx, "dispatch view not available", "dispatch_id", record.ID().String(), "error", viewErr)
		}
	}

	return c.JSON(http.StatusOK, AssignDispatchResponse{
		Success:  true,
		Dispatch: resp,
		Message:  "Order dispatched successfully",
	})
}

// GetDispatch handles GET /api/v1/dispatch/:id.
func (s *Server) GetDispatch(c echo.Context) error {
	query, err := queries.NewGetDispatchRecordQuery(c.Param("id"))
	if err != nil {
		return writeError(c, s.logger, err)
	}

	view, err := s.getDispatchRecordHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, toDispatchResponse(view))
}

// UpdateAssignmentStatus handles PATCH /api/v1/dispatch/assignments/:id/status.
func (s *Server) UpdateAssignmentStatus(c echo.Context) error {
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err.Error())
	}

	user, _ := UserFromContext(c)
	requestedBy := user.Username
	if requestedBy == "" {
		requestedBy = user.ID
	}

	cmd, err := commands.NewUpdateAssignmentStatusCommand(c.Param("id"), req.Status, requestedBy)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	a, err := s.updateAssignmentStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, UpdateAssignmentStatusResponse{
		Success:    true,
		Assignment: toAssignmentResponse(a),
	})
}

// GetDriverWorkload handles GET /api/v1/drivers/:id/workload.
func (s *Server) GetDriverWorkload(c echo.Context) error {
	query, err := queries.NewGetDriverWorkloadQuery(c.Param("id"))
	if err != nil {
		return writeError(c, s.logger, err)
	}

	workload, err := s.getDriverWorkloadHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, WorkloadResponse{
		DriverID:          workload.DriverID.String(),
		VehicleType:       workload.VehicleType,
		Status:            workload.Status,
		ActiveAssignments: workload.ActiveAssignments,
		MaxActiveOrders:   workload.MaxActiveOrders,
	})
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	var req StatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err.Error())
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(c.Param("id"), req.Status)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	o, err := s.updateOrderStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, UpdateOrderStatusResponse{
		Success: true,
		Order:   toOrderResponse(o),
	})
}
