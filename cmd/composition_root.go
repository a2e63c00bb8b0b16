package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/persistence"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/jobs"
	"dispatch/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *persistence.GormUnitOfWorkFactory
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, registry *prometheus.Registry, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: persistence.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		metrics:    metrics.New(registry),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAssignDispatchCommandHandler() commands.AssignDispatchCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	// Validated by LoadConfig.
	policy, _ := commands.ParseInventoryPolicy(c.config.InventoryPolicy)
	return commands.NewAssignDispatchCommandHandler(f, policy, c.logger)
}

func (c *CompositionRoot) CreateUpdateAssignmentStatusCommandHandler() commands.UpdateAssignmentStatusCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateAssignmentStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayNotificationsCommandHandler() commands.RelayNotificationsCommandHandler {
	var f commands.NotificationUoWFactory = FuncNotificationUoWFactory(func() commands.NotificationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayNotificationsCommandHandler(f)
}

func (c *CompositionRoot) CreateGetDispatchRecordQueryHandler() queries.GetDispatchRecordQueryHandler {
	return queries.NewGetDispatchRecordQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverWorkloadQueryHandler() queries.GetDriverWorkloadQueryHandler {
	return queries.NewGetDriverWorkloadQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *echo.Echo {
	server := httpin.NewServer(
		c.CreateAssignDispatchCommandHandler(),
		c.CreateUpdateAssignmentStatusCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateGetDispatchRecordQueryHandler(),
		c.CreateGetDriverWorkloadQueryHandler(),
		c.metrics,
		c.logger,
	)
	return httpin.NewEcho(server, []byte(c.config.JWTSecret), c.registry)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRelayNotificationsCommandHandler(), c.config.Relay(), c.metrics, c.logger)
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncNotificationUoWFactory func() commands.NotificationUoW

func (f FuncNotificationUoWFactory) Create() commands.NotificationUoW {
	return f()
}
