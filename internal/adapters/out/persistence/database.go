package persistence

import (
	"fmt"
	"strings"
	"time"

	"dispatch/internal/adapters/out/persistence/assignmentrepo"
	"dispatch/internal/adapters/out/persistence/dispatchrepo"
	"dispatch/internal/adapters/out/persistence/driverrepo"
	"dispatch/internal/adapters/out/persistence/inventoryrepo"
	"dispatch/internal/adapters/out/persistence/notificationrepo"
	"dispatch/internal/adapters/out/persistence/orderrepo"
	"dispatch/internal/adapters/out/persistence/settingsrepo"
	"dispatch/internal/adapters/out/persistence/shoprepo"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config selects and addresses the database.
type Config struct {
	Driver   string
	DSN      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// PostgresDSN builds a key/value connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Open connects to the configured database and migrates the schema.
//
// SQLite runs with a single open connection: SQLite allows one writer at a
// time, and serialising at the pool keeps concurrent dispatches from failing
// with SQLITE_BUSY while the capacity check and insert run.
func Open(cfg Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var (
		db  *gorm.DB
		err error
	)
	switch strings.ToLower(cfg.Driver) {
	case DriverSQLite, "":
		db, err = gorm.Open(sqlite.Open(cfg.DSN), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return nil, dbErr
		}
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
	case DriverPostgres:
		db, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&driverrepo.DriverDTO{},
		&shoprepo.ShopDTO{},
		&inventoryrepo.ShopInventoryDTO{},
		&inventoryrepo.StockMovementDTO{},
		&assignmentrepo.AssignmentDTO{},
		&dispatchrepo.DispatchRecordDTO{},
		&settingsrepo.SettingDTO{},
		&notificationrepo.OutboxDTO{},
		&notificationrepo.NotificationDTO{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
