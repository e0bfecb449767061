// Package sqlitestorage implements telemetry.Backend on a SQLite database through gorm.
package sqlitestorage

import (
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/RaggarDK/ArcadeRaycastVehicle/logging"
	"github.com/RaggarDK/ArcadeRaycastVehicle/telemetry"
)

const (
	memoryDSN          = "file::memory:?cache=shared"
	slowQueryThreshold = 200 * time.Millisecond
)

// Config holds configuration for the SQLite backend.
type Config struct {
	// Path of the database file. Empty keeps the database in memory.
	Path string
}

// Backend records runs into SQLite.
type Backend struct {
	cfg    Config
	db     *gorm.DB
	logger logging.Logger
	runID  string
}

// New opens the database described by cfg. Tables are created by Init.
func New(cfg Config, logger logging.Logger) (*Backend, error) {
	dsn := cfg.Path
	if dsn == "" {
		dsn = memoryDSN
	}
	if logger == nil {
		logger = logging.Global().Sublogger("telemetry")
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 newGormLogger(logger),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database %q", dsn)
	}
	return &Backend{cfg: cfg, db: db, logger: logger}, nil
}

// newGormLogger reports failed and slow statements through logger. Successful statements are not logged.
func newGormLogger(logger logging.Logger) gormlogger.Interface {
	return gormlogger.New(zap.NewStdLog(logger.Desugar()), gormlogger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Init migrates the schema.
func (b *Backend) Init() error {
	if err := b.db.AutoMigrate(&telemetry.Run{}, &telemetry.TickSample{}, &telemetry.WheelSample{}); err != nil {
		return errors.Wrap(err, "failed to migrate telemetry tables")
	}
	b.logger.Debugw("telemetry tables migrated", "path", b.cfg.Path)
	return nil
}

// Close closes the underlying connection pool.
func (b *Backend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// StartRun inserts run and makes it current.
func (b *Backend) StartRun(run *telemetry.Run) error {
	if err := b.db.Create(run).Error; err != nil {
		return errors.Wrapf(err, "failed to insert run %q", run.ID)
	}
	b.runID = run.ID
	return nil
}

// RecordTick inserts sample and its wheel samples.
func (b *Backend) RecordTick(sample *telemetry.TickSample) error {
	if b.runID == "" {
		return errors.New("no run started")
	}
	sample.RunID = b.runID
	if err := b.db.Create(sample).Error; err != nil {
		return errors.Wrapf(err, "failed to insert tick %d", sample.Tick)
	}
	return nil
}

// Runs returns every stored run, oldest first.
func (b *Backend) Runs() ([]telemetry.Run, error) {
	var runs []telemetry.Run
	if err := b.db.Order("started_at").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Ticks returns the samples of run id in tick order, wheels included.
func (b *Backend) Ticks(runID string) ([]telemetry.TickSample, error) {
	var ticks []telemetry.TickSample
	err := b.db.
		Preload("Wheels", func(db *gorm.DB) *gorm.DB { return db.Order("wheel") }).
		Where("run_id = ?", runID).
		Order("tick").
		Find(&ticks).Error
	if err != nil {
		return nil, err
	}
	return ticks, nil
}
