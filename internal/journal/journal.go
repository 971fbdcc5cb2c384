// Package journal keeps an append-only record of the events applied to each
// debate room. It is write-only: nothing is ever replayed from it.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/DoyleJ11/debate-timer-backend/internal/engine"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Entry is everything one applied command produced.
type Entry struct {
	Code    string
	Version int
	Events  []engine.Event
	At      time.Time
}

type Recorder interface {
	Record(Entry)
}

type Nop struct{}

func (Nop) Record(Entry) {}

// Record is one journaled event row.
type Record struct {
	ID          uint   `gorm:"primaryKey"`
	SessionCode string `gorm:"size:16;index:idx_session_version"`
	Version     int    `gorm:"index:idx_session_version"`
	Seq         int
	Type        string `gorm:"size:32"`
	StageIndex  int
	Participant string `gorm:"size:64"`
	Seconds     int
	Format      string `gorm:"size:128"`
	CreatedAt   time.Time
}

func (Record) TableName() string { return "session_events" }

// Rows flattens an entry. Per-second ticks are left out; the warning and
// expiry events around them carry the interesting values.
func Rows(e Entry) []Record {
	rows := make([]Record, 0, len(e.Events))
	for i, ev := range e.Events {
		if ev.Type == engine.EvtTimeTicked {
			continue
		}
		rows = append(rows, Record{
			SessionCode: e.Code,
			Version:     e.Version,
			Seq:         i,
			Type:        string(ev.Type),
			StageIndex:  ev.StageIndex,
			Participant: ev.Participant,
			Seconds:     ev.Seconds,
			Format:      ev.Format,
			CreatedAt:   e.At,
		})
	}
	return rows
}

type Appender interface {
	Append(ctx context.Context, rows []Record) error
}

// Store appends records to postgres through gorm.
type Store struct {
	db *gorm.DB
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Append(ctx context.Context, rows []Record) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("append journal rows: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Writer queues entries for an Appender so that recording never blocks the
// room loop. Entries that do not fit in the queue are dropped and logged.
type Writer struct {
	appender Appender
	queue    chan Entry
	logger   *zap.Logger
}

func NewWriter(appender Appender, buffer int, logger *zap.Logger) *Writer {
	if buffer <= 0 {
		buffer = 1
	}
	return &Writer{appender: appender, queue: make(chan Entry, buffer), logger: logger.Named("journal")}
}

func (w *Writer) Record(e Entry) {
	select {
	case w.queue <- e:
	default:
		w.logger.Warn("journal queue full, entry dropped",
			zap.String("code", e.Code),
			zap.Int("version", e.Version),
		)
	}
}

// Run drains the queue until ctx is done.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-w.queue:
			if err := w.appender.Append(ctx, Rows(e)); err != nil {
				w.logger.Error("journal append failed", zap.String("code", e.Code), zap.Error(err))
			}
		}
	}
}
