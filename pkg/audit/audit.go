package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Protocol event types. This is an operator-facing trail; tasks themselves
// are never stored or retrievable.
const (
	EventTaskCompleted = "task_completed"
	EventTaskFailed    = "task_failed"
	EventRPCRejected   = "rpc_rejected"
)

type Entry struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index:idx_audit_timestamp"`
	EventType string    `gorm:"column:event_type;not null"`
	TaskID    string    `gorm:"column:task_id;not null;default:''"`
	ContextID string    `gorm:"column:context_id;not null;default:''"`
	Method    string    `gorm:"column:method;not null;default:''"`
	Detail    string    `gorm:"column:detail;not null;default:''"`
}

func (Entry) TableName() string {
	return "audit_log"
}

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) (*Logger, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("audit: running migrations: %w", err)
	}

	return &Logger{db: db}, nil
}

// Open creates a Logger backed by a sqlite database at dsn.
func Open(dsn string) (*Logger, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("audit: opening database: %w", err)
	}
	return New(db)
}

func (l *Logger) Log(ctx context.Context, eventType, taskID, contextID, method, detail string) error {
	entry := &Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		TaskID:    taskID,
		ContextID: contextID,
		Method:    method,
		Detail:    detail,
	}

	return l.db.WithContext(ctx).Create(entry).Error
}

type Filter struct {
	EventType string
	TaskID    string
	Method    string
	Since     time.Time
	Until     time.Time
	Limit     int
}

func (l *Logger) Query(ctx context.Context, f Filter) ([]Entry, error) {
	q := l.db.WithContext(ctx)

	if f.EventType != "" {
		q = q.Where("event_type = ?", f.EventType)
	}
	if f.TaskID != "" {
		q = q.Where("task_id = ?", f.TaskID)
	}
	if f.Method != "" {
		q = q.Where("method = ?", f.Method)
	}
	if !f.Since.IsZero() {
		q = q.Where("timestamp >= ?", f.Since)
	}
	if !f.Until.IsZero() {
		q = q.Where("timestamp <= ?", f.Until)
	}

	q = q.Order("timestamp DESC")

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var entries []Entry
	err := q.Find(&entries).Error
	return entries, err
}

func (l *Logger) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
