package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-state/core/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EntriesTable is the table used by the SQL medium.
const EntriesTable = "storage_entries"

// Entry is a row of the SQL medium.
type Entry struct {
	Key       string    `gorm:"column:item_key;primaryKey;size:191"`
	Value     string    `gorm:"column:item_value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName implements gorm's tabler.
func (Entry) TableName() string {
	return EntriesTable
}

// SQL is a medium storing values in a relational database through GORM.
type SQL struct {
	db *gorm.DB
}

// NewSQL returns a SQL medium using db.
func NewSQL(db *gorm.DB) *SQL {
	return &SQL{db: db}
}

// Migrate creates the entries table if needed and checks its value column.
func (s *SQL) Migrate(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", EntriesTable, err)
	}

	columns, err := database.GetTableColumns(db, EntriesTable)
	if err != nil {
		return err
	}
	if !database.HasColumn(columns, "item_value", "text") {
		return fmt.Errorf("table %s: item_value must be a text column", EntriesTable)
	}
	return nil
}

func (s *SQL) GetItem(ctx context.Context, key string) (string, error) {
	var entry Entry
	err := s.db.WithContext(ctx).Where("item_key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", key, err)
	}
	return entry.Value, nil
}

func (s *SQL) SetItem(ctx context.Context, key, value string) error {
	entry := Entry{Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"item_value", "updated_at"}),
		}).
		Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *SQL) RemoveItem(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("item_key = ?", key).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("failed to remove %q: %w", key, err)
	}
	return nil
}
