package snapshot

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRow is one blob in the snapshots table.
type SnapshotRow struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name
func (SnapshotRow) TableName() string {
	return "snapshots"
}

// GormBlobStore stores blobs in a relational table, one row per key.
type GormBlobStore struct {
	db *gorm.DB
}

func NewGormBlobStore(db *gorm.DB) *GormBlobStore {
	return &GormBlobStore{db: db}
}

func (s *GormBlobStore) AutoMigrate() error {
	return s.db.AutoMigrate(&SnapshotRow{})
}

func (s *GormBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var row SnapshotRow
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.Value, nil
}

// Put upserts the row so every write overwrites the whole value.
func (s *GormBlobStore) Put(ctx context.Context, key string, value []byte) error {
	row := SnapshotRow{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
