package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SchemaVersion stamps every persisted snapshot. Loading a snapshot written
// with a different version discards it and the owning store starts empty;
// there is no migration path beyond the stamp.
const SchemaVersion = 1

// StateSnapshot is one persisted store projection under a namespaced key
// (e.g. "cart:default", "orders").
type StateSnapshot struct {
	Key           string         `gorm:"primaryKey"`
	SchemaVersion int            `gorm:"not null"`
	Data          datatypes.JSON `gorm:"type:json"`
	UpdatedAt     time.Time
}

// SnapshotRepository persists store state as versioned JSON snapshots.
// Load and Save are explicit so callers decide what to do with a failed
// write instead of it being silently dropped.
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load reads the snapshot under key into dest. It reports false when no
// usable snapshot exists: the key is absent, or the stored schema version
// does not match the current one.
func (r *SnapshotRepository) Load(key string, dest any) (bool, error) {
	var snap StateSnapshot
	if err := r.db.First(&snap, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	if snap.SchemaVersion != SchemaVersion {
		return false, nil
	}
	if err := json.Unmarshal(snap.Data, dest); err != nil {
		return false, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return true, nil
}

// Save serializes state and upserts it under key with the current schema
// version.
func (r *SnapshotRepository) Save(key string, state any) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", key, err)
	}
	snap := StateSnapshot{
		Key:           key,
		SchemaVersion: SchemaVersion,
		Data:          datatypes.JSON(data),
	}
	if err := r.db.Save(&snap).Error; err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot under key; absent keys are not an error.
func (r *SnapshotRepository) Delete(key string) error {
	if err := r.db.Delete(&StateSnapshot{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}
