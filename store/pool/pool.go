package pool

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"

	"rwapool/core"
)

const documentKey = "pool"

// poolDocument the whole pool state as one versioned row.
//
// The document is read, mutated and written back as a unit; writers race
// on the version column.
type poolDocument struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT"`
	Key       string    `sql:"size:36;unique_index:pool_key_idx"`
	Document  string    `sql:"type:longtext"`
	Version   int64     `sql:"default:0"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP"`
}

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.PoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(poolDocument{})
		if err := tx.AutoMigrate(poolDocument{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Create(ctx context.Context, state *core.PoolState) error {
	var existing poolDocument
	err := s.db.View().Where("`key`=?", documentKey).First(&existing).Error
	if err == nil {
		return core.ErrAlreadyInitialized
	}
	if !gorm.IsRecordNotFoundError(err) {
		return err
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	doc := poolDocument{
		Key:      documentKey,
		Document: string(raw),
		Version:  1,
	}
	return s.db.Update().Create(&doc).Error
}

func (s *poolStore) Load(ctx context.Context) (*core.PoolState, error) {
	var doc poolDocument
	if err := s.db.View().Where("`key`=?", documentKey).First(&doc).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrNotInitialized
		}
		return nil, err
	}

	var state core.PoolState
	if err := json.Unmarshal([]byte(doc.Document), &state); err != nil {
		return nil, err
	}

	state.Version = doc.Version
	return &state, nil
}

func (s *poolStore) Save(ctx context.Context, tx *db.DB, state *core.PoolState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}

	version := state.Version
	result := tx.Update().Model(poolDocument{}).
		Where("`key`=? and version=?", documentKey, version).
		Updates(map[string]interface{}{
			"document": string(raw),
			"version":  version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	state.Version = version + 1
	return nil
}
