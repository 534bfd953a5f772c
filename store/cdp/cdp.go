package cdp

import (
	"context"
	"encoding/json"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"

	"rwapool/core"
)

// row one borrower's position, keyed by address
type row struct {
	ID         uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT"`
	UserID     string `sql:"size:64;unique_index:cdp_user_idx"`
	Collateral string `sql:"type:text"`
	DebtAsset  string `sql:"size:20"`
	DTokens    string `sql:"size:48"`
	CreatedAt  int64
	LastUpdate int64
	Version    int64 `sql:"default:0"`
}

type cdpStore struct {
	db *db.DB
}

// New new cdp store
func New(db *db.DB) core.ICDPStore {
	return &cdpStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(row{})
		if err := tx.AutoMigrate(row{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *cdpStore) Find(ctx context.Context, user string) (*core.CDP, error) {
	var r row
	if err := s.db.View().Where("user_id=?", user).First(&r).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	return fromRow(&r)
}

func (s *cdpStore) Save(ctx context.Context, tx *db.DB, cdp *core.CDP) error {
	r, err := toRow(cdp)
	if err != nil {
		return err
	}

	if cdp.Version == 0 {
		if err := tx.Update().Create(r).Error; err != nil {
			return err
		}
		cdp.Version = r.Version
		return nil
	}

	version := cdp.Version
	result := tx.Update().Model(row{}).
		Where("user_id=? and version=?", cdp.UserID, version).
		Updates(map[string]interface{}{
			"collateral":  r.Collateral,
			"debt_asset":  r.DebtAsset,
			"d_tokens":    r.DTokens,
			"last_update": r.LastUpdate,
			"version":     version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.ErrVersionConflict
	}

	cdp.Version = version + 1
	return nil
}

func (s *cdpStore) All(ctx context.Context) ([]*core.CDP, error) {
	var rows []*row
	if err := s.db.View().Find(&rows).Error; err != nil {
		return nil, err
	}

	cdps := make([]*core.CDP, 0, len(rows))
	for _, r := range rows {
		cdp, err := fromRow(r)
		if err != nil {
			return nil, err
		}
		cdps = append(cdps, cdp)
	}

	return cdps, nil
}

func toRow(cdp *core.CDP) (*row, error) {
	collateral, err := json.Marshal(cdp.Collateral)
	if err != nil {
		return nil, err
	}

	return &row{
		UserID:     cdp.UserID,
		Collateral: string(collateral),
		DebtAsset:  cdp.DebtAsset,
		DTokens:    cdp.DTokens.String(),
		CreatedAt:  cdp.CreatedAt,
		LastUpdate: cdp.LastUpdate,
		Version:    1,
	}, nil
}

func fromRow(r *row) (*core.CDP, error) {
	collateral := map[string]sdkmath.Int{}
	if r.Collateral != "" {
		if err := json.Unmarshal([]byte(r.Collateral), &collateral); err != nil {
			return nil, err
		}
	}

	dTokens, ok := sdkmath.NewIntFromString(r.DTokens)
	if !ok {
		return nil, core.ErrArithmetic
	}

	return &core.CDP{
		UserID:     r.UserID,
		Collateral: collateral,
		DebtAsset:  r.DebtAsset,
		DTokens:    dTokens,
		CreatedAt:  r.CreatedAt,
		LastUpdate: r.LastUpdate,
		Version:    r.Version,
	}, nil
}
