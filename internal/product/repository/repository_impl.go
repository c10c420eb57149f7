package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/smallbiznis/shiftcount/internal/product/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCorruptSlot = errors.New("corrupt_storage_slot")

// Slot is the single keyed row holding the serialized inventory.
type Slot struct {
	Key       string    `gorm:"column:slot_key;primaryKey;type:varchar(64)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Slot) TableName() string { return "storage_slots" }

type slotRepo struct {
	db  *gorm.DB
	key string
	now func() time.Time
}

// NewSlotRepository stores the inventory in a gorm-managed table.
func NewSlotRepository(db *gorm.DB, key string) (domain.Repository, error) {
	if err := db.AutoMigrate(&Slot{}); err != nil {
		return nil, fmt.Errorf("migrate storage slot: %w", err)
	}
	return &slotRepo{db: db, key: key, now: time.Now}, nil
}

func (r *slotRepo) Load(ctx context.Context) ([]domain.RawProduct, error) {
	var slot Slot
	err := r.db.WithContext(ctx).Where("slot_key = ?", r.key).Take(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decode(slot.Value)
}

func (r *slotRepo) Save(ctx context.Context, products []domain.Product) error {
	value, err := encode(products)
	if err != nil {
		return err
	}
	slot := Slot{Key: r.key, Value: value, UpdatedAt: r.now().UTC()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error
}

func encode(products []domain.Product) (string, error) {
	if products == nil {
		products = []domain.Product{}
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return "", fmt.Errorf("encode inventory: %w", err)
	}
	return string(raw), nil
}

func decode(value string) ([]domain.RawProduct, error) {
	if value == "" {
		return nil, nil
	}
	var out []domain.RawProduct
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSlot, err)
	}
	return out, nil
}
