package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type KVGormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewKVGormRepository(db *gorm.DB) *KVGormRepository {
	return &KVGormRepository{db: db, now: time.Now}
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *KVGormRepository) Get(
	ctx context.Context,
	key string,
) ([]byte, error) {

	var entry models.KVEntry
	err := r.db.WithContext(ctx).
		Where("store_key = ?", key).
		First(&entry).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if entry.Expired(r.now()) {
		_ = r.Delete(ctx, key)
		return nil, booking.ErrNotFound
	}

	return entry.Value, nil
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *KVGormRepository) Set(
	ctx context.Context,
	key string,
	value []byte,
	ttl time.Duration,
) error {

	entry := models.KVEntry{
		Key:   key,
		Value: value,
	}
	if ttl > 0 {
		exp := r.now().Add(ttl)
		entry.ExpiresAt = &exp
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(&entry).Error
}

func (r *KVGormRepository) Delete(
	ctx context.Context,
	key string,
) error {
	return r.db.WithContext(ctx).
		Where("store_key = ?", key).
		Delete(&models.KVEntry{}).Error
}

// Take reads and removes key. When two callers race, only the one whose
// delete hits the row gets the value.
func (r *KVGormRepository) Take(
	ctx context.Context,
	key string,
) ([]byte, error) {

	var value []byte

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.KVEntry
		if err := tx.Where("store_key = ?", key).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return booking.ErrNotFound
			}
			return err
		}

		res := tx.Where("store_key = ?", key).Delete(&models.KVEntry{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 || entry.Expired(r.now()) {
			return booking.ErrNotFound
		}

		value = entry.Value
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

// --------------------------------------------------
// Maintenance
// --------------------------------------------------

// PurgeExpired removes entries whose TTL has passed.
func (r *KVGormRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", r.now()).
		Delete(&models.KVEntry{})
	return res.RowsAffected, res.Error
}

// Compile-time check
var _ booking.KeyValueStore = (*KVGormRepository)(nil)
