package ratings

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mandi-mitra/internal/models"
)

// GormStore keeps vendors in the SQL database.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Seed inserts vendors when the table is empty.
func (s *GormStore) Seed(ctx context.Context, vendors []models.Vendor) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Vendor{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count vendors: %w", err)
	}
	if count > 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&vendors).Error; err != nil {
		return fmt.Errorf("failed to seed vendors: %w", err)
	}
	log.Printf("Seeded %d vendors", len(vendors))
	return nil
}

func (s *GormStore) List(ctx context.Context) ([]models.Vendor, error) {
	var vendors []models.Vendor
	if err := s.db.WithContext(ctx).Order("id").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}

func (s *GormStore) Get(ctx context.Context, id uint) (models.Vendor, error) {
	var v models.Vendor
	err := s.db.WithContext(ctx).First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Vendor{}, fmt.Errorf("%w: %d", ErrVendorNotFound, id)
	}
	if err != nil {
		return models.Vendor{}, fmt.Errorf("failed to load vendor %d: %w", id, err)
	}
	return v, nil
}

func (s *GormStore) Update(ctx context.Context, id uint, fn func(*models.Vendor) error) (models.Vendor, error) {
	var v models.Vendor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&v, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %d", ErrVendorNotFound, id)
		}
		if err != nil {
			return err
		}
		if err := fn(&v); err != nil {
			return err
		}
		return tx.Save(&v).Error
	})
	if err != nil {
		return models.Vendor{}, err
	}
	return v, nil
}
