// Package ratings keeps vendor trust scores and applies buyer ratings to them.
package ratings

import (
	"context"
	"errors"
	"fmt"

	"mandi-mitra/internal/models"
	"mandi-mitra/internal/money"
)

var (
	ErrVendorNotFound = errors.New("vendor not found")
	ErrInvalidStars   = errors.New("rating must be between 1 and 5 stars")
)

// Feedback tags a buyer may attach to a rating.
const (
	FeedbackFairPrice     = "fairPrice"
	FeedbackGoodQuality   = "goodQuality"
	FeedbackHonestDealing = "honestDealing"
)

// Store persists vendors. Update runs fn on the current row and saves the result
// atomically with respect to other updates of the same vendor.
type Store interface {
	List(ctx context.Context) ([]models.Vendor, error)
	Get(ctx context.Context, id uint) (models.Vendor, error)
	Update(ctx context.Context, id uint, fn func(*models.Vendor) error) (models.Vendor, error)
}

// Submission is one buyer rating.
type Submission struct {
	Stars    int      `json:"stars"`
	Feedback []string `json:"feedback"`
}

// Apply folds a rating into the vendor's running average, rounded to one decimal,
// and bumps the counters of recognised feedback tags.
func Apply(v *models.Vendor, s Submission) error {
	if s.Stars < 1 || s.Stars > 5 {
		return fmt.Errorf("%w: got %d", ErrInvalidStars, s.Stars)
	}

	total := v.TotalRatings + 1
	v.Rating = money.RoundTo((v.Rating*float64(v.TotalRatings)+float64(s.Stars))/float64(total), 1)
	v.TotalRatings = total

	seen := make(map[string]bool, len(s.Feedback))
	for _, tag := range s.Feedback {
		if seen[tag] {
			continue
		}
		seen[tag] = true
		switch tag {
		case FeedbackFairPrice:
			v.FeedbackStats.FairPrice++
		case FeedbackGoodQuality:
			v.FeedbackStats.GoodQuality++
		case FeedbackHonestDealing:
			v.FeedbackStats.HonestDealing++
		}
	}
	return nil
}

// Service is the rating use case over a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Vendors(ctx context.Context) ([]models.Vendor, error) {
	return s.store.List(ctx)
}

func (s *Service) Vendor(ctx context.Context, id uint) (models.Vendor, error) {
	return s.store.Get(ctx, id)
}

// Submit records a rating and returns the updated vendor.
func (s *Service) Submit(ctx context.Context, id uint, sub Submission) (models.Vendor, error) {
	if sub.Stars < 1 || sub.Stars > 5 {
		return models.Vendor{}, fmt.Errorf("%w: got %d", ErrInvalidStars, sub.Stars)
	}
	return s.store.Update(ctx, id, func(v *models.Vendor) error {
		return Apply(v, sub)
	})
}

// SeedVendors is the starter set of vendors loaded into an empty store.
func SeedVendors() []models.Vendor {
	return []models.Vendor{
		{
			ID:            1,
			Name:          "Ravi Kumar",
			Language:      "te",
			Rating:        4.5,
			TotalRatings:  127,
			TrustBadge:    BadgeTrusted,
			Items:         []string{"Tomato", "Onion", "Potato"},
			FeedbackStats: models.FeedbackStats{FairPrice: 95, GoodQuality: 92, HonestDealing: 98},
		},
		{
			ID:            2,
			Name:          "Lakshmi Devi",
			Language:      "kn",
			Rating:        4.8,
			TotalRatings:  203,
			TrustBadge:    BadgeTop,
			Items:         []string{"Rice", "Wheat", "Pulses"},
			FeedbackStats: models.FeedbackStats{FairPrice: 98, GoodQuality: 96, HonestDealing: 99},
		},
		{
			ID:            3,
			Name:          "Murugan",
			Language:      "ta",
			Rating:        3.9,
			TotalRatings:  45,
			TrustBadge:    BadgeNew,
			Items:         []string{"Banana", "Coconut", "Mango"},
			FeedbackStats: models.FeedbackStats{FairPrice: 78, GoodQuality: 82, HonestDealing: 85},
		},
		{
			ID:            4,
			Name:          "Suresh Reddy",
			Language:      "te",
			Rating:        4.6,
			TotalRatings:  156,
			TrustBadge:    BadgeTrusted,
			Items:         []string{"Vegetables", "Fruits"},
			FeedbackStats: models.FeedbackStats{FairPrice: 93, GoodQuality: 94, HonestDealing: 96},
		},
	}
}
