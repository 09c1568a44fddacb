package models

import (
	"time"
)

// FeedbackStats counts the quick-feedback tags a vendor has collected.
type FeedbackStats struct {
	FairPrice     int `json:"fairPrice"`
	GoodQuality   int `json:"goodQuality"`
	HonestDealing int `json:"honestDealing"`
}

// Vendor is a market seller with a running average rating
type Vendor struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Name          string        `json:"name" gorm:"not null"`
	Language      string        `json:"language" gorm:"size:8"`
	Rating        float64       `json:"rating"`
	TotalRatings  int           `json:"totalRatings"`
	TrustBadge    string        `json:"trustBadge" gorm:"size:16;default:'new'"`
	Items         []string      `json:"items" gorm:"serializer:json;type:text"`
	FeedbackStats FeedbackStats `json:"feedbackStats" gorm:"embedded;embeddedPrefix:feedback_"`
	CreatedAt     time.Time     `json:"-"`
	UpdatedAt     time.Time     `json:"-"`
}
