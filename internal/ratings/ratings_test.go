package ratings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mandi-mitra/internal/database"
	"mandi-mitra/internal/models"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		rating    float64
		total     int
		sub       Submission
		want      float64
		fairPrice int
	}{
		{"five stars", 4.5, 127, Submission{Stars: 5, Feedback: []string{FeedbackFairPrice}}, 4.5, 96},
		{"one star drags new vendor", 3.9, 45, Submission{Stars: 1}, 3.8, 95},
		{"first rating", 0, 0, Submission{Stars: 4}, 4, 95},
		{"duplicate tags count once", 4.8, 203, Submission{Stars: 5, Feedback: []string{FeedbackFairPrice, FeedbackFairPrice, "rude"}}, 4.8, 96},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := models.Vendor{Rating: tt.rating, TotalRatings: tt.total, FeedbackStats: models.FeedbackStats{FairPrice: 95}}
			if err := Apply(&v, tt.sub); err != nil {
				t.Fatal(err)
			}
			if v.Rating != tt.want || v.TotalRatings != tt.total+1 {
				t.Fatalf("got rating %v total %d", v.Rating, v.TotalRatings)
			}
			if v.FeedbackStats.FairPrice != tt.fairPrice {
				t.Fatalf("fairPrice %d, want %d", v.FeedbackStats.FairPrice, tt.fairPrice)
			}
		})
	}
}

func TestApplyRejectsStars(t *testing.T) {
	for _, stars := range []int{0, 6, -1} {
		v := models.Vendor{Rating: 4, TotalRatings: 10}
		if err := Apply(&v, Submission{Stars: stars}); !errors.Is(err, ErrInvalidStars) {
			t.Errorf("stars %d: err %v", stars, err)
		}
		if v.TotalRatings != 10 {
			t.Errorf("stars %d mutated vendor", stars)
		}
	}
}

func TestServiceWithMemoryStore(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(SeedVendors()))

	vendors, err := svc.Vendors(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(vendors) != 4 || vendors[0].Name != "Ravi Kumar" || vendors[3].Name != "Suresh Reddy" {
		t.Fatalf("unexpected vendors %+v", vendors)
	}

	v, err := svc.Submit(ctx, 3, Submission{Stars: 5, Feedback: []string{FeedbackGoodQuality, FeedbackHonestDealing}})
	if err != nil {
		t.Fatal(err)
	}
	if v.TotalRatings != 46 || v.Rating != 3.9 || v.FeedbackStats.GoodQuality != 83 || v.FeedbackStats.HonestDealing != 86 {
		t.Fatalf("unexpected vendor after submit %+v", v)
	}

	got, _ := svc.Vendor(ctx, 3)
	if got.TotalRatings != 46 {
		t.Fatal("update not persisted")
	}

	if _, err := svc.Submit(ctx, 99, Submission{Stars: 3}); !errors.Is(err, ErrVendorNotFound) {
		t.Fatalf("expected ErrVendorNotFound, got %v", err)
	}
	if _, err := svc.Submit(ctx, 1, Submission{Stars: 9}); !errors.Is(err, ErrInvalidStars) {
		t.Fatalf("expected ErrInvalidStars, got %v", err)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(SeedVendors())
	v, _ := s.Get(ctx, 1)
	v.Items[0] = "Changed"
	again, _ := s.Get(ctx, 1)
	if again.Items[0] != "Tomato" {
		t.Fatal("store leaked internal slice")
	}
}

func TestMemoryStoreConcurrentSubmits(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore(SeedVendors()))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(ctx, 2, Submission{Stars: 5}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	v, _ := svc.Vendor(ctx, 2)
	if v.TotalRatings != 253 {
		t.Fatalf("total %d, want 253", v.TotalRatings)
	}
}

func TestBadgeFor(t *testing.T) {
	if b := BadgeFor(BadgeTop, "kn"); b.Text != "ಉನ್ನತ ರೇಟೆಡ್" || b.Color != "#2196f3" {
		t.Errorf("unexpected top badge %+v", b)
	}
	if b := BadgeFor("gold", "en"); b.Key != BadgeNew || b.Text != "New Vendor" || b.Color != "#ff9800" {
		t.Errorf("unknown badge should render as new, got %+v", b)
	}
	if b := BadgeFor(BadgeTrusted, "fr"); b.Text != "Trusted Vendor" {
		t.Errorf("unknown language should fall back to English, got %+v", b)
	}
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "vendors.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func testGormStore(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	store := NewGormStore(db)
	if err := store.Seed(ctx, SeedVendors()); err != nil {
		t.Fatal(err)
	}
	if err := store.Seed(ctx, SeedVendors()); err != nil {
		t.Fatal(err)
	}
	vendors, err := store.List(ctx)
	if err != nil || len(vendors) != 4 {
		t.Fatalf("list: %d vendors, %v", len(vendors), err)
	}
	if vendors[0].ID != 1 || len(vendors[1].Items) != 3 || vendors[1].FeedbackStats.FairPrice != 98 {
		t.Fatalf("unexpected rows %+v", vendors[:2])
	}

	v, err := NewService(store).Submit(ctx, 1, Submission{Stars: 1, Feedback: []string{FeedbackHonestDealing}})
	if err != nil {
		t.Fatal(err)
	}
	if v.TotalRatings != 128 || v.Rating != 4.5 || v.FeedbackStats.HonestDealing != 99 {
		t.Fatalf("unexpected vendor %+v", v)
	}
	stored, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stored.TotalRatings != 128 || stored.FeedbackStats.HonestDealing != 99 || len(stored.Items) != 3 {
		t.Fatalf("update not persisted: %+v", stored)
	}

	if _, err := store.Get(ctx, 404); !errors.Is(err, ErrVendorNotFound) {
		t.Fatalf("expected ErrVendorNotFound, got %v", err)
	}
	if _, err := store.Update(ctx, 404, func(*models.Vendor) error { return nil }); !errors.Is(err, ErrVendorNotFound) {
		t.Fatalf("expected ErrVendorNotFound from update, got %v", err)
	}

	failed := errors.New("rejected")
	if _, err := store.Update(ctx, 2, func(v *models.Vendor) error {
		v.TotalRatings = 0
		return failed
	}); !errors.Is(err, failed) {
		t.Fatalf("expected callback error, got %v", err)
	}
	before, err := store.Get(ctx, 2)
	if err != nil || before.TotalRatings == 0 {
		t.Fatalf("failed update was persisted: %+v, %v", before, err)
	}

	svc := NewService(store)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(ctx, 2, Submission{Stars: 5, Feedback: []string{FeedbackGoodQuality}}); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	after, err := store.Get(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if after.TotalRatings != before.TotalRatings+8 || after.FeedbackStats.GoodQuality != before.FeedbackStats.GoodQuality+8 {
		t.Fatalf("lost updates: before %+v after %+v", before, after)
	}
}

func TestGormStoreSQLite(t *testing.T) {
	testGormStore(t, openSQLite(t))
}

func TestGormStoreMySQL(t *testing.T) {
	dsn := os.Getenv("MANDI_TEST_DSN")
	if dsn == "" {
		t.Skip("MANDI_TEST_DSN not set")
	}
	db, err := database.Initialize(dsn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close(db) })
	if err := db.Exec("DELETE FROM vendors").Error; err != nil {
		t.Fatal(err)
	}
	testGormStore(t, db)
}
