package badger

import (
	"context"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vibecheck/internal/interfaces"
	"github.com/ternarybob/vibecheck/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	tmpDir := t.TempDir()

	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store}
}

func TestVenueStorageRoundTrip(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewVenueStorage(db, logger)

	ctx := context.Background()

	venue := &models.Venue{
		ID:         "venue-1",
		Name:       "The Velvet Room",
		Rating:     4.5,
		Price:      "$$",
		Categories: models.CategoryList{"Cocktail Bars"},
	}
	if err := storage.Put(ctx, venue); err != nil {
		t.Fatalf("Failed to save venue: %v", err)
	}

	record, err := storage.Get(ctx, "venue-1")
	if err != nil {
		t.Fatalf("Failed to get venue: %v", err)
	}
	if record.Venue.Name != "The Velvet Room" {
		t.Errorf("Expected name 'The Velvet Room', got '%s'", record.Venue.Name)
	}
	if record.CachedAt.IsZero() {
		t.Error("Expected CachedAt to be stamped")
	}
}

func TestVenueStorageGetMissing(t *testing.T) {
	db := newTestDB(t)
	storage := NewVenueStorage(db, arbor.NewLogger())

	_, err := storage.Get(context.Background(), "no-such-venue")
	if err != interfaces.ErrNotCached {
		t.Errorf("Expected ErrNotCached, got %v", err)
	}
}

func TestVenueStoragePutRequiresID(t *testing.T) {
	db := newTestDB(t)
	storage := NewVenueStorage(db, arbor.NewLogger())

	if err := storage.Put(context.Background(), &models.Venue{Name: "No ID"}); err == nil {
		t.Error("Expected error for venue without ID")
	}
}

func TestVenueStoragePutOverwrites(t *testing.T) {
	db := newTestDB(t)
	storage := NewVenueStorage(db, arbor.NewLogger())
	ctx := context.Background()

	if err := storage.Put(ctx, &models.Venue{ID: "venue-1", Name: "Old Name"}); err != nil {
		t.Fatal(err)
	}
	if err := storage.Put(ctx, &models.Venue{ID: "venue-1", Name: "New Name"}); err != nil {
		t.Fatal(err)
	}

	record, err := storage.Get(ctx, "venue-1")
	if err != nil {
		t.Fatal(err)
	}
	if record.Venue.Name != "New Name" {
		t.Errorf("Expected overwritten name 'New Name', got '%s'", record.Venue.Name)
	}
}

func TestVenueStorageSweep(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewVenueStorage(db, logger)
	ctx := context.Background()

	// One stale record inserted directly with an old timestamp, one fresh
	stale := &interfaces.VenueRecord{
		ID:       "stale-venue",
		Venue:    models.Venue{ID: "stale-venue", Name: "Stale"},
		CachedAt: time.Now().Add(-48 * time.Hour),
	}
	if err := db.Store().Upsert(stale.ID, stale); err != nil {
		t.Fatal(err)
	}
	if err := storage.Put(ctx, &models.Venue{ID: "fresh-venue", Name: "Fresh"}); err != nil {
		t.Fatal(err)
	}

	removed, err := storage.Sweep(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 removed record, got %d", removed)
	}

	if _, err := storage.Get(ctx, "stale-venue"); err != interfaces.ErrNotCached {
		t.Errorf("Expected stale record gone, got %v", err)
	}
	if _, err := storage.Get(ctx, "fresh-venue"); err != nil {
		t.Errorf("Expected fresh record kept, got %v", err)
	}
}

func TestVibeStorageRoundTripAndSweep(t *testing.T) {
	db := newTestDB(t)
	logger := arbor.NewLogger()
	storage := NewVibeStorage(db, logger)
	ctx := context.Background()

	analysis := &models.VibeProfile{
		VenueID:     "venue-1",
		PrimaryVibe: "intimate",
		VibeKeywords: []string{
			"candlelit", "quiet",
		},
		Provenance: models.ProvenanceGenerated,
	}
	if err := storage.Put(ctx, analysis); err != nil {
		t.Fatalf("Failed to save analysis: %v", err)
	}

	record, err := storage.Get(ctx, "venue-1")
	if err != nil {
		t.Fatalf("Failed to get analysis: %v", err)
	}
	if record.Analysis.PrimaryVibe != "intimate" {
		t.Errorf("Expected primary vibe 'intimate', got '%s'", record.Analysis.PrimaryVibe)
	}

	// Nothing is old enough to sweep
	removed, err := storage.Sweep(ctx, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 0 {
		t.Errorf("Expected 0 removed records, got %d", removed)
	}
}
