package db

import (
	"path/filepath"
	"testing"

	"aptprice/pricing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndQueryEstimates(t *testing.T) {
	store := openTestStore(t)

	listing := pricing.DefaultListing()
	for i, raw := range []float64{2.5, 3.1} {
		listing.Area = 40 + i*10
		est := pricing.Estimate{Listing: listing, Raw: raw, Price: pricing.ToPrice(raw), Display: pricing.FormatPrice(raw)}
		if err := store.SaveEstimate("req-"+string(rune('a'+i)), est); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	records, err := store.RecentEstimates(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].RequestID != "req-b" || records[0].Price != 3_100_000 || records[0].Area != 50 {
		t.Fatalf("unexpected newest record: %+v", records[0])
	}
	if records[1].District != "District 1" {
		t.Fatalf("unexpected district %q", records[1].District)
	}
}

func TestSaveEstimateUninitialized(t *testing.T) {
	var store *Store
	if err := store.SaveEstimate("x", pricing.Estimate{}); err == nil {
		t.Fatal("expected error for nil store")
	}
	if _, err := store.RecentEstimates(1); err == nil {
		t.Fatal("expected error for nil store")
	}
}
