package catalog

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/trainhub/trainhub/internal/adapter/outbound/portal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "catalog.db"),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seed(t *testing.T, store *Store) {
	t.Helper()
	err := store.Replace(context.Background(),
		[]portal.Institution{
			{ID: 1, Name: "Alpha Academy", Address: "Seoul"},
			{ID: 2, Name: "Beta Institute", Address: "Busan"},
		},
		[]portal.Training{
			{ID: 10, Name: "Go Backend Bootcamp", InstitutionID: 1, InstitutionName: "Alpha Academy", NCSTypeDescription: "Software Development"},
			{ID: 11, Name: "Cloud Infrastructure", InstitutionID: 1, InstitutionName: "Alpha Academy", NCSTypeDescription: "Infrastructure"},
			{ID: 12, Name: "Data Analysis", InstitutionID: 2, InstitutionName: "Beta Institute", NCSTypeDescription: "Data"},
		})
	if err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
}

func TestReplaceAndList(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)

	institutions, err := store.Institutions(context.Background())
	if err != nil {
		t.Fatalf("Institutions failed: %v", err)
	}
	if len(institutions) != 2 || institutions[0].Name != "Alpha Academy" {
		t.Errorf("institutions = %+v", institutions)
	}

	trainings, err := store.Trainings(context.Background())
	if err != nil {
		t.Fatalf("Trainings failed: %v", err)
	}
	if len(trainings) != 3 {
		t.Errorf("got %d trainings, want 3", len(trainings))
	}
}

func TestReplaceSwapsSnapshot(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)

	err := store.Replace(context.Background(),
		[]portal.Institution{{ID: 3, Name: "Gamma School"}},
		[]portal.Training{{ID: 20, Name: "Welding", InstitutionID: 3}})
	if err != nil {
		t.Fatalf("second Replace failed: %v", err)
	}

	institutions, err := store.Institutions(context.Background())
	if err != nil {
		t.Fatalf("Institutions failed: %v", err)
	}
	if len(institutions) != 1 || institutions[0].Name != "Gamma School" {
		t.Errorf("old snapshot survived the refresh: %+v", institutions)
	}
}

func TestSearchTrainings(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)

	tests := []struct {
		keyword string
		want    int
	}{
		{"go backend", 1},
		{"alpha", 2}, // matches the institution name
		{"infrastructure", 1},
		{"nothing", 0},
		{"DATA", 1}, // case-insensitive
	}

	for _, tt := range tests {
		got, err := store.SearchTrainings(context.Background(), tt.keyword)
		if err != nil {
			t.Fatalf("SearchTrainings(%q) failed: %v", tt.keyword, err)
		}
		if len(got) != tt.want {
			t.Errorf("SearchTrainings(%q) = %d results, want %d", tt.keyword, len(got), tt.want)
		}
	}
}

func TestTrainingByID(t *testing.T) {
	store := newTestStore(t)
	seed(t, store)

	tr, err := store.Training(context.Background(), 12)
	if err != nil {
		t.Fatalf("Training failed: %v", err)
	}
	if tr.Name != "Data Analysis" {
		t.Errorf("training = %+v", tr)
	}

	if _, err := store.Training(context.Background(), 999); err == nil {
		t.Error("expected error for unknown training")
	}
}

func TestRefreshedAt(t *testing.T) {
	store := newTestStore(t)

	if _, ok, err := store.RefreshedAt(context.Background()); err != nil || ok {
		t.Fatalf("RefreshedAt before refresh = (%v, %v), want (false, nil)", ok, err)
	}

	seed(t, store)

	ts, ok, err := store.RefreshedAt(context.Background())
	if err != nil || !ok {
		t.Fatalf("RefreshedAt after refresh = (%v, %v)", ok, err)
	}
	if ts.IsZero() {
		t.Error("refresh time is zero")
	}
}
