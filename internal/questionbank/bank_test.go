package questionbank

import (
	"errors"
	"testing"

	"github.com/nexosr/career-engine/internal/apperr"
	"github.com/nexosr/career-engine/internal/model"
)

func TestSelectReturnsDistinctCatalogItems(t *testing.T) {
	bank := NewSeeded(42)

	for _, tt := range bank.Types() {
		t.Run(string(tt), func(t *testing.T) {
			items, err := bank.Select(tt, DefaultCount)
			if err != nil {
				t.Fatalf("Select: %v", err)
			}
			if len(items) != DefaultCount {
				t.Fatalf("got %d items, want %d", len(items), DefaultCount)
			}

			known := make(map[int]model.Item)
			for _, it := range catalogs[tt] {
				known[it.ID] = it
			}

			seen := make(map[int]bool)
			for _, it := range items {
				if seen[it.ID] {
					t.Errorf("duplicate item id %d", it.ID)
				}
				seen[it.ID] = true

				ref, ok := known[it.ID]
				if !ok || ref.Prompt != it.Prompt {
					t.Errorf("item %d is not from the %s catalog", it.ID, tt)
				}
				if tt.Objective() != (it.CorrectIndex != nil) {
					t.Errorf("item %d: correct index presence mismatch for %s", it.ID, tt)
				}
			}
		})
	}
}

func TestSelectUnknownType(t *testing.T) {
	_, err := NewSeeded(1).Select("astrology", DefaultCount)
	if !errors.Is(err, apperr.ErrUnknownTestType) {
		t.Fatalf("expected ErrUnknownTestType, got %v", err)
	}
}

func TestSelectTooMany(t *testing.T) {
	bank := NewSeeded(1)
	if _, err := bank.Select(model.TestTypeAptitude, bank.Size(model.TestTypeAptitude)+1); err == nil {
		t.Fatal("expected error when asking for more items than the catalog holds")
	}
}

func TestSelectIsReproducibleForSeed(t *testing.T) {
	a, _ := NewSeeded(7).Select(model.TestTypePersonality, 5)
	b, _ := NewSeeded(7).Select(model.TestTypePersonality, 5)

	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("position %d: %d != %d", i, a[i].ID, b[i].ID)
		}
	}
}

func TestSelectReturnsCopies(t *testing.T) {
	bank := NewSeeded(3)
	items, _ := bank.Select(model.TestTypeAptitude, DefaultCount)

	items[0].Options[0] = "tampered"
	*items[0].CorrectIndex = 99

	for _, it := range catalogs[model.TestTypeAptitude] {
		if it.Options[0] == "tampered" || *it.CorrectIndex == 99 {
			t.Fatalf("catalog item %d was mutated through a selected copy", it.ID)
		}
	}
}

func TestCatalogsHoldEnoughItems(t *testing.T) {
	for _, tt := range model.TestTypes {
		if n := len(catalogs[tt]); n < DefaultCount {
			t.Errorf("%s catalog has %d items, need at least %d", tt, n, DefaultCount)
		}
	}
}
