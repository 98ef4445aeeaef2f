package gacha

import (
	"math"
	"math/rand"
	"testing"

	"case-armory/internal/store"
)

func drop(id string, value, weight int64) store.CaseDrop {
	return store.CaseDrop{Item: store.Item{ID: id, Value: value}, Weight: weight}
}

func TestDrawEmptyDistribution(t *testing.T) {
	d := NewDrawer(rand.NewSource(1))
	if _, err := d.Draw(nil); err != ErrEmptyDistribution {
		t.Fatalf("expected ErrEmptyDistribution, got %v", err)
	}
	if _, err := d.Draw([]store.CaseDrop{}); err != ErrEmptyDistribution {
		t.Fatalf("expected ErrEmptyDistribution, got %v", err)
	}
}

func TestDrawSingleOutcome(t *testing.T) {
	d := NewDrawer(rand.NewSource(1))
	only := drop("a", 100, 7)
	for i := 0; i < 50; i++ {
		got, err := d.Draw([]store.CaseDrop{only})
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		if got.Item.ID != "a" {
			t.Fatalf("expected item a, got %s", got.Item.ID)
		}
	}
}

func TestDrawClampsNonPositiveWeights(t *testing.T) {
	// Zero and negative weights count as 1, so every drop stays reachable.
	d := NewDrawer(rand.NewSource(42))
	drops := []store.CaseDrop{
		drop("a", 1, 0),
		drop("b", 1, -5),
		drop("c", 1, 1),
	}
	seen := map[string]int{}
	for i := 0; i < 3000; i++ {
		got, err := d.Draw(drops)
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		seen[got.Item.ID]++
	}
	for _, id := range []string{"a", "b", "c"} {
		if seen[id] == 0 {
			t.Fatalf("drop %s never drawn: %v", id, seen)
		}
	}
}

func TestDrawConvergesToWeights(t *testing.T) {
	d := NewDrawer(rand.NewSource(7))
	drops := []store.CaseDrop{
		drop("common", 200, 40),
		drop("uncommon", 700, 25),
		drop("rare", 1500, 30),
		drop("epic", 6000, 12),
		drop("legendary", 25000, 1),
	}
	var total int64
	for _, dr := range drops {
		total += dr.Weight
	}

	const n = 200000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		got, err := d.Draw(drops)
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		counts[got.Item.ID]++
	}

	for _, dr := range drops {
		want := float64(dr.Weight) / float64(total)
		got := float64(counts[dr.Item.ID]) / float64(n)
		if math.Abs(got-want) > 0.01 {
			t.Errorf("item %s: frequency %.4f, want %.4f ±0.01", dr.Item.ID, got, want)
		}
	}
}

func TestDrawDoesNotMutateInput(t *testing.T) {
	d := NewDrawer(rand.NewSource(3))
	drops := []store.CaseDrop{drop("a", 1, 0), drop("b", 1, 2)}
	if _, err := d.Draw(drops); err != nil {
		t.Fatalf("draw: %v", err)
	}
	if drops[0].Weight != 0 || drops[1].Weight != 2 {
		t.Fatalf("input weights mutated: %+v", drops)
	}
}
