package gacha

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"case-armory/internal/store"
)

var ErrEmptyDistribution = errors.New("empty_distribution")

// Drawer picks one weighted outcome from a case's drop table. The random
// source is injected so tests can seed it; each Draw is independent.
type Drawer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewDrawer(src rand.Source) *Drawer {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Drawer{rnd: rand.New(src)}
}

// Draw selects one drop with probability weight/totalWeight. Non-positive
// weights count as 1 rather than being rejected.
func (d *Drawer) Draw(drops []store.CaseDrop) (store.CaseDrop, error) {
	if len(drops) == 0 {
		return store.CaseDrop{}, ErrEmptyDistribution
	}
	cum := make([]int64, len(drops))
	var total int64
	for i, drop := range drops {
		w := drop.Weight
		if w < 1 {
			w = 1
		}
		total += w
		cum[i] = total
	}

	d.mu.Lock()
	pick := d.rnd.Int63n(total)
	d.mu.Unlock()

	for i, c := range cum {
		if pick < c {
			return drops[i], nil
		}
	}
	// Unreachable: cum[len-1] == total > pick.
	return drops[len(drops)-1], nil
}
