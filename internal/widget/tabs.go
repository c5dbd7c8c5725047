package widget

import "sync"

// TabAll shows every item regardless of category.
const TabAll = "all"

// Card is a filterable item.
type Card struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

// TabFilter tracks the active tab of a filterable list.
type TabFilter struct {
	mu     sync.RWMutex
	active string
}

func NewTabFilter() *TabFilter { return &TabFilter{active: TabAll} }

func (t *TabFilter) Active() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

// Select activates tab; an empty tab means TabAll.
func (t *TabFilter) Select(tab string) {
	if tab == "" {
		tab = TabAll
	}
	t.mu.Lock()
	t.active = tab
	t.mu.Unlock()
}

// Visible returns the cards shown under the active tab, preserving order.
func (t *TabFilter) Visible(cards []Card) []Card {
	active := t.Active()
	if active == TabAll {
		out := make([]Card, len(cards))
		copy(out, cards)
		return out
	}
	var out []Card
	for _, c := range cards {
		if c.Category == active {
			out = append(out, c)
		}
	}
	return out
}
