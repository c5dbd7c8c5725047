package widget

import (
	"sync"
	"time"
)

// Toggle is an open/closed flag such as the mobile menu.
type Toggle struct {
	mu   sync.Mutex
	open bool
}

// Flip inverts the state and returns the new value.
func (t *Toggle) Flip() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.open = !t.open
	return t.open
}

func (t *Toggle) Close() {
	t.mu.Lock()
	t.open = false
	t.mu.Unlock()
}

func (t *Toggle) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

// Accordion keeps at most one item expanded; -1 means none.
type Accordion struct {
	mu       sync.Mutex
	expanded int
}

func NewAccordion() *Accordion { return &Accordion{expanded: -1} }

// Click expands item i, or collapses it if it is already expanded.
func (a *Accordion) Click(i int) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.expanded == i {
		a.expanded = -1
	} else {
		a.expanded = i
	}
	return a.expanded
}

func (a *Accordion) Expanded() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.expanded
}

// DefaultToastDuration is how long a "coming soon" notice stays visible.
const DefaultToastDuration = 2 * time.Second

// Toast is a single message that expires after a fixed duration.
type Toast struct {
	mu       sync.Mutex
	message  string
	expires  time.Time
	duration time.Duration
	now      func() time.Time
}

func NewToast(d time.Duration) *Toast {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return &Toast{duration: d, now: time.Now}
}

// Show replaces any current message and restarts the timer.
func (t *Toast) Show(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.message = msg
	t.expires = t.now().Add(t.duration)
}

// Current returns the visible message, or "" once it has expired.
func (t *Toast) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.message == "" || !t.now().Before(t.expires) {
		return ""
	}
	return t.message
}

// NavItem is one sidebar entry.
type NavItem struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	Icon       string `json:"icon"`
	ComingSoon bool   `json:"coming_soon,omitempty"`
}

// DefaultNav lists the dashboard sidebar entries.
var DefaultNav = []NavItem{
	{ID: "dashboard", Label: "Dashboard", Icon: "📊"},
	{ID: "watchlist", Label: "Watchlist", Icon: "👁️", ComingSoon: true},
	{ID: "history", Label: "History", Icon: "📈", ComingSoon: true},
	{ID: "settings", Label: "Settings", Icon: "⚙️", ComingSoon: true},
}

// Sidebar combines the menu toggle, the active entry and the toast.
type Sidebar struct {
	Menu   Toggle
	Toast  *Toast
	items  []NavItem
	mu     sync.Mutex
	active string
}

func NewSidebar(items []NavItem, toast *Toast) *Sidebar {
	if toast == nil {
		toast = NewToast(0)
	}
	active := ""
	if len(items) > 0 {
		active = items[0].ID
	}
	return &Sidebar{Toast: toast, items: items, active: active}
}

// Navigate activates id and closes the menu. Coming-soon entries only
// show the toast and leave the active entry unchanged.
func (s *Sidebar) Navigate(id string) bool {
	for _, it := range s.items {
		if it.ID != id {
			continue
		}
		if it.ComingSoon {
			s.Toast.Show(it.Label + " coming soon")
			return false
		}
		s.mu.Lock()
		s.active = id
		s.mu.Unlock()
		s.Menu.Close()
		return true
	}
	return false
}

func (s *Sidebar) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
