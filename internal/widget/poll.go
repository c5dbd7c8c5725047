package widget

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// ErrUnknownOption is returned when voting for an option the poll lacks.
var ErrUnknownOption = errors.New("unknown poll option")

// PollKey is the preference key holding the remembered vote.
const PollKey = "poll.vote"

// KV is the persistence a Poll needs; prefs.Store satisfies it.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// PollOption is one answer with its display percentage.
type PollOption struct {
	ID         int    `json:"id"`
	Label      string `json:"label"`
	Percentage int    `json:"percentage"`
}

// PollView is what the poll renders. Results are hidden until a vote exists.
type PollView struct {
	Options []PollOption `json:"options"`
	Voted   int          `json:"voted,omitempty"`
	Show    bool         `json:"show_results"`
	Footer  string       `json:"footer"`
}

// DefaultPollOptions is the weekly community poll.
var DefaultPollOptions = []PollOption{
	{ID: 1, Label: "More Cooking Hacks!", Percentage: 45},
	{ID: 2, Label: "Cleaning Routines", Percentage: 30},
	{ID: 3, Label: "Weekly Life Vlogs", Percentage: 25},
}

// Poll tracks a single-choice vote.
type Poll struct {
	mu      sync.Mutex
	options []PollOption
	vote    int
	kv      KV
}

// NewPoll creates a poll. kv may be nil to disable persistence.
func NewPoll(options []PollOption, kv KV) *Poll {
	return &Poll{options: options, kv: kv}
}

// RestorePoll creates a poll and reads the remembered vote back once.
// A stored value that no longer matches an option is ignored.
func RestorePoll(options []PollOption, kv KV) *Poll {
	p := NewPoll(options, kv)
	if kv == nil {
		return p
	}
	if raw, ok := kv.Get(PollKey); ok {
		if id, err := strconv.Atoi(raw); err == nil && p.has(id) {
			p.vote = id
		}
	}
	return p
}

// Vote selects option id. Voting for the current choice is a no-op and
// reports changed=false. The in-memory vote switches even when remembering
// it fails; that case returns changed=true together with the write error.
func (p *Poll) Vote(id int) (changed bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.has(id) {
		return false, fmt.Errorf("%w: %d", ErrUnknownOption, id)
	}
	if p.vote == id {
		return false, nil
	}
	p.vote = id
	if p.kv != nil {
		if err := p.kv.Set(PollKey, strconv.Itoa(id)); err != nil {
			return true, fmt.Errorf("remember vote: %w", err)
		}
	}
	return true, nil
}

// Voted returns the chosen option id, 0 when none.
func (p *Poll) Voted() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vote
}

// View returns the options with results shown only once a vote exists.
func (p *Poll) View() PollView {
	p.mu.Lock()
	defer p.mu.Unlock()

	v := PollView{Voted: p.vote, Show: p.vote != 0}
	v.Options = make([]PollOption, len(p.options))
	copy(v.Options, p.options)
	if v.Show {
		v.Footer = "Thanks for voting!"
	} else {
		v.Footer = "Select an option to see results"
		for i := range v.Options {
			v.Options[i].Percentage = 0
		}
	}
	return v
}

func (p *Poll) has(id int) bool {
	for _, o := range p.options {
		if o.ID == id {
			return true
		}
	}
	return false
}
