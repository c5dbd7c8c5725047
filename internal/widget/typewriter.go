package widget

import "time"

// Typewriter timings.
const (
	TypeDelay     = 120 * time.Millisecond
	DeleteDelay   = 60 * time.Millisecond
	HoldDelay     = 2200 * time.Millisecond
	NextWordDelay = 400 * time.Millisecond
)

// DefaultPhrases are cycled by the profile headline.
var DefaultPhrases = []string{
	"Mindset Coach",
	"Yoga Instructor",
	"Breathwork Guide",
	"Your Transformation Partner",
}

// Typewriter types and deletes phrases one character per step.
// It is not safe for concurrent use.
type Typewriter struct {
	phrases  []string
	phrase   int
	chars    int
	deleting bool
}

func NewTypewriter(phrases []string) *Typewriter {
	var kept []string
	for _, p := range phrases {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		kept = DefaultPhrases
	}
	return &Typewriter{phrases: kept}
}

// Step advances one character and returns the text to show and the delay
// before the next step.
func (t *Typewriter) Step() (string, time.Duration) {
	current := []rune(t.phrases[t.phrase])

	if t.deleting {
		t.chars--
	} else {
		t.chars++
	}
	text := string(current[:t.chars])

	delay := TypeDelay
	if t.deleting {
		delay = DeleteDelay
	}

	switch {
	case !t.deleting && t.chars == len(current):
		delay = HoldDelay
		t.deleting = true
	case t.deleting && t.chars == 0:
		t.deleting = false
		t.phrase = (t.phrase + 1) % len(t.phrases)
		delay = NextWordDelay
	}
	return text, delay
}
