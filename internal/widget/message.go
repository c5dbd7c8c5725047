package widget

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SendState is the lifecycle of the message form.
type SendState int

const (
	StateIdle    SendState = 0
	StateSending SendState = 1
	StateSent    SendState = 2
)

func (s SendState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateSent:
		return "sent"
	default:
		return "unknown"
	}
}

func (s SendState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

var (
	// ErrBusy is returned when sending while a send is in flight or done.
	ErrBusy = errors.New("message form is not idle")
	// ErrInvalidMessage is returned when a required field is blank.
	ErrInvalidMessage = errors.New("name, email and message are required")
)

// DefaultSendDelay stands in for the network round-trip.
const DefaultSendDelay = 1500 * time.Millisecond

// Message is the contact form payload.
type Message struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Body  string `json:"message"`
}

// Validate checks that every field is non-blank and the email has an @.
func (m Message) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Body) == "" ||
		!strings.Contains(m.Email, "@") {
		return ErrInvalidMessage
	}
	return nil
}

// MessageForm moves idle -> sending -> sent, with Reset back to idle.
type MessageForm struct {
	mu      sync.Mutex
	state   SendState
	receipt string
	delay   time.Duration
}

// NewMessageForm creates an idle form. A non-positive delay means DefaultSendDelay.
func NewMessageForm(delay time.Duration) *MessageForm {
	if delay <= 0 {
		delay = DefaultSendDelay
	}
	return &MessageForm{delay: delay}
}

// Send validates msg, waits the artificial delay and returns a receipt id.
// Cancelling ctx while sending reverts the form to idle.
func (f *MessageForm) Send(ctx context.Context, msg Message) (string, error) {
	if err := msg.Validate(); err != nil {
		return "", err
	}

	f.mu.Lock()
	if f.state != StateIdle {
		f.mu.Unlock()
		return "", ErrBusy
	}
	f.state = StateSending
	f.mu.Unlock()

	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		f.mu.Lock()
		f.state = StateIdle
		f.mu.Unlock()
		return "", ctx.Err()
	case <-timer.C:
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateSent
	f.receipt = uuid.NewString()
	return f.receipt, nil
}

// Reset returns the form to idle and forgets the receipt.
func (f *MessageForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSending {
		return
	}
	f.state = StateIdle
	f.receipt = ""
}

// State returns the current state and the receipt of the last sent message.
func (f *MessageForm) State() (SendState, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state, f.receipt
}
