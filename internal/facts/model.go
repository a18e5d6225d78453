package facts

import (
	"fmt"
	"time"
)

// Kind distinguishes durable facts from situational tweaks.
type Kind string

const (
	KindFact  Kind = "fact"
	KindTweak Kind = "tweak"
)

func (k Kind) table() (string, error) {
	switch k {
	case KindFact:
		return "facts", nil
	case KindTweak:
		return "tweaks", nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidInput, string(k))
	}
}

// Item is a single fact or tweak.
type Item struct {
	ID        string
	Kind      Kind
	Text      string
	CreatedAt time.Time
}
