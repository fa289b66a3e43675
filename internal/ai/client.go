// Package ai talks to an external chat-completion service. The game only
// ever needs one round trip: a short user message plus a long instruction
// preamble in, free text out.
package ai

import (
	"context"

	"github.com/GabrielSalem-creator/clue-craft-conversation/internal/errors"
)

// ErrUnavailable signals a transport-level or HTTP failure. Callers are
// responsible for their own fallback; the client never fabricates a
// successful-looking reply on this path.
var ErrUnavailable = errors.NewSentinel("ai service unavailable")

// missingReplyPlaceholder is returned when the service responds with a
// success status but no usable text. Payload-shape surprises are tolerated,
// transport failures are not.
const missingReplyPlaceholder = "I couldn't generate a response. Please try again."

// Client sends a single user message together with an instruction preamble
// and returns the raw reply text. No streaming, no retries.
type Client interface {
	Send(ctx context.Context, userMessage, preamble string) (string, error)
}
