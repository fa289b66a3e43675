// Package toast is the fire-and-forget side channel for transient
// user-visible messages.
package toast

import "sync"

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Toast is a transient notification shown to the player.
type Toast struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Success constructs a success-level toast.
func Success(message string) Toast {
	return Toast{Level: LevelSuccess, Message: message}
}

// Error constructs an error-level toast.
func Error(message string) Toast {
	return Toast{Level: LevelError, Message: message}
}

// Notifier receives toasts. Implementations must not block the caller.
type Notifier interface {
	Notify(t Toast)
}

// Buffer collects toasts until the next state snapshot drains them to the UI.
type Buffer struct {
	mu     sync.Mutex
	toasts []Toast
}

// Notify implements [Notifier].
func (b *Buffer) Notify(t Toast) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.toasts = append(b.toasts, t)
}

// Drain returns the buffered toasts and empties the buffer.
func (b *Buffer) Drain() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	drained := b.toasts
	b.toasts = nil
	return drained
}
