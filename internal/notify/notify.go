// Package notify queues per-viewer toast notifications until the next page render.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// MsgUnauthorized is shown to non-admins turned away from the user management page.
	MsgUnauthorized = "Accès non autorisé"
	// MsgRoleUpdated is shown after a successful role change.
	MsgRoleUpdated = "Rôle modifié avec succès"
	// MsgRoleUpdateFailed is shown when a role change fails without a message of its own.
	MsgRoleUpdateFailed = "Erreur lors de la modification du rôle"

	flashKeyPrefix = "flash:"
	flashTTL       = 10 * time.Minute
)

// Kind is the tone of a notification.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Flash is a single pending notification.
type Flash struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Notifier shows success and error messages to a viewer.
type Notifier interface {
	Success(ctx context.Context, viewerID, message string) error
	Error(ctx context.Context, viewerID, message string) error
}

// Backend holds one list of encoded notifications per key. Push and PopAll must
// each be atomic so concurrent writers and readers never lose an entry.
// cache.Client and query.MemoryStore satisfy it.
type Backend interface {
	Push(ctx context.Context, key string, value []byte, ttl time.Duration) error
	PopAll(ctx context.Context, key string) ([][]byte, error)
}

// FlashStore keeps pending notifications per viewer until they are drained.
type FlashStore struct {
	backend Backend
}

var _ Notifier = (*FlashStore)(nil)

// NewFlashStore creates a new flash store.
func NewFlashStore(backend Backend) *FlashStore {
	return &FlashStore{backend: backend}
}

// Success queues a success notification.
func (s *FlashStore) Success(ctx context.Context, viewerID, message string) error {
	return s.push(ctx, viewerID, Flash{Kind: KindSuccess, Message: message})
}

// Error queues an error notification.
func (s *FlashStore) Error(ctx context.Context, viewerID, message string) error {
	return s.push(ctx, viewerID, Flash{Kind: KindError, Message: message})
}

// Drain returns the viewer's pending notifications, oldest first, and clears them.
func (s *FlashStore) Drain(ctx context.Context, viewerID string) ([]Flash, error) {
	values, err := s.backend.PopAll(ctx, flashKeyPrefix+viewerID)
	if err != nil {
		return nil, fmt.Errorf("drain flashes: %w", err)
	}
	flashes := make([]Flash, 0, len(values))
	for _, v := range values {
		var f Flash
		if err := json.Unmarshal(v, &f); err != nil {
			// corrupt entries are skipped
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

func (s *FlashStore) push(ctx context.Context, viewerID string, f Flash) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	if err := s.backend.Push(ctx, flashKeyPrefix+viewerID, payload, flashTTL); err != nil {
		return fmt.Errorf("queue flash: %w", err)
	}
	return nil
}

// ErrorMessage returns err's message, or fallback when there is none.
func ErrorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
