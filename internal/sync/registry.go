package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/crohrer/booksync/internal/logger"
	"github.com/crohrer/booksync/models"
)

// Handler applies one raw remote record of a single table to the local store.
type Handler interface {
	Apply(ctx context.Context, local LocalStore, record json.RawMessage) error
}

// Registry routes change events to the handler registered for their table.
// Adding a synchronized entity means adding a handler here.
type Registry struct {
	handlers map[string]Handler
	log      *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		handlers: map[string]Handler{
			models.TableAutor: authorHandler{},
			models.TableBuch:  bookHandler{},
		},
		log: log,
	}
}

// Dispatch applies one change event. Physical DELETE events carry no usable
// payload under the soft-delete scheme and are acknowledged as a logged
// no-op. Events for tables nobody registered are skipped the same way.
func (r *Registry) Dispatch(ctx context.Context, local LocalStore, ev models.ChangeEvent) error {
	if ev.Op == models.OpDelete {
		r.log.Debug().Str("table", ev.Table).Msg("physical delete event ignored")
		return nil
	}

	h, ok := r.handlers[ev.Table]
	if !ok {
		r.log.Warn().Str("table", ev.Table).Msg("change event for unknown table skipped")
		return nil
	}

	return h.Apply(ctx, local, ev.Record)
}

type authorHandler struct{}

func (authorHandler) Apply(ctx context.Context, local LocalStore, record json.RawMessage) error {
	var rec models.AuthorRemote
	if err := json.Unmarshal(record, &rec); err != nil {
		return fmt.Errorf("decode author event: %w", err)
	}

	if rec.IsDeleted {
		return local.SoftDeleteAuthorByID(ctx, rec)
	}
	return local.ApplyAuthor(ctx, rec)
}

type bookHandler struct{}

func (bookHandler) Apply(ctx context.Context, local LocalStore, record json.RawMessage) error {
	var rec models.BookRemote
	if err := json.Unmarshal(record, &rec); err != nil {
		return fmt.Errorf("decode book event: %w", err)
	}

	if rec.IsDeleted {
		return local.SoftDeleteBookByID(ctx, rec)
	}
	return local.ApplyBook(ctx, rec)
}
