// Package cursor contains the default [domain.Cursor] implementation, an
// in-memory cursor over already-executed query results.
package cursor

import (
	"context"

	"github.com/google/uuid"

	"github.com/docquery-go/docquery/adapter/decoder"
	"github.com/docquery-go/docquery/domain"
	"github.com/docquery-go/docquery/pkg/ctxsync"
)

// Cursor implements [domain.Cursor].
type Cursor struct {
	id        string
	data      []domain.Document
	ctx       context.Context
	mu        *ctxsync.Mutex
	dec       domain.Decoder
	started   bool
	storedErr error
}

// NewCursor returns a new implementation of [domain.Cursor] over the given
// result set. The context bounds the cursor's whole lifetime.
func NewCursor(ctx context.Context, docs []domain.Document, options ...Option) (domain.Cursor, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	c := &Cursor{
		id:   uuid.NewString(),
		data: docs,
		ctx:  ctx,
		mu:   ctxsync.NewMutex(),
	}
	for _, option := range options {
		option(c)
	}
	if c.dec == nil {
		c.dec = decoder.NewDecoder()
	}
	return c, nil
}

// ID implements [domain.Cursor].
func (c *Cursor) ID() string {
	return c.id
}

// Next implements [domain.Cursor].
func (c *Cursor) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.data) == 0 {
		return false
	}
	if c.started {
		c.data = c.data[1:]
	}
	c.started = true
	return len(c.data) > 0
}

// Scan implements [domain.Cursor].
func (c *Cursor) Scan(ctx context.Context, target any) error {
	return c.locked(ctx, func() error {
		if !c.started {
			return domain.ErrScanBeforeNext
		}
		if len(c.data) == 0 {
			return domain.ErrCursorClosed
		}
		return c.dec.Decode(c.data[0], target)
	})
}

// All implements [domain.Cursor]. It drains the remaining documents into the
// target slice and closes the cursor.
func (c *Cursor) All(ctx context.Context, target any) error {
	return c.locked(ctx, func() error {
		items := make([]any, len(c.data))
		for n, doc := range c.data {
			items[n] = doc
		}
		c.data = nil
		return c.dec.Decode(items, target)
	})
}

// Err implements [domain.Cursor].
func (c *Cursor) Err() error {
	return c.storedErr
}

// Close implements [domain.Cursor].
func (c *Cursor) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.data) > 0 {
		c.storedErr = domain.ErrCursorClosed
	}
	c.data = nil
	return nil
}

// locked runs fn holding the cursor mutex, giving up when either the call
// context or the cursor's lifetime context ends.
func (c *Cursor) locked(ctx context.Context, fn func() error) error {
	innerCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	go func() {
		select {
		case <-ctx.Done():
			cancel(context.Cause(ctx))
		case <-c.ctx.Done():
			cancel(context.Cause(c.ctx))
		case <-innerCtx.Done():
		}
	}()
	if err := c.mu.LockWithContext(innerCtx); err != nil {
		return err
	}
	defer c.mu.Unlock()
	if c.storedErr != nil {
		return c.storedErr
	}
	return fn()
}
