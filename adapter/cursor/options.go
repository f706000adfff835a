package cursor

import "github.com/docquery-go/docquery/domain"

// Option configures the Cursor in [NewCursor].
type Option func(*Cursor)

// WithDecoder sets the decoder used by Scan and All.
func WithDecoder(dec domain.Decoder) Option {
	return func(c *Cursor) { c.dec = dec }
}
