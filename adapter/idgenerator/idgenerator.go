// Package idgenerator creates record identifiers for inserts that carry
// none.
package idgenerator

import (
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/docquery-go/docquery/domain"
)

// IDGenerator implements [domain.IDGenerator].
type IDGenerator struct {
	reader io.Reader
}

// NewIDGenerator returns a new implementation of [domain.IDGenerator].
func NewIDGenerator(options ...Option) domain.IDGenerator {
	g := &IDGenerator{}
	for _, option := range options {
		option(g)
	}
	if g.reader == nil {
		g.reader = rand.Reader
	}
	return g
}

// GenerateID implements [domain.IDGenerator]. Random bytes are oversampled so
// dropping the non-alphanumeric base64 characters still leaves enough output.
func (g *IDGenerator) GenerateID(length int) (string, error) {
	buf := make([]byte, max(8, length*2))
	if _, err := g.reader.Read(buf); err != nil {
		return "", err
	}
	enc := base64.StdEncoding.EncodeToString(buf)

	res := make([]byte, length)
	w := 0
	for _, b := range []byte(enc) {
		switch b {
		case '+', '/', '=':
		default:
			res[w] = b
			w++
		}
		if w == length {
			break
		}
	}
	return string(res), nil
}
