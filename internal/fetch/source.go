// Package fetch implements the ordered fallback chain used to load raw data
// resources: network, cached copy, local file, built-in sample. Providers
// are tried in sequence; the first success wins and each failure is logged
// but never fatal.
package fetch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chaofengc/scholar/internal/cache"
)

// Source is one provider in a fallback chain.
type Source interface {
	// Name identifies the provider in logs and build output.
	Name() string
	// Fetch returns the raw resource text.
	Fetch(ctx context.Context) (string, error)
}

// ErrAllSourcesFailed is returned when every provider in a chain fails.
var ErrAllSourcesFailed = errors.New("all data sources failed")

// Chain tries sources in order until one succeeds.
type Chain struct {
	sources []Source
	log     zerolog.Logger

	// When set, a successful network fetch refreshes this cache slot so the
	// next build can fall back to it.
	saveTo *cache.DB
	slot   string
}

// NewChain builds a chain over the given sources, in fallback order.
func NewChain(log zerolog.Logger, sources ...Source) *Chain {
	return &Chain{sources: sources, log: log}
}

// SaveNetworkResult makes the chain persist text served by the network
// source into the named cache slot.
func (c *Chain) SaveNetworkResult(db *cache.DB, slot string) *Chain {
	c.saveTo = db
	c.slot = slot
	return c
}

// Fetch returns the first provider's text along with the provider name that
// served it.
func (c *Chain) Fetch(ctx context.Context) (body, source string, err error) {
	for _, s := range c.sources {
		body, err := s.Fetch(ctx)
		if err != nil {
			c.log.Warn().Str("source", s.Name()).Err(err).Msg("data source failed, trying next")
			continue
		}

		if s.Name() == sourceNetwork && c.saveTo != nil {
			if err := c.saveTo.PutResource(c.slot, body); err != nil {
				c.log.Warn().Str("slot", c.slot).Err(err).Msg("caching fetched resource failed")
			}
		}

		return body, s.Name(), nil
	}

	return "", "", fmt.Errorf("%w (%d tried)", ErrAllSourcesFailed, len(c.sources))
}
