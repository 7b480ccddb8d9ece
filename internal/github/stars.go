package github

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chaofengc/scholar/internal/cache"
)

// starsMaxAge is how long a cached star count is considered fresh.
const starsMaxAge = 24 * time.Hour

// fallbackStars is the hardcoded star table consulted when both the cache
// and the API are unavailable. Counts go stale, which is acceptable: a
// dated number beats an empty badge.
var fallbackStars = map[string]int{
	"chaofengc/IQA-PyTorch": 2300,
	"chaofengc/FeMaSR":      640,
	"chaofengc/PSFRGAN":     1060,
	"chaofengc/QuanTexSR":   320,
}

// Resolver resolves star counts for project cards. Resolution order: fresh
// cache row, API, stale cache row, fallback table, zero. It never returns
// an error; star lookups must not be able to fail a build.
type Resolver struct {
	client *Client
	db     *cache.DB
	log    zerolog.Logger
}

// NewResolver creates a star resolver. Both client and db may be nil, which
// disables the corresponding step.
func NewResolver(client *Client, db *cache.DB, log zerolog.Logger) *Resolver {
	return &Resolver{client: client, db: db, log: log}
}

// Stars returns the best-known star count for a repository reference
// (URL or owner/repo shorthand). Zero means unknown.
func (r *Resolver) Stars(ctx context.Context, repoInput string) int {
	repo, err := ParseRepo(repoInput)
	if err != nil {
		r.log.Warn().Str("repo", repoInput).Err(err).Msg("unparsable repository reference")
		return 0
	}

	if r.db != nil {
		if count, fetchedAt, err := r.db.GetStars(repo); err == nil && time.Since(fetchedAt) < starsMaxAge {
			return count
		}
	}

	if r.client != nil {
		count, err := r.client.FetchStars(ctx, repo)
		if err == nil {
			if r.db != nil {
				if err := r.db.PutStars(repo, count); err != nil {
					r.log.Warn().Str("repo", repo).Err(err).Msg("caching star count failed")
				}
			}
			return count
		}
		r.log.Warn().Str("repo", repo).Err(err).Msg("star fetch failed, falling back")
	}

	// Stale beats nothing.
	if r.db != nil {
		if count, _, err := r.db.GetStars(repo); err == nil {
			return count
		}
	}

	if count, ok := fallbackStars[repo]; ok {
		return count
	}
	return 0
}
