package history

import (
	"context"

	"github.com/jasidev/trendpost/lib/config"
	"github.com/jasidev/trendpost/lib/logger"
	"github.com/jasidev/trendpost/lib/types"
)

// Store is the append-only record of posted topics. Load reads the
// whole record; Append adds exactly one entry after a successful post.
// Nothing is ever mutated or deleted.
type Store interface {
	Load(ctx context.Context) ([]types.HistoryEntry, error)
	Append(ctx context.Context, entry types.HistoryEntry) error
}

// Open picks the backend: Postgres when DATABASE_URL is set, the
// local JSONL file otherwise.
func Open(cfg *config.Config, log *logger.Logger) Store {
	if cfg.DatabaseURL != "" {
		return NewPGStore(cfg.DatabaseURL)
	}
	return NewFileStore(cfg.HistoryFile, log)
}
