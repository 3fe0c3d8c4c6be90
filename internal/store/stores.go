package store

import (
	"context"
	"fmt"

	"fitcoach/internal/config"
	"fitcoach/internal/logger"
)

// NewStore constructs the [Store] implementation selected by the storage
// configuration. The returned store is connected and ready for use.
func NewStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (Store, error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.DB, log)
	case config.BackendSupabase:
		return NewSupabaseStore(cfg.Supabase, log), nil
	case config.BackendMongo:
		return NewMongoStore(ctx, cfg.Mongo, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
}
