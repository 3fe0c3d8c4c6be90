package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies the
// startup invariants: a known storage backend must be selected and its
// connection settings must be present. The process fails fast here rather
// than at first request.
//
// Returns nil if the configuration is valid, or a descriptive error
// otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Backend {
	case BackendPostgres:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: postgres backend selected but STORAGE_DB_DATABASE_URI is empty", ErrInvalidStorageConfigs)
		}
	case BackendSupabase:
		if cfg.Storage.Supabase.URL == "" || cfg.Storage.Supabase.Key == "" {
			return fmt.Errorf("%w: supabase backend selected but URL or key is empty", ErrInvalidStorageConfigs)
		}
	case BackendMongo:
		if cfg.Storage.Mongo.URI == "" || cfg.Storage.Mongo.Database == "" {
			return fmt.Errorf("%w: mongo backend selected but URI or database is empty", ErrInvalidStorageConfigs)
		}
	case "":
		return fmt.Errorf("%w: STORAGE_BACKEND is not set", ErrInvalidStorageConfigs)
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidStorageConfigs, cfg.Storage.Backend)
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.App.ResetTokenTTL <= 0 || cfg.App.MinPasswordLength <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.App.ResetLinkMode != ResetLinkModeDemo && cfg.App.ResetLinkMode != ResetLinkModeEmail {
		return fmt.Errorf("%w: unknown reset link mode %q", ErrInvalidAppConfigs, cfg.App.ResetLinkMode)
	}

	return nil
}
