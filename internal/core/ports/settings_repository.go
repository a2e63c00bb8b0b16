package ports

import "context"

// SettingsRepository reads key/value configuration rows such as capacity overrides.
type SettingsRepository interface {
	// GetByPrefix returns every setting whose key starts with prefix.
	GetByPrefix(ctx context.Context, prefix string) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
}
