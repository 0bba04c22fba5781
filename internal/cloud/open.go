package cloud

import (
	"context"
	"fmt"

	"rentacar-backend/internal/config"
)

// Open builds the store selected by cfg.Type. It returns nil, nil when
// cloud sync is disabled.
func Open(ctx context.Context, cfg config.CloudConfig) (Store, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "memory":
		return NewMemoryStore(), nil
	case "firestore":
		fs, err := NewFirestoreStore(ctx, cfg.ProjectID, cfg.CredentialsFile, cfg.CollectionPrefix)
		if err != nil {
			return nil, err
		}
		return fs, nil
	default:
		return nil, fmt.Errorf("unsupported cloud type: %s", cfg.Type)
	}
}
