package persist

import (
	"fmt"

	"github.com/jominki354/maulwurf/internal/config"
	"github.com/jominki354/maulwurf/internal/timeline"
)

// NewPersisterFromConfig creates a Persister based on the persistence config type.
func NewPersisterFromConfig(cfg config.PersistenceConfig) (timeline.Persister, error) {
	switch cfg.Type {
	case "filesystem", "":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("dir required for filesystem persistence")
		}
		return NewFileSystemPersister(cfg.Dir)
	case "memory":
		return NewMemoryPersister(), nil
	default:
		return nil, fmt.Errorf("unknown persistence type: %s", cfg.Type)
	}
}
