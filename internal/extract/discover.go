package extract

import (
	"context"
	"fmt"
	"sort"

	"appwrap/internal/logger"
	"appwrap/internal/model"
)

// Discover loads the registry once and returns its concrete, table-backed
// models sorted by name.
func Discover(ctx context.Context, registry model.Registry) ([]model.Descriptor, error) {
	if err := registry.Load(ctx); err != nil {
		return nil, fmt.Errorf("%w: load models: %w", ErrDiscovery, err)
	}
	all, err := registry.Descriptors()
	if err != nil {
		return nil, fmt.Errorf("%w: enumerate models: %w", ErrDiscovery, err)
	}

	seen := make(map[string]bool, len(all))
	models := make([]model.Descriptor, 0, len(all))
	for _, d := range all {
		name := d.Name()
		if name == "" {
			return nil, fmt.Errorf("%w: model without a name", ErrDiscovery)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: model %s registered twice", ErrDiscovery, name)
		}
		seen[name] = true

		if d.Abstract() {
			logger.Debug("skipping abstract model %s", name)
			continue
		}
		exists, err := d.TableExists()
		if err != nil {
			return nil, fmt.Errorf("%w: table check for %s: %w", ErrDiscovery, name, err)
		}
		if !exists {
			logger.Debug("skipping model %s: table %q does not exist", name, d.TableName())
			continue
		}
		models = append(models, d)
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].Name() < models[j].Name()
	})
	return models, nil
}
