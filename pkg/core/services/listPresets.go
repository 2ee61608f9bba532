package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// PresetStore defines the database operations needed to list presets
type PresetStore interface {
	GetPresets(ctx context.Context) ([]*model.Preset, error)
}

// ListPresets returns the stored engine configurations, sorted by id
func ListPresets(ctx context.Context, store PresetStore, logger *zap.Logger) ([]*model.Preset, error) {
	presets, err := store.GetPresets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch presets: %w", err)
	}

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].ID < presets[j].ID
	})

	logger.Debug("Presets fetched", zap.Int("count", len(presets)))
	return presets, nil
}
