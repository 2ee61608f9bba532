package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meitohealth/duty-roster/pkg/core/model"
)

// GetPresets retrieves all stored engine configuration presets
func (d *DB) GetPresets(ctx context.Context) ([]*model.Preset, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, name, config FROM presets`)
	if err != nil {
		return nil, fmt.Errorf("failed to query presets: %w", err)
	}
	defer rows.Close()

	var presets []*model.Preset
	for rows.Next() {
		var p model.Preset
		var raw []byte
		if err := rows.Scan(&p.ID, &p.Name, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan preset: %w", err)
		}
		if err := json.Unmarshal(raw, &p.Config); err != nil {
			return nil, fmt.Errorf("failed to decode preset %s: %w", p.ID, err)
		}
		presets = append(presets, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating presets: %w", err)
	}

	return presets, nil
}

// InsertPreset stores a named engine configuration
func (d *DB) InsertPreset(ctx context.Context, preset *model.Preset) error {
	raw, err := json.Marshal(preset.Config)
	if err != nil {
		return fmt.Errorf("failed to encode preset config: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO presets (id, name, config) VALUES ($1, $2, $3)
	`, preset.ID, preset.Name, raw)
	if err != nil {
		return fmt.Errorf("failed to insert preset: %w", err)
	}
	return nil
}
