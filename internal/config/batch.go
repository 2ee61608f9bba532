package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// BatchStep references a stored preset with optional per-step overrides
type BatchStep struct {
	PresetID       string `yaml:"presetID" validate:"required"`
	SlotTypeID     string `yaml:"slotTypeID,omitempty"`
	MaxAssignments *int   `yaml:"maxAssignments,omitempty" validate:"omitempty,min=1"`
	DateRRule      string `yaml:"dateRRule,omitempty"`
}

// Batch is a unified-batch definition: an ordered list of assignment steps
type Batch struct {
	Name       string      `yaml:"name" validate:"required"`
	TrialCount int         `yaml:"trialCount,omitempty" validate:"omitempty,min=1"`
	Steps      []BatchStep `yaml:"steps" validate:"required,min=1,dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadBatch loads and validates a batch definition from a YAML file
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}

	if err := ValidateBatch(&batch); err != nil {
		return nil, err
	}

	return &batch, nil
}

// ValidateBatch validates the batch struct and checks rrule syntax
func ValidateBatch(batch *Batch) error {
	if err := validate.Struct(batch); err != nil {
		return fmt.Errorf("batch validation failed: %w", err)
	}

	for i, step := range batch.Steps {
		if step.DateRRule == "" {
			continue
		}
		if _, err := rrule.StrToRRule(step.DateRRule); err != nil {
			return fmt.Errorf("invalid rrule in steps[%d]: %w", i, err)
		}
	}

	return nil
}
