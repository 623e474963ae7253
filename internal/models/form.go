package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldOption is one selectable choice for an enum field.
type FieldOption struct {
	Value       string `yaml:"value" json:"value"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// FormField describes one form field: its input type, display label, help
// text and, for numeric fields, the accepted range. The constraints here
// are presentational; the authoritative ones live on AssessmentRequest.
type FormField struct {
	ID      string        `yaml:"id" json:"id"`
	Label   string        `yaml:"label" json:"label"`
	Help    string        `yaml:"help,omitempty" json:"help,omitempty"`
	Type    string        `yaml:"type" json:"type"`
	Unit    string        `yaml:"unit,omitempty" json:"unit,omitempty"`
	Min     *int          `yaml:"min,omitempty" json:"min,omitempty"`
	Max     *int          `yaml:"max,omitempty" json:"max,omitempty"`
	Default string        `yaml:"default,omitempty" json:"default,omitempty"`
	Options []FieldOption `yaml:"options,omitempty" json:"options,omitempty"`
}

// FormSchema holds every field of the assessment form.
type FormSchema struct {
	Fields []FormField `yaml:"fields" json:"fields"`
}

// LoadFormSchema reads and parses the form field definitions.
func LoadFormSchema(path string) (*FormSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form schema file: %w", err)
	}

	var schema FormSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal form schema YAML: %w", err)
	}

	return &schema, nil
}
