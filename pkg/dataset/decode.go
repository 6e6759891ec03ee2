package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stagewalk/stagewalk/pkg/domain"
	"gopkg.in/yaml.v3"
)

// FromFile loads a traversal dataset from a YAML or JSON file.
// The format is chosen by extension; anything that is not .json is parsed as YAML.
func FromFile(path string) (*domain.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FromJSON(data)
	}
	return FromYAML(data)
}

// FromJSON decodes a traversal dataset from JSON bytes.
func FromJSON(data []byte) (*domain.Dataset, error) {
	var d domain.Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode dataset JSON: %w", err)
	}
	return &d, nil
}

// FromYAML decodes a traversal dataset from YAML bytes.
func FromYAML(data []byte) (*domain.Dataset, error) {
	var d domain.Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode dataset YAML: %w", err)
	}
	return &d, nil
}
