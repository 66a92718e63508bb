package i18n

import (
	"fmt"
	"os"

	"github.com/go-api-errnotify/internal/domain"
	"gopkg.in/yaml.v3"
)

// LoadFieldLabels reads a flat YAML (or JSON) mapping of lead field name to
// label key.
func LoadFieldLabels(path string) (domain.FieldLabelMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read field labels: %w", err)
	}
	return ParseFieldLabels(raw)
}

func ParseFieldLabels(raw []byte) (domain.FieldLabelMap, error) {
	var m map[string]string
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse field labels: %w", err)
	}
	labels := make(domain.FieldLabelMap, len(m))
	for field, key := range m {
		labels[field] = key
	}
	return labels, nil
}
