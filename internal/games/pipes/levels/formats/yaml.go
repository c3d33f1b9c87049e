package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a stage file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Rows     [][]string        `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// ParseYAML parses a YAML stage file. A missing size is taken from the rows.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	pipes, err := parseRows(yl.Rows)
	if err != nil {
		return Level{}, fmt.Errorf("yaml rows: %w", err)
	}

	w, h := yl.Size.W, yl.Size.H
	if w == 0 && h == 0 {
		w, h = inferSize(yl.Rows)
	}

	return Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Width:    w,
		Height:   h,
		Pipes:    pipes,
		Metadata: yl.Metadata,
	}, nil
}

// EncodeYAML writes a level in the YAML stage format.
func EncodeYAML(l Level) ([]byte, error) {
	yl := YAMLLevel{
		ID:       l.ID,
		Name:     l.Name,
		Size:     YAMLSize{W: l.Width, H: l.Height},
		Rows:     formatRows(l.Pipes),
		Metadata: l.Metadata,
	}
	data, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

func inferSize(rows [][]string) (w, h int) {
	h = len(rows)
	for _, row := range rows {
		w = max(w, len(row))
	}
	return w, h
}
