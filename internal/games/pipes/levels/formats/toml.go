package formats

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TOMLLevel represents the TOML structure for a stage file.
type TOMLLevel struct {
	ID       string            `toml:"id"`
	Name     string            `toml:"name"`
	Width    int               `toml:"width"`
	Height   int               `toml:"height"`
	Rows     [][]string        `toml:"rows"`
	Metadata map[string]string `toml:"metadata,omitempty"`
}

// ParseTOML parses a TOML stage file.
func ParseTOML(data []byte) (Level, error) {
	var tl TOMLLevel
	if _, err := toml.Decode(string(data), &tl); err != nil {
		return Level{}, fmt.Errorf("toml decode: %w", err)
	}

	pipes, err := parseRows(tl.Rows)
	if err != nil {
		return Level{}, fmt.Errorf("toml rows: %w", err)
	}

	w, h := tl.Width, tl.Height
	if w == 0 && h == 0 {
		w, h = inferSize(tl.Rows)
	}

	return Level{
		ID:       tl.ID,
		Name:     tl.Name,
		Width:    w,
		Height:   h,
		Pipes:    pipes,
		Metadata: tl.Metadata,
	}, nil
}
