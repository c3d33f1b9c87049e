package formats

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

// JSONLevel is the stage document used by JSON files, the stage store
// and the HTTP API.
type JSONLevel struct {
	ID     string        `json:"id,omitempty"`
	Name   string        `json:"name"`
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Pipes  [][]*JSONPipe `json:"pipes"`
}

// JSONPipe is a single cell. A null cell decodes as empty.
type JSONPipe struct {
	Type      string `json:"type"`
	Direction int    `json:"direction"`
	IsFixed   bool   `json:"isFixed"`
}

// ParseJSON parses a JSON stage document.
func ParseJSON(data []byte) (Level, error) {
	var jl JSONLevel
	if err := json.Unmarshal(data, &jl); err != nil {
		return Level{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return jl.Level(), nil
}

// Level converts the document to a Level.
func (jl JSONLevel) Level() Level {
	pipes := make([][]core.PipeSpec, len(jl.Pipes))
	for r, row := range jl.Pipes {
		pipes[r] = make([]core.PipeSpec, len(row))
		for c, p := range row {
			if p == nil {
				pipes[r][c] = core.PipeSpec{Type: core.Empty.String()}
				continue
			}
			pipes[r][c] = core.PipeSpec{Type: p.Type, Direction: p.Direction, Fixed: p.IsFixed}
		}
	}
	return Level{
		ID:     jl.ID,
		Name:   jl.Name,
		Width:  jl.Width,
		Height: jl.Height,
		Pipes:  pipes,
	}
}

// ToJSONLevel converts a Level to its JSON document.
func ToJSONLevel(l Level) JSONLevel {
	pipes := make([][]*JSONPipe, len(l.Pipes))
	for r, row := range l.Pipes {
		pipes[r] = make([]*JSONPipe, len(row))
		for c, spec := range row {
			t := spec.Type
			if t == "" {
				t = core.Empty.String()
			}
			pipes[r][c] = &JSONPipe{Type: t, Direction: spec.Direction, IsFixed: spec.Fixed}
		}
	}
	return JSONLevel{
		ID:     l.ID,
		Name:   l.Name,
		Width:  l.Width,
		Height: l.Height,
		Pipes:  pipes,
	}
}

// EncodeJSON writes a level as a JSON stage document.
func EncodeJSON(l Level) ([]byte, error) {
	data, err := json.Marshal(ToJSONLevel(l))
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return data, nil
}
