// Package formats provides pluggable stage file format parsers.
package formats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-pipes/internal/games/pipes/core"
)

// Level represents a parsed stage ready for use.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Pipes    [][]core.PipeSpec
	Metadata map[string]string
}

// Stage converts the parsed level into a core stage snapshot.
func (l Level) Stage() core.Stage {
	return core.Stage{
		ID:     l.ID,
		Name:   l.Name,
		Width:  l.Width,
		Height: l.Height,
		Pipes:  l.Pipes,
	}
}

// FromStage wraps a core stage snapshot for encoding.
func FromStage(s core.Stage) Level {
	return Level{
		ID:     s.ID,
		Name:   s.Name,
		Width:  s.Width,
		Height: s.Height,
		Pipes:  s.Pipes,
	}
}

// ParseCell parses a compact cell token used by the YAML and TOML formats.
//
//	"."               empty
//	"corner"          corner, direction 0
//	"straight@90"     straight, direction 90
//	"end@180!"        end, direction 180, fixed
//
// The type name is not validated here; unknown names are reported later
// as anomalies when the stage is turned into a grid.
func ParseCell(tok string) (core.PipeSpec, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" || tok == "." {
		return core.PipeSpec{Type: core.Empty.String()}, nil
	}

	var spec core.PipeSpec
	if strings.HasSuffix(tok, "!") {
		spec.Fixed = true
		tok = strings.TrimSuffix(tok, "!")
	}

	name, dir, hasDir := strings.Cut(tok, "@")
	spec.Type = strings.ToLower(name)
	if hasDir {
		d, err := strconv.Atoi(dir)
		if err != nil {
			return core.PipeSpec{}, fmt.Errorf("cell %q: bad direction: %w", tok, err)
		}
		spec.Direction = d
	}
	return spec, nil
}

// FormatCell is the inverse of ParseCell.
func FormatCell(spec core.PipeSpec) string {
	if spec.Type == "" || spec.Type == core.Empty.String() {
		if spec.Direction == 0 && !spec.Fixed {
			return "."
		}
		spec.Type = core.Empty.String()
	}

	var sb strings.Builder
	sb.WriteString(spec.Type)
	if spec.Direction != 0 {
		sb.WriteByte('@')
		sb.WriteString(strconv.Itoa(spec.Direction))
	}
	if spec.Fixed {
		sb.WriteByte('!')
	}
	return sb.String()
}

func parseRows(rows [][]string) ([][]core.PipeSpec, error) {
	pipes := make([][]core.PipeSpec, len(rows))
	for r, row := range rows {
		pipes[r] = make([]core.PipeSpec, len(row))
		for c, tok := range row {
			spec, err := ParseCell(tok)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", r, err)
			}
			pipes[r][c] = spec
		}
	}
	return pipes, nil
}

func formatRows(pipes [][]core.PipeSpec) [][]string {
	rows := make([][]string, len(pipes))
	for r, row := range pipes {
		rows[r] = make([]string, len(row))
		for c, spec := range row {
			rows[r][c] = FormatCell(spec)
		}
	}
	return rows
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml", ".json"}
}

// Parse routes to the parser for the given file extension.
func Parse(data []byte, ext string) (Level, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
