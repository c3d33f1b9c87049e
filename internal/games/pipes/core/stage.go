package core

import "fmt"

// Stage is a stage snapshot as supplied by a persistence collaborator.
// Pipes is row-major and may disagree with Width/Height; FromStage repairs it.
type Stage struct {
	ID     string
	Name   string
	Width  int
	Height int
	Pipes  [][]PipeSpec
}

// PipeSpec is the stored form of a pipe.
type PipeSpec struct {
	Type      string
	Direction int
	Fixed     bool
}

// Anomaly codes reported while normalizing a stage.
const (
	AnomalyNegativeSize = "NEGATIVE_SIZE"
	AnomalyOversize     = "OVERSIZE"
	AnomalyMissingRows  = "MISSING_ROWS"
	AnomalyExtraRows    = "EXTRA_ROWS"
	AnomalyShortRow     = "SHORT_ROW"
	AnomalyLongRow      = "LONG_ROW"
	AnomalyUnknownType  = "UNKNOWN_TYPE"
	AnomalyBadDirection = "BAD_DIRECTION"
)

// Anomaly describes one repair made to malformed stage data.
// Row and Col are -1 when the anomaly is not about a single cell.
type Anomaly struct {
	Code    string
	Row     int
	Col     int
	Message string
}

func (a Anomaly) Error() string {
	return fmt.Sprintf("[%s] %s", a.Code, a.Message)
}

// FromStage builds a grid from stage data. It never fails: sizes are clamped
// to 0..MaxStageSize, missing rows and cells are padded with empty pipes,
// extras are dropped, unknown types become empty and bad directions are normalized. Every repair is returned as an Anomaly.
func FromStage(s Stage) (*Grid, []Anomaly) {
	var anomalies []Anomaly

	w, h := s.Width, s.Height
	if w < 0 || h < 0 {
		anomalies = append(anomalies, Anomaly{
			Code: AnomalyNegativeSize, Row: -1, Col: -1,
			Message: fmt.Sprintf("declared size %dx%d clamped to non-negative", w, h),
		})
		w, h = max(w, 0), max(h, 0)
	}
	if w > MaxStageSize || h > MaxStageSize {
		anomalies = append(anomalies, Anomaly{
			Code: AnomalyOversize, Row: -1, Col: -1,
			Message: fmt.Sprintf("declared size %dx%d clamped to at most %d per side", w, h, MaxStageSize),
		})
		w, h = min(w, MaxStageSize), min(h, MaxStageSize)
	}

	g := NewGrid(w, h)

	switch {
	case len(s.Pipes) < h:
		anomalies = append(anomalies, Anomaly{
			Code: AnomalyMissingRows, Row: -1, Col: -1,
			Message: fmt.Sprintf("%d rows declared, %d present; padded with empty cells", h, len(s.Pipes)),
		})
	case len(s.Pipes) > h:
		anomalies = append(anomalies, Anomaly{
			Code: AnomalyExtraRows, Row: -1, Col: -1,
			Message: fmt.Sprintf("%d rows declared, %d present; extra rows dropped", h, len(s.Pipes)),
		})
	}

	for row := 0; row < h && row < len(s.Pipes); row++ {
		cells := s.Pipes[row]
		switch {
		case len(cells) < w:
			anomalies = append(anomalies, Anomaly{
				Code: AnomalyShortRow, Row: row, Col: -1,
				Message: fmt.Sprintf("row %d has %d cells, want %d; padded", row, len(cells), w),
			})
		case len(cells) > w:
			anomalies = append(anomalies, Anomaly{
				Code: AnomalyLongRow, Row: row, Col: -1,
				Message: fmt.Sprintf("row %d has %d cells, want %d; truncated", row, len(cells), w),
			})
		}

		for col := 0; col < w && col < len(cells); col++ {
			pipe, cellAnomalies := fromSpec(cells[col], row, col)
			anomalies = append(anomalies, cellAnomalies...)
			g.Cells[row*w+col] = pipe
		}
	}

	return g, anomalies
}

// fromSpec converts a stored pipe. An empty type name is treated as an empty cell.
func fromSpec(spec PipeSpec, row, col int) (Pipe, []Anomaly) {
	var anomalies []Anomaly

	t := Empty
	if spec.Type != "" {
		parsed, ok := ParsePipeType(spec.Type)
		if !ok {
			anomalies = append(anomalies, Anomaly{
				Code: AnomalyUnknownType, Row: row, Col: col,
				Message: fmt.Sprintf("unknown pipe type %q at %s; treated as empty", spec.Type, P(row, col)),
			})
		}
		t = parsed
	}

	dir, ok := NormalizeDirection(spec.Direction)
	if !ok || int(dir) != spec.Direction {
		anomalies = append(anomalies, Anomaly{
			Code: AnomalyBadDirection, Row: row, Col: col,
			Message: fmt.Sprintf("direction %d at %s normalized to %d", spec.Direction, P(row, col), int(dir)),
		})
	}

	return Pipe{Type: t, Direction: dir, Fixed: spec.Fixed}, anomalies
}

// ToStage exports a grid as a stage snapshot.
func ToStage(id, name string, g *Grid) Stage {
	pipes := make([][]PipeSpec, g.H)
	for row := 0; row < g.H; row++ {
		pipes[row] = make([]PipeSpec, g.W)
		for col := 0; col < g.W; col++ {
			p := g.Cells[row*g.W+col]
			pipes[row][col] = PipeSpec{
				Type:      p.Type.String(),
				Direction: int(p.Direction),
				Fixed:     p.IsFixed(),
			}
		}
	}
	return Stage{
		ID:     id,
		Name:   name,
		Width:  g.W,
		Height: g.H,
		Pipes:  pipes,
	}
}
