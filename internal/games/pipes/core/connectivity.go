package core

// Result is the outcome of evaluating a board.
type Result struct {
	// Connected[row][col] is true when any source reaches the cell.
	Connected [][]bool
	// Solved is true when every sink is reached by some source,
	// or when the board has no sinks at all.
	Solved bool

	Sources      []Pos
	Sinks        []Pos
	ReachedSinks []Pos
}

// IsConnected reports whether the cell at p is reached. Out-of-bounds is false.
func (r Result) IsConnected(p Pos) bool {
	if p.Row < 0 || p.Row >= len(r.Connected) {
		return false
	}
	row := r.Connected[p.Row]
	return p.Col >= 0 && p.Col < len(row) && row[p.Col]
}

// ConnectedCount returns the number of reached cells.
func (r Result) ConnectedCount() int {
	n := 0
	for _, row := range r.Connected {
		for _, c := range row {
			if c {
				n++
			}
		}
	}
	return n
}

// Equal compares two results cell by cell.
func (r Result) Equal(other Result) bool {
	if r.Solved != other.Solved || len(r.Connected) != len(other.Connected) {
		return false
	}
	for i := range r.Connected {
		if len(r.Connected[i]) != len(other.Connected[i]) {
			return false
		}
		for j := range r.Connected[i] {
			if r.Connected[i][j] != other.Connected[i][j] {
				return false
			}
		}
	}
	return true
}

// step is a pending move into pos, arriving while travelling in direction from.
// root marks the source cell, which is entered unconditionally.
type step struct {
	pos  Pos
	from Direction
	root bool
}

// Evaluate computes connectivity for the whole board.
// It keeps no state between calls and never modifies g.
func Evaluate(g *Grid) Result {
	res := Result{
		Connected: newMask(g.W, g.H),
		Sources:   g.Sources(),
		Sinks:     g.Sinks(),
	}

	if len(res.Sinks) == 0 {
		res.Solved = true
		return res
	}
	if len(res.Sources) == 0 {
		return res
	}

	reached := make(map[Pos]bool, len(res.Sinks))
	for _, src := range res.Sources {
		local, sinks := traverse(g, src)
		for row := range local {
			for col, c := range local[row] {
				if c {
					res.Connected[row][col] = true
				}
			}
		}
		for _, s := range sinks {
			reached[s] = true
		}
	}

	res.Solved = true
	for _, s := range res.Sinks {
		if reached[s] {
			res.ReachedSinks = append(res.ReachedSinks, s)
		} else {
			res.Solved = false
		}
	}
	return res
}

// traverse walks outward from a single source with its own visited set.
// It returns the cells it reached and the sinks among them.
func traverse(g *Grid, src Pos) ([][]bool, []Pos) {
	mask := newMask(g.W, g.H)
	visited := make(map[Pos]bool)
	var sinks []Pos

	work := []step{{pos: src, root: true}}
	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		pipe, ok := g.Get(cur.pos)
		if !ok || visited[cur.pos] {
			continue
		}
		ports := ActualPorts(pipe)
		back := cur.from.Opposite()
		if !cur.root && !ports.Has(back) {
			continue
		}

		visited[cur.pos] = true
		mask[cur.pos.Row][cur.pos.Col] = true
		if pipe.Type.IsSink() {
			sinks = append(sinks, cur.pos)
		}

		for _, d := range ports.Directions() {
			if !cur.root && d == back {
				continue
			}
			next, ok := g.Neighbor(cur.pos, d)
			if !ok || visited[next] {
				continue
			}
			work = append(work, step{pos: next, from: d})
		}
	}
	return mask, sinks
}

func newMask(w, h int) [][]bool {
	mask := make([][]bool, h)
	for i := range mask {
		mask[i] = make([]bool, w)
	}
	return mask
}
