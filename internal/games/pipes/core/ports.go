package core

import (
	"strconv"
	"strings"
)

// PortSet is a set of directions stored as a 4-bit mask.
type PortSet uint8

// Ports builds a PortSet from directions. Invalid directions are ignored.
func Ports(dirs ...Direction) PortSet {
	var s PortSet
	for _, d := range dirs {
		s = s.Add(d)
	}
	return s
}

// Add returns s with d included.
func (s PortSet) Add(d Direction) PortSet {
	if !d.Valid() {
		return s
	}
	return s | 1<<d.index()
}

// Has reports whether d is in the set.
func (s PortSet) Has(d Direction) bool {
	return d.Valid() && s&(1<<d.index()) != 0
}

// Rotate turns every port clockwise by the given amount.
func (s PortSet) Rotate(by Direction) PortSet {
	var out PortSet
	for _, d := range Directions {
		if s.Has(d) {
			out = out.Add(d.Rotate(by))
		}
	}
	return out
}

// Directions returns the members in clockwise order starting east.
func (s PortSet) Directions() []Direction {
	dirs := make([]Direction, 0, 4)
	for _, d := range Directions {
		if s.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Len returns the number of ports.
func (s PortSet) Len() int {
	n := 0
	for _, d := range Directions {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// String returns the ports as degrees, e.g. "{0,90}".
func (s PortSet) String() string {
	parts := make([]string, 0, 4)
	for _, d := range s.Directions() {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// ActualPorts returns the ports of a pipe after applying its rotation.
func ActualPorts(p Pipe) PortSet {
	return BasePorts(p.Type).Rotate(p.Direction)
}
