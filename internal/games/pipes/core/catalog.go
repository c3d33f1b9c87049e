package core

import "strings"

// PipeType identifies the shape of a pipe segment.
type PipeType uint8

const (
	Empty PipeType = iota
	Straight
	Corner
	Tee
	Cross
	Start
	End
)

var pipeTypeNames = [...]string{
	Empty:    "empty",
	Straight: "straight",
	Corner:   "corner",
	Tee:      "tee",
	Cross:    "cross",
	Start:    "start",
	End:      "end",
}

// AllPipeTypes lists every pipe type, empty first.
var AllPipeTypes = []PipeType{Empty, Straight, Corner, Tee, Cross, Start, End}

// String returns the lowercase name used in stage files.
func (t PipeType) String() string {
	if int(t) < len(pipeTypeNames) {
		return pipeTypeNames[t]
	}
	return "unknown"
}

// ParsePipeType parses a pipe type name (case-insensitive).
func ParsePipeType(s string) (PipeType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range pipeTypeNames {
		if name == s {
			return PipeType(t), true
		}
	}
	return Empty, false
}

// IsSource reports whether pipes of this type feed the network.
func (t PipeType) IsSource() bool { return t == Start }

// IsSink reports whether pipes of this type must be reached to solve.
func (t PipeType) IsSink() bool { return t == End }

// basePorts holds the unrotated port set of each type.
// Corner is {East, South}; no other convention is accepted.
var basePorts = [...]PortSet{
	Empty:    0,
	Straight: Ports(East, West),
	Corner:   Ports(East, South),
	Tee:      Ports(East, South, West),
	Cross:    Ports(East, South, West, North),
	Start:    Ports(East),
	End:      Ports(West),
}

// BasePorts returns the unrotated ports of a pipe type.
// Unknown types have no ports.
func BasePorts(t PipeType) PortSet {
	if int(t) < len(basePorts) {
		return basePorts[t]
	}
	return 0
}
