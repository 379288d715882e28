package heightmap

import (
	"fmt"
	"strings"
)

// Mode selects the sampler used to render a region.
type Mode int

const (
	// ModeBlock samples one height per block.
	ModeBlock Mode = iota
	// ModeApprox samples one height per 4x4 block cell.
	ModeApprox
)

func (m Mode) String() string {
	switch m {
	case ModeBlock:
		return "block"
	case ModeApprox:
		return "approx"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Scale returns the number of blocks covered by one sample along each axis.
func (m Mode) Scale() int {
	if m == ModeApprox {
		return 4
	}
	return 1
}

// ParseMode maps "block" or "approx" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block", "":
		return ModeBlock, nil
	case "approx", "approximate":
		return ModeApprox, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Region is a rectangle of samples. X and Z are in block coordinates for
// ModeBlock and in 1:4 cell coordinates for ModeApprox.
type Region struct {
	X, Z          int
	Width, Height int
	Mode          Mode
}

func (r Region) String() string {
	return fmt.Sprintf("%s %dx%d at (%d, %d)", r.Mode, r.Width, r.Height, r.X, r.Z)
}

// Validate rejects empty regions.
func (r Region) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("region %s is empty", r)
	}
	if r.Mode != ModeBlock && r.Mode != ModeApprox {
		return fmt.Errorf("region has unknown mode %d", int(r.Mode))
	}
	return nil
}

// tiles returns the inclusive tile range covering r.
func (r Region) tiles() (tx0, tz0, tx1, tz1 int) {
	return r.X >> tileShift, r.Z >> tileShift,
		(r.X + r.Width - 1) >> tileShift, (r.Z + r.Height - 1) >> tileShift
}
