package climate

import "fmt"

// Param identifies one of the climate noise fields.
type Param int

const (
	Shift Param = iota
	Temperature
	Humidity
	Continentalness
	Erosion
	Weirdness

	NumParams
)

var paramNames = [NumParams]string{
	Shift:           "shift",
	Temperature:     "temperature",
	Humidity:        "humidity",
	Continentalness: "continentalness",
	Erosion:         "erosion",
	Weirdness:       "weirdness",
}

func (p Param) String() string {
	if p < 0 || p >= NumParams {
		return fmt.Sprintf("Param(%d)", int(p))
	}
	return paramNames[p]
}

// shape describes how a field's octave stacks are laid out and salted.
type shape struct {
	amplitudes []float64
	omin       int
	salt       [2]uint64
}

// shapeOf returns the field layout for p. Large biome worlds stretch the
// temperature, humidity, continentalness and erosion fields by a factor of
// four, which moves their stacks two octaves lower.
func shapeOf(p Param, large bool) shape {
	switch p {
	case Shift:
		return shape{
			amplitudes: []float64{1, 1, 1, 0},
			omin:       -3,
			salt:       [2]uint64{0x080518cf6af25384, 0x3f3dfb40a54febd5},
		}
	case Temperature:
		if large {
			return shape{
				amplitudes: []float64{1.5, 0, 1, 0, 0, 0},
				omin:       -12,
				salt:       [2]uint64{0x944b0073edf549db, 0x4ff44347e9d22b96},
			}
		}
		return shape{
			amplitudes: []float64{1.5, 0, 1, 0, 0, 0},
			omin:       -10,
			salt:       [2]uint64{0x5c7e6b29735f0d7f, 0xf7d86f1bbc734988},
		}
	case Humidity:
		if large {
			return shape{
				amplitudes: []float64{1, 1, 0, 0, 0, 0},
				omin:       -10,
				salt:       [2]uint64{0x71b8ab943dbd5301, 0xbb63ddcf39ff7a2b},
			}
		}
		return shape{
			amplitudes: []float64{1, 1, 0, 0, 0, 0},
			omin:       -8,
			salt:       [2]uint64{0x81bb4d22e8dc168e, 0xf1c8b4bea16303cd},
		}
	case Continentalness:
		if large {
			return shape{
				amplitudes: []float64{1, 1, 2, 2, 2, 1, 1, 1, 1},
				omin:       -11,
				salt:       [2]uint64{0x9a3f51a113fce8dc, 0xee2dbd157e5dcdad},
			}
		}
		return shape{
			amplitudes: []float64{1, 1, 2, 2, 2, 1, 1, 1, 1},
			omin:       -9,
			salt:       [2]uint64{0x83886c9d0ae3a662, 0xafa638a61b42e8ad},
		}
	case Erosion:
		if large {
			return shape{
				amplitudes: []float64{1, 1, 0, 1, 1},
				omin:       -11,
				salt:       [2]uint64{0x8c984b1f8702a951, 0xead7b1f92bae535f},
			}
		}
		return shape{
			amplitudes: []float64{1, 1, 0, 1, 1},
			omin:       -9,
			salt:       [2]uint64{0xd02491e6058f6fd8, 0x4792512c94c17a80},
		}
	case Weirdness:
		return shape{
			amplitudes: []float64{1, 2, 1, 0, 0, 0},
			omin:       -7,
			salt:       [2]uint64{0xefc8ef4d36102b34, 0x1beeeb324a0f24ea},
		}
	}
	panic(fmt.Sprintf("climate: unknown param %d", int(p)))
}
