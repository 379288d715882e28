package gen

import (
	"fmt"
	"strings"
)

// Version is a world generation release. Versions are ordered, so
// comparisons like v >= V1_18 select behavior.
type Version int

const (
	Undefined Version = iota
	VB1_7
	VB1_8
	V1_0
	V1_1
	V1_2
	V1_3
	V1_4
	V1_5
	V1_6
	V1_7
	V1_8
	V1_9
	V1_10
	V1_11
	V1_12
	V1_13
	V1_14
	V1_15
	V1_16_1
	V1_16
	V1_17
	V1_18
	V1_19_2
	V1_19
	V1_20
	V1_21_1
	V1_21_3
	V1_21WD

	V1_21  = V1_21WD
	Newest = V1_21
)

var versionNames = [...]string{
	Undefined: "undefined",
	VB1_7:     "b1.7",
	VB1_8:     "b1.8",
	V1_0:      "1.0",
	V1_1:      "1.1",
	V1_2:      "1.2",
	V1_3:      "1.3",
	V1_4:      "1.4",
	V1_5:      "1.5",
	V1_6:      "1.6",
	V1_7:      "1.7",
	V1_8:      "1.8",
	V1_9:      "1.9",
	V1_10:     "1.10",
	V1_11:     "1.11",
	V1_12:     "1.12",
	V1_13:     "1.13",
	V1_14:     "1.14",
	V1_15:     "1.15",
	V1_16_1:   "1.16.1",
	V1_16:     "1.16",
	V1_17:     "1.17",
	V1_18:     "1.18",
	V1_19_2:   "1.19.2",
	V1_19:     "1.19",
	V1_20:     "1.20",
	V1_21_1:   "1.21.1",
	V1_21_3:   "1.21.3",
	V1_21WD:   "1.21",
}

// Valid reports whether v names a known release.
func (v Version) Valid() bool {
	return v > Undefined && v <= Newest
}

func (v Version) String() string {
	if v < 0 || int(v) >= len(versionNames) {
		return fmt.Sprintf("Version(%d)", int(v))
	}
	return versionNames[v]
}

// ParseVersion maps a release name such as "1.18" or "b1.7" to its Version.
// "newest" selects the latest supported release.
func ParseVersion(s string) (Version, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "newest" {
		return Newest, nil
	}
	for v := VB1_7; v <= Newest; v++ {
		if versionNames[v] == s {
			return v, nil
		}
	}
	return Undefined, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
}

// Flags modify generation. Only LargeBiomes affects terrain height.
type Flags uint32

const (
	LargeBiomes Flags = 1 << iota
	NoBetaOcean
	ForceOceanVariants
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f.Has(LargeBiomes) {
		parts = append(parts, "large_biomes")
	}
	if f.Has(NoBetaOcean) {
		parts = append(parts, "no_beta_ocean")
	}
	if f.Has(ForceOceanVariants) {
		parts = append(parts, "force_ocean_variants")
	}
	if rest := f &^ (LargeBiomes | NoBetaOcean | ForceOceanVariants); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseFlags parses a "|" or "," separated list of flag names.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "", "none":
		case "large_biomes", "largebiomes":
			f |= LargeBiomes
		case "no_beta_ocean", "nobetaocean":
			f |= NoBetaOcean
		case "force_ocean_variants", "forceoceanvariants":
			f |= ForceOceanVariants
		default:
			return 0, fmt.Errorf("unknown flag %q", part)
		}
	}
	return f, nil
}

// Dimension selects the generation context.
type Dimension int

const (
	Nether    Dimension = -1
	Overworld Dimension = 0
	End       Dimension = 1
)

// Valid reports whether d is one of the known dimensions.
func (d Dimension) Valid() bool {
	return d >= Nether && d <= End
}

func (d Dimension) String() string {
	switch d {
	case Nether:
		return "nether"
	case Overworld:
		return "overworld"
	case End:
		return "end"
	}
	return fmt.Sprintf("Dimension(%d)", int(d))
}

// ParseDimension accepts "overworld", "nether" and "end", with or without the
// "minecraft:" namespace, and the legacy "the_nether"/"the_end" ids.
func ParseDimension(s string) (Dimension, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "minecraft:")
	switch s {
	case "overworld":
		return Overworld, nil
	case "nether", "the_nether":
		return Nether, nil
	case "end", "the_end":
		return End, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}
