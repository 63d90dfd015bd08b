package matcher

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/jsvensson/iconlookup/internal/manifest"
)

// SizeScheme selects which side of the requested size is preferred when no
// directory fits exactly.
type SizeScheme int

const (
	// Closest orders candidates by absolute distance only.
	Closest SizeScheme = iota
	// LargerClosest prefers any larger candidate over smaller or equal ones.
	LargerClosest
	// SmallerClosest prefers any smaller candidate over larger or equal ones.
	SmallerClosest
)

func (s SizeScheme) String() string {
	switch s {
	case Closest:
		return "closest"
	case LargerClosest:
		return "larger"
	case SmallerClosest:
		return "smaller"
	default:
		return fmt.Sprintf("SizeScheme(%d)", int(s))
	}
}

// ParseSizeScheme accepts "closest", "larger" and "smaller", optionally
// suffixed with "-closest".
func ParseSizeScheme(s string) (SizeScheme, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "-closest") {
	case "closest", "":
		return Closest, nil
	case "larger":
		return LargerClosest, nil
	case "smaller":
		return SmallerClosest, nil
	default:
		return Closest, fmt.Errorf("unknown size scheme %q (valid: closest, larger, smaller)", s)
	}
}

// Candidate is a directory entry with its signed distance to a request.
type Candidate struct {
	Entry    manifest.DirectoryEntry
	Distance int
}

// Fits reports whether the entry is an exact fit for size at scale.
func Fits(e manifest.DirectoryEntry, size, scale int) bool {
	if e.Scale != scale {
		return false
	}
	switch e.Kind {
	case manifest.Fixed:
		return e.Size == size
	case manifest.Scalable:
		return e.MinSize <= size && size <= e.MaxSize
	case manifest.Threshold:
		return abs(size-e.Size) <= e.Threshold
	default:
		return false
	}
}

// Distance is the signed gap between the entry's effective size and the
// requested size, both multiplied by their scale. Negative means the entry
// is smaller than requested, zero means it covers the request.
func Distance(e manifest.DirectoryEntry, size, scale int) int {
	req := size * scale
	switch e.Kind {
	case manifest.Scalable:
		return outside(e.MinSize*e.Scale, e.MaxSize*e.Scale, req)
	case manifest.Threshold:
		return outside((e.Size-e.Threshold)*e.Scale, (e.Size+e.Threshold)*e.Scale, req)
	default:
		return e.Size*e.Scale - req
	}
}

func outside(lo, hi, req int) int {
	switch {
	case req < lo:
		return lo - req
	case req > hi:
		return hi - req
	default:
		return 0
	}
}

// MatchExact yields, in manifest order, the names of all directories that
// fit size and scale exactly.
func MatchExact(m *manifest.Manifest, size, scale int) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range m.Directories {
			if !Fits(e, size, scale) {
				continue
			}
			if !yield(e.Name) {
				return
			}
		}
	}
}

// Rank returns all candidates for the closest pass, best first. Fixed
// directories with a different scale are never candidates. Ties keep
// manifest order.
func Rank(m *manifest.Manifest, size, scale int, scheme SizeScheme) []Candidate {
	candidates := make([]Candidate, 0, len(m.Directories))
	for _, e := range m.Directories {
		if e.Kind == manifest.Fixed && e.Scale != scale {
			continue
		}
		candidates = append(candidates, Candidate{Entry: e, Distance: Distance(e, size, scale)})
	}

	slices.SortStableFunc(candidates, func(a, b Candidate) int {
		return compare(scheme, a.Distance, b.Distance)
	})
	return candidates
}

// MatchClosest returns directory names ordered by the scheme, best first.
func MatchClosest(m *manifest.Manifest, size, scale int, scheme SizeScheme) []string {
	ranked := Rank(m, size, scale, scheme)
	names := make([]string, len(ranked))
	for i, c := range ranked {
		names[i] = c.Entry.Name
	}
	return names
}

func compare(scheme SizeScheme, a, b int) int {
	switch scheme {
	case LargerClosest:
		if ga, gb := a > 0, b > 0; ga != gb {
			if ga {
				return -1
			}
			return 1
		}
	case SmallerClosest:
		if ga, gb := a < 0, b < 0; ga != gb {
			if ga {
				return -1
			}
			return 1
		}
	}
	return cmp.Compare(abs(a), abs(b))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
