// Package pagelist computes compact page-number summaries for paginated
// listings.
//
// Given a current page and a total page count it produces an ordered sequence
// of markers — page numbers, gaps (rendered as an ellipsis), and navigation
// controls such as "previous" or "last" — that represents the whole range
// without listing every page. Two layouts are provided:
//
//   - PageNumbers: a fixed window that always shows the extremes of the range
//     plus a few pages around the current one, with gaps in between.
//   - ElasticPageNumbers: a non-linear layout whose marker spacing widens
//     away from the current page, suited to very large page counts.
//
// All functions are pure and safe for concurrent use.
package pagelist

import "strconv"

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultPageKey is the querystring key that carries the page number.
	DefaultPageKey = "page"

	// DefaultPage is the page served when no valid page number is supplied.
	DefaultPage = 1

	// DefaultExtremes is how many pages are always shown at each end of the
	// range in the fixed-window layout.
	DefaultExtremes = 3

	// DefaultArounds is how many pages are always shown on each side of the
	// current page in the fixed-window layout.
	DefaultArounds = 2

	// DefaultUnit is the base step size of the elastic layout.
	DefaultUnit = 1
)

// =============================================================================
// Markers
// =============================================================================

// Control names a navigation marker.
type Control string

const (
	First    Control = "first"
	Previous Control = "previous"
	Next     Control = "next"
	Last     Control = "last"
)

// Marker is one element of a page summary: a page number, a gap, or a
// navigation control. The zero value is a gap.
type Marker struct {
	Number  int     // page number, valid when > 0
	Control Control // control name, valid when non-empty
}

// PageMarker returns a numeric marker for page n.
func PageMarker(n int) Marker {
	return Marker{Number: n}
}

// GapMarker returns a gap marker, rendered as an ellipsis.
func GapMarker() Marker {
	return Marker{}
}

// ControlMarker returns a navigation marker for the given control.
func ControlMarker(c Control) Marker {
	return Marker{Control: c}
}

// IsNumber reports whether the marker is a page number.
func (m Marker) IsNumber() bool {
	return m.Number > 0
}

// IsControl reports whether the marker is a navigation control.
func (m Marker) IsControl() bool {
	return m.Control != ""
}

// IsGap reports whether the marker is a gap.
func (m Marker) IsGap() bool {
	return m.Number == 0 && m.Control == ""
}

// String renders the marker the way templates display it.
func (m Marker) String() string {
	switch {
	case m.IsControl():
		return string(m.Control)
	case m.IsNumber():
		return strconv.Itoa(m.Number)
	default:
		return "…"
	}
}

// MarkerSequence is an ordered page summary. Numeric entries are strictly
// ascending and no two gaps are adjacent.
type MarkerSequence []Marker

// Numbers returns the numeric entries of the sequence in order.
func (s MarkerSequence) Numbers() []int {
	var nums []int
	for _, m := range s {
		if m.IsNumber() {
			nums = append(nums, m.Number)
		}
	}
	return nums
}
