package pagelist

import "sort"

// PageNumbers produces the fixed-window page summary: the first and last
// extremes pages are always shown, plus arounds pages on each side of the
// current page, with a gap marker wherever kept pages are not adjacent.
// A "previous" control is prepended unless current is the first page and a
// "next" control is appended unless current is the last page.
//
// current is assumed to be within [1, numPages]; callers clamp beforehand
// (see Paginator.Page). extremes or arounds of zero simply shrink the window —
// the current page itself is always kept.
func PageNumbers(current, numPages, extremes, arounds int) MarkerSequence {
	if numPages <= 1 {
		return MarkerSequence{PageMarker(1)}
	}

	keep := make(map[int]bool)
	for p := 1; p <= extremes && p <= numPages; p++ {
		keep[p] = true
	}
	for p := numPages - extremes + 1; p <= numPages; p++ {
		if p >= 1 {
			keep[p] = true
		}
	}
	for p := current - arounds; p <= current+arounds; p++ {
		if p >= 1 && p <= numPages {
			keep[p] = true
		}
	}

	pages := make([]int, 0, len(keep))
	for p := range keep {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	seq := make(MarkerSequence, 0, len(pages)+4)
	if current > 1 {
		seq = append(seq, ControlMarker(Previous))
	}
	for i, p := range pages {
		if i > 0 && p-pages[i-1] > 1 {
			seq = append(seq, GapMarker())
		}
		seq = append(seq, PageMarker(p))
	}
	if current < numPages {
		seq = append(seq, ControlMarker(Next))
	}
	return seq
}
