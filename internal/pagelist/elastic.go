package pagelist

import "sort"

// ElasticPageNumbers produces the elastic page summary: marker spacing grows
// away from the current page, giving fine control nearby and fast long-range
// jumps toward the edges. No gap markers are emitted — the spacing itself
// conveys the jumps.
//
// When the whole range fits comfortably (numPages <= 10*unit) every page is
// listed with no controls. Otherwise the summary is built from two elastic
// ranges, one from page 1 up to the current page and one from the current
// page down to the last page, with "first previous" prepended whenever the
// current page is past the first and "next last" appended whenever it is
// before the last.
//
// unit scales the step progression; pass DefaultUnit unless the caller tunes
// it. numPages below 1 is treated as 1.
func ElasticPageNumbers(current, numPages, unit int) MarkerSequence {
	if unit < 1 {
		unit = DefaultUnit
	}
	if numPages < 1 {
		numPages = 1
	}
	if current < 1 {
		current = 1
	}

	if numPages <= 10*unit {
		seq := make(MarkerSequence, 0, numPages)
		for p := 1; p <= numPages; p++ {
			seq = append(seq, PageMarker(p))
		}
		return seq
	}

	keep := make(map[int]bool)
	for _, p := range elasticRange(1, current, unit) {
		keep[p] = true
	}
	for _, p := range elasticRange(current, numPages, unit) {
		keep[p] = true
	}

	pages := make([]int, 0, len(keep))
	for p := range keep {
		pages = append(pages, p)
	}
	sort.Ints(pages)

	seq := make(MarkerSequence, 0, len(pages)+4)
	if current > 1 {
		seq = append(seq, ControlMarker(First), ControlMarker(Previous))
	}
	for _, p := range pages {
		seq = append(seq, PageMarker(p))
	}
	if current < numPages {
		seq = append(seq, ControlMarker(Next), ControlMarker(Last))
	}
	return seq
}

// elasticRange walks inward from both ends of [begin, end], each trend
// advancing by the next step offset, until the trends cross. Offsets grow
// alternately by x10/3 and x3 (3u, 10u, 30u, 100u, ...), so the pages kept
// near each end thin out geometrically toward the middle. If the two trends
// land on the same page it is kept once.
func elasticRange(begin, end, unit int) []int {
	steps := stepOffsets(unit)
	var left, right []int
	leftVal, rightVal := begin, end
	for leftVal < rightVal {
		left = append(left, leftVal)
		right = append(right, rightVal)
		offset := steps()
		leftVal = begin + offset
		rightVal = end - offset
	}
	if leftVal == rightVal {
		left = append(left, leftVal)
	}
	for i := len(right) - 1; i >= 0; i-- {
		left = append(left, right[i])
	}
	return left
}

// stepOffsets returns a generator for the elastic step progression scaled by
// unit: 3u, 10u, 30u, 100u, 300u, ...
func stepOffsets(unit int) func() int {
	base := unit
	triple := true
	return func() int {
		var offset int
		if triple {
			offset = base * 3
		} else {
			offset = base * 10
			base *= 10
		}
		triple = !triple
		return offset
	}
}
