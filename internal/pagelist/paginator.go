package pagelist

// Paginator slices a collection of Total items into pages of PerPage items.
//
// Orphans controls how stragglers are handled: when the final page would hold
// at most Orphans items it is merged into the page before it, so readers never
// land on a nearly-empty last page.
type Paginator struct {
	Total   int64
	PerPage int
	Orphans int
}

// NumPages returns the number of pages, never less than one: an empty
// collection still has a single (empty) page.
func (p Paginator) NumPages() int {
	perPage := p.PerPage
	if perPage < 1 {
		perPage = 1
	}
	if p.Total <= int64(perPage) {
		return 1
	}
	remainder := p.Total % int64(perPage)
	pages := int(p.Total / int64(perPage))
	if remainder > int64(p.Orphans) {
		pages++
	}
	return pages
}

// Page returns the page with the given 1-indexed number. Out-of-range numbers
// are clamped into [1, NumPages]: any requested page yields some valid page.
func (p Paginator) Page(number int) *Page {
	numPages := p.NumPages()
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}

	perPage := p.PerPage
	if perPage < 1 {
		perPage = 1
	}
	offset := (number - 1) * perPage
	limit := perPage
	if number == numPages {
		// The last page absorbs any orphans.
		limit = int(p.Total) - offset
		if limit < 0 {
			limit = 0
		}
	}

	return &Page{
		Number:   number,
		NumPages: numPages,
		Offset:   offset,
		Limit:    limit,
	}
}

// Page is one bounded slice of a paginated collection.
type Page struct {
	Number   int // 1-indexed page number
	NumPages int // total page count
	Offset   int // items to skip when querying
	Limit    int // items on this page
}

// HasPrevious reports whether a page precedes this one.
func (pg *Page) HasPrevious() bool {
	return pg.Number > 1
}

// HasNext reports whether a page follows this one.
func (pg *Page) HasNext() bool {
	return pg.Number < pg.NumPages
}

// PreviousNumber returns the preceding page number, clamped to the first page.
func (pg *Page) PreviousNumber() int {
	if pg.Number <= 1 {
		return 1
	}
	return pg.Number - 1
}

// NextNumber returns the following page number, clamped to the last page.
func (pg *Page) NextNumber() int {
	if pg.Number >= pg.NumPages {
		return pg.NumPages
	}
	return pg.Number + 1
}

// Markers returns the fixed-window summary for this page.
func (pg *Page) Markers(extremes, arounds int) MarkerSequence {
	return PageNumbers(pg.Number, pg.NumPages, extremes, arounds)
}

// ElasticMarkers returns the elastic summary for this page.
func (pg *Page) ElasticMarkers(unit int) MarkerSequence {
	return ElasticPageNumbers(pg.Number, pg.NumPages, unit)
}
