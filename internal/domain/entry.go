// Package domain contains core business types and interfaces.
//
// This file defines the Entry domain type for the Pagefold reading feed —
// the collection the pagination engine is exercised against.
package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Entry is one item of the reading feed.
type Entry struct {
	ID        uuid.UUID
	Title     string
	Author    string
	Body      string
	Tags      []string
	CreatedAt time.Time
}

// Excerpt returns the opening of the body for list views.
func (e *Entry) Excerpt(max int) string {
	body := strings.TrimSpace(e.Body)
	if max <= 0 || len(body) <= max {
		return body
	}
	// Back the cut up to a rune boundary so a multi-byte rune straddling
	// max is dropped whole rather than split.
	for max > 0 && !utf8.RuneStart(body[max]) {
		max--
	}
	cut := body[:max]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

// =============================================================================
// Create Params
// =============================================================================

// CreateEntryParams holds the fields needed to create an entry.
type CreateEntryParams struct {
	Title  string
	Author string
	Body   string
	Tags   []string
}

// Validate checks the params, returning EINVALID on failure.
func (p CreateEntryParams) Validate() error {
	const op = "entry.validate"
	if strings.TrimSpace(p.Title) == "" {
		return Errorf(EINVALID, op, "title is required")
	}
	if strings.TrimSpace(p.Author) == "" {
		return Errorf(EINVALID, op, "author is required")
	}
	return nil
}

// =============================================================================
// List Params and Result
// =============================================================================

// ListEntriesParams holds filters for a paginated entry list query.
type ListEntriesParams struct {
	Limit  int32 // Max results to return
	Offset int32 // Number of results to skip

	// SkipCount enables lazy pagination: the repository fetches one extra row
	// instead of issuing a COUNT(*), so Total stays unknown (-1) and only
	// HasMore is meaningful. Used by the show-more partial.
	SkipCount bool
}

// ListEntriesResult contains the result of a paginated entry list query.
type ListEntriesResult struct {
	Entries []Entry // The entry results
	Total   int64   // Total number of entries, or -1 in lazy mode
	Limit   int32   // Number of results requested
	Offset  int32   // Number of results skipped

	// lazyMore records whether the lazy over-fetch saw an extra row.
	lazyMore bool
}

// SetLazyMore records the over-fetch outcome for a count-free query.
func (r *ListEntriesResult) SetLazyMore(more bool) {
	r.lazyMore = more
}

// HasMore returns true if there are more results available.
func (r *ListEntriesResult) HasMore() bool {
	if r.Total < 0 {
		return r.lazyMore
	}
	return int64(r.Offset+r.Limit) < r.Total
}

// HasPrevious returns true if there are previous results available.
func (r *ListEntriesResult) HasPrevious() bool {
	return r.Offset > 0
}

// CurrentPage returns the current page number (1-indexed).
func (r *ListEntriesResult) CurrentPage() int {
	if r.Limit == 0 {
		return 1
	}
	return int(r.Offset/r.Limit) + 1
}

// TotalPages returns the total number of pages, never less than one. In lazy
// mode the total is unknown; the page after the current one is reported while
// more rows remain.
func (r *ListEntriesResult) TotalPages() int {
	if r.Limit == 0 {
		return 1
	}
	if r.Total < 0 {
		if r.lazyMore {
			return r.CurrentPage() + 1
		}
		return r.CurrentPage()
	}
	pages := r.Total / int64(r.Limit)
	if r.Total%int64(r.Limit) > 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return int(pages)
}
