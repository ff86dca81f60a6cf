// Package handler contains HTTP handlers for the Pagefold application.
//
// This file implements the feed, archive and entry detail handlers. The feed
// summarizes its pages with the fixed window layout, the archive with the
// elastic layout, and htmx requests get a count-free "show more" fragment.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rbeckert/pagefold/internal/domain"
	"github.com/rbeckert/pagefold/internal/metrics"
	"github.com/rbeckert/pagefold/internal/pagelist"
	"github.com/rbeckert/pagefold/internal/service"
)

// =============================================================================
// Template Data Types
// =============================================================================

// MarkerItem is one rendered element of a page list: a numbered link, the
// current page, an ellipsis gap, or a navigation control.
type MarkerItem struct {
	Label     string // Display text ("3", "next", "…")
	URL       string // Link target; empty for gaps and the current page
	Number    int    // Page number for numeric items
	IsCurrent bool   // True for the current page
	IsGap     bool   // True for ellipsis gaps
	IsControl bool   // True for first/previous/next/last
}

// PaginationData contains everything the pagination component renders.
type PaginationData struct {
	CurrentPage int
	TotalPages  int
	Items       []MarkerItem
	PreviousURL string // Empty on the first page
	NextURL     string // Empty on the last page
}

// EntrySummary represents an entry in list view.
type EntrySummary struct {
	ID        uuid.UUID
	Title     string
	Author    string
	Excerpt   string
	Tags      []string
	CreatedAt time.Time
}

// EntryListPartialData contains data for the htmx show-more fragment.
type EntryListPartialData struct {
	Entries []EntrySummary
	MoreURL string // URL of the next fragment; empty when the feed is exhausted
}

// =============================================================================
// Handler Configuration
// =============================================================================

// EntryHandlerConfig holds the page list tuning for the entry handlers.
type EntryHandlerConfig struct {
	PerPage     int    // Entries per page
	Orphans     int    // Stragglers merged into the last page
	PageKey     string // Querystring key carrying the page number
	ElasticUnit int    // Base step size of the elastic layout
}

// EntryHandler handles feed and entry HTTP requests.
type EntryHandler struct {
	service  service.EntryService
	renderer *Renderer
	logger   *slog.Logger
	cfg      EntryHandlerConfig
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(svc service.EntryService, renderer *Renderer, logger *slog.Logger, cfg EntryHandlerConfig) *EntryHandler {
	if cfg.PerPage <= 0 {
		cfg.PerPage = 10
	}
	if cfg.PageKey == "" {
		cfg.PageKey = pagelist.DefaultPageKey
	}
	if cfg.ElasticUnit <= 0 {
		cfg.ElasticUnit = pagelist.DefaultUnit
	}
	return &EntryHandler{
		service:  svc,
		renderer: renderer,
		logger:   logger,
		cfg:      cfg,
	}
}

// =============================================================================
// Handlers
// =============================================================================

// Feed displays the paginated reading feed with a fixed window page list.
// htmx requests get the show-more fragment instead of the full page.
func (h *EntryHandler) Feed(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		h.showMore(w, r)
		return
	}
	h.renderList(w, r, "feed", "windowed")
}

// Archive displays the same feed with the elastic page list, which stays
// compact however many pages the feed grows to.
func (h *EntryHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, "archive", "elastic")
}

// Show displays a single entry.
func (h *EntryHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		NotFoundResponse(w, r, h.logger)
		return
	}

	entry, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	data := map[string]any{
		"CurrentPath": r.URL.Path,
		"Entry":       entry,
	}

	h.renderer.RenderHTTP(w, "entries/show", data)
}

// renderList fetches one page of the feed and renders it with the requested
// page list variant.
func (h *EntryHandler) renderList(w http.ResponseWriter, r *http.Request, tmpl, variant string) {
	number := pagelist.PageNumberFromRequest(r, h.cfg.PageKey, pagelist.DefaultPage)

	// First fetch with the naive offset. The paginator can only clamp the
	// page number once the total is known.
	offset := (number - 1) * h.cfg.PerPage
	result, err := h.service.List(r.Context(), domain.ListEntriesParams{
		Limit:  int32(h.cfg.PerPage),
		Offset: int32(offset),
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	paginator := pagelist.Paginator{
		Total:   result.Total,
		PerPage: h.cfg.PerPage,
		Orphans: h.cfg.Orphans,
	}
	page := paginator.Page(number)

	// Re-fetch when clamping moved the window or the last page absorbs
	// orphans beyond the first fetch. A window that only shrank in place is
	// already covered, and the empty feed (Limit 0) has nothing to fetch:
	// the empty slice in hand is the page.
	if page.Limit >= 1 && (page.Offset != offset || page.Limit > h.cfg.PerPage) {
		result, err = h.service.List(r.Context(), domain.ListEntriesParams{
			Limit:  int32(page.Limit),
			Offset: int32(page.Offset),
		})
		if err != nil {
			ErrorResponse(w, r, h.logger, err)
			return
		}
	}

	data := map[string]any{
		"CurrentPath":        r.URL.Path,
		"Entries":            entrySummaries(result.Entries),
		"Total":              result.Total,
		pagelist.PageDataKey: page,
	}

	pagination, err := h.paginationData(r, data, variant)
	if err != nil {
		InternalErrorResponse(w, r, h.logger, err)
		return
	}
	data["Pagination"] = pagination

	h.renderer.RenderHTTP(w, tmpl, data)
}

// showMore serves the htmx fragment that appends the next slice of the feed.
// It runs the count-free query: one extra row answers "is there more".
func (h *EntryHandler) showMore(w http.ResponseWriter, r *http.Request) {
	number := pagelist.PageNumberFromRequest(r, h.cfg.PageKey, pagelist.DefaultPage)
	if number < 1 {
		number = 1
	}

	result, err := h.service.List(r.Context(), domain.ListEntriesParams{
		Limit:     int32(h.cfg.PerPage),
		Offset:    int32((number - 1) * h.cfg.PerPage),
		SkipCount: true,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	data := EntryListPartialData{
		Entries: entrySummaries(result.Entries),
	}
	if result.HasMore() {
		data.MoreURL = r.URL.Path + pagelist.Querystring(r.URL.Query(), number+1, h.cfg.PageKey, pagelist.DefaultPage)
	}

	metrics.PageListRendersTotal.WithLabelValues("lazy").Inc()

	h.renderer.RenderPartial(w, "entry-list", data)
}

// =============================================================================
// Page List Assembly
// =============================================================================

// paginationData builds the pagination component's view model from the page
// stored in the render data.
func (h *EntryHandler) paginationData(r *http.Request, data map[string]any, variant string) (PaginationData, error) {
	page, err := pagelist.PageFrom(data, pagelist.PageDataKey)
	if err != nil {
		return PaginationData{}, err
	}

	var markers pagelist.MarkerSequence
	switch variant {
	case "elastic":
		markers = page.ElasticMarkers(h.cfg.ElasticUnit)
	default:
		markers = page.Markers(pagelist.DefaultExtremes, pagelist.DefaultArounds)
	}

	pagination := PaginationData{
		CurrentPage: page.Number,
		TotalPages:  page.NumPages,
		Items:       h.markerItems(r, page, markers),
	}
	if page.HasPrevious() {
		pagination.PreviousURL = h.pageURL(r, page.PreviousNumber())
	}
	if page.HasNext() {
		pagination.NextURL = h.pageURL(r, page.NextNumber())
	}

	metrics.PageListRendered(variant, len(markers))

	return pagination, nil
}

// markerItems turns a marker sequence into rendered links. The current page
// and gaps get no URL; controls resolve to their target page.
func (h *EntryHandler) markerItems(r *http.Request, page *pagelist.Page, markers pagelist.MarkerSequence) []MarkerItem {
	items := make([]MarkerItem, 0, len(markers))
	for _, m := range markers {
		item := MarkerItem{Label: m.String()}

		switch {
		case m.IsGap():
			item.IsGap = true
		case m.IsControl():
			item.IsControl = true
			item.URL = h.pageURL(r, controlTarget(m.Control, page))
		default:
			item.Number = m.Number
			if m.Number == page.Number {
				item.IsCurrent = true
			} else {
				item.URL = h.pageURL(r, m.Number)
			}
		}

		items = append(items, item)
	}
	return items
}

// pageURL builds the link for a page number, preserving the rest of the
// querystring. Page one drops the page parameter entirely.
func (h *EntryHandler) pageURL(r *http.Request, number int) string {
	qs := pagelist.Querystring(r.URL.Query(), number, h.cfg.PageKey, pagelist.DefaultPage)
	if qs == "" {
		return r.URL.Path
	}
	return r.URL.Path + qs
}

// controlTarget resolves a navigation control to its page number.
func controlTarget(c pagelist.Control, page *pagelist.Page) int {
	switch c {
	case pagelist.First:
		return 1
	case pagelist.Previous:
		return page.PreviousNumber()
	case pagelist.Next:
		return page.NextNumber()
	default:
		return page.NumPages
	}
}

// entrySummaries transforms domain entries to their list display type.
func entrySummaries(entries []domain.Entry) []EntrySummary {
	summaries := make([]EntrySummary, len(entries))
	for i, e := range entries {
		summaries[i] = EntrySummary{
			ID:        e.ID,
			Title:     e.Title,
			Author:    e.Author,
			Excerpt:   e.Excerpt(200),
			Tags:      e.Tags,
			CreatedAt: e.CreatedAt,
		}
	}
	return summaries
}
