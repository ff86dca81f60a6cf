package handler

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbeckert/pagefold/internal/domain"
)

// =============================================================================
// Test Doubles
// =============================================================================

// mockEntryService implements service.EntryService for handler tests.
type mockEntryService struct {
	listFn    func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error)
	getFn     func(ctx context.Context, id uuid.UUID) (*domain.Entry, error)
	listCalls []domain.ListEntriesParams
}

func (m *mockEntryService) List(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
	m.listCalls = append(m.listCalls, params)
	return m.listFn(ctx, params)
}

func (m *mockEntryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	return m.getFn(ctx, id)
}

func (m *mockEntryService) Create(ctx context.Context, params domain.CreateEntryParams) (*domain.Entry, error) {
	return nil, nil
}

func (m *mockEntryService) Seed(ctx context.Context, n int) error {
	return nil
}

// listResult fabricates a counted list result with the requested slice filled
// from a feed of the given total size.
func listResult(total int64, params domain.ListEntriesParams) *domain.ListEntriesResult {
	n := int64(params.Limit)
	if remaining := total - int64(params.Offset); remaining < n {
		n = remaining
	}
	if n < 0 {
		n = 0
	}
	entries := make([]domain.Entry, n)
	for i := range entries {
		entries[i] = domain.Entry{
			ID:        uuid.New(),
			Title:     fmt.Sprintf("Note %d", int(params.Offset)+i+1),
			Author:    "Tester",
			Body:      "Body text for a field note.",
			CreatedAt: time.Now(),
		}
	}
	return &domain.ListEntriesResult{
		Entries: entries,
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}
}

// testRenderer builds a renderer with inline templates that expose the
// pagination view model for assertions. Each item renders as
// [label] for the current page and gaps, or [label](url) for links.
func testRenderer() *Renderer {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	listTmpl := template.Must(template.New("app").Parse(
		`{{len .Entries}} entries|{{range .Pagination.Items}}[{{.Label}}]{{if .URL}}({{.URL}}){{end}}{{end}}`))
	showTmpl := template.Must(template.New("app").Parse(`{{.Entry.Title}}`))
	partialTmpl := template.Must(template.New("entry-list").Parse(
		`{{len .Entries}} entries|more={{.MoreURL}}`))

	return &Renderer{
		templates: map[string]*template.Template{
			"feed":               listTmpl,
			"archive":            listTmpl,
			"entries/show":       showTmpl,
			"partial/entry-list": partialTmpl,
		},
		logger: logger,
	}
}

func newTestEntryHandler(svc *mockEntryService) *EntryHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEntryHandler(svc, testRenderer(), logger, EntryHandlerConfig{
		PerPage:     10,
		PageKey:     "page",
		ElasticUnit: 1,
	})
}

// =============================================================================
// Feed Tests
// =============================================================================

func TestEntryHandler_Feed_RendersWindowedPageList(t *testing.T) {
	svc := &mockEntryService{
		listFn: func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
			return listResult(100, params), nil
		},
	}
	h := newTestEntryHandler(svc)

	req := httptest.NewRequest("GET", "/?page=5", nil)
	rec := httptest.NewRecorder()

	h.Feed(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	// 100 entries at 10 per page is 10 pages, all within the fixed window.
	assert.Contains(t, body, "10 entries")
	assert.Contains(t, body, "[previous](/?page=4)")
	assert.Contains(t, body, "[next](/?page=6)")
	// The current page renders without a link.
	assert.Contains(t, body, "[5][6]")
	// Page one links drop the page parameter.
	assert.Contains(t, body, "[1](/)")

	// The naive offset matched the clamped page, so one query sufficed.
	require.Len(t, svc.listCalls, 1)
	assert.Equal(t, int32(40), svc.listCalls[0].Offset)
	assert.False(t, svc.listCalls[0].SkipCount)
}

func TestEntryHandler_Feed_ClampsOutOfRangePage(t *testing.T) {
	svc := &mockEntryService{
		listFn: func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
			return listResult(30, params), nil
		},
	}
	h := newTestEntryHandler(svc)

	req := httptest.NewRequest("GET", "/?page=99", nil)
	rec := httptest.NewRecorder()

	h.Feed(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// Page 99 of 3 clamps to the last page, which forces a second fetch
	// at the corrected offset.
	require.Len(t, svc.listCalls, 2)
	assert.Equal(t, int32(980), svc.listCalls[0].Offset)
	assert.Equal(t, int32(20), svc.listCalls[1].Offset)

	body := rec.Body.String()
	assert.Contains(t, body, "[2](/?page=2)")
	assert.NotContains(t, body, "[3](")
}

func TestEntryHandler_Feed_EmptyFeedRendersEmptyPage(t *testing.T) {
	svc := &mockEntryService{
		listFn: func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
			// The real service rejects non-positive limits.
			if params.Limit < 1 {
				return nil, domain.Invalid("entry.list", "limit must be positive")
			}
			return listResult(0, params), nil
		},
	}
	h := newTestEntryHandler(svc)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	h.Feed(rec, req)

	// An empty collection still has one page; it renders, empty.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0 entries")
	require.Len(t, svc.listCalls, 1)
}

func TestEntryHandler_Feed_EmptyFeedOutOfRangePage(t *testing.T) {
	svc := &mockEntryService{
		listFn: func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
			if params.Limit < 1 {
				return nil, domain.Invalid("entry.list", "limit must be positive")
			}
			return listResult(0, params), nil
		},
	}
	h := newTestEntryHandler(svc)

	req := httptest.NewRequest("GET", "/?page=99", nil)
	rec := httptest.NewRecorder()

	h.Feed(rec, req)

	// Clamping lands on the empty single page; no zero-limit query is made.
	require.Equal(t, http.StatusOK, rec.Code)
	for _, call := range svc.listCalls {
		assert.GreaterOrEqual(t, call.Limit, int32(1))
	}
}

func TestEntryHandler_Feed_ShortPageFetchesOnce(t *testing.T) {
	svc := &mockEntryService{
		listFn: func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
			return listResult(5, params), nil
		},
	}
	h := newTestEntryHandler(svc)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	h.Feed(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "5 entries")
	// The first fetch already covered the underfull page.
	require.Len(t, svc.listCalls, 1)
}

func TestEntryHandler_Feed_MalformedPageServesFirst(t *testing.T) {
	svc := &mockEntryService{
		listFn: func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
			return listResult(30, params), nil
		},
	}
	h := newTestEntryHandler(svc)

	req := httptest.NewRequest("GET", "/?page=banana", nil)
	rec := httptest.NewRecorder()

	h.Feed(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, svc.listCalls)
	assert.Equal(t, int32(0), svc.listCalls[0].Offset)
}

func TestEntryHandler_Feed_ServiceErrorReturns500(t *testing.T) {
	svc := &mockEntryService{
		listFn: func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
			return nil, domain.Internal(fmt.Errorf("boom"), "entry.list", "An unexpected error occurred")
		},
	}
	h := newTestEntryHandler(svc)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	h.Feed(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// =============================================================================
// Show More (htmx) Tests
// =============================================================================

func TestEntryHandler_Feed_HtmxShowMore(t *testing.T) {
	svc := &mockEntryService{
		listFn: func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
			result := listResult(100, params)
			result.Total = -1
			result.SetLazyMore(true)
			return result, nil
		},
	}
	h := newTestEntryHandler(svc)

	req := httptest.NewRequest("GET", "/?page=2", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	h.Feed(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// The fragment path skips the count and over-fetches instead.
	require.Len(t, svc.listCalls, 1)
	assert.True(t, svc.listCalls[0].SkipCount)
	assert.Equal(t, int32(10), svc.listCalls[0].Offset)

	body := rec.Body.String()
	assert.Contains(t, body, "10 entries")
	assert.Contains(t, body, "more=/?page=3")
}

func TestEntryHandler_Feed_HtmxShowMoreExhausted(t *testing.T) {
	svc := &mockEntryService{
		listFn: func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
			result := listResult(15, params)
			result.Total = -1
			result.SetLazyMore(false)
			return result, nil
		},
	}
	h := newTestEntryHandler(svc)

	req := httptest.NewRequest("GET", "/?page=2", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	h.Feed(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5 entries|more=", rec.Body.String())
}

// =============================================================================
// Archive Tests
// =============================================================================

func TestEntryHandler_Archive_RendersElasticPageList(t *testing.T) {
	svc := &mockEntryService{
		listFn: func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
			return listResult(500, params), nil
		},
	}
	h := newTestEntryHandler(svc)

	req := httptest.NewRequest("GET", "/archive", nil)
	rec := httptest.NewRecorder()

	h.Archive(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	// 50 pages: the elastic layout steps 1, 4, 11 from the front, which a
	// fixed window never shows.
	assert.Contains(t, body, "[4](/archive?page=4)")
	assert.Contains(t, body, "[11](/archive?page=11)")
	assert.Contains(t, body, "[next](/archive?page=2)")
	assert.Contains(t, body, "[last](/archive?page=50)")
	// No first/previous controls on page one.
	assert.NotContains(t, body, "[first]")
	assert.NotContains(t, body, "[previous]")
}

func TestEntryHandler_Archive_PreservesQuerystring(t *testing.T) {
	svc := &mockEntryService{
		listFn: func(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
			return listResult(100, params), nil
		},
	}
	h := newTestEntryHandler(svc)

	req := httptest.NewRequest("GET", "/archive?page=3&tag=go", nil)
	rec := httptest.NewRecorder()

	h.Archive(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()

	assert.Contains(t, body, "(/archive?page=4&tag=go)")
	// Page one keeps the other parameters but sheds the page key.
	assert.Contains(t, body, "(/archive?tag=go)")
}

// =============================================================================
// Show Tests
// =============================================================================

func TestEntryHandler_Show(t *testing.T) {
	id := uuid.New()
	svc := &mockEntryService{
		getFn: func(ctx context.Context, got uuid.UUID) (*domain.Entry, error) {
			require.Equal(t, id, got)
			return &domain.Entry{ID: id, Title: "On Pagination", Author: "Tester"}, nil
		},
	}
	h := newTestEntryHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /entries/{id}", h.Show)

	req := httptest.NewRequest("GET", "/entries/"+id.String(), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "On Pagination")
}

func TestEntryHandler_Show_NotFound(t *testing.T) {
	svc := &mockEntryService{
		getFn: func(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
			return nil, domain.NotFound("entry.get_by_id", "entry", id.String())
		},
	}
	h := newTestEntryHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /entries/{id}", h.Show)

	req := httptest.NewRequest("GET", "/entries/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntryHandler_Show_InvalidID(t *testing.T) {
	svc := &mockEntryService{
		getFn: func(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
			t.Fatal("service should not be called for an unparseable ID")
			return nil, nil
		},
	}
	h := newTestEntryHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /entries/{id}", h.Show)

	req := httptest.NewRequest("GET", "/entries/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
