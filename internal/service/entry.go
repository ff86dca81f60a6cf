// Package service contains the business logic layer.
//
// This file implements the entry service backing the Pagefold feed.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/rbeckert/pagefold/internal/domain"
	"github.com/rbeckert/pagefold/internal/repository"
)

// EntryService defines the interface for feed entry operations.
type EntryService interface {
	// List retrieves a paginated slice of the feed, newest first.
	// With params.SkipCount set it runs in lazy mode: no COUNT(*) is issued
	// and the result only knows whether more entries follow.
	List(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error)

	// GetByID retrieves a single entry.
	// Returns domain.ENOTFOUND if no entry has the given ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error)

	// Create stores a new entry.
	// Returns domain.EINVALID for validation errors.
	Create(ctx context.Context, params domain.CreateEntryParams) (*domain.Entry, error)

	// Seed fills an empty feed with n generated entries so the pagination
	// surfaces have something to page through. A non-empty feed is left alone.
	Seed(ctx context.Context, n int) error
}

// entryQueries is the slice of the repository the entry service uses.
type entryQueries interface {
	CountEntries(ctx context.Context) (int64, error)
	ListEntries(ctx context.Context, arg repository.ListEntriesParams) ([]repository.Entry, error)
	GetEntryByID(ctx context.Context, id uuid.UUID) (repository.Entry, error)
	CreateEntry(ctx context.Context, arg repository.CreateEntryParams) (repository.Entry, error)
}

// entryService implements the EntryService interface.
type entryService struct {
	queries entryQueries
	logger  *slog.Logger
}

// NewEntryService creates a new EntryService.
func NewEntryService(queries *repository.Queries, logger *slog.Logger) EntryService {
	return &entryService{
		queries: queries,
		logger:  logger,
	}
}

// List retrieves a paginated slice of the feed.
func (s *entryService) List(ctx context.Context, params domain.ListEntriesParams) (*domain.ListEntriesResult, error) {
	const op = "entry.list"

	if params.Limit < 1 {
		return nil, domain.Invalid(op, "limit must be positive")
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	result := &domain.ListEntriesResult{
		Limit:  params.Limit,
		Offset: params.Offset,
	}

	fetch := params.Limit
	if params.SkipCount {
		// Lazy mode: over-fetch one row instead of counting.
		result.Total = -1
		fetch++
	} else {
		total, err := s.queries.CountEntries(ctx)
		if err != nil {
			s.logger.Error("failed to count entries", "error", err)
			return nil, domain.Internal(err, op, "failed to load entries")
		}
		result.Total = total
	}

	rows, err := s.queries.ListEntries(ctx, repository.ListEntriesParams{
		Limit:  fetch,
		Offset: params.Offset,
	})
	if err != nil {
		s.logger.Error("failed to list entries", "error", err, "offset", params.Offset)
		return nil, domain.Internal(err, op, "failed to load entries")
	}

	if params.SkipCount && int32(len(rows)) > params.Limit {
		result.SetLazyMore(true)
		rows = rows[:params.Limit]
	}

	result.Entries = make([]domain.Entry, len(rows))
	for i, row := range rows {
		result.Entries[i] = rowToEntry(row)
	}
	return result, nil
}

// GetByID retrieves a single entry.
func (s *entryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Entry, error) {
	const op = "entry.get"

	row, err := s.queries.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "entry", id.String())
		}
		s.logger.Error("failed to get entry", "error", err, "entry_id", id)
		return nil, domain.Internal(err, op, "failed to load entry")
	}

	entry := rowToEntry(row)
	return &entry, nil
}

// Create stores a new entry.
func (s *entryService) Create(ctx context.Context, params domain.CreateEntryParams) (*domain.Entry, error) {
	const op = "entry.create"

	if err := params.Validate(); err != nil {
		return nil, err
	}

	row, err := s.queries.CreateEntry(ctx, repository.CreateEntryParams{
		ID:        uuid.New(),
		Title:     strings.TrimSpace(params.Title),
		Author:    strings.TrimSpace(params.Author),
		Body:      params.Body,
		Tags:      tagsToJSON(params.Tags),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to create entry", "error", err)
		return nil, domain.Internal(err, op, "failed to create entry")
	}

	s.logger.Info("entry created", "entry_id", row.ID, "title", row.Title)

	entry := rowToEntry(row)
	return &entry, nil
}

// Seed fills an empty feed with generated entries.
func (s *entryService) Seed(ctx context.Context, n int) error {
	const op = "entry.seed"

	total, err := s.queries.CountEntries(ctx)
	if err != nil {
		return domain.Internal(err, op, "failed to count entries")
	}
	if total > 0 || n <= 0 {
		return nil
	}

	base := time.Now().UTC().Add(-time.Duration(n) * time.Hour)
	for i := 1; i <= n; i++ {
		_, err := s.queries.CreateEntry(ctx, repository.CreateEntryParams{
			ID:        uuid.New(),
			Title:     fmt.Sprintf("Field note #%d", i),
			Author:    "pagefold",
			Body:      fmt.Sprintf("Generated entry %d of %d for browsing the paginated feed.", i, n),
			Tags:      tagsToJSON([]string{"seed"}),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			return domain.Internal(err, op, "failed to seed entries")
		}
	}

	s.logger.Info("feed seeded", "entries", n)
	return nil
}

// rowToEntry converts a database row to the domain type.
func rowToEntry(row repository.Entry) domain.Entry {
	entry := domain.Entry{
		ID:        row.ID,
		Title:     row.Title,
		Author:    row.Author,
		Body:      row.Body,
		CreatedAt: row.CreatedAt,
	}
	if row.Tags.Valid {
		// Malformed stored tags are dropped rather than failing the read.
		_ = json.Unmarshal(row.Tags.RawMessage, &entry.Tags)
	}
	return entry
}

// tagsToJSON marshals tags for JSONB storage; empty tag lists store NULL.
func tagsToJSON(tags []string) pqtype.NullRawMessage {
	if len(tags) == 0 {
		return pqtype.NullRawMessage{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return pqtype.NullRawMessage{}
	}
	return pqtype.NullRawMessage{RawMessage: raw, Valid: true}
}
