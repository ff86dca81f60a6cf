// Package repository provides database access for Pagefold.
//
// Queries are written against PostgreSQL through database/sql using the pgx
// stdlib driver registered in cmd/server.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// Queries holds a handle to the database and exposes typed query methods.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance backed by the given database.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// Entry is a database row of the entries table. Tags is a JSONB array.
type Entry struct {
	ID        uuid.UUID
	Title     string
	Author    string
	Body      string
	Tags      pqtype.NullRawMessage
	CreatedAt time.Time
}

const countEntries = `
SELECT count(*) FROM entries
`

// CountEntries returns the total number of feed entries.
func (q *Queries) CountEntries(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countEntries).Scan(&count)
	return count, err
}

const listEntries = `
SELECT id, title, author, body, tags, created_at
FROM entries
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2
`

// ListEntriesParams bounds a list query.
type ListEntriesParams struct {
	Limit  int32
	Offset int32
}

// ListEntries returns a page of entries, newest first.
func (q *Queries) ListEntries(ctx context.Context, arg ListEntriesParams) ([]Entry, error) {
	rows, err := q.db.QueryContext(ctx, listEntries, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Title, &e.Author, &e.Body, &e.Tags, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

const getEntryByID = `
SELECT id, title, author, body, tags, created_at
FROM entries
WHERE id = $1
`

// GetEntryByID returns a single entry.
func (q *Queries) GetEntryByID(ctx context.Context, id uuid.UUID) (Entry, error) {
	var e Entry
	err := q.db.QueryRowContext(ctx, getEntryByID, id).
		Scan(&e.ID, &e.Title, &e.Author, &e.Body, &e.Tags, &e.CreatedAt)
	return e, err
}

const createEntry = `
INSERT INTO entries (id, title, author, body, tags, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, title, author, body, tags, created_at
`

// CreateEntryParams holds the column values for a new entry.
type CreateEntryParams struct {
	ID        uuid.UUID
	Title     string
	Author    string
	Body      string
	Tags      pqtype.NullRawMessage
	CreatedAt time.Time
}

// CreateEntry inserts an entry and returns the stored row.
func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (Entry, error) {
	var e Entry
	err := q.db.QueryRowContext(ctx, createEntry,
		arg.ID, arg.Title, arg.Author, arg.Body, arg.Tags, arg.CreatedAt).
		Scan(&e.ID, &e.Title, &e.Author, &e.Body, &e.Tags, &e.CreatedAt)
	return e, err
}
