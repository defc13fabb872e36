// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AdamDeHovitz/readers-choice/apperr"
	"github.com/AdamDeHovitz/readers-choice/models"
)

const bookColumns = `b.id, b.title, b.author, b.cover_url, b.description, b.isbn,
	b.published_year, b.page_count, b.external_source, b.external_id`

// bookRow holds the nullable columns of a book while scanning.
type bookRow struct {
	book          models.Book
	coverURL      sql.NullString
	description   sql.NullString
	isbn          sql.NullString
	publishedYear sql.NullInt64
	pageCount     sql.NullInt64
}

func (r *bookRow) dest() []any {
	return []any{
		&r.book.ID, &r.book.Title, &r.book.Author, &r.coverURL, &r.description, &r.isbn,
		&r.publishedYear, &r.pageCount, &r.book.ExternalSource, &r.book.ExternalID,
	}
}

func (r *bookRow) value() models.Book {
	b := r.book
	b.CoverURL = stringPtr(r.coverURL)
	b.Description = stringPtr(r.description)
	b.ISBN = stringPtr(r.isbn)
	b.PublishedYear = intPtr(r.publishedYear)
	b.PageCount = intPtr(r.pageCount)
	return b
}

// ResolveOrCreateBook returns the id of the book for a catalog search result,
// creating it on first use. Idempotent by (external_source, external_id).
func (s *Store) ResolveOrCreateBook(ctx context.Context, result models.BookSearchResult) (string, error) {
	return s.resolveBook(ctx, s.db, result)
}

func (s *Store) resolveBook(ctx context.Context, q querier, result models.BookSearchResult) (string, error) {
	_, err := s.exec(ctx, q, `
		INSERT INTO book (id, title, author, cover_url, description, isbn,
			published_year, page_count, external_source, external_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (external_source, external_id) DO NOTHING
	`, newID(), result.Title, result.Author, result.CoverURL, result.Description, result.ISBN,
		result.PublishedYear, result.PageCount, result.ExternalSource, result.ExternalID, s.timestamp())
	if err != nil {
		return "", fmt.Errorf("insert book: %w", err)
	}

	var bookID string
	err = s.queryRow(ctx, q, `
		SELECT id FROM book WHERE external_source = ? AND external_id = ?
	`, result.ExternalSource, result.ExternalID).Scan(&bookID)
	if err != nil {
		return "", fmt.Errorf("resolve book: %w", err)
	}

	return bookID, nil
}

func (s *Store) GetBook(ctx context.Context, bookID string) (models.Book, error) {
	return s.getBook(ctx, s.db, bookID)
}

func (s *Store) getBook(ctx context.Context, q querier, bookID string) (models.Book, error) {
	var row bookRow
	err := s.queryRow(ctx, q, `SELECT `+bookColumns+` FROM book b WHERE b.id = ?`, bookID).Scan(row.dest()...)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, apperr.NotFound("book not found")
	}
	if err != nil {
		return models.Book{}, fmt.Errorf("query book: %w", err)
	}
	return row.value(), nil
}

func (s *Store) bookExists(ctx context.Context, q querier, bookID string) (bool, error) {
	var exists bool
	err := s.queryRow(ctx, q, `SELECT EXISTS(SELECT 1 FROM book WHERE id = ?)`, bookID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check book: %w", err)
	}
	return exists, nil
}
