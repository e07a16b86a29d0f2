package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/jursearch"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ jursearch.DocumentService = (*DocumentService)(nil)

// DocumentService implements jursearch.DocumentService using SQLite.
type DocumentService struct {
	db  *DB
	now func() time.Time
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db, now: time.Now}
}

// hashContent returns the hex xxHash of content.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

const documentColumns = "id, source, source_url, title, content, content_hash, score, published_at, fetched_at"

// SaveDocument inserts doc or refreshes the row stored under the same
// source URL, which keeps its original ID.
func (s *DocumentService) SaveDocument(ctx context.Context, doc *jursearch.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	fetchedAt := s.now().UTC()
	hash := hashContent(doc.Content)

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(source_url) DO UPDATE SET
			source = excluded.source,
			title = excluded.title,
			content = excluded.content,
			content_hash = excluded.content_hash,
			score = excluded.score,
			published_at = excluded.published_at,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, uuid.New().String(), string(doc.Source), doc.SourceURL, doc.Title, doc.Content, hash,
		doc.Score, formatNullTime(doc.PublishedAt), formatTime(fetchedAt)).Scan(&id)
	if err != nil {
		return err
	}

	doc.ID = id
	doc.ContentHash = hash
	doc.FetchedAt = fetchedAt
	return nil
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*jursearch.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, jursearch.Errorf(jursearch.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FindDocuments retrieves documents matching the filter, most recently
// fetched first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter jursearch.DocumentFilter) ([]*jursearch.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, string(*filter.Source))
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*jursearch.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return jursearch.Errorf(jursearch.ENOTFOUND, "document not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*jursearch.Document, error) {
	var doc jursearch.Document
	var source, fetchedAt string
	var publishedAt sql.NullString

	if err := row.Scan(&doc.ID, &source, &doc.SourceURL, &doc.Title, &doc.Content,
		&doc.ContentHash, &doc.Score, &publishedAt, &fetchedAt); err != nil {
		return nil, err
	}
	doc.Source = jursearch.Source(source)

	var err error
	if doc.FetchedAt, err = parseTime(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	if doc.PublishedAt, err = parseNullTime(publishedAt, "published_at"); err != nil {
		return nil, err
	}
	return &doc, nil
}
