package jursearch

import (
	"context"
	"time"
)

// Document is a search result persisted for later review.
type Document struct {
	ID          string     `json:"id"`
	Source      Source     `json:"source"`
	SourceURL   string     `json:"sourceUrl"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ContentHash string     `json:"contentHash"`
	Score       float64    `json:"score"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	FetchedAt   time.Time  `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	if d.Source == "" {
		return Errorf(EINVALID, "document source required")
	}
	return nil
}

// NewDocument builds a persistable document from a unified search hit.
func NewDocument(doc *UnifiedDoc) *Document {
	return &Document{
		Source:      doc.Source,
		SourceURL:   doc.URL,
		Title:       doc.Title,
		Content:     doc.Content,
		Score:       doc.ScoreRank,
		PublishedAt: doc.PublishedAt,
	}
}

// DocumentService represents a service for managing stored documents.
type DocumentService interface {
	// SaveDocument inserts the document, or updates the stored document
	// with the same source URL. ID and FetchedAt are set on return.
	SaveDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID        *string `json:"id"`
	Source    *Source `json:"source"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
