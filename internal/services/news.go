package services

import (
	"bytes"
	"context"
	"time"

	"github.com/jagruti-foundation/apiserver/internal/storage"
	"github.com/jagruti-foundation/apiserver/types"
)

const newsKeyPrefix = "news"

// NewsRepository defines persistence operations for news articles.
type NewsRepository interface {
	List(ctx context.Context, offset, limit int) ([]types.News, int, error)
	Get(ctx context.Context, id int) (types.News, error)
	Create(ctx context.Context, item types.News) (types.News, error)
	Delete(ctx context.Context, id int) error
}

// NewsService encapsulates news use-cases: PDF-backed articles created
// by reporters and above, publicly readable, deletable by admins.
type NewsService struct {
	repo    NewsRepository
	storage *storage.Storage
}

func NewNewsService(repo NewsRepository, storage *storage.Storage) *NewsService {
	return &NewsService{repo: repo, storage: storage}
}

// Create uploads the article PDF to object storage and records the
// article. The stored value is the object key; the public URL is
// derived per backend.
func (s *NewsService) Create(ctx context.Context, title string, date time.Time, authorID int, pdf Upload) (types.News, error) {
	key := objectKey(newsKeyPrefix, pdf.Filename)
	if err := s.storage.Put(ctx, key, bytes.NewReader(pdf.Data), int64(len(pdf.Data)), pdf.ContentType()); err != nil {
		return types.News{}, err
	}

	item, err := s.repo.Create(ctx, types.News{
		Title:    title,
		Date:     date,
		PDFKey:   key,
		AuthorID: authorID,
	})
	if err != nil {
		// Best effort; an orphaned object is preferable to a dangling row.
		_ = s.storage.Delete(ctx, key)
		return types.News{}, err
	}

	item.PDFURL = s.storage.PublicURL(item.PDFKey)
	return item, nil
}

func (s *NewsService) List(ctx context.Context, offset, limit int) ([]types.News, int, error) {
	items, total, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		items[i].PDFURL = s.storage.PublicURL(items[i].PDFKey)
	}
	return items, total, nil
}

func (s *NewsService) Get(ctx context.Context, id int) (types.News, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.News{}, err
	}
	item.PDFURL = s.storage.PublicURL(item.PDFKey)
	return item, nil
}

// Delete removes the stored PDF and then the article record.
func (s *NewsService) Delete(ctx context.Context, id int) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, item.PDFKey); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
