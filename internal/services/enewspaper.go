package services

import (
	"bytes"
	"context"
	"time"

	"github.com/jagruti-foundation/apiserver/internal/storage"
	"github.com/jagruti-foundation/apiserver/types"
)

const enewspaperKeyPrefix = "enewspapers"

// ENewspaperRepository defines persistence operations for editions.
type ENewspaperRepository interface {
	List(ctx context.Context) ([]types.ENewspaper, error)
	ListPublished(ctx context.Context, now time.Time, day time.Time) ([]types.ENewspaper, error)
	Get(ctx context.Context, id int) (types.ENewspaper, error)
	Create(ctx context.Context, item types.ENewspaper) (types.ENewspaper, error)
	UpdatePublishDate(ctx context.Context, id int, publishDate time.Time) (types.ENewspaper, error)
	Delete(ctx context.Context, id int) error
}

// ENewspaperService encapsulates e-newspaper edition use-cases.
type ENewspaperService struct {
	repo    ENewspaperRepository
	storage *storage.Storage
}

func NewENewspaperService(repo ENewspaperRepository, storage *storage.Storage) *ENewspaperService {
	return &ENewspaperService{repo: repo, storage: storage}
}

func (s *ENewspaperService) Upload(ctx context.Context, publishDate time.Time, userID int, file Upload) (types.ENewspaper, error) {
	key := objectKey(enewspaperKeyPrefix, file.Filename)
	if err := s.storage.Put(ctx, key, bytes.NewReader(file.Data), int64(len(file.Data)), file.ContentType()); err != nil {
		return types.ENewspaper{}, err
	}

	item, err := s.repo.Create(ctx, types.ENewspaper{
		FileKey:     key,
		PublishDate: publishDate,
		UserID:      userID,
	})
	if err != nil {
		_ = s.storage.Delete(ctx, key)
		return types.ENewspaper{}, err
	}

	item.FileURL = s.storage.PublicURL(item.FileKey)
	return item, nil
}

func (s *ENewspaperService) List(ctx context.Context) ([]types.ENewspaper, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.fillURLs(items)
	return items, nil
}

// ListPublished returns editions already past their publish date. When
// day is non-zero only editions of that calendar day are returned.
func (s *ENewspaperService) ListPublished(ctx context.Context, day time.Time) ([]types.ENewspaper, error) {
	items, err := s.repo.ListPublished(ctx, time.Now(), day)
	if err != nil {
		return nil, err
	}
	s.fillURLs(items)
	return items, nil
}

func (s *ENewspaperService) Get(ctx context.Context, id int) (types.ENewspaper, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.ENewspaper{}, err
	}
	item.FileURL = s.storage.PublicURL(item.FileKey)
	return item, nil
}

func (s *ENewspaperService) UpdatePublishDate(ctx context.Context, id int, publishDate time.Time) (types.ENewspaper, error) {
	item, err := s.repo.UpdatePublishDate(ctx, id, publishDate)
	if err != nil {
		return types.ENewspaper{}, err
	}
	item.FileURL = s.storage.PublicURL(item.FileKey)
	return item, nil
}

// Delete removes the stored edition file and then the record.
func (s *ENewspaperService) Delete(ctx context.Context, id int) error {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, item.FileKey); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *ENewspaperService) fillURLs(items []types.ENewspaper) {
	for i := range items {
		items[i].FileURL = s.storage.PublicURL(items[i].FileKey)
	}
}
