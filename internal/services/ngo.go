package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jagruti-foundation/apiserver/internal/events"
	"github.com/jagruti-foundation/apiserver/internal/storage"
	"github.com/jagruti-foundation/apiserver/types"
)

const (
	storyKeyPrefix   = "stories"
	galleryKeyPrefix = "gallery"

	donationStatusSuccess = "success"
)

// StoryRepository defines persistence operations for NGO stories.
type StoryRepository interface {
	List(ctx context.Context) ([]types.Story, error)
	Create(ctx context.Context, item types.Story) (types.Story, error)
}

// GalleryRepository defines persistence operations for gallery media.
type GalleryRepository interface {
	List(ctx context.Context) ([]types.GalleryItem, error)
	Create(ctx context.Context, item types.GalleryItem) (types.GalleryItem, error)
}

// DonationRepository defines persistence operations for donations.
type DonationRepository interface {
	Create(ctx context.Context, donation types.Donation) (types.Donation, error)
	List(ctx context.Context, offset, limit int) ([]types.Donation, int, error)
}

// NGOService encapsulates the NGO-facing use-cases: impact stories,
// the media gallery, and mocked donations.
type NGOService struct {
	stories   StoryRepository
	gallery   GalleryRepository
	donations DonationRepository
	storage   *storage.Storage
	bus       *events.Bus
}

func NewNGOService(
	stories StoryRepository,
	gallery GalleryRepository,
	donations DonationRepository,
	storage *storage.Storage,
	bus *events.Bus,
) *NGOService {
	return &NGOService{
		stories:   stories,
		gallery:   gallery,
		donations: donations,
		storage:   storage,
		bus:       bus,
	}
}

func (s *NGOService) CreateStory(ctx context.Context, title, description string, image Upload) (types.Story, error) {
	key := objectKey(storyKeyPrefix, image.Filename)
	if err := s.storage.Put(ctx, key, bytes.NewReader(image.Data), int64(len(image.Data)), image.ContentType()); err != nil {
		return types.Story{}, err
	}

	item, err := s.stories.Create(ctx, types.Story{
		Title:       title,
		Description: description,
		ImageKey:    key,
	})
	if err != nil {
		_ = s.storage.Delete(ctx, key)
		return types.Story{}, err
	}

	item.ImageURL = s.storage.PublicURL(item.ImageKey)
	return item, nil
}

func (s *NGOService) ListStories(ctx context.Context) ([]types.Story, error) {
	items, err := s.stories.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ImageURL = s.storage.PublicURL(items[i].ImageKey)
	}
	return items, nil
}

func (s *NGOService) CreateGalleryItem(ctx context.Context, galleryType types.GalleryType, caption string, media Upload) (types.GalleryItem, error) {
	key := objectKey(galleryKeyPrefix, media.Filename)
	if err := s.storage.Put(ctx, key, bytes.NewReader(media.Data), int64(len(media.Data)), media.ContentType()); err != nil {
		return types.GalleryItem{}, err
	}

	item, err := s.gallery.Create(ctx, types.GalleryItem{
		Type:     galleryType,
		MediaKey: key,
		Caption:  caption,
	})
	if err != nil {
		_ = s.storage.Delete(ctx, key)
		return types.GalleryItem{}, err
	}

	item.MediaURL = s.storage.PublicURL(item.MediaKey)
	return item, nil
}

func (s *NGOService) ListGallery(ctx context.Context) ([]types.GalleryItem, error) {
	items, err := s.gallery.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].MediaURL = s.storage.PublicURL(items[i].MediaKey)
	}
	return items, nil
}

// CreateDonation records a mocked donation. Payment gateway integration
// is out of scope: the payment id is generated and the status is always
// success.
func (s *NGOService) CreateDonation(ctx context.Context, userID int, amount float64) (types.Donation, error) {
	donation, err := s.donations.Create(ctx, types.Donation{
		UserID:    userID,
		Amount:    amount,
		PaymentID: fmt.Sprintf("mock_payment_%d", time.Now().UnixMilli()),
		Status:    donationStatusSuccess,
	})
	if err != nil {
		return types.Donation{}, err
	}

	if err := s.bus.Publish(ctx, events.ChannelDonationRecorded, events.DonationRecorded{
		DonationID: donation.ID,
		UserID:     donation.UserID,
		Amount:     donation.Amount,
		PaymentID:  donation.PaymentID,
		RecordedAt: time.Now(),
	}); err != nil {
		log.Printf("failed to publish donation event: %v", err)
	}

	return donation, nil
}

func (s *NGOService) ListDonations(ctx context.Context, offset, limit int) ([]types.Donation, int, error) {
	return s.donations.List(ctx, offset, limit)
}
