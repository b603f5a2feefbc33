package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ufmarketplace/ufmarket/internal/client/api"
	"github.com/ufmarketplace/ufmarket/internal/client/models"
	"github.com/ufmarketplace/ufmarket/internal/client/session"
	"github.com/ufmarketplace/ufmarket/internal/common"
)

const invalidPriceMessage = "Please enter a valid price"

// ListingService keeps the caller's listing collection consistent with the
// server. Every mutation resolves to the server's full updated collection,
// which the caller replaces local state with; nothing is spliced locally.
type ListingService interface {
	// Mine returns the caller's own listings in display form.
	Mine(ctx context.Context) ([]models.DisplayListing, error)

	// Browse returns other users' listings in display form.
	Browse(ctx context.Context) ([]models.DisplayListing, error)

	// Save dispatches create or update based on the draft id and returns
	// the authoritative collection.
	Save(ctx context.Context, draft models.ListingDraft) ([]models.DisplayListing, error)

	// Delete removes a listing and returns the remaining collection.
	Delete(ctx context.Context, listingID string) ([]models.DisplayListing, error)
}

type listingService struct {
	client api.Client
	store  session.Store
}

func NewListingService(client api.Client, store session.Store) ListingService {
	return &listingService{client: client, store: store}
}

func (s *listingService) email(ctx context.Context) (string, error) {
	sess, ok, err := s.store.Current(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrNoSession
	}
	return sess.Email, nil
}

func (s *listingService) Mine(ctx context.Context) ([]models.DisplayListing, error) {
	email, err := s.email(ctx)
	if err != nil {
		return nil, err
	}
	listings, err := s.client.UserListings(ctx, email)
	if err != nil {
		return nil, err
	}
	return models.ToDisplayAll(listings), nil
}

func (s *listingService) Browse(ctx context.Context) ([]models.DisplayListing, error) {
	email, err := s.email(ctx)
	if err != nil {
		return nil, err
	}
	listings, err := s.client.Listings(ctx, email)
	if err != nil {
		return nil, err
	}
	return models.ToDisplayAll(listings), nil
}

func (s *listingService) Save(ctx context.Context, draft models.ListingDraft) ([]models.DisplayListing, error) {
	price, err := models.ParsePrice(draft.Price)
	if err != nil {
		return nil, ValidationError(invalidPriceMessage)
	}
	if !models.ValidCategory(draft.Category) {
		return nil, ValidationError("Please select a valid category")
	}

	email, err := s.email(ctx)
	if err != nil {
		return nil, err
	}

	up := api.ListingUpload{
		ListingID:   draft.ID,
		Name:        draft.Name,
		Description: draft.Description,
		Price:       price,
		Category:    draft.Category,
		UserEmail:   email,
	}

	var listings []models.WireListing
	if draft.ID == "" {
		// Create: only freshly attached binary images go out; persisted
		// placeholders cannot exist yet and are dropped.
		up.Images = pendingImages(draft.Images)
		listings, err = s.client.CreateListing(ctx, up)
	} else {
		// Update: persisted data URIs are decoded back to raw bytes so the
		// multipart payload is uniform.
		up.Images, err = allImages(draft.Images)
		if err != nil {
			return nil, err
		}
		listings, err = s.client.UpdateListing(ctx, up)
	}
	if err != nil {
		return nil, err
	}
	return models.ToDisplayAll(listings), nil
}

func (s *listingService) Delete(ctx context.Context, listingID string) ([]models.DisplayListing, error) {
	email, err := s.email(ctx)
	if err != nil {
		return nil, err
	}
	listings, err := s.client.DeleteListing(ctx, listingID, email)
	if err != nil {
		return nil, err
	}
	return models.ToDisplayAll(listings), nil
}

func pendingImages(images []models.DraftImage) []api.ImageUpload {
	out := make([]api.ImageUpload, 0, len(images))
	for _, img := range images {
		if !img.Pending() {
			continue
		}
		out = append(out, api.ImageUpload{Name: img.Name, ContentType: img.ContentType, Data: img.Raw})
	}
	return out
}

func allImages(images []models.DraftImage) ([]api.ImageUpload, error) {
	out := make([]api.ImageUpload, 0, len(images))
	for _, img := range images {
		if img.Pending() {
			out = append(out, api.ImageUpload{Name: img.Name, ContentType: img.ContentType, Data: img.Raw})
			continue
		}
		ct, raw, err := models.ParseDataURI(img.URI)
		if err != nil {
			return nil, fmt.Errorf("decoding stored image: %w", err)
		}
		out = append(out, api.ImageUpload{
			Name:        uuid.NewString() + extensionFor(ct),
			ContentType: ct,
			Data:        raw,
		})
	}
	return out, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
