package api

import (
	"context"

	"github.com/ufmarketplace/ufmarket/internal/client/models"
)

// Client is the gateway to the marketplace backend. Every method surfaces
// server-side failures verbatim (see ServerError) and maps transport
// failures to ErrUnavailable; no call is ever retried here.
//
// Create, update, and delete all resolve to the caller's full, authoritative
// listing collection so callers can replace local state wholesale.
type Client interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
	Signup(ctx context.Context, name, email, password string) (models.Session, error)
	ChangePassword(ctx context.Context, name, email, password string) error

	SendVerificationCode(ctx context.Context, email string) error
	VerifyVerificationCode(ctx context.Context, email, code string) error

	UserListings(ctx context.Context, email string) ([]models.WireListing, error)
	Listings(ctx context.Context, email string) ([]models.WireListing, error)
	CreateListing(ctx context.Context, up ListingUpload) ([]models.WireListing, error)
	UpdateListing(ctx context.Context, up ListingUpload) ([]models.WireListing, error)
	DeleteListing(ctx context.Context, listingID, email string) ([]models.WireListing, error)
}

// ImageUpload is one binary image part of a multipart listing request.
type ImageUpload struct {
	Name        string
	ContentType string
	Data        []byte
}

// ListingUpload carries the multipart form fields for the create and update
// endpoints. ListingID is empty on create.
type ListingUpload struct {
	ListingID   string
	Name        string
	Description string
	Price       float64
	Category    string
	UserEmail   string
	Images      []ImageUpload
}

// CredentialSource yields the stored session token and user id, both empty
// when nobody is logged in. The session store implements it.
type CredentialSource interface {
	Credentials(ctx context.Context) (sessionID, userID string, err error)
}
