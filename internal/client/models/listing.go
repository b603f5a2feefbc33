package models

import (
	"errors"
	"strconv"
	"strings"
)

// Categories a listing may belong to. The backend stores the string verbatim,
// so the set is enforced client-side before dispatch.
const (
	CategoryElectronics = "Electronics"
	CategoryBooks       = "Books"
	CategoryFurniture   = "Furniture"
	CategoryClothing    = "Clothing"
)

var (
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidCategory = errors.New("invalid category")
)

// Categories returns the fixed category set in display order.
func Categories() []string {
	return []string{CategoryElectronics, CategoryBooks, CategoryFurniture, CategoryClothing}
}

// ValidCategory reports whether s is one of the known categories.
func ValidCategory(s string) bool {
	switch s {
	case CategoryElectronics, CategoryBooks, CategoryFurniture, CategoryClothing:
		return true
	}
	return false
}

// WireImage is the image shape the backend serves: raw bytes encoded as
// standard base64 next to their content type.
type WireImage struct {
	ID          int64  `json:"id,omitempty"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

// WireListing is the JSON shape of a listing as exchanged over HTTP.
// Field names must stay in sync with the backend.
type WireListing struct {
	ID                 int64       `json:"id"`
	UserEmail          string      `json:"userEmail"`
	ProductName        string      `json:"productName"`
	ProductDescription string      `json:"productDescription"`
	Price              float64     `json:"price"`
	Category           string      `json:"category"`
	UserName           string      `json:"userName,omitempty"`
	Images             []WireImage `json:"images"`
}

// DisplayListing is the shape rendered to the user: string id, price with a
// currency marker, images as data URIs.
type DisplayListing struct {
	ID          string
	Name        string
	Description string
	Price       string
	Category    string
	Seller      string
	SellerName  string
	Images      []string
}

// DraftImage is one image attached to a draft. Exactly one of Raw and URI is
// set: Raw carries bytes pending upload, URI carries a persisted image
// unchanged from the server.
type DraftImage struct {
	Name        string
	ContentType string
	Raw         []byte
	URI         string
}

// Pending reports whether the image still has to be uploaded.
func (i DraftImage) Pending() bool {
	return len(i.Raw) > 0
}

// ListingDraft is the in-memory form state for creating or editing a listing.
// An empty ID signals create intent, a non-empty ID signals update intent.
type ListingDraft struct {
	ID          string
	Name        string
	Description string
	Price       string
	Category    string
	Images      []DraftImage
}

// DisplayPrice renders a price for the UI. The transform is invertible:
// EditPrice(DisplayPrice(p)) parses back to p.
func DisplayPrice(p float64) string {
	return "$" + strconv.FormatFloat(p, 'f', 2, 64)
}

// EditPrice strips the currency marker so the value can go back into the
// price input as a bare decimal string.
func EditPrice(display string) string {
	return strings.TrimPrefix(display, "$")
}

// ParsePrice parses a bare decimal price string. Used as the local gate
// before any create/update call goes out.
func ParsePrice(s string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	return p, nil
}

// ToDisplay maps a wire listing into its display form.
func ToDisplay(w WireListing) DisplayListing {
	images := make([]string, 0, len(w.Images))
	for _, img := range w.Images {
		images = append(images, DataURI(img.ContentType, img.Data))
	}
	return DisplayListing{
		ID:          strconv.FormatInt(w.ID, 10),
		Name:        w.ProductName,
		Description: w.ProductDescription,
		Price:       DisplayPrice(w.Price),
		Category:    w.Category,
		Seller:      w.UserEmail,
		SellerName:  w.UserName,
		Images:      images,
	}
}

// ToDisplayAll maps a whole wire collection, preserving order.
func ToDisplayAll(ws []WireListing) []DisplayListing {
	out := make([]DisplayListing, 0, len(ws))
	for _, w := range ws {
		out = append(out, ToDisplay(w))
	}
	return out
}

// DraftFromDisplay loads a listing into an editable draft: the price loses
// its currency marker and persisted images stay as data URIs until the draft
// is saved.
func DraftFromDisplay(d DisplayListing) ListingDraft {
	images := make([]DraftImage, 0, len(d.Images))
	for _, uri := range d.Images {
		images = append(images, DraftImage{URI: uri})
	}
	return ListingDraft{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       EditPrice(d.Price),
		Category:    d.Category,
		Images:      images,
	}
}
