package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ufmarketplace/ufmarket/internal/client/models"
	"github.com/ufmarketplace/ufmarket/internal/common"
)

// HTTPClient talks to the marketplace REST backend. Paths and field names
// follow the deployed API and must not change.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
}

func NewHTTPClient(baseURL string, timeout time.Duration, creds CredentialSource) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
	}
}

// authResponse is the body of successful /login and /signup calls.
type authResponse struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	UserID    int64  `json:"userId"`
}

func (r authResponse) session() models.Session {
	return models.Session{
		Token:  r.SessionID,
		Name:   r.Name,
		Email:  r.Email,
		UserID: strconv.FormatInt(r.UserID, 10),
	}
}

// newRequest builds a request and attaches the session headers when a token
// is stored. Without a token the request goes out unauthenticated.
func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.creds != nil {
		sessionID, userID, err := c.creds.Credentials(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading credentials: %w", err)
		}
		if sessionID != "" {
			req.Header.Set(common.SessionIDHeaderName, sessionID)
			req.Header.Set(common.UserIDHeaderName, userID)
		}
	}

	return req, nil
}

// do executes the request and returns the response body. Transport failures
// wrap ErrUnavailable; non-2xx responses become a ServerError carrying the
// body verbatim.
func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, bytes.NewReader(b), "application/json")
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *HTTPClient) getListings(ctx context.Context, path string, query url.Values) ([]models.WireListing, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var listings []models.WireListing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("decoding listings: %w", err)
	}
	return listings, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (models.Session, error) {
	body, err := c.postJSON(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return models.Session{}, err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Session{}, fmt.Errorf("decoding login response: %w", err)
	}
	return resp.session(), nil
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) (models.Session, error) {
	body, err := c.postJSON(ctx, "/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return models.Session{}, err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Session{}, fmt.Errorf("decoding signup response: %w", err)
	}
	// The signup ack may omit identity fields the login response carries.
	if resp.Email == "" {
		resp.Email = email
	}
	if resp.Name == "" {
		resp.Name = name
	}
	return resp.session(), nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, name, email, password string) error {
	_, err := c.postJSON(ctx, "/changePassword", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	return err
}

func (c *HTTPClient) SendVerificationCode(ctx context.Context, email string) error {
	_, err := c.postJSON(ctx, "/sendEmailVerificationCode", map[string]string{"email": email})
	return err
}

func (c *HTTPClient) VerifyVerificationCode(ctx context.Context, email, code string) error {
	_, err := c.postJSON(ctx, "/verifyEmailVerificationCode", map[string]string{
		"email": email,
		"code":  code,
	})
	return err
}

func (c *HTTPClient) UserListings(ctx context.Context, email string) ([]models.WireListing, error) {
	return c.getListings(ctx, "/listings/user", url.Values{"userEmail": {email}})
}

func (c *HTTPClient) Listings(ctx context.Context, email string) ([]models.WireListing, error) {
	return c.getListings(ctx, "/listings", url.Values{"currentUser": {email}})
}

func (c *HTTPClient) CreateListing(ctx context.Context, up ListingUpload) ([]models.WireListing, error) {
	body, contentType, err := encodeListingForm(up)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/listings", nil, body, contentType)
	if err != nil {
		return nil, err
	}
	respBody, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var listings []models.WireListing
	if err := json.Unmarshal(respBody, &listings); err != nil {
		return nil, fmt.Errorf("decoding create response: %w", err)
	}
	return listings, nil
}

// UpdateListing sends the mutation, then re-fetches the caller's listings so
// the returned collection is the server's authoritative state.
func (c *HTTPClient) UpdateListing(ctx context.Context, up ListingUpload) ([]models.WireListing, error) {
	body, contentType, err := encodeListingForm(up)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/listing/updateListing", nil, body, contentType)
	if err != nil {
		return nil, err
	}
	if _, err := c.do(req); err != nil {
		return nil, err
	}
	return c.UserListings(ctx, up.UserEmail)
}

// DeleteListing removes a listing, then resolves to the remaining set the
// same way UpdateListing does.
func (c *HTTPClient) DeleteListing(ctx context.Context, listingID, email string) ([]models.WireListing, error) {
	query := url.Values{
		"listingId": {listingID},
		"userEmail": {email},
	}
	req, err := c.newRequest(ctx, http.MethodDelete, "/listing/deleteListing", query, nil, "")
	if err != nil {
		return nil, err
	}
	if _, err := c.do(req); err != nil {
		return nil, err
	}
	return c.UserListings(ctx, email)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeListingForm builds the multipart body shared by the create and
// update endpoints: scalar form fields plus one binary part per image.
func encodeListingForm(up ListingUpload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"listingId":          up.ListingID,
		"productName":        up.Name,
		"productDescription": up.Description,
		"price":              strconv.FormatFloat(up.Price, 'f', -1, 64),
		"category":           up.Category,
		"userEmail":          up.UserEmail,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	for _, img := range up.Images {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, quoteEscaper.Replace(img.Name)))
		if img.ContentType != "" {
			h.Set("Content-Type", img.ContentType)
		}
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
