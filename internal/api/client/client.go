// Package client is the HTTP counterpart of package api. It satisfies the
// same domain interfaces as the in-process services so the CLI can run
// against either.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"matmarket/internal/api"
	"matmarket/internal/domain"
)

type HTTP struct {
	Base string
	HTTP *http.Client
}

func NewHTTP(base string) *HTTP { return &HTTP{Base: base, HTTP: http.DefaultClient} }

var (
	_ domain.AccountService = (*HTTP)(nil)
	_ domain.Marketplace    = (*HTTP)(nil)
)

func (c *HTTP) Register(ctx context.Context, reg domain.Registration) error {
	return c.postJSON(ctx, "/register", reg, nil)
}

func (c *HTTP) Authenticate(ctx context.Context, email, password string) error {
	err := c.postJSON(ctx, "/login", api.LoginRequest{Email: email, Password: password}, nil)
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		ae.Email = email
	}
	return err
}

func (c *HTTP) List(ctx context.Context) ([]domain.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/listings", nil)
	if err != nil {
		return nil, err
	}
	var out []domain.Listing
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTP) Publish(ctx context.Context, form domain.ListingForm, blobs []domain.Blob) (domain.Listing, error) {
	body, contentType, err := encodeListingForm(form, blobs)
	if err != nil {
		return domain.Listing{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/listings", body)
	if err != nil {
		return domain.Listing{}, err
	}
	req.Header.Set("Content-Type", contentType)

	var out domain.Listing
	if err := c.do(req, &out); err != nil {
		return domain.Listing{}, err
	}
	return out, nil
}

func (c *HTTP) postJSON(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HTTP) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return decodeError(req, resp)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// decodeError turns an error response back into the domain error the server
// reported, so errors.Is and the Is* helpers work across the wire.
func decodeError(req *http.Request, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body api.ErrorBody
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, resp.Status)
	}

	sentinel := domain.ErrorFromCode(body.Error)
	if sentinel == nil {
		return fmt.Errorf("%s %s: %s: %s", req.Method, req.URL.Path, resp.Status, body.Message)
	}
	switch resp.StatusCode {
	case http.StatusUnprocessableEntity, http.StatusConflict:
		return domain.Invalid(sentinel, body.Field)
	case http.StatusUnauthorized:
		return &domain.AuthError{Err: sentinel}
	default:
		return fmt.Errorf("%w: %s", sentinel, body.Message)
	}
}

func encodeListingForm(form domain.ListingForm, blobs []domain.Blob) (io.Reader, string, error) {
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)

	fields := [][2]string{
		{"material_title", form.MaterialTitle},
		{"category", form.Category},
		{"quantity", strconv.Itoa(form.Quantity)},
		{"unit", form.Unit},
		{"price_per_unit", strconv.FormatFloat(form.PricePerUnit, 'f', -1, 64)},
		{"location", form.Location},
		{"condition", form.Condition},
		{"description", form.Description},
		{"contact_name", form.ContactName},
		{"contact_email", form.ContactEmail},
		{"contact_phone", form.ContactPhone},
		{"preferred_contact", form.PreferredContact},
		{"accepted_terms", strconv.FormatBool(form.AcceptedTerms)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	for _, b := range blobs {
		part, err := mw.CreateFormFile("images", b.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(b.Data); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf, mw.FormDataContentType(), nil
}
