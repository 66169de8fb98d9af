package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"matmarket/internal/domain"
	"matmarket/internal/services/listing"
	"matmarket/internal/store"
)

const (
	// maxFormMemory bounds the in-memory part of a parsed multipart listing
	// form; larger parts spill to temporary files.
	maxFormMemory = 10 << 20
	// DefaultMaxBodyBytes bounds a listing request body.
	DefaultMaxBodyBytes = 32 << 20
	// maxJSONBytes bounds register and login bodies.
	maxJSONBytes = 1 << 20
)

// Handler serves the marketplace routes.
type Handler struct {
	accounts     domain.AccountService
	market       domain.Marketplace
	uploads      domain.UploadStore
	log          *slog.Logger
	maxUploads   int
	maxBodyBytes int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithMaxUploads sets how many image parts of a listing request are read.
// Non-positive values keep the default.
func WithMaxUploads(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUploads = n
		}
	}
}

// WithMaxBodyBytes bounds listing request bodies. Non-positive values keep
// the default.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// NewHandler returns the routed, logged http.Handler. uploads may be nil, in
// which case GET /uploads/{name} is not registered.
func NewHandler(accounts domain.AccountService, market domain.Marketplace, uploads domain.UploadStore, log *slog.Logger, opts ...Option) http.Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	h := &Handler{
		accounts:     accounts,
		market:       market,
		uploads:      uploads,
		log:          log,
		maxUploads:   store.DefaultMaxUploads,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", h.register)
	mux.HandleFunc("POST /login", h.login)
	mux.HandleFunc("GET /listings", h.listListings)
	mux.HandleFunc("POST /listings", h.publishListing)
	if uploads != nil {
		mux.HandleFunc("GET /uploads/{name}", h.serveUpload)
	}
	return LoggingMiddleware(log, mux)
}

// LoginRequest is the POST /login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StatusResponse acknowledges a successful register or login.
type StatusResponse struct {
	Status string `json:"status"`
	Email  string `json:"email,omitempty"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var reg domain.Registration
	if err := decodeJSON(w, r, &reg); err != nil {
		writeBodyError(w, err)
		return
	}
	if err := h.accounts.Register(r.Context(), reg); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, StatusResponse{Status: "registered", Email: reg.Email})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeBodyError(w, err)
		return
	}
	if err := h.accounts.Authenticate(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Status: "authenticated", Email: req.Email})
}

func (h *Handler) listListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.market.List(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *Handler) publishListing(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		writeBodyError(w, err)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	form, err := parseListingForm(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	files, skipped := selectImages(r.MultipartForm.File["images"], h.maxUploads)
	if len(skipped) > 0 {
		h.log.Debug("dropped uploads", "files", skipped)
	}
	blobs, err := readBlobs(files)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	l, err := h.market.Publish(r.Context(), form, blobs)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *Handler) serveUpload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	rc, err := h.uploads.OpenUpload(r.Context(), name)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	defer rc.Close()

	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if _, err := io.Copy(w, rc); err != nil {
		h.log.Warn("upload stream interrupted", "name", name, "error", err)
	}
}

// parseListingForm reads the listing fields. Missing numeric fields take the
// form defaults (quantity 1, price 0); unparsable ones are invalid.
func parseListingForm(r *http.Request) (domain.ListingForm, error) {
	form := domain.ListingForm{
		MaterialTitle:    r.FormValue("material_title"),
		Category:         r.FormValue("category"),
		Unit:             r.FormValue("unit"),
		Location:         r.FormValue("location"),
		Condition:        r.FormValue("condition"),
		Description:      r.FormValue("description"),
		ContactName:      r.FormValue("contact_name"),
		ContactEmail:     r.FormValue("contact_email"),
		ContactPhone:     r.FormValue("contact_phone"),
		PreferredContact: r.FormValue("preferred_contact"),
		Quantity:         1,
	}

	if v := r.FormValue("quantity"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return form, domain.Invalid(domain.ErrInvalidField, "quantity")
		}
		form.Quantity = q
	}
	if v := r.FormValue("price_per_unit"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return form, domain.Invalid(domain.ErrInvalidField, "price_per_unit")
		}
		form.PricePerUnit = p
	}
	switch v := r.FormValue("accepted_terms"); v {
	case "", "off":
	case "on":
		form.AcceptedTerms = true
	default:
		accepted, err := strconv.ParseBool(v)
		if err != nil {
			return form, domain.Invalid(domain.ErrInvalidField, "accepted_terms")
		}
		form.AcceptedTerms = accepted
	}
	return form, nil
}

// selectImages keeps the first limit parts with an accepted image extension and
// returns the names of everything else. Nothing is opened here.
func selectImages(headers []*multipart.FileHeader, limit int) (kept []*multipart.FileHeader, skipped []string) {
	for _, fh := range headers {
		if !listing.AcceptedImage(fh.Filename) || len(kept) >= limit {
			skipped = append(skipped, fh.Filename)
			continue
		}
		kept = append(kept, fh)
	}
	return kept, skipped
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBytes)).Decode(out)
}

// writeBodyError reports an unreadable request body: 413 when it exceeded
// its limit, 400 otherwise.
func writeBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func readBlobs(headers []*multipart.FileHeader) ([]domain.Blob, error) {
	blobs := make([]domain.Blob, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		blobs = append(blobs, domain.Blob{Name: fh.Filename, Data: data})
	}
	return blobs, nil
}
