package reviews

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/Makepad-fr/ccauto/internal/model"
)

// DefaultAuthor is used when a remote review has no author_name, or an empty one.
const DefaultAuthor = "Customer"

const maxBodyBytes = 1 << 20

// Endpoint locates the review collector widget.
type Endpoint struct {
	BaseURL  string
	WidgetID string
}

// Complete reports whether both values are set.
func (e Endpoint) Complete() bool {
	return strings.TrimSpace(e.BaseURL) != "" && strings.TrimSpace(e.WidgetID) != ""
}

// URL returns {baseUrl}/api/widget?id={widgetId}.
func (e Endpoint) URL() string {
	base := strings.TrimRight(strings.TrimSpace(e.BaseURL), "/")
	return fmt.Sprintf("%s/api/widget?id=%s", base, url.QueryEscape(strings.TrimSpace(e.WidgetID)))
}

// Source resolves the review sequence, preferring the remote widget and
// falling back to a built-in list.
type Source struct {
	endpoint   Endpoint
	httpClient *http.Client
	log        *zap.Logger
}

// Option customises a Source.
type Option func(*Source)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) { s.httpClient = c }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Source) { s.log = l }
}

// NewSource builds a Source for endpoint.
func NewSource(endpoint Endpoint, opts ...Option) *Source {
	s := &Source{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve returns the remote reviews, or fallback when the endpoint is not
// configured or the single attempt fails in any way. It never errors.
func (s *Source) Resolve(ctx context.Context, fallback []model.Review) []model.Review {
	items, err := s.Fetch(ctx)
	if err == nil {
		return items
	}
	fields := []zap.Field{zap.String("category", category(err)), zap.Error(err)}
	if errors.Is(err, ErrConfigurationMissing) {
		s.log.Warn("review collector configuration missing, using fallback", fields...)
	} else {
		fields = append(fields, zap.String("endpoint", s.endpoint.URL()))
		s.log.Error("loading reviews failed, using fallback", fields...)
	}
	return fallback
}

// Fetch performs one GET against the widget endpoint and maps the response.
// Errors wrap one of the package's failure categories.
func (s *Source) Fetch(ctx context.Context) ([]model.Review, error) {
	if !s.endpoint.Complete() {
		return nil, ErrConfigurationMissing
	}
	endpoint := s.endpoint.URL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("%w: status=%d body=%s", ErrMalformedResponse, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrNetwork, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: response too large (over %d bytes)", ErrMalformedResponse, maxBodyBytes)
	}

	records, err := decodeRecords(body)
	if err != nil {
		return nil, err
	}

	items, dropped := mapRecords(records)
	s.log.Debug("reviews hydrated",
		zap.Int("received", len(records)),
		zap.Int("kept", len(items)),
		zap.Int("dropped", dropped),
	)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %d records, none with text", ErrEmptyResult, len(records))
	}
	return items, nil
}

type widgetResponse struct {
	Reviews json.RawMessage `json:"reviews"`
}

func decodeRecords(body []byte) ([]json.RawMessage, error) {
	var raw widgetResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode body: %v", ErrMalformedResponse, err)
	}
	trimmed := bytes.TrimSpace(raw.Reviews)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: reviews is missing or not an array", ErrMalformedResponse)
	}
	var records []json.RawMessage
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("%w: decode reviews: %v", ErrMalformedResponse, err)
	}
	return records, nil
}

// mapRecords keeps records whose text is a non-blank string. Only text
// decides keep or drop; an optional field of the wrong type is treated as
// absent.
func mapRecords(records []json.RawMessage) ([]model.Review, int) {
	out := make([]model.Review, 0, len(records))
	for _, rec := range records {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(rec, &fields); err != nil {
			continue
		}
		text, ok := field[string](fields, "text")
		if !ok {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		review := model.Review{Text: text, Author: DefaultAuthor}
		if author, ok := field[string](fields, "author_name"); ok && author != "" {
			review.Author = author
		}
		if rating, ok := field[float64](fields, "rating"); ok {
			review.Rating = model.Rating(int(rating))
		}
		if photo, ok := field[string](fields, "profile_photo_url"); ok {
			review.PhotoURL = photo
		}
		if rel, ok := field[string](fields, "relative_time_description"); ok {
			review.RelativeTime = rel
		}
		out = append(out, review)
	}
	return out, len(records) - len(out)
}

// field decodes fields[name] as T. Missing, null and mistyped values all
// report false.
func field[T any](fields map[string]json.RawMessage, name string) (T, bool) {
	var v T
	raw, ok := fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false
	}
	return v, true
}
