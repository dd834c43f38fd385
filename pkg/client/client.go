// Package client is a Go client for the ClinicDesk resource gateway. Every
// request carries the bearer token and clinic id resolved once at session
// start, and list responses are normalized into an ordered record slice no
// matter which envelope the gateway used.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Record is one resource record as returned by the gateway. Ids are
// server-assigned and treated as opaque strings.
type Record = map[string]interface{}

// Credentials identify one dashboard session against the gateway.
type Credentials struct {
	BaseURL  string
	Token    string
	ClinicID string
}

// APIError is a non-2xx gateway response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.Status, e.Message)
}

type Client struct {
	http  *http.Client
	creds Credentials
	log   zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a gateway client from session credentials. The credentials are
// captured once here; stores hold the client by reference and never carry
// their own copies.
func New(creds Credentials, opts ...Option) *Client {
	c := &Client{
		http:  &http.Client{Timeout: 30 * time.Second},
		creds: Credentials{BaseURL: strings.TrimRight(creds.BaseURL, "/"), Token: creds.Token, ClinicID: creds.ClinicID},
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches a resource collection. Query carries optional search params.
func (c *Client) List(ctx context.Context, path string, query url.Values) ([]Record, error) {
	u := c.creds.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	body, err := c.do(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return nil, err
	}
	return NormalizeCollection(body), nil
}

// Get fetches a single record by id.
func (c *Client) Get(ctx context.Context, path, id string) (Record, error) {
	body, err := c.do(ctx, http.MethodGet, c.creds.BaseURL+path+"/"+url.PathEscape(id), nil, "")
	if err != nil {
		return nil, err
	}
	return decodeRecord(body), nil
}

// Create POSTs a new record and returns the gateway's copy of it.
func (c *Client) Create(ctx context.Context, path string, payload Record) (Record, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, c.creds.BaseURL+path, bytes.NewReader(buf), "application/json")
	if err != nil {
		return nil, err
	}
	return decodeRecord(body), nil
}

// Update PUTs changed fields against a single record.
func (c *Client) Update(ctx context.Context, path, id string, payload Record) (Record, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	body, err := c.do(ctx, http.MethodPut, c.creds.BaseURL+path+"/"+url.PathEscape(id), bytes.NewReader(buf), "application/json")
	if err != nil {
		return nil, err
	}
	return decodeRecord(body), nil
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, path, id string) error {
	_, err := c.do(ctx, http.MethodDelete, c.creds.BaseURL+path+"/"+url.PathEscape(id), nil, "")
	return err
}

// UpdateOverride updates a record through the gateway's legacy POST surface:
// a multipart body with a _method=PUT field.
func (c *Client) UpdateOverride(ctx context.Context, path, id string, payload Record) (Record, error) {
	body, contentType, err := overrideForm(http.MethodPut, payload)
	if err != nil {
		return nil, err
	}
	res, err := c.do(ctx, http.MethodPost, c.creds.BaseURL+path+"/"+url.PathEscape(id), body, contentType)
	if err != nil {
		return nil, err
	}
	return decodeRecord(res), nil
}

// DeleteOverride deletes a record through the legacy POST surface
// (_method=DELETE multipart field).
func (c *Client) DeleteOverride(ctx context.Context, path, id string) error {
	body, contentType, err := overrideForm(http.MethodDelete, nil)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, c.creds.BaseURL+path+"/"+url.PathEscape(id), body, contentType)
	return err
}

// SetStatus PUTs {"status": ...} against a record's status sub-endpoint.
func (c *Client) SetStatus(ctx context.Context, path, id, status string) error {
	buf, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	_, err = c.do(ctx, http.MethodPut, c.creds.BaseURL+path+"/"+url.PathEscape(id)+"/status", bytes.NewReader(buf), "application/json")
	return err
}

// PostAction POSTs to a named sub-endpoint with no body, e.g. mark-paid.
func (c *Client) PostAction(ctx context.Context, path, id, action string) error {
	_, err := c.do(ctx, http.MethodPost, c.creds.BaseURL+path+"/"+url.PathEscape(id)+"/"+action, nil, "")
	return err
}

func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.Token)
	req.Header.Set("X-Clinic-ID", c.creds.ClinicID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.log.Debug().
		Str("method", method).
		Str("url", rawURL).
		Int("status", res.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("gateway request")

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &APIError{Status: res.StatusCode, Message: errorMessage(data, res.StatusCode)}
	}
	return data, nil
}

func overrideForm(method string, payload Record) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("_method", method); err != nil {
		return nil, "", err
	}
	for k, v := range payload {
		fv, err := formValue(v)
		if err != nil {
			return nil, "", fmt.Errorf("encode field %s: %w", k, err)
		}
		if err := w.WriteField(k, fv); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// formValue renders a record value as a form field. Scalars go through as
// text; lists and nested objects are JSON-encoded so the gateway can decode
// them from the single field.
func formValue(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64, int, bool:
		return fmt.Sprintf("%v", t), nil
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func decodeRecord(data []byte) Record {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}
	}
	if inner, ok := rec["data"].(map[string]interface{}); ok {
		return inner
	}
	return rec
}

func errorMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(status)
}
