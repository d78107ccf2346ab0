// Package client is a Go client for the notewell REST API. Reads retry
// transient failures with exponential backoff; writes are sent once, the
// server side is not idempotent for them.
package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/notewell/notewell/internal/model"
)

// Client talks to a running notes service.
type Client struct {
	rc         *resty.Client
	maxRetries uint64
}

// Option customizes a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.rc.SetTimeout(d) }
}

// WithMaxRetries overrides how many times reads are retried.
func WithMaxRetries(n uint64) Option {
	return func(c *Client) { c.maxRetries = n }
}

// New constructs a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		rc:         resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiError mirrors the server's error envelope.
type apiError struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// asModelError maps an HTTP status back onto the shared error taxonomy so
// callers can use errors.Is on client results just like on store results.
func asModelError(status int, e *apiError) error {
	msg := http.StatusText(status)
	if e != nil && e.Message != "" {
		msg = e.Message
	}
	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", model.ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", model.ErrConflict, msg)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", model.ErrValidation, msg)
	case http.StatusNotImplemented:
		return fmt.Errorf("%w: %s", model.ErrNotImplemented, msg)
	case http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %s", model.ErrUnavailable, msg)
	default:
		return fmt.Errorf("server returned %d: %s", status, msg)
	}
}

func checkResponse(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	e, _ := resp.Error().(*apiError)
	return asModelError(resp.StatusCode(), e)
}

// retryable reports whether a failed response is worth another attempt.
func retryable(resp *resty.Response) bool {
	return resp.StatusCode() >= 500 && resp.StatusCode() != http.StatusNotImplemented
}

// getJSON runs a GET with retries, decoding into out. backoff.Retry
// unwraps Permanent errors, so callers see plain model errors.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	op := func() error {
		resp, err := c.rc.R().
			SetContext(ctx).
			SetResult(out).
			SetError(&apiError{}).
			Get(path)
		if err != nil {
			return err
		}
		if err := checkResponse(resp); err != nil {
			if retryable(resp) {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries), ctx)
	return backoff.Retry(op, bo)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out interface{}) error {
	req := c.rc.R().SetContext(ctx).SetError(&apiError{})
	if body != nil {
		req = req.SetBody(body)
	}
	if out != nil {
		req = req.SetResult(out)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

func (c *Client) CreateNote(ctx context.Context, req model.CreateNoteRequest) (*model.CreateNoteResponse, error) {
	var out model.CreateNoteResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/notes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetNote(ctx context.Context, noteID string) (*model.GetNoteResponse, error) {
	var out model.GetNoteResponse
	if err := c.getJSON(ctx, "/api/notes/"+noteID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetNotes(ctx context.Context, owner string) (*model.GetNotesResponse, error) {
	var out model.GetNotesResponse
	if err := c.getJSON(ctx, "/api/owners/"+owner+"/notes", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateNote(ctx context.Context, req model.UpdateNoteRequest) (*model.UpdateNoteResponse, error) {
	var out model.UpdateNoteResponse
	if err := c.sendJSON(ctx, http.MethodPatch, "/api/notes/"+req.NoteID, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ArchiveNote(ctx context.Context, noteID string) (*model.ArchiveNoteResponse, error) {
	var out model.ArchiveNoteResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/api/notes/"+noteID+"/archive", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetLists(ctx context.Context, owner string) (*model.GetListsResponse, error) {
	var out model.GetListsResponse
	if err := c.getJSON(ctx, "/api/owners/"+owner+"/lists", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetFullList(ctx context.Context, listID string) (*model.GetFullListResponse, error) {
	var out model.GetFullListResponse
	if err := c.getJSON(ctx, "/api/lists/"+listID+"/full", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) StoreList(ctx context.Context, l *model.List) (*model.StoreListResponse, error) {
	if l == nil || l.ID == "" {
		return nil, fmt.Errorf("%w: list with an id is required", model.ErrValidation)
	}
	var out model.StoreListResponse
	if err := c.sendJSON(ctx, http.MethodPut, "/api/lists/"+l.ID, l, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
