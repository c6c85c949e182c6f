// Package client is the SDK the UI talks through: a generic accessor for the
// backend's flat collections plus the invitation store, pagination, lifecycle
// and cache layers built on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
)

const (
	ResourceUsers       = "users"
	ResourceSessions    = "sessions"
	ResourceInvitations = "invitations"
)

// BuildQueryString encodes filters canonically: empty values are dropped and
// keys come out in sorted order, so identical filters always produce the same
// string and can key a cache.
func BuildQueryString(filters map[string]string) string {
	values := url.Values{}
	for key, value := range filters {
		if value == "" {
			continue
		}
		values.Set(key, value)
	}
	return values.Encode()
}

// ResourceClient performs single round-trip CRUD calls against one backend.
// It never retries - retry policy belongs to the caller.
type ResourceClient struct {
	base string
	hc   *http.Client
}

func NewResourceClient(base string, hc *http.Client) *ResourceClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &ResourceClient{base: base, hc: hc}
}

func (rc *ResourceClient) List(ctx context.Context, resource string, filters map[string]string, out any) error {
	path := "/" + resource
	if qs := BuildQueryString(filters); qs != "" {
		path += "?" + qs
	}
	return rc.do(ctx, http.MethodGet, path, nil, out)
}

func (rc *ResourceClient) Get(ctx context.Context, resource, id string, out any) error {
	return rc.notFoundable(resource, id, rc.do(ctx, http.MethodGet, "/"+resource+"/"+id, nil, out))
}

func (rc *ResourceClient) Create(ctx context.Context, resource string, record, out any) error {
	return rc.do(ctx, http.MethodPost, "/"+resource, record, out)
}

func (rc *ResourceClient) Replace(ctx context.Context, resource, id string, record, out any) error {
	return rc.notFoundable(resource, id, rc.do(ctx, http.MethodPut, "/"+resource+"/"+id, record, out))
}

func (rc *ResourceClient) Delete(ctx context.Context, resource, id string) error {
	return rc.notFoundable(resource, id, rc.do(ctx, http.MethodDelete, "/"+resource+"/"+id, nil, nil))
}

// notFoundable converts a 404 into a typed NotFoundError for the operations
// that target a single record.
func (rc *ResourceClient) notFoundable(resource, id string, err error) error {
	var te *TransportError
	if errors.As(err, &te) && te.Status == http.StatusNotFound {
		return &NotFoundError{Resource: resource, ID: id}
	}
	return err
}

func (rc *ResourceClient) do(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, rc.base+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := rc.hc.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return &TransportError{Op: op, Status: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: err}
	}
	return nil
}
