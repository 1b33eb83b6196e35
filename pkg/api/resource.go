package api

import (
	"context"
	"net/http"
	"net/url"

	"tableflip.dev/contentcal/pkg/entity"
)

// Resource is the CRUD surface of one collection.
type Resource[T entity.Entity] struct {
	client   *Client
	path     string
	outbound func(T) any
}

func (r *Resource[T]) Path() string {
	return r.path
}

func (r *Resource[T]) body(v T) any {
	if r.outbound != nil {
		return r.outbound(v)
	}
	return v
}

// List fetches the whole collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Create posts v, which should have no id, and returns the server's entity.
func (r *Resource[T]) Create(ctx context.Context, v T) (T, error) {
	var out T
	if err := r.client.do(ctx, http.MethodPost, r.path, r.body(v), &out); err != nil {
		return out, err
	}
	if out.EntityID() == "" {
		var zero T
		return zero, &TransportError{Method: http.MethodPost, Path: r.path, Err: ErrNoID}
	}
	return out, nil
}

// Update puts v under id and returns the server's entity.
func (r *Resource[T]) Update(ctx context.Context, id string, v T) (T, error) {
	var out T
	path := r.itemPath(id)
	if err := r.client.do(ctx, http.MethodPut, path, r.body(v), &out); err != nil {
		return out, err
	}
	if out.EntityID() == "" {
		var zero T
		return zero, &TransportError{Method: http.MethodPut, Path: path, Err: ErrNoID}
	}
	return out, nil
}

// Delete removes id.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

func (r *Resource[T]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}
