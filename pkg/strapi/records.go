package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type (
	Pagination struct {
		Page      int `json:"page"`
		PageSize  int `json:"pageSize"`
		PageCount int `json:"pageCount"`
		Total     int `json:"total"`
	}

	Meta struct {
		Pagination Pagination `json:"pagination"`
	}

	envelope struct {
		Data json.RawMessage `json:"data"`
		Meta Meta            `json:"meta"`
	}

	writeBody struct {
		Data any `json:"data"`
	}
)

func collectionPath(collection string) string {
	return "/api/" + collection
}

func itemPath(collection, id string) string {
	return "/api/" + collection + "/" + url.PathEscape(id)
}

// List fetches one page of a collection.
func List[T any](ctx context.Context, b Backend, token, collection string, q Query) ([]T, Meta, error) {
	var env envelope
	err := b.Send(ctx, token, Request{
		Method:     http.MethodGet,
		Path:       collectionPath(collection),
		Query:      q.Values(),
		Collection: collection,
	}, &env)
	if err != nil {
		return nil, Meta{}, err
	}

	items := []T{}
	if err := decodeData(env.Data, &items); err != nil {
		return nil, Meta{}, fmt.Errorf("decode %s: %w", collection, err)
	}
	return items, env.Meta, nil
}

// ListAll walks every page of a collection.
func ListAll[T any](ctx context.Context, b Backend, token, collection string, q Query) ([]T, error) {
	q.Page = 1
	if q.PageSize <= 0 {
		q.PageSize = MaxPageSize
	}

	var all []T
	for {
		items, meta, err := List[T](ctx, b, token, collection, q)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if q.Page >= meta.Pagination.PageCount || len(items) == 0 {
			break
		}
		q.Page++
	}
	if all == nil {
		all = []T{}
	}
	return all, nil
}

func Find[T any](ctx context.Context, b Backend, token, collection, id string, q Query) (T, error) {
	var (
		env  envelope
		item T
	)
	err := b.Send(ctx, token, Request{
		Method:     http.MethodGet,
		Path:       itemPath(collection, id),
		Query:      q.Values(),
		Collection: collection,
	}, &env)
	if err != nil {
		return item, err
	}
	if isNull(env.Data) {
		return item, &StatusError{Status: http.StatusNotFound, Method: http.MethodGet, Path: itemPath(collection, id)}
	}
	if err := decodeData(env.Data, &item); err != nil {
		return item, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return item, nil
}

func Create[T any](ctx context.Context, b Backend, token, collection string, data any) (T, error) {
	return write[T](ctx, b, token, http.MethodPost, collection, collectionPath(collection), data)
}

func Update[T any](ctx context.Context, b Backend, token, collection, id string, data any) (T, error) {
	return write[T](ctx, b, token, http.MethodPut, collection, itemPath(collection, id), data)
}

func Delete(ctx context.Context, b Backend, token, collection, id string) error {
	return b.Send(ctx, token, Request{
		Method:     http.MethodDelete,
		Path:       itemPath(collection, id),
		Collection: collection,
	}, nil)
}

func write[T any](ctx context.Context, b Backend, token, method, collection, path string, data any) (T, error) {
	var (
		env  envelope
		item T
	)
	err := b.Send(ctx, token, Request{
		Method:     method,
		Path:       path,
		Body:       writeBody{Data: data},
		Collection: collection,
	}, &env)
	if err != nil {
		return item, err
	}
	if isNull(env.Data) {
		return item, nil
	}
	if err := decodeData(env.Data, &item); err != nil {
		return item, fmt.Errorf("decode %s: %w", collection, err)
	}
	return item, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeData rejects the nested {id, attributes:{...}} record shape. Only the
// flattened record shape is supported.
func decodeData(raw json.RawMessage, out any) error {
	if isNull(raw) {
		return nil
	}
	if hasAttributes(raw) {
		return ErrLegacyShape
	}
	return json.Unmarshal(raw, out)
}

func hasAttributes(raw json.RawMessage) bool {
	type legacyRecord struct {
		Attributes json.RawMessage `json:"attributes"`
	}

	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		var items []legacyRecord
		if json.Unmarshal(trimmed, &items) != nil || len(items) == 0 {
			return false
		}
		return len(items[0].Attributes) > 0
	case len(trimmed) > 0 && trimmed[0] == '{':
		var item legacyRecord
		if json.Unmarshal(trimmed, &item) != nil {
			return false
		}
		return len(item.Attributes) > 0
	}
	return false
}
