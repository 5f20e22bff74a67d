package skyvia

import (
	"context"
	"net/http"
	"net/url"

	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
)

// Shared request/validate round trips. Every resource method is one of
// these with a path and an operation name; the operation rides on the
// error so callers see which logical call failed.

func fetchRecord[T any](ctx context.Context, c *Client, op, path string) (T, error) {
	out, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path})
	if err != nil {
		var zero T
		return zero, errors.Op(op, err)
	}
	value, err := Record[T](out)
	if err != nil {
		var zero T
		return zero, errors.Op(op, err)
	}
	return value, nil
}

func fetchList[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	out, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, errors.Op(op, err)
	}
	items, err := List[T](out)
	if err != nil {
		return nil, errors.Op(op, err)
	}
	return items, nil
}

func fetchPage[T any](ctx context.Context, c *Client, op, path string, query url.Values) (Page[T], error) {
	out, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return Page[T]{}, errors.Op(op, err)
	}
	page, err := PageOf[T](out)
	if err != nil {
		return Page[T]{}, errors.Op(op, err)
	}
	return page, nil
}

// postRecord issues a POST and requires a record in response; an empty
// body is a Shape error because the caller needs the returned state.
func postRecord[T any](ctx context.Context, c *Client, op, path string) (T, error) {
	var zero T
	out, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path})
	if err != nil {
		return zero, errors.Op(op, err)
	}
	if out.NoContent() {
		return zero, errors.Op(op, errors.New(errors.CodeShape,
			"accepted but no details were returned"))
	}
	value, err := Record[T](out)
	if err != nil {
		return zero, errors.Op(op, err)
	}
	return value, nil
}

// postNoContent issues a POST where a 200/204 with no body is the
// expected success outcome. A body, if any, is ignored.
func postNoContent(ctx context.Context, c *Client, op, path string) error {
	if _, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path}); err != nil {
		return errors.Op(op, err)
	}
	return nil
}

// fetchOptional implements the active-resource round trip: GET the
// path and normalize 404, empty, and id-less responses to nil.
func fetchOptional[T any](ctx context.Context, c *Client, op, path string, present func(T) bool) (*T, error) {
	out, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path})
	value, err := Optional(out, err, present)
	if err != nil {
		return nil, errors.Op(op, err)
	}
	return value, nil
}
