// Package resource implements the typed CRUD client over the shared
// transport: one Client per backend resource, each operation translating
// to exactly one HTTP call and one decoded envelope. Clients are
// stateless; caching and retries live in the query package.
package resource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"

	"github.com/AnkaaDesign/apiclient/apierr"
	"github.com/AnkaaDesign/apiclient/transport"
)

// Interface is the operation set every resource client exposes. T is the
// entity, C the create payload, U the update payload. The query package
// decorates this interface with caching.
type Interface[T, C, U any] interface {
	Name() string
	List(ctx context.Context, params ListParams) (*ListResult[T], error)
	Get(ctx context.Context, id string, params GetParams) (*T, error)
	Create(ctx context.Context, data C) (*T, error)
	Update(ctx context.Context, id string, data U) (*T, error)
	Delete(ctx context.Context, id string) error
	BatchCreate(ctx context.Context, items []C) (*BatchResult[T], error)
	BatchUpdate(ctx context.Context, updates []BatchUpdate[U]) (*BatchResult[T], error)
	BatchDelete(ctx context.Context, ids []string) (*BatchResult[T], error)
}

// Interface assertion to ensure Client implements Interface.
var _ Interface[any, any, any] = (*Client[any, any, any])(nil)

// Client is the resource client for one backend entity family.
type Client[T, C, U any] struct {
	rt       *transport.Client
	name     string
	basePath string
	patch    bool
	validate bool
}

// Option configures a resource client.
type Option func(*settings)

type settings struct {
	path     string
	patch    bool
	validate bool
}

// WithPath overrides the URL path when it differs from /{name}.
func WithPath(path string) Option {
	return func(s *settings) { s.path = path }
}

// WithPatchUpdates makes Update use PATCH instead of PUT.
func WithPatchUpdates() Option {
	return func(s *settings) { s.patch = true }
}

// WithoutValidation disables client-side payload validation.
func WithoutValidation() Option {
	return func(s *settings) { s.validate = false }
}

// New creates a resource client. name is the resource's identity: its
// URL path segment and its cache namespace. An empty name is derived
// from the entity type, kebab-cased with a plural s; pass the name
// explicitly when the backend's segment differs.
func New[T, C, U any](rt *transport.Client, name string, opts ...Option) *Client[T, C, U] {
	s := settings{validate: true}
	for _, opt := range opts {
		opt(&s)
	}

	if name == "" {
		name = defaultName[T]()
	}

	basePath := s.path
	if basePath == "" {
		basePath = "/" + name
	}

	return &Client[T, C, U]{
		rt:       rt,
		name:     name,
		basePath: basePath,
		patch:    s.patch,
		validate: s.validate,
	}
}

// Name returns the resource's identity.
func (c *Client[T, C, U]) Name() string {
	return c.name
}

// List fetches a page of entities. Params are normalized before
// dispatch, so defaulted and explicit-default requests are identical.
func (c *Client[T, C, U]) List(ctx context.Context, params ListParams) (*ListResult[T], error) {
	params = params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, apierr.Validation(err.Error(), nil)
	}

	query, err := params.QueryValues()
	if err != nil {
		return nil, apierr.Validation(err.Error(), nil)
	}

	raw, err := c.rt.Get(ctx, c.basePath, query)
	if err != nil {
		return nil, err
	}
	return decodeList[T](raw)
}

// Get fetches a single entity by id. A 404 from the server surfaces as
// an HTTP_ERROR matching apierr.IsNotFound.
func (c *Client[T, C, U]) Get(ctx context.Context, id string, params GetParams) (*T, error) {
	if id == "" {
		return nil, missingID(c.name)
	}

	query, err := params.QueryValues()
	if err != nil {
		return nil, apierr.Validation(err.Error(), nil)
	}

	raw, err := c.rt.Get(ctx, c.itemPath(id), query)
	if err != nil {
		return nil, err
	}
	return decodeEntity[T](raw)
}

// Create posts a new entity and returns the created record.
func (c *Client[T, C, U]) Create(ctx context.Context, data C) (*T, error) {
	if err := c.validatePayload(data); err != nil {
		return nil, err
	}

	raw, err := c.rt.Post(ctx, c.basePath, data)
	if err != nil {
		return nil, err
	}
	return decodeEntity[T](raw)
}

// Update modifies an entity and returns the updated record.
func (c *Client[T, C, U]) Update(ctx context.Context, id string, data U) (*T, error) {
	if id == "" {
		return nil, missingID(c.name)
	}
	if err := c.validatePayload(data); err != nil {
		return nil, err
	}

	var raw []byte
	var err error
	if c.patch {
		raw, err = c.rt.Patch(ctx, c.itemPath(id), data)
	} else {
		raw, err = c.rt.Put(ctx, c.itemPath(id), data)
	}
	if err != nil {
		return nil, err
	}
	return decodeEntity[T](raw)
}

// Delete removes an entity. The confirmation envelope carries no data.
func (c *Client[T, C, U]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return missingID(c.name)
	}

	raw, err := c.rt.Delete(ctx, c.itemPath(id), nil)
	if err != nil {
		return err
	}
	return decodeConfirmation(raw)
}

// BatchCreate submits all items in one request. The server may report
// partial success; the result carries one outcome per item.
func (c *Client[T, C, U]) BatchCreate(ctx context.Context, items []C) (*BatchResult[T], error) {
	if len(items) == 0 {
		return nil, emptyBatch(c.name)
	}
	for i, item := range items {
		if err := c.validatePayload(item); err != nil {
			return nil, batchItemError(i, err)
		}
	}

	raw, err := c.rt.Post(ctx, c.batchPath(), items)
	if err != nil {
		return nil, err
	}
	return decodeBatch[T](raw, len(items))
}

// BatchUpdate submits all updates in one request, carried as
// {"updates":[{"id":...,"data":{...}},...]} on the wire.
func (c *Client[T, C, U]) BatchUpdate(ctx context.Context, updates []BatchUpdate[U]) (*BatchResult[T], error) {
	if len(updates) == 0 {
		return nil, emptyBatch(c.name)
	}
	for i, update := range updates {
		if update.ID == "" {
			return nil, batchItemError(i, missingID(c.name))
		}
		if err := c.validatePayload(update.Data); err != nil {
			return nil, batchItemError(i, err)
		}
	}

	body := struct {
		Updates []BatchUpdate[U] `json:"updates"`
	}{updates}

	raw, err := c.rt.Put(ctx, c.batchPath(), body)
	if err != nil {
		return nil, err
	}
	return decodeBatch[T](raw, len(updates))
}

// BatchDelete removes all ids in one request, carried as
// {"data":{"ids":[...]}} on the wire.
func (c *Client[T, C, U]) BatchDelete(ctx context.Context, ids []string) (*BatchResult[T], error) {
	if len(ids) == 0 {
		return nil, emptyBatch(c.name)
	}
	for i, id := range ids {
		if id == "" {
			return nil, batchItemError(i, missingID(c.name))
		}
	}

	body := struct {
		Data struct {
			IDs []string `json:"ids"`
		} `json:"data"`
	}{}
	body.Data.IDs = ids

	raw, err := c.rt.Delete(ctx, c.batchPath(), body)
	if err != nil {
		return nil, err
	}
	return decodeBatch[T](raw, len(ids))
}

func (c *Client[T, C, U]) validatePayload(payload any) error {
	if !c.validate {
		return nil
	}
	return validatePayload(payload)
}

func (c *Client[T, C, U]) itemPath(id string) string {
	return c.basePath + "/" + url.PathEscape(id)
}

func (c *Client[T, C, U]) batchPath() string {
	return c.basePath + "/batch"
}

func defaultName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "resources"
	}
	return toKebab(t.Name()) + "s"
}

func missingID(resource string) error {
	return apierr.Validation(fmt.Sprintf("%s: id is required", resource), nil)
}

func emptyBatch(resource string) error {
	return apierr.Validation(fmt.Sprintf("%s: batch requires at least one item", resource), nil)
}

func batchItemError(index int, err error) error {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		return apierr.Validation(fmt.Sprintf("item %d: %s", index, apiErr.Message), apiErr.Fields)
	}
	return apierr.Validation(fmt.Sprintf("item %d: %v", index, err), nil)
}
