package resource

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/AnkaaDesign/apiclient/filter"
)

// Pagination bounds applied to list requests.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Include declares which relations the server should eager-load. A nil
// value includes the relation as-is; a non-nil value nests further
// inclusions. It marshals to the wire shape list and get endpoints accept
// in their include parameter.
type Include map[string]*Include

// MarshalJSON encodes plain inclusions as true and nested ones as
// {"include":{...}}.
func (i Include) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(i))
	for relation, nested := range i {
		if nested == nil {
			out[relation] = json.RawMessage("true")
			continue
		}
		encoded, err := json.Marshal(struct {
			Include *Include `json:"include"`
		}{nested})
		if err != nil {
			return nil, err
		}
		out[relation] = encoded
	}
	return json.Marshal(out)
}

// ListParams are the parameters of a list operation.
type ListParams struct {
	Page         int
	Limit        int
	SearchingFor string
	Where        *filter.Where
	OrderBy      []filter.Order
	Include      Include
}

// Normalize applies the pagination defaults and bounds. Cache keys are
// derived from normalized params, so requests that differ only in
// defaulted fields share an identity.
func (p ListParams) Normalize() ListParams {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}

// Validate checks the filter and ordering contracts before dispatch.
func (p ListParams) Validate() error {
	if p.Where != nil {
		if err := p.Where.Validate(); err != nil {
			return err
		}
	}
	if err := filter.ValidateOrderBy(p.OrderBy); err != nil {
		return err
	}
	return nil
}

// QueryValues encodes the params as the query string the list endpoint
// expects: plain values for page, limit and searchingFor, compact JSON
// for where, orderBy and include.
func (p ListParams) QueryValues() (url.Values, error) {
	values := url.Values{}
	values.Set("page", strconv.Itoa(p.Page))
	values.Set("limit", strconv.Itoa(p.Limit))

	if p.SearchingFor != "" {
		values.Set("searchingFor", p.SearchingFor)
	}
	if p.Where != nil {
		encoded, err := json.Marshal(p.Where)
		if err != nil {
			return nil, fmt.Errorf("resource: encode where: %w", err)
		}
		values.Set("where", string(encoded))
	}
	if len(p.OrderBy) > 0 {
		encoded, err := json.Marshal(p.OrderBy)
		if err != nil {
			return nil, fmt.Errorf("resource: encode orderBy: %w", err)
		}
		values.Set("orderBy", string(encoded))
	}
	if len(p.Include) > 0 {
		encoded, err := json.Marshal(p.Include)
		if err != nil {
			return nil, fmt.Errorf("resource: encode include: %w", err)
		}
		values.Set("include", string(encoded))
	}
	return values, nil
}

// GetParams are the parameters of a single-entity read.
type GetParams struct {
	Include Include
}

// QueryValues encodes the params for the get endpoint.
func (p GetParams) QueryValues() (url.Values, error) {
	values := url.Values{}
	if len(p.Include) > 0 {
		encoded, err := json.Marshal(p.Include)
		if err != nil {
			return nil, fmt.Errorf("resource: encode include: %w", err)
		}
		values.Set("include", string(encoded))
	}
	return values, nil
}
