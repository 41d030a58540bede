package resource

import (
	"encoding/json"
	"fmt"

	"github.com/AnkaaDesign/apiclient/apierr"
)

// Envelope is the uniform response wrapper every endpoint returns.
// success=false means the operation was rejected; data is absent then.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}

// ListEnvelope is the envelope for list endpoints, the only ones that
// carry pagination fields.
type ListEnvelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    []T    `json:"data"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
	Total   int64  `json:"total"`
}

// ListResult is the decoded outcome of a list operation. An empty Data
// slice with Total zero is a valid empty state, not an error.
type ListResult[T any] struct {
	Data  []T
	Page  int
	Limit int
	Total int64
}

// HasNextPage reports whether another page exists after this one.
func (r *ListResult[T]) HasNextPage() bool {
	if r.Limit <= 0 {
		return false
	}
	return int64(r.Page)*int64(r.Limit) < r.Total
}

// TotalPages returns the number of pages at the result's page size.
func (r *ListResult[T]) TotalPages() int {
	if r.Limit <= 0 || r.Total <= 0 {
		return 0
	}
	pages := r.Total / int64(r.Limit)
	if r.Total%int64(r.Limit) != 0 {
		pages++
	}
	return int(pages)
}

// BatchOutcome is the per-item result of a batch operation.
type BatchOutcome[T any] struct {
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchResult carries one outcome per attempted item, exactly as the
// server reported them. Partial failure is a normal state: check the
// counters or walk Outcomes.
type BatchResult[T any] struct {
	Total     int               `json:"total"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Outcomes  []BatchOutcome[T] `json:"outcomes"`
}

// Failures returns the outcomes that did not succeed, in input order.
func (r *BatchResult[T]) Failures() []BatchOutcome[T] {
	var failed []BatchOutcome[T]
	for _, outcome := range r.Outcomes {
		if !outcome.Success {
			failed = append(failed, outcome)
		}
	}
	return failed
}

// BatchUpdate pairs an entity id with its update payload.
type BatchUpdate[U any] struct {
	ID   string `json:"id"`
	Data U      `json:"data"`
}

func decodeEntity[T any](raw json.RawMessage) (*T, error) {
	if len(raw) == 0 {
		return nil, apierr.Envelope("empty response body", "")
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, malformedEnvelope(err)
	}
	if !env.Success {
		return nil, apierr.Envelope(env.Message, "")
	}
	if env.Data == nil {
		return nil, apierr.Envelope("envelope is missing data", "")
	}
	return env.Data, nil
}

func decodeList[T any](raw json.RawMessage) (*ListResult[T], error) {
	if len(raw) == 0 {
		return nil, apierr.Envelope("empty response body", "")
	}

	var env ListEnvelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, malformedEnvelope(err)
	}
	if !env.Success {
		return nil, apierr.Envelope(env.Message, "")
	}

	data := env.Data
	if data == nil {
		data = []T{}
	}
	return &ListResult[T]{
		Data:  data,
		Page:  env.Page,
		Limit: env.Limit,
		Total: env.Total,
	}, nil
}

func decodeConfirmation(raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}

	var env struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return malformedEnvelope(err)
	}
	if !env.Success {
		return apierr.Envelope(env.Message, "")
	}
	return nil
}

func decodeBatch[T any](raw json.RawMessage, wantOutcomes int) (*BatchResult[T], error) {
	result, err := decodeEntity[BatchResult[T]](raw)
	if err != nil {
		return nil, err
	}
	if len(result.Outcomes) != wantOutcomes {
		return nil, apierr.Envelope(
			fmt.Sprintf("batch result reported %d outcomes for %d items", len(result.Outcomes), wantOutcomes), "")
	}
	return result, nil
}

func malformedEnvelope(cause error) error {
	err := apierr.Envelope("malformed response envelope", "")
	err.Cause = cause
	return err
}
