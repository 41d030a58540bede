// Package filter defines the typed filter and ordering contract shared
// with the backend. A Where is a tagged union: exactly one of the
// conjunction, disjunction, negation, or leaf-condition arms may be set.
// The JSON encoding is the wire shape list endpoints accept in their
// where and orderBy query parameters.
package filter

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Op enumerates the comparison operators the backend accepts.
type Op string

const (
	OpEq         Op = "eq"
	OpNe         Op = "ne"
	OpGt         Op = "gt"
	OpGte        Op = "gte"
	OpLt         Op = "lt"
	OpLte        Op = "lte"
	OpContains   Op = "contains"
	OpStartsWith Op = "startsWith"
	OpEndsWith   Op = "endsWith"
	OpIn         Op = "in"
	OpNotIn      Op = "notIn"
	OpIsNull     Op = "isNull"
	OpNotNull    Op = "isNotNull"
)

var knownOps = map[Op]struct{}{
	OpEq: {}, OpNe: {}, OpGt: {}, OpGte: {}, OpLt: {}, OpLte: {},
	OpContains: {}, OpStartsWith: {}, OpEndsWith: {},
	OpIn: {}, OpNotIn: {}, OpIsNull: {}, OpNotNull: {},
}

// Where is a filter expression. Build one with the constructor functions
// and combine with And, Or, and Not. A zero Where is invalid.
type Where struct {
	// All matches when every child matches.
	All []Where

	// Any matches when at least one child matches.
	Any []Where

	// Not inverts its child.
	Not *Where

	// Field, Op, Value form a leaf condition.
	Field string
	Op    Op
	Value any
}

// Eq matches records whose field equals value.
func Eq(field string, value any) Where { return leaf(field, OpEq, value) }

// Ne matches records whose field differs from value.
func Ne(field string, value any) Where { return leaf(field, OpNe, value) }

// Gt matches records whose field is greater than value.
func Gt(field string, value any) Where { return leaf(field, OpGt, value) }

// Gte matches records whose field is greater than or equal to value.
func Gte(field string, value any) Where { return leaf(field, OpGte, value) }

// Lt matches records whose field is less than value.
func Lt(field string, value any) Where { return leaf(field, OpLt, value) }

// Lte matches records whose field is less than or equal to value.
func Lte(field string, value any) Where { return leaf(field, OpLte, value) }

// Contains matches records whose field contains the substring.
func Contains(field string, value string) Where { return leaf(field, OpContains, value) }

// StartsWith matches records whose field starts with the prefix.
func StartsWith(field string, value string) Where { return leaf(field, OpStartsWith, value) }

// EndsWith matches records whose field ends with the suffix.
func EndsWith(field string, value string) Where { return leaf(field, OpEndsWith, value) }

// In matches records whose field equals one of the values.
func In(field string, values ...any) Where { return leaf(field, OpIn, values) }

// NotIn matches records whose field equals none of the values.
func NotIn(field string, values ...any) Where { return leaf(field, OpNotIn, values) }

// IsNull matches records whose field is null.
func IsNull(field string) Where { return leaf(field, OpIsNull, nil) }

// NotNull matches records whose field is not null.
func NotNull(field string) Where { return leaf(field, OpNotNull, nil) }

// And combines conditions into a conjunction.
func And(conds ...Where) Where { return Where{All: conds} }

// Or combines conditions into a disjunction.
func Or(conds ...Where) Where { return Where{Any: conds} }

// Negate inverts a condition.
func Negate(cond Where) Where { return Where{Not: &cond} }

func leaf(field string, op Op, value any) Where {
	return Where{Field: field, Op: op, Value: value}
}

// Validate checks the expression before it is put on the wire: exactly
// one arm per node, known operators, non-empty leaf fields, and values
// that agree with their operator.
func (w Where) Validate() error {
	arms := 0
	if len(w.All) > 0 {
		arms++
	}
	if len(w.Any) > 0 {
		arms++
	}
	if w.Not != nil {
		arms++
	}
	isLeaf := w.Field != "" || w.Op != "" || w.Value != nil
	if isLeaf {
		arms++
	}

	if arms == 0 {
		return fmt.Errorf("filter: empty expression")
	}
	if arms > 1 {
		return fmt.Errorf("filter: expression must set exactly one of and, or, not, or a condition")
	}

	switch {
	case len(w.All) > 0:
		return validateChildren(w.All)
	case len(w.Any) > 0:
		return validateChildren(w.Any)
	case w.Not != nil:
		return w.Not.Validate()
	default:
		return w.validateLeaf()
	}
}

func validateChildren(children []Where) error {
	for i, child := range children {
		if err := child.Validate(); err != nil {
			return fmt.Errorf("filter: child %d: %w", i, err)
		}
	}
	return nil
}

func (w Where) validateLeaf() error {
	if w.Field == "" {
		return fmt.Errorf("filter: condition is missing a field")
	}
	if _, ok := knownOps[w.Op]; !ok {
		return fmt.Errorf("filter: unknown operator %q on field %q", w.Op, w.Field)
	}

	switch w.Op {
	case OpIsNull, OpNotNull:
		if w.Value != nil {
			return fmt.Errorf("filter: operator %q on field %q takes no value", w.Op, w.Field)
		}
	case OpIn, OpNotIn:
		rv := reflect.ValueOf(w.Value)
		if w.Value == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
			return fmt.Errorf("filter: operator %q on field %q requires a list of values", w.Op, w.Field)
		}
		if rv.Len() == 0 {
			return fmt.Errorf("filter: operator %q on field %q requires at least one value", w.Op, w.Field)
		}
	default:
		if w.Value == nil {
			return fmt.Errorf("filter: operator %q on field %q requires a value", w.Op, w.Field)
		}
	}
	return nil
}

// MarshalJSON encodes the single set arm in the backend wire shape.
func (w Where) MarshalJSON() ([]byte, error) {
	switch {
	case len(w.All) > 0:
		return json.Marshal(struct {
			All []Where `json:"and"`
		}{w.All})
	case len(w.Any) > 0:
		return json.Marshal(struct {
			Any []Where `json:"or"`
		}{w.Any})
	case w.Not != nil:
		return json.Marshal(struct {
			Not *Where `json:"not"`
		}{w.Not})
	case w.Op == OpIsNull || w.Op == OpNotNull:
		return json.Marshal(struct {
			Field string `json:"field"`
			Op    Op     `json:"op"`
		}{w.Field, w.Op})
	default:
		return json.Marshal(struct {
			Field string `json:"field"`
			Op    Op     `json:"op"`
			Value any    `json:"value"`
		}{w.Field, w.Op, w.Value})
	}
}

// UnmarshalJSON decodes the wire shape back into the union.
func (w *Where) UnmarshalJSON(data []byte) error {
	var raw struct {
		All   []Where         `json:"and"`
		Any   []Where         `json:"or"`
		Not   *Where          `json:"not"`
		Field string          `json:"field"`
		Op    Op              `json:"op"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*w = Where{All: raw.All, Any: raw.Any, Not: raw.Not, Field: raw.Field, Op: raw.Op}
	if len(raw.Value) > 0 {
		var value any
		if err := json.Unmarshal(raw.Value, &value); err != nil {
			return err
		}
		w.Value = value
	}
	return nil
}
