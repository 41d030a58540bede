package filter

import "fmt"

// Direction is the sort direction for an ordering term.
type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// Order is one ordering term. Lists of terms encode as a JSON array in
// the orderBy query parameter, applied in sequence.
type Order struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// Asc orders by field ascending.
func Asc(field string) Order { return Order{Field: field, Direction: DirectionAsc} }

// Desc orders by field descending.
func Desc(field string) Order { return Order{Field: field, Direction: DirectionDesc} }

// Validate checks a single ordering term.
func (o Order) Validate() error {
	if o.Field == "" {
		return fmt.Errorf("filter: ordering term is missing a field")
	}
	if o.Direction != DirectionAsc && o.Direction != DirectionDesc {
		return fmt.Errorf("filter: unknown sort direction %q on field %q", o.Direction, o.Field)
	}
	return nil
}

// ValidateOrderBy checks a full ordering list.
func ValidateOrderBy(orders []Order) error {
	for i, o := range orders {
		if err := o.Validate(); err != nil {
			return fmt.Errorf("filter: term %d: %w", i, err)
		}
	}
	return nil
}
