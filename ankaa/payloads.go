package ankaa

import "time"

// Create and update payloads for each resource. Update payloads use
// pointer fields so absent and zero values stay distinguishable; the
// backend treats nil as "leave unchanged".

type ItemCreate struct {
	Name         string   `json:"name" validate:"required"`
	UniCode      string   `json:"uniCode,omitempty"`
	Quantity     float64  `json:"quantity" validate:"gte=0"`
	ReorderPoint *float64 `json:"reorderPoint,omitempty" validate:"omitempty,gte=0"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	SupplierID   *string  `json:"supplierId,omitempty"`
	CategoryID   *string  `json:"categoryId,omitempty"`
}

type ItemUpdate struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	UniCode      *string  `json:"uniCode,omitempty"`
	Quantity     *float64 `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	ReorderPoint *float64 `json:"reorderPoint,omitempty" validate:"omitempty,gte=0"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool    `json:"isActive,omitempty"`
	SupplierID   *string  `json:"supplierId,omitempty"`
	CategoryID   *string  `json:"categoryId,omitempty"`
}

type OrderItemCreate struct {
	ItemID          string  `json:"itemId" validate:"required"`
	OrderedQuantity float64 `json:"orderedQuantity" validate:"gt=0"`
	Price           float64 `json:"price" validate:"gte=0"`
}

type OrderCreate struct {
	Description  string            `json:"description" validate:"required"`
	ForecastDate *time.Time        `json:"forecastDate,omitempty"`
	SupplierID   *string           `json:"supplierId,omitempty"`
	Items        []OrderItemCreate `json:"items,omitempty" validate:"omitempty,dive"`
}

type OrderUpdate struct {
	Description  *string      `json:"description,omitempty" validate:"omitempty,min=1"`
	Status       *OrderStatus `json:"status,omitempty" validate:"omitempty,oneof=CREATED PARTIALLY_RECEIVED RECEIVED OVERDUE CANCELLED"`
	ForecastDate *time.Time   `json:"forecastDate,omitempty"`
	SupplierID   *string      `json:"supplierId,omitempty"`
}

type UserCreate struct {
	Name     string  `json:"name" validate:"required"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string `json:"phone,omitempty"`
	SectorID *string `json:"sectorId,omitempty"`
}

type UserUpdate struct {
	Name     *string     `json:"name,omitempty" validate:"omitempty,min=1"`
	Email    *string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string     `json:"phone,omitempty"`
	Status   *UserStatus `json:"status,omitempty" validate:"omitempty,oneof=EXPERIENCE_PERIOD_1 EXPERIENCE_PERIOD_2 CONTRACTED DISMISSED"`
	SectorID *string     `json:"sectorId,omitempty"`
}

type SectorCreate struct {
	Name       string    `json:"name" validate:"required"`
	Privileges Privilege `json:"privileges" validate:"required,oneof=BASIC MAINTENANCE WAREHOUSE PRODUCTION LEADER HUMAN_RESOURCES FINANCIAL ADMIN EXTERNAL"`
}

type SectorUpdate struct {
	Name       *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	Privileges *Privilege `json:"privileges,omitempty" validate:"omitempty,oneof=BASIC MAINTENANCE WAREHOUSE PRODUCTION LEADER HUMAN_RESOURCES FINANCIAL ADMIN EXTERNAL"`
}

type PaintCreate struct {
	Name         string      `json:"name" validate:"required"`
	Hex          string      `json:"hex" validate:"required,hexcolor"`
	Finish       PaintFinish `json:"finish" validate:"required,oneof=SOLID METALLIC PEARL MATTE SATIN"`
	Brand        *string     `json:"brand,omitempty"`
	Manufacturer *string     `json:"manufacturer,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
}

type PaintUpdate struct {
	Name         *string      `json:"name,omitempty" validate:"omitempty,min=1"`
	Hex          *string      `json:"hex,omitempty" validate:"omitempty,hexcolor"`
	Finish       *PaintFinish `json:"finish,omitempty" validate:"omitempty,oneof=SOLID METALLIC PEARL MATTE SATIN"`
	Brand        *string      `json:"brand,omitempty"`
	Manufacturer *string      `json:"manufacturer,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
}

type PaintFormulaCreate struct {
	PaintID       string  `json:"paintId" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Density       float64 `json:"density" validate:"gt=0"`
	PricePerLiter float64 `json:"pricePerLiter" validate:"gte=0"`
}

type PaintFormulaUpdate struct {
	Description   *string  `json:"description,omitempty" validate:"omitempty,min=1"`
	Density       *float64 `json:"density,omitempty" validate:"omitempty,gt=0"`
	PricePerLiter *float64 `json:"pricePerLiter,omitempty" validate:"omitempty,gte=0"`
}

type TruckCreate struct {
	Plate        string   `json:"plate" validate:"required"`
	Model        string   `json:"model" validate:"required"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	XPosition    *float64 `json:"xPosition,omitempty"`
	YPosition    *float64 `json:"yPosition,omitempty"`
	GarageID     *string  `json:"garageId,omitempty"`
}

type TruckUpdate struct {
	Plate        *string  `json:"plate,omitempty" validate:"omitempty,min=1"`
	Model        *string  `json:"model,omitempty" validate:"omitempty,min=1"`
	Manufacturer *string  `json:"manufacturer,omitempty"`
	XPosition    *float64 `json:"xPosition,omitempty"`
	YPosition    *float64 `json:"yPosition,omitempty"`
	GarageID     *string  `json:"garageId,omitempty"`
}

type LayoutSectionCreate struct {
	LayoutID   string   `json:"layoutId" validate:"required"`
	Side       Side     `json:"side" validate:"required,oneof=LEFT RIGHT BACK"`
	Position   int      `json:"position" validate:"gte=0"`
	Width      float64  `json:"width" validate:"gt=0"`
	IsDoor     bool     `json:"isDoor"`
	DoorOffset *float64 `json:"doorOffset,omitempty" validate:"omitempty,gte=0"`
}

type LayoutSectionUpdate struct {
	Side       *Side    `json:"side,omitempty" validate:"omitempty,oneof=LEFT RIGHT BACK"`
	Position   *int     `json:"position,omitempty" validate:"omitempty,gte=0"`
	Width      *float64 `json:"width,omitempty" validate:"omitempty,gt=0"`
	IsDoor     *bool    `json:"isDoor,omitempty"`
	DoorOffset *float64 `json:"doorOffset,omitempty" validate:"omitempty,gte=0"`
}
