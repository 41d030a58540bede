package ankaa

import "time"

// OrderStatus is the lifecycle state of a purchase order.
type OrderStatus string

const (
	OrderCreated           OrderStatus = "CREATED"
	OrderPartiallyReceived OrderStatus = "PARTIALLY_RECEIVED"
	OrderReceived          OrderStatus = "RECEIVED"
	OrderOverdue           OrderStatus = "OVERDUE"
	OrderCancelled         OrderStatus = "CANCELLED"
)

// UserStatus tracks the employment state of a user.
type UserStatus string

const (
	UserExperiencePeriod1 UserStatus = "EXPERIENCE_PERIOD_1"
	UserExperiencePeriod2 UserStatus = "EXPERIENCE_PERIOD_2"
	UserContracted        UserStatus = "CONTRACTED"
	UserDismissed         UserStatus = "DISMISSED"
)

// PaintFinish is the surface finish of a paint.
type PaintFinish string

const (
	FinishSolid    PaintFinish = "SOLID"
	FinishMetallic PaintFinish = "METALLIC"
	FinishPearl    PaintFinish = "PEARL"
	FinishMatte    PaintFinish = "MATTE"
	FinishSatin    PaintFinish = "SATIN"
)

// Side places a layout section on the truck body.
type Side string

const (
	SideLeft  Side = "LEFT"
	SideRight Side = "RIGHT"
	SideBack  Side = "BACK"
)

// Item is a stock item in the inventory module.
type Item struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	UniCode      string    `json:"uniCode,omitempty"`
	Quantity     float64   `json:"quantity"`
	ReorderPoint *float64  `json:"reorderPoint,omitempty"`
	Price        *float64  `json:"price,omitempty"`
	IsActive     bool      `json:"isActive"`
	SupplierID   *string   `json:"supplierId,omitempty"`
	CategoryID   *string   `json:"categoryId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NeedsReorder reports whether the quantity has fallen to the reorder
// point.
func (i Item) NeedsReorder() bool {
	return i.ReorderPoint != nil && i.Quantity <= *i.ReorderPoint
}

// Order is a purchase order in the inventory module.
type Order struct {
	ID           string      `json:"id"`
	Description  string      `json:"description"`
	Status       OrderStatus `json:"status"`
	ForecastDate *time.Time  `json:"forecastDate,omitempty"`
	SupplierID   *string     `json:"supplierId,omitempty"`
	Items        []OrderItem `json:"items,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// OrderItem is one line of a purchase order.
type OrderItem struct {
	ID               string  `json:"id"`
	OrderID          string  `json:"orderId"`
	ItemID           string  `json:"itemId"`
	OrderedQuantity  float64 `json:"orderedQuantity"`
	ReceivedQuantity float64 `json:"receivedQuantity"`
	Price            float64 `json:"price"`
}

// Open reports whether the order still expects deliveries.
func (o Order) Open() bool {
	switch o.Status {
	case OrderReceived, OrderCancelled:
		return false
	}
	return true
}

// User is an employee account in the HR module.
type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	Status    UserStatus `json:"status"`
	SectorID  *string    `json:"sectorId,omitempty"`
	Sector    *Sector    `json:"sector,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Sector is an organizational unit. Privileges attach to sectors, not
// to individual users.
type Sector struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Privileges Privilege `json:"privileges"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Paint is a color in the production module's catalog.
type Paint struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Hex          string      `json:"hex"`
	Finish       PaintFinish `json:"finish"`
	Brand        *string     `json:"brand,omitempty"`
	Manufacturer *string     `json:"manufacturer,omitempty"`
	Tags         []string    `json:"tags,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// PaintFormula defines how a paint is mixed.
type PaintFormula struct {
	ID            string    `json:"id"`
	PaintID       string    `json:"paintId"`
	Description   string    `json:"description"`
	Density       float64   `json:"density"`
	PricePerLiter float64   `json:"pricePerLiter"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Truck is a vehicle in the fleet module.
type Truck struct {
	ID           string    `json:"id"`
	Plate        string    `json:"plate"`
	Model        string    `json:"model"`
	Manufacturer string    `json:"manufacturer,omitempty"`
	XPosition    *float64  `json:"xPosition,omitempty"`
	YPosition    *float64  `json:"yPosition,omitempty"`
	GarageID     *string   `json:"garageId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LayoutSection is one segment of a truck body layout.
type LayoutSection struct {
	ID         string    `json:"id"`
	LayoutID   string    `json:"layoutId"`
	Side       Side      `json:"side"`
	Position   int       `json:"position"`
	Width      float64   `json:"width"`
	IsDoor     bool      `json:"isDoor"`
	DoorOffset *float64  `json:"doorOffset,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
