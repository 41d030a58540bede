// Package ankaa is the concrete API surface for the Ankaa backend: the
// domain entities of its inventory, HR, production, fleet, and
// administration modules, and a facade bundling one cached resource
// client per entity.
package ankaa

import (
	"fmt"
	"time"

	"github.com/AnkaaDesign/apiclient/pkg/di"
	"github.com/AnkaaDesign/apiclient/query"
)

// Staleness windows per resource family. Orders move fast; inventory
// and fleet data changes during the day; people and catalog data barely
// changes between sessions.
const (
	OrdersStaleness    = 3 * time.Minute
	InventoryStaleness = 5 * time.Minute
	FleetStaleness     = 5 * time.Minute
	ReferenceStaleness = 10 * time.Minute
)

// Client bundles the cached resource clients for every Ankaa entity.
// All of them share the container's transport, token source, and
// invalidation fabric.
type Client struct {
	container *di.Container

	items          *query.Cached[Item, ItemCreate, ItemUpdate]
	orders         *query.Cached[Order, OrderCreate, OrderUpdate]
	users          *query.Cached[User, UserCreate, UserUpdate]
	sectors        *query.Cached[Sector, SectorCreate, SectorUpdate]
	paints         *query.Cached[Paint, PaintCreate, PaintUpdate]
	paintFormulas  *query.Cached[PaintFormula, PaintFormulaCreate, PaintFormulaUpdate]
	trucks         *query.Cached[Truck, TruckCreate, TruckUpdate]
	layoutSections *query.Cached[LayoutSection, LayoutSectionCreate, LayoutSectionUpdate]
}

// New builds the facade on top of a container. Cross-resource
// invalidation contracts are declared here: order writes touch item
// stock, sector writes change the privileges embedded in users, paint
// writes orphan formulas, truck writes move layout sections.
func New(container *di.Container) (*Client, error) {
	c := &Client{container: container}

	var err error
	if c.items, err = di.NewCachedResource[Item, ItemCreate, ItemUpdate](
		container, "items", InventoryStaleness); err != nil {
		return nil, fmt.Errorf("ankaa: wire items: %w", err)
	}
	if c.orders, err = di.NewCachedResource[Order, OrderCreate, OrderUpdate](
		container, "orders", OrdersStaleness,
		query.WithInvalidates("items")); err != nil {
		return nil, fmt.Errorf("ankaa: wire orders: %w", err)
	}
	if c.users, err = di.NewCachedResource[User, UserCreate, UserUpdate](
		container, "users", ReferenceStaleness); err != nil {
		return nil, fmt.Errorf("ankaa: wire users: %w", err)
	}
	if c.sectors, err = di.NewCachedResource[Sector, SectorCreate, SectorUpdate](
		container, "sectors", ReferenceStaleness,
		query.WithInvalidates("users")); err != nil {
		return nil, fmt.Errorf("ankaa: wire sectors: %w", err)
	}
	if c.paints, err = di.NewCachedResource[Paint, PaintCreate, PaintUpdate](
		container, "paints", ReferenceStaleness,
		query.WithInvalidates("paint-formulas")); err != nil {
		return nil, fmt.Errorf("ankaa: wire paints: %w", err)
	}
	if c.paintFormulas, err = di.NewCachedResource[PaintFormula, PaintFormulaCreate, PaintFormulaUpdate](
		container, "paint-formulas", ReferenceStaleness); err != nil {
		return nil, fmt.Errorf("ankaa: wire paint formulas: %w", err)
	}
	if c.trucks, err = di.NewCachedResource[Truck, TruckCreate, TruckUpdate](
		container, "trucks", FleetStaleness,
		query.WithInvalidates("layout-sections")); err != nil {
		return nil, fmt.Errorf("ankaa: wire trucks: %w", err)
	}
	if c.layoutSections, err = di.NewCachedResource[LayoutSection, LayoutSectionCreate, LayoutSectionUpdate](
		container, "layout-sections", FleetStaleness); err != nil {
		return nil, fmt.Errorf("ankaa: wire layout sections: %w", err)
	}

	return c, nil
}

// Container exposes the underlying container for session operations
// such as SetToken and Logout.
func (c *Client) Container() *di.Container {
	return c.container
}

func (c *Client) Items() *query.Cached[Item, ItemCreate, ItemUpdate] {
	return c.items
}

func (c *Client) Orders() *query.Cached[Order, OrderCreate, OrderUpdate] {
	return c.orders
}

func (c *Client) Users() *query.Cached[User, UserCreate, UserUpdate] {
	return c.users
}

func (c *Client) Sectors() *query.Cached[Sector, SectorCreate, SectorUpdate] {
	return c.sectors
}

func (c *Client) Paints() *query.Cached[Paint, PaintCreate, PaintUpdate] {
	return c.paints
}

func (c *Client) PaintFormulas() *query.Cached[PaintFormula, PaintFormulaCreate, PaintFormulaUpdate] {
	return c.paintFormulas
}

func (c *Client) Trucks() *query.Cached[Truck, TruckCreate, TruckUpdate] {
	return c.trucks
}

func (c *Client) LayoutSections() *query.Cached[LayoutSection, LayoutSectionCreate, LayoutSectionUpdate] {
	return c.layoutSections
}
