package ankaa

import (
	"context"
	"net/http"
	"testing"

	"github.com/AnkaaDesign/apiclient/apierr"
	"github.com/AnkaaDesign/apiclient/pkg/di"
	"github.com/AnkaaDesign/apiclient/pkg/testsupport"
	"github.com/AnkaaDesign/apiclient/resource"
	"github.com/AnkaaDesign/apiclient/transport"
)

func newTestClient(t *testing.T) (*testsupport.FakeAPI, *Client) {
	t.Helper()

	api := testsupport.NewFakeAPI(t)
	container, err := di.NewContainer(di.Options{Transport: transport.Config{BaseURL: api.URL()}})
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	t.Cleanup(func() { container.Close() })

	client, err := New(container)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return api, client
}

func TestNew_WiresEveryResource(t *testing.T) {
	_, client := newTestClient(t)

	checks := []struct {
		name string
		got  string
	}{
		{name: "items", got: client.Items().Name()},
		{name: "orders", got: client.Orders().Name()},
		{name: "users", got: client.Users().Name()},
		{name: "sectors", got: client.Sectors().Name()},
		{name: "paints", got: client.Paints().Name()},
		{name: "paint-formulas", got: client.PaintFormulas().Name()},
		{name: "trucks", got: client.Trucks().Name()},
		{name: "layout-sections", got: client.LayoutSections().Name()},
	}
	for _, c := range checks {
		if c.got != c.name {
			t.Errorf("resource name = %q, want %q", c.got, c.name)
		}
	}

	if client.Container() == nil {
		t.Error("Container() = nil")
	}
}

func TestItemsRoundTrip(t *testing.T) {
	api, client := newTestClient(t)
	api.Handle(http.MethodGet, "/items", testsupport.ListOK([]map[string]any{
		{"id": "i1", "name": "hinge", "uniCode": "HN-40", "quantity": 12.5, "isActive": true},
	}, 1, 20, 1))

	page, err := client.Items().List(context.Background(), resource.ListParams{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("List() returned %d items", len(page.Data))
	}

	item := page.Data[0]
	if item.ID != "i1" || item.Name != "hinge" || item.UniCode != "HN-40" || item.Quantity != 12.5 || !item.IsActive {
		t.Errorf("decoded item = %+v", item)
	}
}

func TestOrderWriteInvalidatesItems(t *testing.T) {
	api, client := newTestClient(t)
	api.Handle(http.MethodGet, "/items", testsupport.ListOK([]map[string]any{
		{"id": "i1", "name": "hinge", "quantity": 3},
	}, 1, 20, 1))
	api.Handle(http.MethodPost, "/orders", testsupport.OK(map[string]any{
		"id": "o1", "description": "restock hinges", "status": "CREATED",
	}))

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.Items().List(ctx, resource.ListParams{}); err != nil {
			t.Fatalf("List(items) error = %v", err)
		}
	}
	if got := api.CallCount(http.MethodGet, "/items"); got != 1 {
		t.Fatalf("items list calls = %d, want 1", got)
	}

	// Orders live in a shorter staleness window than items; the declared
	// contract still has to cross cache services.
	if _, err := client.Orders().Create(ctx, OrderCreate{Description: "restock hinges"}); err != nil {
		t.Fatalf("Create(order) error = %v", err)
	}

	if _, err := client.Items().List(ctx, resource.ListParams{}); err != nil {
		t.Fatalf("List(items) after order error = %v", err)
	}
	if got := api.CallCount(http.MethodGet, "/items"); got != 2 {
		t.Errorf("items list calls = %d, want 2 (order write must drop item reads)", got)
	}
}

func TestSectorWriteInvalidatesUsers(t *testing.T) {
	api, client := newTestClient(t)
	api.Handle(http.MethodGet, "/users/u1", testsupport.OK(map[string]any{
		"id": "u1", "name": "Ana", "status": "CONTRACTED",
	}))
	api.Handle(http.MethodPut, "/sectors/s1", testsupport.OK(map[string]any{
		"id": "s1", "name": "Paint Shop", "privileges": "PRODUCTION",
	}))

	ctx := context.Background()

	if _, err := client.Users().Get(ctx, "u1", resource.GetParams{}); err != nil {
		t.Fatalf("Get(user) error = %v", err)
	}

	privileges := PrivilegeProduction
	if _, err := client.Sectors().Update(ctx, "s1", SectorUpdate{Privileges: &privileges}); err != nil {
		t.Fatalf("Update(sector) error = %v", err)
	}

	if _, err := client.Users().Get(ctx, "u1", resource.GetParams{}); err != nil {
		t.Fatalf("Get(user) after sector change error = %v", err)
	}
	if got := api.CallCount(http.MethodGet, "/users/u1"); got != 2 {
		t.Errorf("user get calls = %d, want 2 (sector change must drop user reads)", got)
	}
}

func TestPaintCreateValidatedBeforeDispatch(t *testing.T) {
	api, client := newTestClient(t)

	_, err := client.Paints().Create(context.Background(), PaintCreate{
		Name:   "Sunset Orange",
		Hex:    "not-a-color",
		Finish: FinishSolid,
	})
	if !apierr.IsValidation(err) {
		t.Fatalf("Create() error = %v, want validation failure", err)
	}
	if fields, _ := apierr.FieldsOf(err); fields["Hex"] == "" {
		t.Errorf("validation fields = %v, want Hex entry", fields)
	}

	if got := api.CallCount(http.MethodPost, "/paints"); got != 0 {
		t.Errorf("backend calls = %d, invalid payloads must not be sent", got)
	}
}

func TestBatchUpdateStockWireShape(t *testing.T) {
	api, client := newTestClient(t)
	api.Handle(http.MethodPut, "/items/batch", testsupport.OK(map[string]any{
		"total": 2, "succeeded": 2, "failed": 0,
		"outcomes": []map[string]any{
			{"index": 0, "id": "i1", "success": true, "data": map[string]any{"id": "i1", "name": "hinge", "quantity": 7}},
			{"index": 1, "id": "i2", "success": true, "data": map[string]any{"id": "i2", "name": "bolt", "quantity": 90}},
		},
	}))

	qty1, qty2 := 7.0, 90.0
	result, err := client.Items().BatchUpdate(context.Background(), []resource.BatchUpdate[ItemUpdate]{
		{ID: "i1", Data: ItemUpdate{Quantity: &qty1}},
		{ID: "i2", Data: ItemUpdate{Quantity: &qty2}},
	})
	if err != nil {
		t.Fatalf("BatchUpdate() error = %v", err)
	}
	if result.Total != 2 || result.Succeeded != 2 {
		t.Errorf("result = %+v", result)
	}

	last, ok := api.LastRequest(http.MethodPut, "/items/batch")
	if !ok {
		t.Fatal("backend saw no batch request")
	}
	want := `{"updates":[{"id":"i1","data":{"quantity":7}},{"id":"i2","data":{"quantity":90}}]}`
	if got := string(last.Body); got != want {
		t.Errorf("wire body = %s, want %s", got, want)
	}
}
