package resource

import (
	"encoding/json"
	"testing"

	"github.com/AnkaaDesign/apiclient/filter"
)

func TestListParams_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		params    ListParams
		wantPage  int
		wantLimit int
	}{
		{name: "zero value gets defaults", params: ListParams{}, wantPage: 1, wantLimit: 20},
		{name: "negative page clamped", params: ListParams{Page: -3}, wantPage: 1, wantLimit: 20},
		{name: "explicit values kept", params: ListParams{Page: 4, Limit: 50}, wantPage: 4, wantLimit: 50},
		{name: "limit capped", params: ListParams{Limit: 500}, wantPage: 1, wantLimit: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.params.Normalize()
			if got.Page != tt.wantPage || got.Limit != tt.wantLimit {
				t.Errorf("Normalize() = page %d limit %d, want %d/%d",
					got.Page, got.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestListParams_NormalizeMakesDefaultsEqual(t *testing.T) {
	implicit := ListParams{}.Normalize()
	explicit := ListParams{Page: 1, Limit: 20}.Normalize()

	a, err := implicit.QueryValues()
	if err != nil {
		t.Fatal(err)
	}
	b, err := explicit.QueryValues()
	if err != nil {
		t.Fatal(err)
	}

	if a.Encode() != b.Encode() {
		t.Errorf("defaulted and explicit-default params differ: %q vs %q", a.Encode(), b.Encode())
	}
}

func TestListParams_QueryValues(t *testing.T) {
	where := filter.Eq("status", "ACTIVE")
	params := ListParams{
		Page:         2,
		Limit:        10,
		SearchingFor: "bolt",
		Where:        &where,
		OrderBy:      []filter.Order{filter.Desc("createdAt")},
		Include:      Include{"supplier": nil},
	}.Normalize()

	values, err := params.QueryValues()
	if err != nil {
		t.Fatalf("QueryValues() error = %v", err)
	}

	if got := values.Get("page"); got != "2" {
		t.Errorf("page = %q, want 2", got)
	}
	if got := values.Get("limit"); got != "10" {
		t.Errorf("limit = %q, want 10", got)
	}
	if got := values.Get("searchingFor"); got != "bolt" {
		t.Errorf("searchingFor = %q, want bolt", got)
	}
	if got := values.Get("where"); got != `{"field":"status","op":"eq","value":"ACTIVE"}` {
		t.Errorf("where = %q", got)
	}
	if got := values.Get("orderBy"); got != `[{"field":"createdAt","direction":"desc"}]` {
		t.Errorf("orderBy = %q", got)
	}
	if got := values.Get("include"); got != `{"supplier":true}` {
		t.Errorf("include = %q", got)
	}
}

func TestListParams_QueryValuesOmitsEmpty(t *testing.T) {
	values, err := ListParams{}.Normalize().QueryValues()
	if err != nil {
		t.Fatalf("QueryValues() error = %v", err)
	}

	for _, key := range []string{"searchingFor", "where", "orderBy", "include"} {
		if values.Has(key) {
			t.Errorf("empty params emitted %q = %q", key, values.Get(key))
		}
	}
}

func TestListParams_ValidateRejectsBadFilter(t *testing.T) {
	params := ListParams{Where: &filter.Where{Field: "status"}}.Normalize()
	if err := params.Validate(); err == nil {
		t.Error("Validate() = nil, want error for op-less leaf")
	}
}

func TestInclude_Marshal(t *testing.T) {
	tests := []struct {
		name    string
		include Include
		want    string
	}{
		{
			name:    "flat relations",
			include: Include{"supplier": nil, "category": nil},
			want:    `{"category":true,"supplier":true}`,
		},
		{
			name: "nested relation",
			include: Include{
				"items": {"paint": nil},
			},
			want: `{"items":{"include":{"paint":true}}}`,
		},
		{
			name: "mixed depth",
			include: Include{
				"user":  nil,
				"items": {"paint": {"formulas": nil}},
			},
			want: `{"items":{"include":{"paint":{"include":{"formulas":true}}}},"user":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.include)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInclude_MarshalDeterministic(t *testing.T) {
	include := Include{"b": nil, "a": nil, "c": {"z": nil, "y": nil}}

	first, err := json.Marshal(include)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		next, err := json.Marshal(include)
		if err != nil {
			t.Fatal(err)
		}
		if string(next) != string(first) {
			t.Fatalf("marshal output changed between runs: %s vs %s", first, next)
		}
	}
}

func TestGetParams_QueryValues(t *testing.T) {
	values, err := GetParams{Include: Include{"sector": nil}}.QueryValues()
	if err != nil {
		t.Fatalf("QueryValues() error = %v", err)
	}
	if got := values.Get("include"); got != `{"sector":true}` {
		t.Errorf("include = %q", got)
	}

	empty, err := GetParams{}.QueryValues()
	if err != nil {
		t.Fatalf("QueryValues() error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty GetParams emitted values: %v", empty)
	}
}
