package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	want := []byte("fixture content")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got := LoadFixture(t, path)
	if string(got) != string(want) {
		t.Errorf("LoadFixture() = %q, want %q", got, want)
	}
}

func TestLoadFixtureJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	raw, _ := json.Marshal(map[string]any{"name": "bolt", "quantity": 12})
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var got struct {
		Name     string `json:"name"`
		Quantity int    `json:"quantity"`
	}
	LoadFixtureJSON(t, path, &got)

	if got.Name != "bolt" || got.Quantity != 12 {
		t.Errorf("LoadFixtureJSON() = %+v", got)
	}
}

func TestWriteGoldenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "golden", "nested", "out.txt")
	want := []byte("expected output")

	WriteGolden(t, path, want)

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("golden content = %q, want %q", got, want)
	}
}

func TestCompareWithGolden_SeedsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.golden")
	actual := []byte("first run output")

	CompareWithGolden(t, path, actual)

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("golden was not seeded: %v", err)
	}
	if string(got) != string(actual) {
		t.Errorf("seeded golden = %q, want %q", got, actual)
	}

	// A second comparison against the seeded file must pass silently.
	CompareWithGolden(t, path, actual)
}

func TestTempFile(t *testing.T) {
	want := []byte("temp content")
	path := TempFile(t, want)

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read temp file: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("temp file content = %q, want %q", got, want)
	}
}

func TestFixturePath(t *testing.T) {
	if got, want := FixturePath("orders.json"), filepath.Join("testdata", "orders.json"); got != want {
		t.Errorf("FixturePath() = %q, want %q", got, want)
	}
}

func TestGoldenPath(t *testing.T) {
	if got, want := GoldenPath("keys.txt"), filepath.Join("testdata", "golden", "keys.txt"); got != want {
		t.Errorf("GoldenPath() = %q, want %q", got, want)
	}
}
