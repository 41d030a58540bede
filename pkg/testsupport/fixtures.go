// Package testsupport holds helpers shared by the package test suites:
// fixture and golden-file loading, and a scriptable fake of the API
// backend speaking the resource envelope protocol.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture reads a fixture file, failing the test when it is absent.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("load fixture %s: %v", path, err)
	}
	return data
}

// LoadFixtureJSON reads a JSON fixture into dest.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	if err := json.Unmarshal(LoadFixture(t, path), dest); err != nil {
		t.Fatalf("decode fixture %s: %v", path, err)
	}
}

// WriteGolden writes expected output to a golden file, creating parent
// directories as needed. Call it only when regenerating goldens.
func WriteGolden(t *testing.T, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create golden dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden %s: %v", path, err)
	}
}

// CompareWithGolden checks actual against the golden file, seeding the
// file from actual on first run.
func CompareWithGolden(t *testing.T, path string, actual []byte) {
	t.Helper()

	expected, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		t.Logf("golden %s missing, seeding it", path)
		WriteGolden(t, path, actual)
		return
	}
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("golden mismatch for %s:\nwant:\n%s\ngot:\n%s", path, expected, actual)
	}
}

// TempFile writes content to a file under the test's temp directory and
// returns its path. Cleanup is automatic.
func TempFile(t *testing.T, content []byte) string {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "fixture-*")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		t.Fatalf("write temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}
	return f.Name()
}

// FixturePath resolves filename inside the package's testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// GoldenPath resolves filename inside testdata/golden.
func GoldenPath(filename string) string {
	return filepath.Join("testdata", "golden", filename)
}
