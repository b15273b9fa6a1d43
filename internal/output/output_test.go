package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/aardwolf-security/krakenbuster/internal/classify"
)

func TestSanitizeHost(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://example.com", "example_com"},
		{"https://sub.example.com:8080/path", "sub_example_com_8080_path"},
		{"example.com", "example_com"},
		{"http://10.10.10.5", "10_10_10_5"},
		{"https://example.com/", "example_com"},
	}
	for _, tt := range tests {
		if got := SanitizeHost(tt.in); got != tt.want {
			t.Errorf("SanitizeHost(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPathsNamingContract(t *testing.T) {
	dir := t.TempDir()
	raw, jsonPath, err := Paths(dir, "http://example.com", "ffuf", "vhost")
	if err != nil {
		t.Fatal(err)
	}

	base := filepath.Base(raw)
	pattern := regexp.MustCompile(`^example_com_ffuf_vhost_\d{8}_\d{6}\.txt$`)
	if !pattern.MatchString(base) {
		t.Errorf("raw path base %q does not match naming contract", base)
	}
	if strings.TrimSuffix(jsonPath, ".json") != strings.TrimSuffix(raw, ".txt") {
		t.Errorf("raw and json paths disagree: %q vs %q", raw, jsonPath)
	}
}

func TestPathsCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	if _, _, err := Paths(dir, "http://x", "dirb", "directory"); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory not created: %v", err)
	}
}

func TestAppendRawIsIncremental(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.txt")

	for _, line := range []string{"first", "second", "third"} {
		if err := AppendRaw(path, line); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first\nsecond\nthird\n" {
		t.Errorf("raw log = %q", data)
	}
}

func TestAppendRawFailureDoesNotPanic(t *testing.T) {
	if err := AppendRaw(filepath.Join(t.TempDir(), "missing", "raw.txt"), "line"); err == nil {
		t.Error("expected error appending beneath a missing directory")
	}
}

func TestWriteFindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.json")
	findings := []classify.Finding{
		{Status: 200, URL: "http://x/admin", Size: 1523, Words: 128, Lines: 42},
		{Status: 301, URL: "http://x/images", Redirect: "http://x/images/"},
	}

	if err := WriteFindings(path, findings); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got []classify.Finding
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("findings file is not valid JSON: %v", err)
	}
	if len(got) != 2 || got[0].URL != "http://x/admin" || got[1].Redirect != "http://x/images/" {
		t.Errorf("round-tripped findings = %+v", got)
	}
}

func TestWriteFindingsEmptyIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "findings.json")
	if err := WriteFindings(path, nil); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("empty findings file = %q, want []", data)
	}
}

func TestWriteFindingsLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "findings.json")
	if err := WriteFindings(path, []classify.Finding{{Status: 200}}); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the findings file, found %d entries", len(entries))
	}
}
