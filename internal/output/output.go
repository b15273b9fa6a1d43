// Package output persists scan artifacts: an append-only raw log written
// line-by-line as the scan runs, and a structured findings file written
// once at completion.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aardwolf-security/krakenbuster/internal/classify"
)

var (
	protocolRe = regexp.MustCompile(`https?://`)
	nonAlnumRe = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// SanitizeHost turns a target URL into a filename-safe token: protocol
// prefix stripped, every non-alphanumeric rune replaced by an underscore.
func SanitizeHost(target string) string {
	cleaned := protocolRe.ReplaceAllString(target, "")
	cleaned = nonAlnumRe.ReplaceAllString(cleaned, "_")
	return strings.Trim(cleaned, "_")
}

// Paths generates the raw-text and JSON output paths for one scan,
// creating the output directory if needed. The base name follows
// {host}_{tool}_{mode}_{timestamp}.
func Paths(dir, target, tool, mode string) (rawPath, jsonPath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	prefix := fmt.Sprintf("%s_%s_%s_%s",
		SanitizeHost(target), tool, mode, time.Now().Format("20060102_150405"))

	return filepath.Join(dir, prefix+".txt"), filepath.Join(dir, prefix+".json"), nil
}

// AppendRaw appends a single line to the raw output file. Each call opens,
// writes, and closes the file so every accepted line is durable before the
// next one arrives, even if the scan dies mid-run.
func AppendRaw(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening raw output %s: %w", path, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return f.Close()
}

// WriteFindings serialises the ordered finding list as one atomic write:
// the JSON is staged in a temp file and renamed into place so a crash
// never leaves a half-written findings file.
func WriteFindings(path string, findings []classify.Finding) error {
	if findings == nil {
		findings = []classify.Finding{}
	}

	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding findings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".findings-*.json")
	if err != nil {
		return fmt.Errorf("creating temp findings file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing findings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing findings file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("publishing findings file %s: %w", path, err)
	}
	return nil
}
