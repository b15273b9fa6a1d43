// Package wordlist locates wordlist files on disk and sizes them for the
// scan progress denominator. The wordlists themselves are consumed by the
// external tools, never loaded into memory here.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSearchPaths are the standard Kali Linux wordlist locations.
var DefaultSearchPaths = []string{
	"/usr/share/wordlists",
	"/usr/share/seclists",
	"/usr/share/dirb/wordlists",
	"/usr/share/dirbuster/wordlists",
}

// recommended maps a scan mode to wordlist filenames worth suggesting.
var recommended = map[string][]string{
	"directory": {"raft-medium-words.txt", "common.txt"},
	"vhost":     {"subdomains-top1million-5000.txt"},
	"dns":       {"subdomains-top1million-5000.txt"},
}

// Entry is one discovered wordlist file.
type Entry struct {
	Path    string // absolute path
	RelPath string // path relative to its search root, prefixed with the root's base name
	Size    int64
}

// Recommended reports whether this wordlist is a suggested default for
// the given scan mode.
func (e Entry) Recommended(mode string) bool {
	name := filepath.Base(e.Path)
	for _, candidate := range recommended[mode] {
		if name == candidate {
			return true
		}
	}
	return false
}

// SizeHuman returns the file size in human-readable form.
func (e Entry) SizeHuman() string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case e.Size >= gb:
		return fmt.Sprintf("%.1f GB", float64(e.Size)/float64(gb))
	case e.Size >= mb:
		return fmt.Sprintf("%.1f MB", float64(e.Size)/float64(mb))
	case e.Size >= kb:
		return fmt.Sprintf("%.1f KB", float64(e.Size)/float64(kb))
	default:
		return fmt.Sprintf("%d B", e.Size)
	}
}

// Discover walks the default wordlist directories for .txt files.
// Roots that do not exist are silently skipped.
func Discover() []Entry {
	return DiscoverFrom(DefaultSearchPaths)
}

// DiscoverFrom walks the supplied directories and returns every .txt file
// found. Unreadable entries are skipped rather than failing the walk.
func DiscoverFrom(roots []string) []Entry {
	var entries []Entry

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			continue
		}

		filepath.Walk(root, func(path string, fi os.FileInfo, walkErr error) error {
			if walkErr != nil || fi.IsDir() {
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(fi.Name()), ".txt") {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			entries = append(entries, Entry{
				Path:    path,
				RelPath: filepath.Join(filepath.Base(root), rel),
				Size:    fi.Size(),
			})
			return nil
		})
	}

	return entries
}

// CountLines counts the lines in a wordlist file. The count seeds the
// progress denominator; an unreadable file yields an error so the caller
// can fall back to "unknown" progress.
func CountLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening wordlist %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	count := 0
	for sc.Scan() {
		count++
	}
	if err := sc.Err(); err != nil {
		return count, fmt.Errorf("reading wordlist %s: %w", path, err)
	}
	return count, nil
}
