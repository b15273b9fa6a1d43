// Package classify extracts structured fields from the heterogeneous text
// output of external enumeration tools (feroxbuster, ffuf, gobuster, dirb,
// wfuzz, dirsearch, ...). Every extractor is a pure function over one line:
// it tries an ordered table of patterns and returns the first hit. Parsing
// is best-effort — an unmatched line is not an error, it simply carries no
// finding.
package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Finding is one parsed result record extracted from a tool output line.
// It is immutable once constructed.
type Finding struct {
	Status   int    `json:"status_code"`
	URL      string `json:"url"`
	Size     int    `json:"size"`
	Words    int    `json:"words"`
	Lines    int    `json:"lines"`
	Redirect string `json:"redirect"`
}

// The pattern tables below are ordered most tool-specific / least ambiguous
// first; the first matching rule wins. Order is load-bearing: a size value
// can look like a status code, so changing rule order changes results.

var statusRules = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{3})\b.*\bhttps?://`),   // status code before URL
	regexp.MustCompile(`Status:\s*(\d{3})`),          // feroxbuster style
	regexp.MustCompile(`\[Status:\s*(\d{3})\]`),      // bracketed status
	regexp.MustCompile(`^\s*(\d{3})\s`),              // line starts with status
	regexp.MustCompile(`\(Status:\s*(\d{3})\)`),      // parenthesised status
	regexp.MustCompile(`\b(\d{3})\s+\d+[A-Za-z]`),    // status followed by size
	regexp.MustCompile(`C=(\d{3})`),                  // wfuzz/dirsearch style
	regexp.MustCompile(`CODE:(\d{3})`),               // dirb style
	regexp.MustCompile(`\|\s*(\d{3})\s*\|`),          // pipe-delimited
}

var sizeRules = []*regexp.Regexp{
	regexp.MustCompile(`Size:\s*(\d+)`),
	regexp.MustCompile(`SIZE:(\d+)`),                 // dirb style
	regexp.MustCompile(`\b(\d+)[Bb]\b`),
	regexp.MustCompile(`\b(\d+)c\b`),                 // ffuf/feroxbuster char count
	regexp.MustCompile(`\|\s*(\d+)\s*\|`),
}

var wordRules = []*regexp.Regexp{
	regexp.MustCompile(`Words:\s*(\d+)`),
	regexp.MustCompile(`\b(\d+)w\b`),
}

var lineRules = []*regexp.Regexp{
	regexp.MustCompile(`Lines:\s*(\d+)`),
	regexp.MustCompile(`\b(\d+)l\b`),
}

var redirectRules = []*regexp.Regexp{
	regexp.MustCompile(`\[-->\s*([^\]]+)\]`),         // gobuster expanded redirect
	regexp.MustCompile(`->\s*(https?://\S+)`),
}

var (
	urlRe      = regexp.MustCompile(`(https?://\S+)`)
	ratioRe    = regexp.MustCompile(`\b(\d+)\s*/\s*(\d+)\b`)
	percentRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	ansiRe     = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
)

// strip removes ANSI escape sequences and carriage returns so that the
// pattern tables see the same text a human would.
func strip(line string) string {
	if strings.ContainsRune(line, '\x1b') {
		line = ansiRe.ReplaceAllString(line, "")
	}
	return strings.ReplaceAll(line, "\r", " ")
}

// Status extracts an HTTP status code from a tool output line. Matched
// 3-digit tokens outside [100,599] are rejected and the next rule is tried,
// so a word count that happens to look like "200" does not false-positive
// on its own.
func Status(line string) (int, bool) {
	line = strip(line)
	for _, rule := range statusRules {
		m := rule.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		code, err := strconv.Atoi(m[1])
		if err == nil && code >= 100 && code <= 599 {
			return code, true
		}
	}
	return 0, false
}

// URL extracts the first http(s) URL from a line, with trailing
// punctuation stripped. Returns "" when no URL is present.
func URL(line string) string {
	m := urlRe.FindStringSubmatch(strip(line))
	if m == nil {
		return ""
	}
	return strings.TrimRight(m[1], ",;])")
}

// Size extracts a response size in bytes. Returns 0 when no size field
// is recognised.
func Size(line string) int {
	return firstInt(sizeRules, strip(line))
}

// Words extracts a response word count, 0 when absent.
func Words(line string) int {
	return firstInt(wordRules, strip(line))
}

// Lines extracts a response line count, 0 when absent.
func Lines(line string) int {
	return firstInt(lineRules, strip(line))
}

// Redirect extracts a redirect target, "" when absent.
func Redirect(line string) string {
	line = strip(line)
	for _, rule := range redirectRules {
		if m := rule.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// Progress extracts a completion counter from a progress line. It prefers
// an explicit "done/total" pair and falls back to a bare percentage
// (mapped onto a total of 100). Percentages outside (0,100] are rejected.
func Progress(line string) (done, total int, ok bool) {
	line = strip(line)
	if m := ratioRe.FindStringSubmatch(line); m != nil {
		d, err1 := strconv.Atoi(m[1])
		t, err2 := strconv.Atoi(m[2])
		if err1 == nil && err2 == nil && t > 0 && d <= t {
			return d, t, true
		}
	}
	if m := percentRe.FindStringSubmatch(line); m != nil {
		pct, err := strconv.ParseFloat(m[1], 64)
		if err == nil && pct > 0 && pct <= 100 {
			return int(pct), 100, true
		}
	}
	return 0, 0, false
}

// ParseFinding converts a single output line into a Finding. A line yields
// a finding only if a status code was extracted; everything else is
// informational output, not an error.
func ParseFinding(line string) (Finding, bool) {
	status, ok := Status(line)
	if !ok {
		return Finding{}, false
	}
	return Finding{
		Status:   status,
		URL:      URL(line),
		Size:     Size(line),
		Words:    Words(line),
		Lines:    Lines(line),
		Redirect: Redirect(line),
	}, true
}

func firstInt(rules []*regexp.Regexp, line string) int {
	for _, rule := range rules {
		if m := rule.FindStringSubmatch(line); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}
	return 0
}
