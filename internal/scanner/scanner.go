// Package scanner maps a generic scan request (tool, mode, target,
// wordlist, options) onto the concrete command line of one external
// enumeration tool. Builders are pure: no I/O, deterministic output.
package scanner

import (
	"fmt"
	"net/url"
	"os/exec"
	"strings"
)

// Tool identifies one supported external tool. The set is closed;
// selection happens through New, which rejects anything else.
type Tool int

const (
	Feroxbuster Tool = iota
	Ffuf
	Gobuster
	Dirb
	Wfuzz
	Dirsearch
	Amass
	Subfinder
)

var toolNames = map[Tool]string{
	Feroxbuster: "feroxbuster",
	Ffuf:        "ffuf",
	Gobuster:    "gobuster",
	Dirb:        "dirb",
	Wfuzz:       "wfuzz",
	Dirsearch:   "dirsearch",
	Amass:       "amass",
	Subfinder:   "subfinder",
}

func (t Tool) String() string { return toolNames[t] }

// ParseTool resolves a tool name to its enum value.
func ParseTool(name string) (Tool, error) {
	for tool, n := range toolNames {
		if n == name {
			return tool, nil
		}
	}
	return 0, fmt.Errorf("unknown tool: %s", name)
}

// Tools returns the supported tool names in a stable order.
func Tools() []string {
	return []string{"feroxbuster", "ffuf", "gobuster", "dirb", "wfuzz", "dirsearch", "amass", "subfinder"}
}

// Mode is the scan mode a tool runs in.
type Mode int

const (
	ModeDirectory Mode = iota
	ModeVhost
	ModeDNS
)

func (m Mode) String() string {
	switch m {
	case ModeVhost:
		return "vhost"
	case ModeDNS:
		return "dns"
	default:
		return "directory"
	}
}

// ParseMode resolves a mode name to its enum value.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "directory", "dir":
		return ModeDirectory, nil
	case "vhost":
		return ModeVhost, nil
	case "dns":
		return ModeDNS, nil
	}
	return 0, fmt.Errorf("unknown mode: %s", name)
}

// Scanner is one external tool bound to a target, a wordlist, and its
// options. Command never performs I/O and never fails; unrecognised
// tools are rejected by New instead.
type Scanner interface {
	Tool() Tool
	Mode() Mode
	Command() []string
}

// base carries the fields every tool builder shares.
type base struct {
	mode     Mode
	target   string
	wordlist string
	opts     Options
}

func (b base) Mode() Mode { return b.mode }

// New constructs the Scanner for the given tool identity. The returned
// error is the only failure mode builders have. In vhost mode an unset
// domain defaults to the target's hostname so the fuzzed Host header is
// never the degenerate "FUZZ.".
func New(tool Tool, mode Mode, target, wordlist string, opts Options) (Scanner, error) {
	if mode == ModeVhost && opts.Domain == "" {
		opts.Domain = hostOf(target)
	}
	b := base{mode: mode, target: target, wordlist: wordlist, opts: opts}
	switch tool {
	case Feroxbuster:
		return feroxbusterScanner{b}, nil
	case Ffuf:
		return ffufScanner{b}, nil
	case Gobuster:
		return gobusterScanner{b}, nil
	case Dirb:
		return dirbScanner{b}, nil
	case Wfuzz:
		return wfuzzScanner{b}, nil
	case Dirsearch:
		return dirsearchScanner{b}, nil
	case Amass:
		return amassScanner{b}, nil
	case Subfinder:
		return subfinderScanner{b}, nil
	}
	return nil, fmt.Errorf("unknown tool identity: %d", tool)
}

// Available reports which supported tools are present in PATH.
func Available() map[string]bool {
	avail := make(map[string]bool, len(toolNames))
	for _, name := range Tools() {
		_, err := exec.LookPath(name)
		avail[name] = err == nil
	}
	return avail
}

// ValidateTarget performs basic sanity checks on the target URL.
func ValidateTarget(target string) error {
	if target == "" {
		return fmt.Errorf("target must not be empty")
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return fmt.Errorf("target must begin with http:// or https://: %s", target)
	}
	return nil
}

// hostOf extracts the bare hostname (no scheme, port, or path) from a
// target URL, falling back to the raw target for schemeless input.
func hostOf(target string) string {
	if u, err := url.Parse(target); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	return target
}

// dotted normalises a comma-separated extension list into dotted form
// (php,html -> .php,.html), dropping empty entries.
func dotted(extensions string) string {
	var out []string
	for _, e := range strings.Split(extensions, ",") {
		e = strings.Trim(strings.TrimSpace(e), ".")
		if e != "" {
			out = append(out, "."+e)
		}
	}
	return strings.Join(out, ",")
}
