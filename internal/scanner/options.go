package scanner

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Options enumerates every knob the tool builders recognise. Zero values
// mean "omit the flag" except where Default() documents otherwise; each
// builder applies its own tool-specific defaults on top.
type Options struct {
	Threads     int
	Rate        int
	Proxy       string
	Extensions  string // comma-separated, without dots
	Depth       int
	Domain      string // base domain for vhost fuzzing

	StatusCodes string // show-list (gobuster/feroxbuster)
	FilterCodes string // hide-list (ffuf/dirsearch)
	FilterSize  string
	FilterLines string
	FilterWords string
	HideCodes   string // wfuzz hide-list

	Resolver      string
	Timeout       string
	MaxTime       string
	MaxDNSQueries string
	Auth          string

	FollowRedirects  bool
	Expanded         bool
	AppendDomain     bool
	ShowIPs          bool
	Recursive        bool // dirsearch directory recursion (default on)
	RecursiveSources bool // subfinder recursive source enumeration (default off)
	NonRecursive     bool
	CaseInsensitive  bool
	RandomAgents     bool
	Passive          bool
	BruteForce       bool
	AllSources       bool
}

// Default returns the documented per-key defaults shared across tools.
func Default() Options {
	return Options{
		Threads:         50,
		Rate:            200,
		Extensions:      "php,html,txt,js",
		Depth:           3,
		StatusCodes:     "200,204,301,302,307,401,403",
		FilterCodes:     "400,404",
		HideCodes:       "404",
		FollowRedirects: true,
		AppendDomain:    true,
		ShowIPs:         true,
		Recursive:       true,
		RandomAgents:    true,
		Passive:         true,
		AllSources:      true,
	}
}

// FromMap overlays a legacy string-keyed option dictionary onto the
// defaults. Unknown keys are ignored explicitly (logged at debug) rather
// than silently; missing keys keep their defaults.
func FromMap(m map[string]string) Options {
	o := Default()
	for key, val := range m {
		switch key {
		case "threads":
			o.Threads = atoiOr(val, o.Threads)
		case "rate_limit":
			o.Rate = atoiOr(val, o.Rate)
		case "proxy":
			o.Proxy = val
		case "extensions":
			o.Extensions = val
		case "depth":
			o.Depth = atoiOr(val, o.Depth)
		case "domain":
			o.Domain = val
		case "status_codes":
			o.StatusCodes = val
		case "filter_codes":
			o.FilterCodes = val
		case "filter_size":
			o.FilterSize = val
		case "filter_lines":
			o.FilterLines = val
		case "filter_words":
			o.FilterWords = val
		case "hide_codes":
			o.HideCodes = val
		case "resolver":
			o.Resolver = val
		case "timeout":
			o.Timeout = val
		case "max_time":
			o.MaxTime = val
		case "max_dns_queries":
			o.MaxDNSQueries = val
		case "auth":
			o.Auth = val
		case "follow_redirects":
			o.FollowRedirects = boolOr(val, o.FollowRedirects)
		case "expanded":
			o.Expanded = boolOr(val, o.Expanded)
		case "append_domain":
			o.AppendDomain = boolOr(val, o.AppendDomain)
		case "show_ips":
			o.ShowIPs = boolOr(val, o.ShowIPs)
		case "recursive":
			o.Recursive = boolOr(val, o.Recursive)
			o.RecursiveSources = boolOr(val, o.RecursiveSources)
		case "non_recursive":
			o.NonRecursive = boolOr(val, o.NonRecursive)
		case "case_insensitive":
			o.CaseInsensitive = boolOr(val, o.CaseInsensitive)
		case "random_agents":
			o.RandomAgents = boolOr(val, o.RandomAgents)
		case "passive":
			o.Passive = boolOr(val, o.Passive)
		case "brute_force":
			o.BruteForce = boolOr(val, o.BruteForce)
		case "all_sources":
			o.AllSources = boolOr(val, o.AllSources)
		default:
			log.WithField("key", key).Debug("ignoring unrecognised scan option")
		}
	}
	return o
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

func boolOr(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return fallback
}
