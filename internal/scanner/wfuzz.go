package scanner

import (
	"strconv"
	"strings"
)

type wfuzzScanner struct{ base }

func (wfuzzScanner) Tool() Tool { return Wfuzz }

func (s wfuzzScanner) Command() []string {
	if s.mode == ModeVhost {
		return s.vhostCommand()
	}
	return s.dirCommand()
}

func (s wfuzzScanner) dirCommand() []string {
	target := strings.TrimRight(s.target, "/")
	if !strings.Contains(target, "FUZZ") {
		target += "/FUZZ"
	}

	threads := strconv.Itoa(s.opts.Threads)

	var cmd []string
	if s.opts.Extensions != "" {
		// Extensions ride on a second payload: FUZZ{ext} in the URL plus
		// a list payload of dotted extensions.
		cmd = []string{
			"wfuzz",
			"-w", s.wordlist,
			"-z", "list," + dotted(s.opts.Extensions),
			"--url", strings.Replace(target, "FUZZ", "FUZZ{ext}", 1),
			"-t", threads,
		}
	} else {
		cmd = []string{
			"wfuzz",
			"-w", s.wordlist,
			"--url", target,
			"-t", threads,
		}
	}

	cmd = s.filterFlags(cmd, s.opts.Extensions == "")
	if s.opts.Proxy != "" {
		cmd = append(cmd, "-p", s.opts.Proxy)
	}
	return append(cmd, "-c")
}

func (s wfuzzScanner) vhostCommand() []string {
	cmd := []string{
		"wfuzz",
		"-w", s.wordlist,
		"--url", s.target,
		"-H", "Host: FUZZ." + s.opts.Domain,
		"-t", strconv.Itoa(s.opts.Threads),
	}

	cmd = s.filterFlags(cmd, true)
	if s.opts.Proxy != "" {
		cmd = append(cmd, "-p", s.opts.Proxy)
	}
	return append(cmd, "-c")
}

// filterFlags appends the hide filters. The line/word filters only apply
// on the plain payload form.
func (s wfuzzScanner) filterFlags(cmd []string, full bool) []string {
	if s.opts.HideCodes != "" {
		cmd = append(cmd, "--hc", s.opts.HideCodes)
	}
	if full {
		if s.opts.FilterLines != "" {
			cmd = append(cmd, "--hl", s.opts.FilterLines)
		}
		if s.opts.FilterWords != "" {
			cmd = append(cmd, "--hw", s.opts.FilterWords)
		}
	}
	return cmd
}
