package scanner

import (
	"strconv"
	"strings"
)

type ffufScanner struct{ base }

func (ffufScanner) Tool() Tool { return Ffuf }

func (s ffufScanner) Command() []string {
	if s.mode == ModeVhost {
		return s.vhostCommand()
	}
	return s.dirCommand()
}

func (s ffufScanner) dirCommand() []string {
	// The target URL needs a FUZZ placeholder for path fuzzing.
	target := strings.TrimRight(s.target, "/")
	if !strings.Contains(target, "FUZZ") {
		target += "/FUZZ"
	}

	cmd := []string{"ffuf", "-u", target, "-w", s.wordlist}
	if s.opts.Extensions != "" {
		cmd = append(cmd, "-e", dotted(s.opts.Extensions))
	}
	return append(cmd, s.commonFlags()...)
}

func (s ffufScanner) vhostCommand() []string {
	cmd := []string{
		"ffuf",
		"-u", s.target,
		"-w", s.wordlist,
		"-H", "Host: FUZZ." + s.opts.Domain,
	}
	return append(cmd, s.commonFlags()...)
}

func (s ffufScanner) commonFlags() []string {
	cmd := []string{
		"-t", strconv.Itoa(s.opts.Threads),
		"-rate", strconv.Itoa(s.opts.Rate),
	}
	if s.opts.Proxy != "" {
		cmd = append(cmd, "-x", s.opts.Proxy)
	}
	if s.opts.FilterCodes != "" {
		cmd = append(cmd, "-fc", s.opts.FilterCodes)
	}
	if s.opts.FilterSize != "" {
		cmd = append(cmd, "-fs", s.opts.FilterSize)
	}
	// Colourised output; the classifier strips the escapes.
	return append(cmd, "-c")
}
