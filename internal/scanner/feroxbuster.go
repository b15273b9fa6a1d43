package scanner

import "strconv"

type feroxbusterScanner struct{ base }

func (feroxbusterScanner) Tool() Tool { return Feroxbuster }

func (s feroxbusterScanner) Command() []string {
	cmd := []string{"feroxbuster", "-u", s.target, "-w", s.wordlist}

	cmd = append(cmd, "-d", strconv.Itoa(s.opts.Depth))
	if s.opts.Extensions != "" {
		cmd = append(cmd, "-x", s.opts.Extensions)
	}
	cmd = append(cmd, "-t", strconv.Itoa(s.opts.Threads))
	cmd = append(cmd, "--rate-limit", strconv.Itoa(s.opts.Rate))
	if s.opts.Proxy != "" {
		cmd = append(cmd, "-p", s.opts.Proxy)
	}
	if s.opts.StatusCodes != "" {
		cmd = append(cmd, "-s", s.opts.StatusCodes)
	}

	// Disable interactive state handling for piped output.
	cmd = append(cmd, "--no-state")
	return cmd
}
