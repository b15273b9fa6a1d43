package scanner

import "strconv"

type dirsearchScanner struct{ base }

func (dirsearchScanner) Tool() Tool { return Dirsearch }

func (s dirsearchScanner) Command() []string {
	cmd := []string{"dirsearch", "-u", s.target, "-w", s.wordlist}

	if s.opts.Extensions != "" {
		cmd = append(cmd, "-e", s.opts.Extensions)
	}
	cmd = append(cmd, "-t", strconv.Itoa(s.opts.Threads))
	if s.opts.Proxy != "" {
		cmd = append(cmd, "--proxy", s.opts.Proxy)
	}
	if s.opts.Recursive {
		cmd = append(cmd, "-r", "--max-recursion-depth", strconv.Itoa(s.opts.Depth))
	}
	if s.opts.FilterCodes != "" {
		cmd = append(cmd, "--exclude-status", s.opts.FilterCodes)
	}
	if s.opts.RandomAgents {
		cmd = append(cmd, "--random-agent")
	}
	return cmd
}
