package scanner

import "strconv"

type gobusterScanner struct{ base }

func (gobusterScanner) Tool() Tool { return Gobuster }

func (s gobusterScanner) Command() []string {
	switch s.mode {
	case ModeVhost:
		return s.vhostCommand()
	case ModeDNS:
		return s.dnsCommand()
	}
	return s.dirCommand()
}

func (s gobusterScanner) dirCommand() []string {
	cmd := []string{"gobuster", "dir", "-u", s.target, "-w", s.wordlist}

	if s.opts.Extensions != "" {
		cmd = append(cmd, "-x", s.opts.Extensions)
	}
	cmd = append(cmd, "-t", strconv.Itoa(s.opts.Threads))
	if s.opts.StatusCodes != "" {
		cmd = append(cmd, "-s", s.opts.StatusCodes)
	}
	if s.opts.Proxy != "" {
		cmd = append(cmd, "--proxy", s.opts.Proxy)
	}
	if s.opts.FollowRedirects {
		cmd = append(cmd, "-r")
	}
	if s.opts.Expanded {
		cmd = append(cmd, "-e")
	}

	// No colour codes for cleaner parsing.
	return append(cmd, "--no-color")
}

func (s gobusterScanner) vhostCommand() []string {
	cmd := []string{"gobuster", "vhost", "-u", s.target, "-w", s.wordlist}

	cmd = append(cmd, "-t", strconv.Itoa(s.opts.Threads))
	if s.opts.Proxy != "" {
		cmd = append(cmd, "--proxy", s.opts.Proxy)
	}
	if s.opts.AppendDomain {
		cmd = append(cmd, "--append-domain")
	}
	if s.opts.Domain != "" {
		cmd = append(cmd, "--domain", s.opts.Domain)
	}
	return append(cmd, "--no-color")
}

func (s gobusterScanner) dnsCommand() []string {
	cmd := []string{"gobuster", "dns", "-d", s.target, "-w", s.wordlist}

	cmd = append(cmd, "-t", strconv.Itoa(s.opts.Threads))
	if s.opts.Resolver != "" {
		cmd = append(cmd, "-r", s.opts.Resolver)
	}
	if s.opts.ShowIPs {
		cmd = append(cmd, "-i")
	}
	return append(cmd, "--no-color")
}
