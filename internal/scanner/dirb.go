package scanner

type dirbScanner struct{ base }

func (dirbScanner) Tool() Tool { return Dirb }

func (s dirbScanner) Command() []string {
	// dirb takes target and wordlist positionally.
	cmd := []string{"dirb", s.target, s.wordlist}

	if s.opts.Extensions != "" {
		cmd = append(cmd, "-X", dotted(s.opts.Extensions))
	}
	if s.opts.CaseInsensitive {
		cmd = append(cmd, "-i")
	}
	if s.opts.Proxy != "" {
		cmd = append(cmd, "-p", s.opts.Proxy)
	}
	if s.opts.Auth != "" {
		cmd = append(cmd, "-u", s.opts.Auth)
	}
	if s.opts.NonRecursive {
		cmd = append(cmd, "-r")
	}

	// Silent banner for cleaner output.
	return append(cmd, "-S")
}
