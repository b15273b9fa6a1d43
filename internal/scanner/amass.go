package scanner

type amassScanner struct{ base }

func (amassScanner) Tool() Tool { return Amass }

func (s amassScanner) Command() []string {
	cmd := []string{"amass", "enum", "-d", s.target}

	if s.opts.Passive {
		cmd = append(cmd, "-passive")
	}
	if s.wordlist != "" {
		cmd = append(cmd, "-w", s.wordlist)
	}
	if s.opts.BruteForce {
		cmd = append(cmd, "-brute")
	}
	if s.opts.Timeout != "" {
		cmd = append(cmd, "-timeout", s.opts.Timeout)
	}
	if s.opts.Resolver != "" {
		cmd = append(cmd, "-rf", s.opts.Resolver)
	}
	if s.opts.MaxDNSQueries != "" {
		cmd = append(cmd, "-max-dns-queries", s.opts.MaxDNSQueries)
	}
	return cmd
}
