package scanner

import "strconv"

type subfinderScanner struct{ base }

func (subfinderScanner) Tool() Tool { return Subfinder }

func (s subfinderScanner) Command() []string {
	cmd := []string{"subfinder", "-d", s.target}

	if s.wordlist != "" {
		cmd = append(cmd, "-w", s.wordlist)
	}

	// subfinder runs fewer, heavier workers than the HTTP tools.
	threads := s.opts.Threads
	if threads == 0 || threads == Default().Threads {
		threads = 30
	}
	cmd = append(cmd, "-t", strconv.Itoa(threads))

	timeout := s.opts.Timeout
	if timeout == "" {
		timeout = "30"
	}
	cmd = append(cmd, "-timeout", timeout)

	if s.opts.MaxTime != "" {
		cmd = append(cmd, "-max-time", s.opts.MaxTime)
	}
	if s.opts.Resolver != "" {
		cmd = append(cmd, "-rL", s.opts.Resolver)
	}
	if s.opts.AllSources {
		cmd = append(cmd, "-all")
	}
	if s.opts.RecursiveSources {
		cmd = append(cmd, "-recursive")
	}
	return cmd
}
