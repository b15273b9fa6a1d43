// Package hook runs a user-supplied shell command for every finding,
// feeding it the finding as JSON on stdin. Useful for piping hits into
// notify-send, a webhook, or follow-up tooling.
package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aardwolf-security/krakenbuster/internal/classify"
)

// timeout bounds a single hook invocation so a hung hook cannot stall
// the scan indefinitely.
const timeout = 30 * time.Second

// Runner executes the configured command once per finding. Hook failures
// are logged, never fatal.
type Runner struct {
	cmd string
}

// New returns a Runner for the given shell command, or nil when cmd is
// empty so callers can gate on a nil check.
func New(cmd string) *Runner {
	if strings.TrimSpace(cmd) == "" {
		return nil
	}
	return &Runner{cmd: cmd}
}

// Run invokes the hook with the finding as JSON on stdin. The
// placeholders {url}, {status}, {size} and {redirect} are expanded in
// the command string before execution.
func (r *Runner) Run(f classify.Finding) {
	data, err := json.Marshal(f)
	if err != nil {
		log.WithError(err).Warn("hook payload encoding failed")
		return
	}

	expanded := r.cmd
	expanded = strings.ReplaceAll(expanded, "{url}", f.URL)
	expanded = strings.ReplaceAll(expanded, "{status}", fmt.Sprintf("%d", f.Status))
	expanded = strings.ReplaceAll(expanded, "{size}", fmt.Sprintf("%d", f.Size))
	expanded = strings.ReplaceAll(expanded, "{redirect}", f.Redirect)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shell, args := shellCommand()
	cmd := exec.CommandContext(ctx, shell, append(args, expanded)...)
	cmd.Stdin = bytes.NewReader(data)

	out, err := cmd.CombinedOutput()
	if err != nil {
		log.WithError(err).WithField("output", strings.TrimSpace(string(out))).Warn("finding hook failed")
		return
	}
	if len(out) > 0 {
		log.WithField("output", strings.TrimSpace(string(out))).Debug("finding hook output")
	}
}

func shellCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}
	}
	return "sh", []string{"-c"}
}
