package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aardwolf-security/krakenbuster/internal/runner"
	"github.com/aardwolf-security/krakenbuster/internal/scanner"
)

var vhostCmd = &cobra.Command{
	Use:   "vhost",
	Short: "Virtual host fuzzing scan",
	Long: `Discover virtual hosts by fuzzing the Host header against the target.
Defaults to ffuf; gobuster and wfuzz are also supported via --tool.`,
	RunE: runVhost,
}

func init() {
	addScanFlags(vhostCmd, "ffuf")
	rootCmd.AddCommand(vhostCmd)
}

func runVhost(cmd *cobra.Command, args []string) error {
	wl, err := resolveWordlist(scanner.ModeVhost)
	if err != nil {
		return err
	}
	s, err := buildScanner(scanner.ModeVhost, wl)
	if err != nil {
		return err
	}
	return runSession(wl, runner.NewTask(runner.Primary, s, flagTarget))
}
