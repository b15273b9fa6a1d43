package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aardwolf-security/krakenbuster/internal/runner"
	"github.com/aardwolf-security/krakenbuster/internal/scanner"
)

var combinedCmd = &cobra.Command{
	Use:   "combined",
	Short: "Directory scan and vhost fuzzing in one session",
	Long: `Run a directory brute-force and a vhost fuzz concurrently against the
same target, merging both output streams into one live view. The
directory scanner drives the progress estimate.`,
	RunE: runCombined,
}

func init() {
	addScanFlags(combinedCmd, "feroxbuster")
	rootCmd.AddCommand(combinedCmd)
}

func runCombined(cmd *cobra.Command, args []string) error {
	wl, err := resolveWordlist(scanner.ModeDirectory)
	if err != nil {
		return err
	}
	primary, err := buildScanner(scanner.ModeDirectory, wl)
	if err != nil {
		return err
	}

	if err := requireTool("ffuf"); err != nil {
		return err
	}
	vhostWl, err := resolveWordlist(scanner.ModeVhost)
	if err != nil {
		return err
	}
	secondary, err := scanner.New(scanner.Ffuf, scanner.ModeVhost, flagTarget, vhostWl, scanOptions())
	if err != nil {
		return err
	}

	return runSession(wl,
		runner.NewTask(runner.Primary, primary, flagTarget),
		runner.NewTask(runner.Secondary, secondary, flagTarget))
}
