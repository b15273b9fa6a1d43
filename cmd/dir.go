package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aardwolf-security/krakenbuster/internal/runner"
	"github.com/aardwolf-security/krakenbuster/internal/scanner"
)

var dirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Directory and file brute-force scan",
	Long: `Enumerate directories and files on a target web server. Defaults to
feroxbuster; any of feroxbuster, ffuf, gobuster, dirb, wfuzz and
dirsearch can be selected with --tool.`,
	RunE: runDir,
}

func init() {
	addScanFlags(dirCmd, "feroxbuster")
	rootCmd.AddCommand(dirCmd)
}

func runDir(cmd *cobra.Command, args []string) error {
	wl, err := resolveWordlist(scanner.ModeDirectory)
	if err != nil {
		return err
	}
	s, err := buildScanner(scanner.ModeDirectory, wl)
	if err != nil {
		return err
	}
	return runSession(wl, runner.NewTask(runner.Primary, s, flagTarget))
}
