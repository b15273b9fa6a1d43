package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aardwolf-security/krakenbuster/internal/hook"
	"github.com/aardwolf-security/krakenbuster/internal/runner"
	"github.com/aardwolf-security/krakenbuster/internal/scanner"
	"github.com/aardwolf-security/krakenbuster/internal/ui"
	"github.com/aardwolf-security/krakenbuster/internal/wordlist"
)

var (
	flagTarget      string
	flagTool        string
	flagExtensions  string
	flagDepth       int
	flagDomain      string
	flagFilterCodes string
	flagStatusCodes string
	flagOnResult    string
)

// addScanFlags registers the flags shared by every scan subcommand.
func addScanFlags(cmd *cobra.Command, defaultTool string) {
	cmd.Flags().StringVarP(&flagTarget, "url", "u", "", "Target URL (required)")
	cmd.Flags().StringVar(&flagTool, "tool", defaultTool, "Scanner binary to drive")
	cmd.Flags().StringVarP(&flagExtensions, "extensions", "e", "php,html,txt,js", "Comma-separated file extensions")
	cmd.Flags().IntVarP(&flagDepth, "depth", "d", 3, "Recursion depth")
	cmd.Flags().StringVar(&flagDomain, "domain", "", "Base domain for vhost fuzzing (defaults to the target host)")
	cmd.Flags().StringVar(&flagFilterCodes, "filter-codes", "", "Status codes to hide")
	cmd.Flags().StringVar(&flagStatusCodes, "status-codes", "", "Status codes to show")
	cmd.Flags().StringVar(&flagOnResult, "on-result", "", "Shell command to run per finding (receives JSON on stdin)")
	cmd.MarkFlagRequired("url")
}

// scanOptions assembles the Options struct from flags over the defaults.
func scanOptions() scanner.Options {
	opts := scanner.Default()
	opts.Threads = flagThreads
	opts.Rate = flagRate
	opts.Proxy = flagProxy
	opts.Extensions = flagExtensions
	opts.Depth = flagDepth
	opts.Domain = flagDomain
	if flagFilterCodes != "" {
		opts.FilterCodes = flagFilterCodes
	}
	if flagStatusCodes != "" {
		opts.StatusCodes = flagStatusCodes
	}
	return opts
}

// resolveWordlist returns the explicit -w path, or falls back to the first
// recommended wordlist discovered for the mode.
func resolveWordlist(mode scanner.Mode) (string, error) {
	if flagWordlist != "" {
		if _, err := os.Stat(flagWordlist); err != nil {
			return "", fmt.Errorf("wordlist %s: %w", flagWordlist, err)
		}
		return flagWordlist, nil
	}

	entries := wordlist.Discover()
	for _, e := range entries {
		if e.Recommended(mode.String()) {
			return e.Path, nil
		}
	}
	if len(entries) > 0 {
		return entries[0].Path, nil
	}
	return "", fmt.Errorf("no wordlist found; pass one with -w or install seclists")
}

// runSession executes the prepared tasks and renders live output plus the
// final summary. Ctrl-C stops the scanners but still persists partials.
func runSession(wl string, tasks ...*runner.Task) error {
	session, err := runner.NewSession(flagOutputDir, wl, tasks...)
	if err != nil {
		return err
	}
	session.Hook = hook.New(flagOnResult)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !flagQuiet {
		fmt.Print(ui.Banner())
		fmt.Println()
		fmt.Println("Press 'p' to pause/resume, Ctrl-C to stop.")
	}

	restore := ui.ListenKeys(ctx, func() { session.TogglePause() })
	view := ui.NewConsoleView(flagQuiet, len(tasks) > 1)
	results, err := session.Run(ctx, view)
	restore()
	view.Close()
	if results != nil {
		fmt.Println()
		fmt.Println(ui.Summary(results))
	}
	if err != nil {
		return err
	}

	saveLastUsed(wl, tasks)
	return nil
}

// saveLastUsed records the wordlist and tool choices for the next run.
// Failures are non-fatal; preferences are a convenience, not state.
func saveLastUsed(wl string, tasks []*runner.Task) {
	appConfig.Threads = flagThreads
	appConfig.Rate = flagRate
	appConfig.Proxy = flagProxy
	appConfig.OutputDir = flagOutputDir
	appConfig.LastWordlist = wl
	for _, t := range tasks {
		switch t.Scanner.Mode() {
		case scanner.ModeDirectory:
			appConfig.LastDirTool = t.Scanner.Tool().String()
		case scanner.ModeVhost:
			appConfig.LastVhostTool = t.Scanner.Tool().String()
		case scanner.ModeDNS:
			appConfig.LastDNSTool = t.Scanner.Tool().String()
		}
	}
	if err := appConfig.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
	}
}

// buildScanner validates the target and tool selection and constructs the
// scanner for one mode over the resolved wordlist.
func buildScanner(mode scanner.Mode, wl string) (scanner.Scanner, error) {
	if err := scanner.ValidateTarget(flagTarget); err != nil {
		return nil, err
	}
	tool, err := scanner.ParseTool(flagTool)
	if err != nil {
		return nil, err
	}
	if err := requireTool(tool.String()); err != nil {
		return nil, err
	}
	return scanner.New(tool, mode, flagTarget, wl, scanOptions())
}
