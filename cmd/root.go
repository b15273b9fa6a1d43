package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/aardwolf-security/krakenbuster/internal/config"
	"github.com/aardwolf-security/krakenbuster/internal/scanner"
	"github.com/aardwolf-security/krakenbuster/internal/ui"
)

var (
	flagThreads   int
	flagRate      int
	flagProxy     string
	flagOutputDir string
	flagWordlist  string
	flagQuiet     bool
	flagVerbose   bool

	appConfig config.Config
	available map[string]bool
)

var rootCmd = &cobra.Command{
	Use:   "krakenbuster",
	Short: "Web enumeration orchestrator wrapping ffuf, feroxbuster, gobuster and friends",
	Long: `KrakenBuster is a CLI web enumeration orchestrator for penetration
testing. It drives external tools (feroxbuster, ffuf, gobuster, dirb,
wfuzz, dirsearch, amass, subfinder) for directory brute-forcing, vhost
fuzzing and DNS subdomain enumeration, merging their output into live
findings and structured result files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.WarnLevel)
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}

		appConfig = config.Load()
		if !cmd.Flags().Changed("threads") {
			flagThreads = appConfig.Threads
		}
		if !cmd.Flags().Changed("rate") {
			flagRate = appConfig.Rate
		}
		if !cmd.Flags().Changed("proxy") && appConfig.Proxy != "" {
			flagProxy = appConfig.Proxy
		}
		if !cmd.Flags().Changed("output") && appConfig.OutputDir != "" {
			flagOutputDir = appConfig.OutputDir
		}
		if !cmd.Flags().Changed("wordlist") && appConfig.LastWordlist != "" {
			flagWordlist = appConfig.LastWordlist
		}

		available = scanner.Available()
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(ui.Banner())
		fmt.Println()
		cmd.Help()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&flagThreads, "threads", "t", 50, "Number of concurrent threads")
	pf.IntVarP(&flagRate, "rate", "r", 200, "Requests per second")
	pf.StringVarP(&flagProxy, "proxy", "p", "", "HTTP proxy (e.g. http://127.0.0.1:8080)")
	pf.StringVarP(&flagOutputDir, "output", "o", "scans", "Output directory for results")
	pf.StringVarP(&flagWordlist, "wordlist", "w", "", "Path to wordlist file")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Only print findings and the final summary")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// requireTool exits with guidance when the chosen binary is missing.
func requireTool(name string) error {
	if !available[name] {
		return fmt.Errorf("%s was not found in PATH; install it or pick another tool with --tool", name)
	}
	return nil
}
