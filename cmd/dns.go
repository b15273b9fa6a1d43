package cmd

import (
	"github.com/spf13/cobra"

	"github.com/aardwolf-security/krakenbuster/internal/runner"
	"github.com/aardwolf-security/krakenbuster/internal/scanner"
)

var dnsCmd = &cobra.Command{
	Use:   "dns",
	Short: "DNS subdomain enumeration",
	Long: `Enumerate subdomains of the target domain. Defaults to subfinder;
gobuster and amass are also supported via --tool. The target is used
as the domain and does not require a scheme for amass/subfinder.`,
	RunE: runDNS,
}

func init() {
	addScanFlags(dnsCmd, "subfinder")
	rootCmd.AddCommand(dnsCmd)
}

func runDNS(cmd *cobra.Command, args []string) error {
	tool, err := scanner.ParseTool(flagTool)
	if err != nil {
		return err
	}
	if err := requireTool(tool.String()); err != nil {
		return err
	}

	wl := ""
	// Only wordlist-driven DNS tools need one; passive enumerators don't.
	if tool == scanner.Gobuster {
		if wl, err = resolveWordlist(scanner.ModeDNS); err != nil {
			return err
		}
	}

	s, err := scanner.New(tool, scanner.ModeDNS, flagTarget, wl, scanOptions())
	if err != nil {
		return err
	}
	return runSession(wl, runner.NewTask(runner.Primary, s, flagTarget))
}
