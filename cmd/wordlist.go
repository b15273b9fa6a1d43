package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aardwolf-security/krakenbuster/internal/wordlist"
)

var wordlistMode string

var wordlistCmd = &cobra.Command{
	Use:   "wordlist",
	Short: "List wordlists found in the standard locations",
	Long: `Search the standard wordlist directories (/usr/share/wordlists,
seclists, dirb, dirbuster) and list every .txt wordlist found, with
recommended defaults for the chosen scan mode marked.`,
	RunE: runWordlist,
}

func init() {
	wordlistCmd.Flags().StringVarP(&wordlistMode, "mode", "m", "directory", "Scan mode to mark recommendations for (directory, vhost, dns)")
	rootCmd.AddCommand(wordlistCmd)
}

func runWordlist(cmd *cobra.Command, args []string) error {
	entries := wordlist.Discover()
	if len(entries) == 0 {
		return fmt.Errorf("no wordlists found under the standard locations; install seclists")
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PATH\tSIZE\t")
	for _, e := range entries {
		marker := ""
		if e.Recommended(wordlistMode) {
			marker = "(recommended)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.RelPath, e.SizeHuman(), marker)
	}
	return w.Flush()
}
