package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/getmockd/httpstub/pkg/config"
)

var listCmd = &cobra.Command{
	Use:   "list <stub-file>",
	Short: "List the rules in a stub file",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	f, err := config.LoadFromFile(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "METHOD\tURL\tSTATUS\tSOURCE\tDELAY\tENABLED")
	for _, s := range f.Stubs {
		rule, err := s.ToRule()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%t\n",
			rule.Method, rule.URL, rule.StatusCode, rule.Source, rule.Delay, rule.Enabled)
	}
	return w.Flush()
}
