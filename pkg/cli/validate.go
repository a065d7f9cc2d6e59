package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/httpstub/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate <stub-file>",
	Short: "Check a stub file without applying it",
	Long: `Parse a stub file (YAML or JSON) and validate every rule in it:
method membership, URL syntax, header names, delay format, status range.`,
	Example: `  # Validate a YAML stub file
  httpstub validate stubs.yaml

  # Validate a JSON stub file
  httpstub validate fixtures/stubs.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	f, err := config.LoadFromFile(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%d stubs, %d only-hosts, %d exclude-hosts)\n",
		args[0], len(f.Stubs), len(f.Hosts.Only), len(f.Hosts.Exclude))
	return nil
}
