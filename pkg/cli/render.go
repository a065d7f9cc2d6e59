package cli

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/httpstub/pkg/config"
	"github.com/getmockd/httpstub/pkg/engine"
	"github.com/getmockd/httpstub/pkg/hostfilter"
	"github.com/getmockd/httpstub/pkg/payload"
	"github.com/getmockd/httpstub/pkg/registry"
	"github.com/getmockd/httpstub/pkg/stub"
)

var renderFixturesDir string

var renderCmd = &cobra.Command{
	Use:   "render <stub-file> <method> <url>",
	Short: "Render the stubbed response for one request",
	Long: `Load a stub file, resolve the rule for the given method and URL against
a fixture directory, and print the simulated response. This runs the same
interception path the library uses inside an application.`,
	Example: `  # Show what GET https://api.test/users would return
  httpstub render stubs.yaml GET https://api.test/users --fixtures ./fixtures`,
	Args: cobra.ExactArgs(3),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderFixturesDir, "fixtures", ".", "Directory holding payload fixtures")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	file, method, rawURL := args[0], strings.ToUpper(args[1]), args[2]

	f, err := config.LoadFromFile(file)
	if err != nil {
		return err
	}

	reg := registry.New()
	filter := hostfilter.New()
	if err := f.Apply(reg, filter); err != nil {
		return err
	}

	eng := engine.New(reg, filter, payload.NewSource(payload.NewDirLoader(renderFixturesDir)))
	eng.SetLogger(Logger())
	eng.SetEnabled(true)

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	resp, ok := eng.Intercept(cmd.Context(), engine.Request{
		Method: stub.Method(method),
		URL:    rawURL,
		Host:   u.Hostname(),
	})
	if !ok {
		return errors.New("request would not be stubbed (no matching enabled rule, host filtered, or fixture unavailable)")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "HTTP/%s %d\n", resp.HTTPVersion, resp.StatusCode)
	for k, v := range resp.Headers {
		fmt.Fprintf(out, "%s: %s\n", k, v)
	}
	fmt.Fprintln(out)
	_, err = out.Write(resp.Body)
	return err
}
