package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/qsc-search/internal/adapters/driving/web"
)

var (
	serveAddr string
	renderOut string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search page over HTTP",
	Long: `Serves the faceted results page and the widget's suggestion API.

  GET /               search page
  GET /search         results for ?query=&page=&sort=&f.<key>=<value>
  GET /api/suggest    live candidates for ?q=
  GET /healthz        liveness

Settings reload when the config file changes.`,
	RunE: runServe,
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the empty search page as static HTML",
	Long: `Writes the page shell with no results and no backend call, for
embedding behind another server. The widget script still talks to
/api/suggest at runtime.`,
	RunE: runRender,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "listen address")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
}

func newWebServer() (*web.Server, error) {
	return web.NewServer(&web.Ports{
		Search:  searchService(),
		History: historyService(),
	}, currentSettings())
}

func runServe(cmd *cobra.Command, _ []string) error {
	server, err := newWebServer()
	if err != nil {
		return err
	}

	watchSettings(cmd.Context(), server.SetSettings)

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", serveAddr)
	return server.Serve(cmd.Context(), serveAddr)
}

func runRender(cmd *cobra.Command, _ []string) error {
	server, err := newWebServer()
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if renderOut != "" {
		f, err := os.Create(renderOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", renderOut, err)
		}
		defer f.Close()
		w = f
	}

	if err := server.Render(w); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}
