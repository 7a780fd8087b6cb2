package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cyberabsa/internal/api"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sentiment analyzer over HTTP",
	Long: `Serve the sentiment analyzer as an HTTP API.

Endpoints:
  POST /analyze        {"text": "..."}    single-text analysis
  POST /batch_analyze  {"texts": [...]}   batch analysis
  GET  /health         liveness and model name

Example:
  cyberabsa serve
  cyberabsa serve --addr :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, best, err := newPredictor(cfg, false)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	fmt.Printf("Serving %s on %s\n", best.Name, addr)
	return api.NewServer(p).Run(addr)
}
