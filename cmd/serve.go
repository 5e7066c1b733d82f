package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helmcode/symptomai/pkg/analyzer"
	"github.com/helmcode/symptomai/pkg/config"
	"github.com/helmcode/symptomai/pkg/web"
	"github.com/spf13/cobra"
)

var servePort string

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the patient form and analysis API",
		Long: `Start the web application: the patient intake form on /, the result pages,
and the JSON API on /api/v1/analyses.

Examples:
  # Serve on the port from PORT (default 8080) using Gemini
  GEMINI_API_KEY=... symptomai serve

  # Serve with OpenAI on port 3000
  LLM_PROVIDER=openai OPENAI_API_KEY=... symptomai serve --port 3000`,
		Args:          cobra.NoArgs,
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}

// loadConfig reads the configuration, honouring the --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := ""
	if f := cmd.Flag("config"); f != nil {
		path = f.Value.String()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := analyzer.NewFromConfig(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize AI provider: %w", err)
	}

	router, err := web.NewRouter(a, cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on %s (model %s)", srv.Addr, a.Model())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
