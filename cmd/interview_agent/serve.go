package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-coach/internal/llm"
	"github.com/jonathan/interview-coach/internal/server"
)

var (
	servePort   int
	serveAPIKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for blueprint generation and the turn-based interview protocol.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", fmt.Sprintf("Model API key (optional, defaults to %s env var)", llm.EnvAPIKey))
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	apiKey := serveAPIKey
	if apiKey == "" {
		resolved, err := llm.ResolveAPIKey()
		if err != nil {
			return err
		}
		apiKey = resolved
	}

	srv, err := server.New(context.Background(), server.Config{
		Port: servePort,
		LLM:  llm.DefaultConfig().WithAPIKey(apiKey),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
