package main

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort        int
	serveDatabaseURL string
	serveAPIKey      string
	servePDFTimeout  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the assemble, render and cover letter endpoints.
Resume history needs DATABASE_URL, generation needs GEMINI_API_KEY, authenticated routes need
JWT_SECRET and uploads need S3_BUCKET; routes whose collaborator is missing answer 503.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	serveCmd.Flags().IntVar(&servePDFTimeout, "pdf-timeout", 0, "Headless Chrome print timeout in seconds")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings(config.Config{
		Port:              servePort,
		DatabaseURL:       serveDatabaseURL,
		APIKey:            serveAPIKey,
		PDFTimeoutSeconds: servePDFTimeout,
	})
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{
		Port:        settings.Port,
		DatabaseURL: settings.DatabaseURL,
		APIKey:      settings.APIKey,
		PDFTimeout:  time.Duration(settings.PDFTimeoutSeconds) * time.Second,
		Verbose:     settings.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
