// Package main provides the seas API HTTP server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	httpHandler "go.ngs.io/seas-api/internal/http"
	"go.ngs.io/seas-api/internal/usecase"
)

const version = "0.1.0"

func main() {
	// Parse command-line flags.
	showHelp := flag.Bool("help", false, "Show usage information")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showHelp {
		printUsage()
		return
	}

	if *showVersion {
		fmt.Printf("seas-api version %s\n", version)
		return
	}

	// Load configuration from environment.
	port := getEnv("PORT", "8080")
	seasFile := getEnv("SEAS_FILE", "")

	log.Printf("Starting Seas API server...")
	log.Printf("Port: %s", port)

	// Initialize use case.
	analysisUC := usecase.NewSeaAnalysisUseCase(nil)

	// Load the initial dataset (optional).
	if seasFile != "" {
		log.Printf("Loading seas from %s", seasFile)
		resp := analysisUC.Load(seasFile)
		if resp.Loaded == 0 {
			log.Printf("  Warning: no sea records loaded from %s", seasFile)
		} else {
			log.Printf("  Loaded %d seas", resp.Loaded)
		}
	} else {
		log.Printf("No initial dataset (SEAS_FILE not set)")
	}

	// Setup router.
	router := httpHandler.SetupRouter(analysisUC)

	// Start server.
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Server listening on %s", addr)
	log.Printf("Health check: http://localhost:%s/health", port)
	log.Printf("API endpoints:")
	log.Printf("  - GET  /v1/seas")
	log.Printf("  - POST /v1/seas")
	log.Printf("  - PUT  /v1/seas/dataset")
	log.Printf("  - GET  /v1/seas/deepest")
	log.Printf("  - GET  /v1/seas/least-salty")
	log.Printf("  - GET  /v1/seas/average-depth")
	log.Printf("  - GET  /v1/seas/by-salinity")
	log.Printf("  - GET  /v1/seas/summary")
	log.Printf("  - POST /v1/seas/sort")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("Seas API Server v%s\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  seas-api [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -help          Show this help message")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("ENVIRONMENT VARIABLES:")
	fmt.Println("  PORT                    Server port (default: 8080)")
	fmt.Println("  SEAS_FILE               Initial dataset: ';'-delimited text or NetCDF (.nc) (optional)")
	fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Start server with a dataset")
	fmt.Println("  SEAS_FILE=data/seas.txt seas-api")
	fmt.Println()
	fmt.Println("  # Start server on custom port")
	fmt.Println("  PORT=3000 seas-api")
	fmt.Println()
}
