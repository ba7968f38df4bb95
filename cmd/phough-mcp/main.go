package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/phough-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("phough-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printUsage()
			return
		case "workbench":
			logger := newLogger(os.Getenv)
			if err := runWorkbench(os.Args[2:], logger); err != nil {
				logger.Error().Err(err).Msg("workbench failed")
				os.Exit(1)
			}
			return
		}
	}

	// stdout is reserved for the MCP protocol
	logger := newLogger(os.Getenv)

	cfg, err := configFromEnv(os.Getenv)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	cfg.Version = Version

	logger.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("starting phough-mcp")

	srv := server.New(cfg, logger)
	if err := srv.Run(); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}

func printUsage() {
	fmt.Println("phough-mcp - MCP server for probabilistic Hough line detection")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  phough-mcp [options]               Serve MCP over stdin/stdout")
	fmt.Println("  phough-mcp workbench [flags]       Detect lines in one image and write PNGs")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PHOUGH_MCP_LOG_LEVEL=debug     Log level (debug, info, warn, error)")
	fmt.Println("  PHOUGH_MCP_LOG_FORMAT=console  Human readable logs instead of JSON")
	fmt.Println("  PHOUGH_MCP_SEED=42             Default random seed for detection")
	fmt.Println()
	fmt.Println("Run 'phough-mcp workbench -h' for workbench flags.")
	fmt.Println("The server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
