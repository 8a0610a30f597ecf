package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/clock-reader-mcp/internal/config"
	"github.com/ironsheep/clock-reader-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("clock-reader-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("clock-reader-mcp - MCP server that reads the time from analog clock images")
			fmt.Println()
			fmt.Println("Usage: clock-reader-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Printf("  %s=debug      Enable debug logging\n", config.EnvLogLevel)
			fmt.Printf("  %s=purego       Vision backend: purego or opencv (needs -tags gocv)\n", config.EnvBackend)
			fmt.Printf("  %s=800          Longest side images are analysed at (0 disables scaling)\n", config.EnvMaxDim)
			fmt.Printf("  %s=eng         Tesseract language for clock_dial_numerals (needs -tags tesseract)\n", config.EnvOCRLang)
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := config.Load()
	if Version != "dev" {
		server.Version = Version
	}
	if cfg.Debug() {
		log.Printf("Clock MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("backend=%s max_dim=%d ocr_lang=%s", cfg.Backend, cfg.MaxDimension, cfg.OCRLanguage)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server setup failed: %v", err)
	}
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
