package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/breach/internal/config"
	breachmcp "github.com/peterkuimelis/breach/internal/mcp"
)

func main() {
	configFile := flag.String("config", "", "path to config YAML file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	breachmcp.Configure(cfg, logger)

	s := server.NewMCPServer("breach", "1.0.0")
	breachmcp.RegisterTools(s)

	logger.Info("serving MCP over stdio", zap.String("opponent_side", cfg.Opponent.Side))
	if err := server.ServeStdio(s); err != nil {
		logger.Error("mcp server stopped", zap.Error(err))
		os.Exit(1)
	}
}
