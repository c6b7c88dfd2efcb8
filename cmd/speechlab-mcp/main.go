// Command speechlab-mcp runs the Speechlab dubbing MCP server over
// stdio. Configuration comes from the environment (optionally via a
// .env file): SPEECHLAB_API_KEY is required, SPEECHLAB_API_BASE_URL and
// SPEECHLAB_MCP_BASE_PATH are optional.
package main

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"github.com/speechlab/speechlab-mcp/config"
	"github.com/speechlab/speechlab-mcp/speechlab"
	"github.com/speechlab/speechlab-mcp/tools"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("[speechlab] configuration error: %v", err)
	}

	client, err := speechlab.NewClient(cfg)
	if err != nil {
		log.Fatalf("[speechlab] client error: %v", err)
	}

	s := server.NewMCPServer("Speechlab", speechlab.Version,
		server.WithToolCapabilities(false),
	)
	tools.Register(s, client, cfg.BasePath)

	log.Printf("[speechlab] starting MCP server (base URL %s)", cfg.BaseURL)
	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("[speechlab] server error: %v", err)
	}
}
