package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/twotruths"
	"github.com/aretw0/twotruths/pkg/adapters/mcp"
	"github.com/aretw0/twotruths/pkg/observability"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [files|dirs...]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the generators as MCP tools (generate_statements, reveal_batch)
and the twotruths://generators resource.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSettings(viper.GetViper())
		if err != nil {
			return err
		}
		paths, err := inputPaths(args, s)
		if err != nil {
			return err
		}
		logger := newLogger(s)

		store, closeStore, err := openStore(s.Store)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		eng, err := twotruths.New(paths,
			twotruths.WithLogger(logger),
			twotruths.WithStore(store),
			twotruths.WithLifecycleHooks(observability.LogHooks(logger)),
		)
		if err != nil {
			return err
		}

		srv := mcp.NewServer(eng, logger)

		switch s.MCP.Transport {
		case "stdio":
			// Keep stdout clean for JSON-RPC.
			log.SetOutput(os.Stderr)
			logger.Info("Starting MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.ServeSSE(ctx, s.MCP.Port); err != nil {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport %q (supported: stdio, sse)", s.MCP.Transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	f := mcpCmd.Flags()
	f.String("transport", "stdio", "transport protocol: stdio or sse")
	f.Int("port", 8081, "port to listen on (sse only)")

	_ = viper.BindPFlag("mcp.transport", f.Lookup("transport"))
	_ = viper.BindPFlag("mcp.port", f.Lookup("port"))
}
