package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reflectoken/rtk/config"
	"github.com/reflectoken/rtk/exception"
	"github.com/reflectoken/rtk/jsonrpc"
	"github.com/reflectoken/rtk/logx"
	"github.com/reflectoken/rtk/program"
	"github.com/reflectoken/rtk/runtime"
	"github.com/reflectoken/rtk/store"
)

var nodeConfigPath string

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Run a program host node",
	Long:  "Loads the node config, opens the account store and serves the JSON-RPC interface until interrupted.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runNode(nodeConfigPath); err != nil {
			logx.Error("NODE", "Node failed:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(nodeCmd)
	nodeCmd.PersistentFlags().StringVarP(&nodeConfigPath, "config", "c", "node.yml", "node config file")
}

func runNode(configPath string) error {
	cfg, err := config.LoadNodeConfig(configPath)
	if err != nil {
		return fmt.Errorf("could not load node config: %w", err)
	}
	rent, err := config.LoadRentConfig(cfg.RentConfigPath)
	if err != nil {
		return fmt.Errorf("could not load rent config: %w", err)
	}

	accStore, err := store.CreateAccountStore(&cfg.Store)
	if err != nil {
		return fmt.Errorf("could not open account store: %w", err)
	}
	defer accStore.MustClose()

	host := runtime.NewHost(accStore, program.New(rent), cfg.ProgramAddress)
	server := jsonrpc.NewServer(host, cfg.ListenAddr)

	serveErr := make(chan error, 1)
	exception.SafeGo("jsonrpc server", func() {
		serveErr <- server.Serve()
	})
	logx.Info("NODE", fmt.Sprintf("Node up, program %s, store %s at %s",
		cfg.ProgramAddress, cfg.Store.Type, cfg.Store.Directory))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case sig := <-stop:
		logx.Info("NODE", fmt.Sprintf("Received %s, shutting down", sig))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
