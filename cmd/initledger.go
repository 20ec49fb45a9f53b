package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reflectoken/rtk/logx"
)

type InitLedgerConfig struct {
	NodeURL        string
	StorageAddress string
	TotalSupply    uint64
	FundLamports   uint64
}

var initLedgerConfig InitLedgerConfig

var initLedgerCmd = &cobra.Command{
	Use:   "init-ledger [flags]",
	Short: "Initialize a ledger in a storage account",
	Long: `Submits an initialize instruction to a node. The storage account is
created and funded with --fund-lamports if it does not exist yet; the program
rejects the instruction if the funding is below the rent-exempt minimum.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := initLedger(initLedgerConfig); err != nil {
			logx.Error("INIT-LEDGER CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(initLedgerCmd)

	initLedgerCmd.PersistentFlags().StringVarP(&initLedgerConfig.NodeURL, "node-url", "u", "http://localhost:9101", "node URL")
	initLedgerCmd.PersistentFlags().StringVarP(&initLedgerConfig.StorageAddress, "storage", "s", "", "storage account address")
	initLedgerCmd.PersistentFlags().Uint64VarP(&initLedgerConfig.TotalSupply, "supply", "n", 0, "total supply (number of holder slots)")
	initLedgerCmd.PersistentFlags().Uint64VarP(&initLedgerConfig.FundLamports, "fund-lamports", "l", 1_000_000, "lamports to fund a fresh storage account with")
}

func initLedger(cfg InitLedgerConfig) error {
	if cfg.StorageAddress == "" {
		return fmt.Errorf("--storage is required")
	}

	client := newRPCClient(cfg.NodeURL)
	var result struct {
		Ok          bool   `json:"ok"`
		TotalSupply uint64 `json:"total_supply"`
	}
	err := client.Call("tx.initialize", map[string]interface{}{
		"storage_address": cfg.StorageAddress,
		"total_supply":    cfg.TotalSupply,
		"fund_lamports":   cfg.FundLamports,
	}, &result)
	if err != nil {
		return err
	}

	fmt.Printf("Ledger initialized in %s with supply %d\n", cfg.StorageAddress, result.TotalSupply)
	return nil
}
