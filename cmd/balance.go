package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reflectoken/rtk/logx"
)

type BalanceConfig struct {
	NodeURL        string
	StorageAddress string
	HolderIndex    uint64
	Supply         bool
}

var balanceConfig BalanceConfig

var balanceCmd = &cobra.Command{
	Use:   "balance [flags]",
	Short: "Query a holder balance or the ledger supply",
	Run: func(cmd *cobra.Command, args []string) {
		if err := queryBalance(balanceConfig); err != nil {
			logx.Error("BALANCE CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.PersistentFlags().StringVarP(&balanceConfig.NodeURL, "node-url", "u", "http://localhost:9101", "node URL")
	balanceCmd.PersistentFlags().StringVarP(&balanceConfig.StorageAddress, "storage", "s", "", "ledger storage account address")
	balanceCmd.PersistentFlags().Uint64VarP(&balanceConfig.HolderIndex, "index", "i", 0, "holder index")
	balanceCmd.PersistentFlags().BoolVar(&balanceConfig.Supply, "supply", false, "show total and circulating supply instead")
}

func queryBalance(cfg BalanceConfig) error {
	if cfg.StorageAddress == "" {
		return fmt.Errorf("--storage is required")
	}
	client := newRPCClient(cfg.NodeURL)

	if cfg.Supply {
		var result struct {
			TotalSupply uint64 `json:"total_supply"`
			Circulating string `json:"circulating"`
		}
		err := client.Call("ledger.supply", map[string]interface{}{
			"storage_address": cfg.StorageAddress,
		}, &result)
		if err != nil {
			return err
		}
		fmt.Printf("Total supply: %d, circulating: %s\n", result.TotalSupply, result.Circulating)
		return nil
	}

	var result struct {
		HolderIndex uint64 `json:"holder_index"`
		Balance     uint64 `json:"balance"`
	}
	err := client.Call("account.balance", map[string]interface{}{
		"storage_address": cfg.StorageAddress,
		"holder_index":    cfg.HolderIndex,
	}, &result)
	if err != nil {
		return err
	}
	fmt.Printf("Holder %d balance: %d\n", result.HolderIndex, result.Balance)
	return nil
}
