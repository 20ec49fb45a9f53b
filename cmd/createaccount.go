package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reflectoken/rtk/logx"
)

type CreateAccountConfig struct {
	NodeURL     string
	Address     string
	HolderIndex uint64
	Lamports    uint64
}

var createAccountConfig CreateAccountConfig

var createAccountCmd = &cobra.Command{
	Use:   "create-account [flags]",
	Short: "Create a holder account bound to a ledger index",
	Long: `Creates a host account whose identity record binds it to a holder
index. Transfers name this account as sender or recipient; the program reads
the index from the account's own data, never from the instruction.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := createAccount(createAccountConfig); err != nil {
			logx.Error("CREATE-ACCOUNT CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(createAccountCmd)

	createAccountCmd.PersistentFlags().StringVarP(&createAccountConfig.NodeURL, "node-url", "u", "http://localhost:9101", "node URL")
	createAccountCmd.PersistentFlags().StringVarP(&createAccountConfig.Address, "address", "d", "", "account address (base58)")
	createAccountCmd.PersistentFlags().Uint64VarP(&createAccountConfig.HolderIndex, "index", "i", 0, "ledger holder index")
	createAccountCmd.PersistentFlags().Uint64VarP(&createAccountConfig.Lamports, "lamports", "l", 0, "initial lamports")
}

func createAccount(cfg CreateAccountConfig) error {
	if cfg.Address == "" {
		return fmt.Errorf("--address is required")
	}

	client := newRPCClient(cfg.NodeURL)
	var result struct {
		Ok      bool   `json:"ok"`
		Address string `json:"address"`
	}
	err := client.Call("account.create", map[string]interface{}{
		"address":      cfg.Address,
		"holder_index": cfg.HolderIndex,
		"lamports":     cfg.Lamports,
	}, &result)
	if err != nil {
		return err
	}

	fmt.Printf("Created account %s bound to holder %d\n", result.Address, cfg.HolderIndex)
	return nil
}
