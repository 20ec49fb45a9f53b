package cmd

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reflectoken/rtk/common"
	"github.com/reflectoken/rtk/logx"
	"github.com/reflectoken/rtk/program"
	"github.com/reflectoken/rtk/runtime"
)

type TransferConfig struct {
	NodeURL        string
	StorageAddress string
	To             string
	Amount         uint64
	PrivateKeyFile string
	Verbose        bool
}

var transferConfig TransferConfig

// transferCmd represents the transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer [flags]",
	Short: "Transfer tokens to another holder",
	Long: `Signs and submits a transfer instruction. One tenth of the amount is
redirected to the reflection slot (holder 0); the recipient receives the rest.

Examples:
  # Transfer 100 tokens
  rtk transfer -s <storage-addr> -t <recipient-addr> -a 100 -f /path/to/key.txt`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := transferToken(transferConfig); err != nil {
			logx.Error("TRANSFER CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)

	transferCmd.PersistentFlags().StringVarP(&transferConfig.NodeURL, "node-url", "u", "http://localhost:9101", "node URL")
	transferCmd.PersistentFlags().StringVarP(&transferConfig.StorageAddress, "storage", "s", "", "ledger storage account address")
	transferCmd.PersistentFlags().StringVarP(&transferConfig.To, "to", "t", "", "address of recipient")
	transferCmd.PersistentFlags().Uint64VarP(&transferConfig.Amount, "amount", "a", 0, "amount")
	transferCmd.PersistentFlags().StringVarP(&transferConfig.PrivateKeyFile, "private-key-file", "f", "", "sender private key file (hex)")
	transferCmd.PersistentFlags().BoolVarP(&transferConfig.Verbose, "verbose", "v", false, "verbose output")
}

func transferToken(cfg TransferConfig) error {
	if cfg.StorageAddress == "" || cfg.To == "" {
		return fmt.Errorf("--storage and --to are required")
	}

	if cfg.Verbose {
		logx.Debug("TRANSFER CLI", "Loading sender private key...")
	}
	privKey, err := loadPrivateKey(cfg.PrivateKeyFile)
	if err != nil {
		return fmt.Errorf("failed to load sender private key: %w", err)
	}
	pubKey := privKey.Public().(ed25519.PublicKey)
	senderAddr := runtime.AddressFromPubKey(pubKey)

	instruction := program.EncodeTransfer(cfg.Amount)
	sig := ed25519.Sign(privKey, instruction)

	client := newRPCClient(cfg.NodeURL)
	var result struct {
		Ok bool `json:"ok"`
	}
	err = client.Call("tx.transfer", map[string]interface{}{
		"storage_address":   cfg.StorageAddress,
		"sender_address":    senderAddr,
		"recipient_address": cfg.To,
		"amount":            cfg.Amount,
		"sender_pubkey":     common.EncodeBytesToBase58(pubKey),
		"signature":         common.EncodeBytesToBase58(sig),
	}, &result)
	if err != nil {
		return err
	}

	fmt.Printf("Transferred %d from %s to %s\n", cfg.Amount, senderAddr, cfg.To)
	return nil
}

// loadPrivateKey reads a hex-encoded ed25519 private key (or seed) from path
func loadPrivateKey(path string) (ed25519.PrivateKey, error) {
	if path == "" {
		return nil, fmt.Errorf("--private-key-file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("private key is not valid hex: %w", err)
	}
	switch len(key) {
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(key), nil
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(key), nil
	default:
		return nil, fmt.Errorf("private key must be %d or %d bytes, got %d",
			ed25519.SeedSize, ed25519.PrivateKeySize, len(key))
	}
}
