package cmd

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reflectoken/rtk/logx"
	"github.com/reflectoken/rtk/runtime"
)

var keygenOut string

var keygenCmd = &cobra.Command{
	Use:   "keygen [flags]",
	Short: "Generate an ed25519 keypair for signing transfers",
	Run: func(cmd *cobra.Command, args []string) {
		if err := generateKey(keygenOut); err != nil {
			logx.Error("KEYGEN CLI", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.PersistentFlags().StringVarP(&keygenOut, "out", "o", "key.txt", "file to write the hex private key to")
}

func generateKey(path string) error {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return fmt.Errorf("could not generate keypair: %w", err)
	}

	if err := os.WriteFile(path, []byte(hex.EncodeToString(priv)), 0o600); err != nil {
		return fmt.Errorf("could not write key file: %w", err)
	}

	fmt.Printf("Address: %s\nPrivate key written to %s\n", runtime.AddressFromPubKey(pub), path)
	return nil
}
