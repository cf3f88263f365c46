package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticelabs/go-lattice/pkg/wallet"
)

var walletSeedHex string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Key-pair and address generation",
}

var walletNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a wallet",
	Long: `Generate a private key, the corresponding public key and its
Base58Check address. By default the seed comes from the operating system's
entropy source; --seed-hex derives the wallet deterministically from a
hex-encoded seed of at least 32 bytes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var w *wallet.Wallet
		var err error
		if walletSeedHex != "" {
			var seed []byte
			seed, err = hex.DecodeString(walletSeedHex)
			if err != nil {
				return fmt.Errorf("decoding --seed-hex: %w", err)
			}
			w, err = wallet.FromSeed(seed)
		} else {
			w, err = wallet.New()
		}
		if err != nil {
			return err
		}

		fmt.Printf("private key: %s\n", w.PrivateKey)
		fmt.Printf("public key:  %s\n", w.PublicKey)
		fmt.Printf("address:     %s\n", w.Address)
		return nil
	},
}

var walletValidateCmd = &cobra.Command{
	Use:   "validate <address>",
	Short: "Check an address checksum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wallet.ValidateAddress(args[0]); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	walletNewCmd.Flags().StringVar(&walletSeedHex, "seed-hex", "", "hex-encoded seed (at least 64 hex characters)")
	walletCmd.AddCommand(walletNewCmd)
	walletCmd.AddCommand(walletValidateCmd)
}
