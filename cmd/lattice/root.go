package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var verbose bool

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

var rootCmd = &cobra.Command{
	Use:   "lattice",
	Short: "Cryptocurrency wallet generation and portfolio tooling",
	Long: `lattice generates secp256k1 wallets (private key, public key and
Base58Check address), fetches historical market data and searches for
mean-variance efficient portfolio allocations.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(walletCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(allocateCmd)
}
