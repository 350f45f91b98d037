package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wallet-swap",
	Short: "A CLI for gas-aware token swaps on EVM chains",
	Long: `wallet-swap is a command-line wallet engine for token swaps. It classifies
tokens, reserves gas before spending native balances, resolves wrap/unwrap
shortcuts, and drives the allowance -> approval -> submit pipeline.

Examples:
  wallet-swap swap 1 ETH to WETH --chain ethereum
  wallet-swap swap 0.5 WETH to ETH --chain ethereum
  wallet-swap quote ETH --op swap --chain ethereum
  wallet-swap max ETH --chain ethereum
  wallet-swap chains`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}
