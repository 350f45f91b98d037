package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wallet-swap/pkg/chains"
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List supported chains and their wrapped-native contracts",
	Run:   runChains,
}

func init() {
	rootCmd.AddCommand(chainsCmd)
}

func runChains(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	all := chains.All()

	if jsonOutput {
		out := make([]map[string]interface{}, 0, len(all))
		for _, info := range all {
			out = append(out, map[string]interface{}{
				"chain":           string(info.Chain),
				"chain_id":        info.ChainID,
				"native_symbol":   info.NativeSymbol,
				"wrapped_symbol":  info.WrappedSymbol,
				"wrapped_address": info.WrappedAddress.Hex(),
			})
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 78))
	color.Green("                          SUPPORTED CHAINS")
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("\n  %-10s %-8s %-7s %-8s %s\n", "CHAIN", "ID", "NATIVE", "WRAPPED", "WRAPPED CONTRACT")
	for _, info := range all {
		fmt.Printf("  %-10s %-8d %-7s %-8s %s\n",
			info.Chain, info.ChainID, info.NativeSymbol, info.WrappedSymbol,
			color.CyanString(info.WrappedAddress.Hex()))
	}
	fmt.Println("\n" + strings.Repeat("=", 78) + "\n")
}
