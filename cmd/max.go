package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wallet-swap/config"
	"wallet-swap/pkg/balance"
	"wallet-swap/pkg/chains"
	"wallet-swap/pkg/gas"
	"wallet-swap/pkg/rpc"
	"wallet-swap/pkg/token"
)

var noReserve bool

var maxCmd = &cobra.Command{
	Use:   "max <token>",
	Short: "Show the maximum spendable amount of a token",
	Long: `Compute the largest amount that can be entered without risking an
insufficient-gas failure. For native tokens a gas reserve is withheld unless
--no-reserve is set; other tokens always spend in full.`,
	Args: cobra.ExactArgs(1),
	Run:  runMax,
}

func init() {
	rootCmd.AddCommand(maxCmd)

	maxCmd.Flags().StringVar(&chainName, "chain", "ethereum", "Chain to query")
	maxCmd.Flags().StringVar(&inAddress, "address", "", "Token contract address (generic tokens)")
	maxCmd.Flags().Uint8Var(&inDecimals, "decimals", 0, "Token decimals (generic tokens)")
	maxCmd.Flags().BoolVar(&noReserve, "no-reserve", false, "Do not withhold a gas reserve")
}

func runMax(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")

	chain, err := chains.Parse(chainName)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	t, err := token.Resolve(chain, args[0], inAddress, inDecimals)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	network, err := cfg.Network(string(chain))
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	caps, err := rpc.Dial(network.RPCUrl, network.PrivateKey, newLogger(verbose))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer caps.Close()

	ctx := context.Background()
	t.BalanceRaw, err = fetchBalance(ctx, caps, t)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	op := gas.TransferToken
	if token.Classify(t) == token.Native {
		op = gas.TransferNative
	}
	est := liveEstimate(ctx, caps, t, op)

	spendable := balance.MaxSpendable(t, balance.Options{
		ReserveGas:   !noReserve,
		GasBufferPct: cfg.GasBufferPct,
		Estimate:     &est,
	})

	if jsonOutput {
		out := map[string]interface{}{
			"token":       t.Symbol,
			"chain":       string(chain),
			"spendable":   spendable,
			"gas_source":  est.Source.String(),
			"gas_cost":    est.CostNative,
			"reserve_gas": !noReserve,
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("\n  Max spendable %s on %s: %s\n", color.YellowString(t.Symbol), chain, color.GreenString(spendable))
	if !noReserve && token.Classify(t) == token.Native {
		fmt.Printf("  Gas reserve based on %s estimate: %s\n", est.Source, est.CostNative)
	}
	fmt.Println()
}
