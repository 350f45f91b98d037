package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"wallet-swap/config"
	"wallet-swap/pkg/chains"
	"wallet-swap/pkg/gas"
	"wallet-swap/pkg/rpc"
	"wallet-swap/pkg/token"
)

var (
	quoteOp       string
	quoteOffline  bool
	quoteWatch    bool
	quoteInterval int
)

var quoteCmd = &cobra.Command{
	Use:   "quote <token>",
	Short: "Estimate the gas cost of an operation",
	Long: `Estimate gas for a transfer or swap of the given token. With a configured
RPC endpoint the node's gas price is used; otherwise, or with --offline, the
fixed fallbacks apply.

Examples:
  wallet-swap quote ETH --op swap --chain ethereum
  wallet-swap quote ETH --op transfer --offline
  wallet-swap quote ETH --watch --interval 10`,
	Args: cobra.ExactArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVar(&chainName, "chain", "ethereum", "Chain to estimate on")
	quoteCmd.Flags().StringVar(&inAddress, "address", "", "Token contract address (generic tokens)")
	quoteCmd.Flags().Uint8Var(&inDecimals, "decimals", 0, "Token decimals (generic tokens)")
	quoteCmd.Flags().StringVar(&quoteOp, "op", "swap", "Operation: transfer or swap")
	quoteCmd.Flags().BoolVar(&quoteOffline, "offline", false, "Skip the RPC gas price lookup")
	quoteCmd.Flags().BoolVarP(&quoteWatch, "watch", "w", false, "Re-estimate continuously")
	quoteCmd.Flags().IntVar(&quoteInterval, "interval", 10, "Polling interval in seconds (when watching)")
}

// quoteCacheTTL bounds how stale a watched estimate may get before the node
// is asked again.
const quoteCacheTTL = 30 * time.Second

func runQuote(cmd *cobra.Command, args []string) {
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

	op := gas.Swap
	switch quoteOp {
	case "transfer":
		op = gas.TransferToken
		if token.IsNativeCoin(t) {
			op = gas.TransferNative
		}
	case "swap":
	default:
		printError(fmt.Errorf("unknown --op %q, expected transfer or swap", quoteOp))
		os.Exit(1)
	}

	if !quoteWatch {
		displayEstimate(chain, op, quoteEstimate(t, op, verbose), jsonOutput)
		return
	}

	if jsonOutput {
		fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
		os.Exit(1)
	}

	watchEstimate(chain, t, op, verbose)
}

// watchEstimate re-displays the estimate on an interval. The cache keeps a
// fetched estimate for its TTL, so most ticks reprint the cached value and
// only every few ticks touch the node again.
func watchEstimate(chain chains.Chain, t token.Token, op gas.OperationKind, verbose bool) {
	fmt.Printf("\nWatching gas for %s on %s\n", color.CyanString(op.String()), chain)
	fmt.Printf("Checking every %d seconds. Press Ctrl+C to stop.\n", quoteInterval)

	cache := gas.NewCache(quoteCacheTTL, nil)
	key := gas.CacheKey{Chain: chain, Kind: op}

	check := func() {
		est, ok := cache.Get(key)
		if !ok {
			est = quoteEstimate(t, op, verbose)
			cache.Put(key, est)
		}
		displayEstimate(chain, op, est, false)
	}

	ticker := time.NewTicker(time.Duration(quoteInterval) * time.Second)
	defer ticker.Stop()

	check()
	for range ticker.C {
		check()
	}
}

func displayEstimate(chain chains.Chain, op gas.OperationKind, est gas.Estimate, jsonOutput bool) {
	if jsonOutput {
		out := map[string]interface{}{
			"chain":         string(chain),
			"operation":     op.String(),
			"gas_limit":     est.GasLimit,
			"gas_price_wei": est.GasPriceWei.String(),
			"cost_native":   est.CostNative,
			"cost_usd":      est.CostUSD,
			"source":        est.Source.String(),
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("\n  Operation:  %s on %s\n", color.YellowString(op.String()), chain)
	fmt.Printf("  Gas limit:  %d\n", est.GasLimit)
	fmt.Printf("  Gas price:  %s wei\n", est.GasPriceWei)
	fmt.Printf("  Cost:       %s (%s)\n", color.CyanString(est.CostNative), est.Source)
	if est.CostUSD > 0 {
		fmt.Printf("  Cost USD:   $%.2f\n", est.CostUSD)
	}
	fmt.Println()
}

func quoteEstimate(t token.Token, op gas.OperationKind, verbose bool) gas.Estimate {
	if quoteOffline {
		return gas.EstimateCost(t, op, nil, gas.NativeUSDPrice(t.USDPrice))
	}

	cfg, err := config.Load()
	if err != nil {
		return gas.EstimateCost(t, op, nil, gas.NativeUSDPrice(t.USDPrice))
	}
	network, err := cfg.Network(string(t.Chain))
	if err != nil || network.PrivateKey == "" {
		return gas.EstimateCost(t, op, nil, gas.NativeUSDPrice(t.USDPrice))
	}

	caps, err := rpc.Dial(network.RPCUrl, network.PrivateKey, newLogger(verbose))
	if err != nil {
		return gas.EstimateCost(t, op, nil, gas.NativeUSDPrice(t.USDPrice))
	}
	defer caps.Close()

	return liveEstimate(context.Background(), caps, t, op)
}
