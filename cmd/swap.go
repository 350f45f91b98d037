package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wallet-swap/config"
	"wallet-swap/pkg/balance"
	"wallet-swap/pkg/chains"
	"wallet-swap/pkg/gas"
	"wallet-swap/pkg/parser"
	"wallet-swap/pkg/rpc"
	"wallet-swap/pkg/swap"
	"wallet-swap/pkg/token"
)

var (
	chainName   string
	inAddress   string
	inDecimals  uint8
	outAddress  string
	outDecimals uint8
	routeTo     string
	routeData   string
	gasReserved bool
	noConfirm   bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <token-in> to <token-out>",
	Short: "Swap, wrap, or unwrap a token",
	Long: `Execute a token swap on one chain. Native<->wrapped pairs run as direct
wrap/unwrap calls; any other pair is a generic swap and needs a route from an
external route-finder, supplied via --route-to and --route-data.

Examples:
  # Wrap native coin
  wallet-swap swap 1 ETH to WETH --chain ethereum

  # Unwrap back to the native coin
  wallet-swap swap 0.5 WETH to ETH --chain ethereum

  # Generic swap with an externally fetched route
  wallet-swap swap 100 USDC to ETH --chain ethereum \
    --in-address 0xA0b8... --in-decimals 6 \
    --route-to 0xdef1... --route-data 0xabcd...

  # Same swap with the contract details inline
  wallet-swap swap 100 USDC@0xA0b8...:6 to ETH --chain ethereum \
    --route-to 0xdef1... --route-data 0xabcd...

  # Skip the confirmation prompt
  wallet-swap swap 1 ETH to WETH --chain ethereum --yes`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().StringVar(&chainName, "chain", "ethereum", "Chain to execute on")
	swapCmd.Flags().StringVar(&inAddress, "in-address", "", "Input token contract address (generic tokens)")
	swapCmd.Flags().Uint8Var(&inDecimals, "in-decimals", 0, "Input token decimals (generic tokens)")
	swapCmd.Flags().StringVar(&outAddress, "out-address", "", "Output token contract address (generic tokens)")
	swapCmd.Flags().Uint8Var(&outDecimals, "out-decimals", 0, "Output token decimals (generic tokens)")
	swapCmd.Flags().StringVar(&routeTo, "route-to", "", "Route destination contract (generic swaps)")
	swapCmd.Flags().StringVar(&routeData, "route-data", "", "Route calldata, hex (generic swaps)")
	swapCmd.Flags().BoolVar(&gasReserved, "gas-reserved", false, "Amount already excludes the gas reserve (came from 'max')")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func runSwap(cmd *cobra.Command, args []string) {
	req, err := parser.ParseSwapCommand(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := parser.ValidateRequest(req); err != nil {
		printError(err)
		os.Exit(1)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	chain, err := chains.Parse(chainName)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	tokenIn, err := resolveTerm(chain, req.In, inAddress, inDecimals)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	tokenOut, err := resolveTerm(chain, req.Out, outAddress, outDecimals)
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

	logger := newLogger(verbose)
	defer logger.Sync()

	caps, err := rpc.Dial(network.RPCUrl, network.PrivateKey, logger)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer caps.Close()

	ctx := context.Background()

	// Balance and gas estimate feed the pre-flight validation.
	s := newSpinner(" Checking balance...", jsonOutput)
	tokenIn.BalanceRaw, err = fetchBalance(ctx, caps, tokenIn)
	if err != nil {
		stopSpinner(s)
		printError(err)
		os.Exit(1)
	}

	scenario := swap.ResolveScenario(tokenIn, tokenOut)
	est := liveEstimate(ctx, caps, tokenIn, operationFor(scenario))
	stopSpinner(s)

	check := balance.Check(tokenIn, req.Amount, &est, gasReserved)
	if !check.HasEnough {
		printError(fmt.Errorf("insufficient balance (%s): short by %s %s",
			check.Reason, check.Shortfall, tokenIn.Symbol))
		os.Exit(1)
	}

	intent := swap.Intent{
		TokenIn:  tokenIn,
		TokenOut: tokenOut,
		AmountIn: req.Amount,
		Scenario: scenario,
		Owner:    caps.From(),
	}
	if routeTo != "" {
		data, err := hexutil.Decode(routeData)
		if err != nil {
			printError(fmt.Errorf("invalid --route-data: %w", err))
			os.Exit(1)
		}
		intent.Route = &swap.Route{To: common.HexToAddress(routeTo), Calldata: data}
	}

	pipeline := swap.NewPipeline(caps, swap.Classifier{Debug: cfg.Debug}, logger)

	if jsonOutput {
		result := pipeline.Run(ctx, intent)
		out := map[string]interface{}{
			"scenario":   intent.Scenario.String(),
			"amount_in":  intent.AmountIn,
			"token_in":   intent.TokenIn.Symbol,
			"token_out":  intent.TokenOut.Symbol,
			"gas_source": est.Source.String(),
			"gas_cost":   est.CostNative,
			"success":    result.Success,
			"tx_hash":    result.TxHash,
			"error_kind": string(result.Kind),
			"message":    result.Message,
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		if !result.Success {
			os.Exit(1)
		}
		return
	}

	displayIntent(intent, est)

	if !noConfirm && !confirmSwap() {
		fmt.Println("\nSwap cancelled.")
		os.Exit(0)
	}

	s = newSpinner(" Executing swap...", false)
	result := pipeline.Run(ctx, intent)
	stopSpinner(s)

	if !result.Success {
		color.Red("\nSwap failed (%s): %s", result.Kind, result.Message)
		if result.Approved {
			color.Yellow("An approval was already submitted; a retry will not re-approve.")
		}
		os.Exit(1)
	}

	color.Green("\n✓ Swap submitted!")
	fmt.Printf("  Transaction: %s\n", color.CyanString(result.TxHash))
}

// resolveTerm resolves a parsed token term, with the command's flags filling
// in whatever the inline @address:decimals annotation did not carry.
func resolveTerm(chain chains.Chain, term parser.TokenTerm, flagAddress string, flagDecimals uint8) (token.Token, error) {
	address := term.Address
	if address == "" {
		address = flagAddress
	}
	decimals := term.Decimals
	if decimals == 0 {
		decimals = flagDecimals
	}
	return token.Resolve(chain, term.Symbol, address, decimals)
}

func fetchBalance(ctx context.Context, caps *rpc.EVMCapabilities, t token.Token) (*big.Int, error) {
	if token.IsNativeCoin(t) {
		return caps.NativeBalance(ctx, caps.From())
	}
	return caps.TokenBalance(ctx, common.HexToAddress(t.Address), caps.From())
}

func operationFor(s swap.Scenario) gas.OperationKind {
	if s == swap.GenericSwap {
		return gas.Swap
	}
	// wrap/unwrap are single contract calls, closer to a token transfer
	return gas.TransferToken
}

// liveEstimate asks the node for a gas price and folds it into an estimate;
// on any failure the fixed fallbacks apply.
func liveEstimate(ctx context.Context, caps *rpc.EVMCapabilities, t token.Token, op gas.OperationKind) gas.Estimate {
	price, err := caps.SuggestGasPrice(ctx)
	if err != nil {
		return gas.EstimateCost(t, op, nil, gas.NativeUSDPrice(t.USDPrice))
	}
	live := &gas.LiveQuote{GasLimit: gas.FallbackLimitSwap, GasPriceWei: price}
	if op != gas.Swap {
		live.GasLimit = gas.FallbackLimitTransferToken
	}
	return gas.EstimateCost(t, op, live, gas.NativeUSDPrice(t.USDPrice))
}

func displayIntent(intent swap.Intent, est gas.Estimate) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP PREVIEW")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  Scenario:     %s\n", color.YellowString(intent.Scenario.String()))
	fmt.Printf("  From:         %s %s\n", intent.AmountIn, color.YellowString(intent.TokenIn.Symbol))
	fmt.Printf("  To:           %s\n", color.YellowString(intent.TokenOut.Symbol))
	fmt.Printf("  Chain:        %s\n", intent.TokenIn.Chain)
	fmt.Printf("  Gas cost:     %s (%s)\n", est.CostNative, est.Source)
	if est.CostUSD > 0 {
		fmt.Printf("  Gas cost USD: $%.2f\n", est.CostUSD)
	}

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}

func confirmSwap() bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("\nProceed with swap? (y/N): ")

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func newSpinner(suffix string, disabled bool) *spinner.Spinner {
	if disabled {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = suffix
	s.Start()
	return s
}

func stopSpinner(s *spinner.Spinner) {
	if s != nil {
		s.Stop()
	}
}
