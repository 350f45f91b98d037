// Package rpc implements the swap pipeline's external capabilities over a
// JSON-RPC endpoint. It is the networking/signing layer: the engine itself
// never dials a node or touches a key.
package rpc

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wallet-swap/pkg/swap"
)

// Minimal ERC-20 ABI: just the allowance surface the pipeline needs.
const erc20ABI = `[
	{
		"constant": true,
		"inputs": [
			{"name": "_owner", "type": "address"},
			{"name": "_spender", "type": "address"}
		],
		"name": "allowance",
		"outputs": [{"name": "", "type": "uint256"}],
		"type": "function"
	},
	{
		"constant": false,
		"inputs": [
			{"name": "_spender", "type": "address"},
			{"name": "_value", "type": "uint256"}
		],
		"name": "approve",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	}
]`

const approvalGasLimit = uint64(100000)

// EVMCapabilities talks to one chain through an ethclient and signs with a
// locally held key.
type EVMCapabilities struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	from       common.Address
	erc20      abi.ABI
	log        *zap.Logger
}

// Dial connects to an RPC endpoint and prepares the signing key.
func Dial(rpcURL, privateKeyHex string, log *zap.Logger) (*EVMCapabilities, error) {
	if rpcURL == "" {
		return nil, errors.New("rpc url is not configured")
	}
	if privateKeyHex == "" {
		return nil, errors.New("private key is not configured")
	}

	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, errors.Wrap(err, "dial rpc endpoint")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}

	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, errors.Wrap(err, "parse erc20 abi")
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &EVMCapabilities{
		client:     client,
		privateKey: key,
		from:       crypto.PubkeyToAddress(key.PublicKey),
		erc20:      parsed,
		log:        log,
	}, nil
}

// From returns the signing address.
func (e *EVMCapabilities) From() common.Address { return e.from }

// CheckAllowance reads allowance(owner, spender) from the token contract.
func (e *EVMCapabilities) CheckAllowance(ctx context.Context, tokenAddr, owner, spender common.Address, chainID uint64) (*big.Int, error) {
	data, err := e.erc20.Pack("allowance", owner, spender)
	if err != nil {
		return nil, errors.Wrap(err, "pack allowance")
	}

	result, err := e.client.CallContract(ctx, ethereum.CallMsg{
		To:   &tokenAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "call allowance")
	}

	if len(result) == 0 {
		return new(big.Int), nil
	}
	return new(big.Int).SetBytes(result), nil
}

// RequestApproval submits approve(spender, amount) signed by the local key.
func (e *EVMCapabilities) RequestApproval(ctx context.Context, tokenAddr, spender common.Address, amount *big.Int, chainID uint64) error {
	data, err := e.erc20.Pack("approve", spender, amount)
	if err != nil {
		return errors.Wrap(err, "pack approve")
	}

	tx, err := e.signTx(ctx, tokenAddr, new(big.Int), approvalGasLimit, data, chainID)
	if err != nil {
		return err
	}

	if err := e.client.SendTransaction(ctx, tx); err != nil {
		return errors.Wrap(err, "send approval")
	}

	e.log.Info("approval submitted",
		zap.String("token", tokenAddr.Hex()),
		zap.String("spender", spender.Hex()),
		zap.String("tx_hash", tx.Hash().Hex()))
	return nil
}

// SubmitTransaction signs and sends a built payload.
func (e *EVMCapabilities) SubmitTransaction(ctx context.Context, p swap.Payload) (string, error) {
	value := new(big.Int)
	if p.Value != nil {
		value = (*big.Int)(p.Value)
	}

	gasLimit, err := e.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  e.from,
		To:    &p.To,
		Value: value,
		Data:  p.Data,
	})
	if err != nil {
		return "", errors.Wrap(err, "estimate gas")
	}
	// Headroom against estimation drift between call and inclusion.
	gasLimit = gasLimit * 120 / 100

	tx, err := e.signTx(ctx, p.To, value, gasLimit, p.Data, p.ChainID)
	if err != nil {
		return "", err
	}

	if err := e.client.SendTransaction(ctx, tx); err != nil {
		return "", errors.Wrap(err, "send transaction")
	}

	e.log.Info("transaction submitted", zap.String("tx_hash", tx.Hash().Hex()))
	return tx.Hash().Hex(), nil
}

func (e *EVMCapabilities) signTx(ctx context.Context, to common.Address, value *big.Int, gasLimit uint64, data []byte, chainID uint64) (*types.Transaction, error) {
	nonce, err := e.client.PendingNonceAt(ctx, e.from)
	if err != nil {
		return nil, errors.Wrap(err, "get nonce")
	}

	gasPrice, err := e.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get gas price")
	}

	tx := types.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)

	signed, err := types.SignTx(tx, types.NewEIP155Signer(new(big.Int).SetUint64(chainID)), e.privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "sign transaction")
	}
	return signed, nil
}

// Close releases the underlying client connection.
func (e *EVMCapabilities) Close() {
	if e.client != nil {
		e.client.Close()
	}
}
