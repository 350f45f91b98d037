package rpc

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const balanceOfABI = `[
	{
		"constant": true,
		"inputs": [{"name": "_owner", "type": "address"}],
		"name": "balanceOf",
		"outputs": [{"name": "", "type": "uint256"}],
		"type": "function"
	}
]`

// NativeBalance reads the account's native-coin balance in wei.
func (e *EVMCapabilities) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	bal, err := e.client.BalanceAt(ctx, account, nil)
	if err != nil {
		return nil, errors.Wrap(err, "get balance")
	}
	return bal, nil
}

// TokenBalance reads balanceOf(account) from an ERC-20 contract.
func (e *EVMCapabilities) TokenBalance(ctx context.Context, tokenAddr, account common.Address) (*big.Int, error) {
	parsed, err := abi.JSON(strings.NewReader(balanceOfABI))
	if err != nil {
		return nil, errors.Wrap(err, "parse balanceOf abi")
	}

	data, err := parsed.Pack("balanceOf", account)
	if err != nil {
		return nil, errors.Wrap(err, "pack balanceOf")
	}

	result, err := e.client.CallContract(ctx, ethereum.CallMsg{
		To:   &tokenAddr,
		Data: data,
	}, nil)
	if err != nil {
		return nil, errors.Wrap(err, "call balanceOf")
	}

	if len(result) == 0 {
		return new(big.Int), nil
	}
	return new(big.Int).SetBytes(result), nil
}

// SuggestGasPrice exposes the node's gas price oracle for live estimates.
func (e *EVMCapabilities) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	price, err := e.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "suggest gas price")
	}
	return price, nil
}
