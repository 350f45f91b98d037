package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSwapCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    Request
		wantErr bool
	}{
		{
			name:    "plain",
			command: "1 ETH to WETH",
			want: Request{
				Amount: "1",
				In:     TokenTerm{Symbol: "ETH"},
				Out:    TokenTerm{Symbol: "WETH"},
			},
		},
		{
			name:    "with swap prefix",
			command: "swap 1.5 WETH to ETH",
			want: Request{
				Amount: "1.5",
				In:     TokenTerm{Symbol: "WETH"},
				Out:    TokenTerm{Symbol: "ETH"},
			},
		},
		{
			name:    "lowercase symbols",
			command: "100.25 usdc TO eth",
			want: Request{
				Amount: "100.25",
				In:     TokenTerm{Symbol: "USDC"},
				Out:    TokenTerm{Symbol: "ETH"},
			},
		},
		{
			name:    "annotated generic token",
			command: "100 USDC@0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48:6 to ETH",
			want: Request{
				Amount: "100",
				In: TokenTerm{
					Symbol:   "USDC",
					Address:  "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
					Decimals: 6,
				},
				Out: TokenTerm{Symbol: "ETH"},
			},
		},
		{
			name:    "annotation without decimals",
			command: "1 DAI@0x6B175474E89094C44Da98b954EedeAC495271d0F to ETH",
			want: Request{
				Amount: "1",
				In: TokenTerm{
					Symbol:  "DAI",
					Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F",
				},
				Out: TokenTerm{Symbol: "ETH"},
			},
		},
		{name: "missing destination", command: "1 ETH", wantErr: true},
		{name: "no amount", command: "ETH to WETH", wantErr: true},
		{name: "negative amount", command: "-1 ETH to WETH", wantErr: true},
		{name: "bad address", command: "1 USDC@0x1234 to ETH", wantErr: true},
		{name: "bad decimals", command: "1 USDC@0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48:300 to ETH", wantErr: true},
		{name: "numeric symbol", command: "1 123 to ETH", wantErr: true},
		{name: "empty", command: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSwapCommand(tt.command)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseSwapCommandKeepsAddressCasing(t *testing.T) {
	got, err := ParseSwapCommand("1 usdc@0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48 to eth")
	require.NoError(t, err)
	assert.Equal(t, "USDC", got.In.Symbol)
	assert.Equal(t, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", got.In.Address)
}

func TestValidateRequest(t *testing.T) {
	ok := Request{Amount: "1", In: TokenTerm{Symbol: "ETH"}, Out: TokenTerm{Symbol: "WETH"}}
	assert.NoError(t, ValidateRequest(&ok))

	assert.Error(t, ValidateRequest(&Request{In: TokenTerm{Symbol: "ETH"}, Out: TokenTerm{Symbol: "WETH"}}))
	assert.Error(t, ValidateRequest(&Request{Amount: "1", Out: TokenTerm{Symbol: "WETH"}}))
	assert.Error(t, ValidateRequest(&Request{Amount: "1", In: TokenTerm{Symbol: "ETH"}}))
	assert.Error(t, ValidateRequest(&Request{Amount: "1", In: TokenTerm{Symbol: "ETH"}, Out: TokenTerm{Symbol: "ETH"}}))
}
