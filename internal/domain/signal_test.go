package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := dec(t, s)
	return &d
}

// baseSignal mirrors the canonical interchange example: a PERP limit buy.
func baseSignal(t *testing.T) TradingSignal {
	t.Helper()
	return TradingSignal{
		SignalID:             "123e4567-e89b-12d3-a456-426614174000",
		Timestamp:            time.Date(2024, 2, 19, 12, 0, 0, 0, time.UTC),
		Type:                 SignalTypeTrade,
		TradeType:            TradeTypePerp,
		Symbol:               "ETH-USDT",
		Side:                 SideBuy,
		OrderType:            OrderTypeLimit,
		Message:              "ETH breakout trade",
		AmountCapitalPercent: dec(t, "10.0"),
		FixedSize:            decPtr(t, "1.5"),
		Leverage:             decPtr(t, "10.0"),
		LimitPrice:           decPtr(t, "2000.0"),
	}
}

func requireKind(t *testing.T, err error, kind ErrorKind, field string) {
	t.Helper()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, kind, verr.Kind)
	assert.Equal(t, field, verr.Field)
}

func TestNewSignalKeepsFields(t *testing.T) {
	in := baseSignal(t)
	sig, err := NewSignal(in)
	require.NoError(t, err)

	assert.Equal(t, in.SignalID, sig.SignalID)
	assert.True(t, in.Timestamp.Equal(sig.Timestamp))
	assert.Equal(t, SignalTypeTrade, sig.Type)
	assert.Equal(t, TradeTypePerp, sig.TradeType)
	assert.Equal(t, "ETH-USDT", sig.Symbol)
	assert.Equal(t, SideBuy, sig.Side)
	assert.Equal(t, OrderTypeLimit, sig.OrderType)
	assert.Equal(t, "10.0", sig.AmountCapitalPercent.String())
	assert.Equal(t, "2000.0", sig.LimitPrice.String())
	assert.False(t, sig.ReduceOnly)
}

func TestNewSignalStampsIDAndTimestamp(t *testing.T) {
	in := baseSignal(t)
	in.SignalID = ""
	in.Timestamp = time.Time{}

	sig, err := NewSignal(in)
	require.NoError(t, err)
	assert.NotEmpty(t, sig.SignalID)
	assert.False(t, sig.Timestamp.IsZero())
	assert.Equal(t, time.UTC, sig.Timestamp.Location())
}

func TestAmountCapitalPercentBounds(t *testing.T) {
	cases := []struct {
		percent string
		wantErr bool
	}{
		{"0", true},
		{"-5", true},
		{"100.01", true},
		{"0.01", false},
		{"100", false},
	}
	for _, tc := range cases {
		in := baseSignal(t)
		in.AmountCapitalPercent = dec(t, tc.percent)
		_, err := NewSignal(in)
		if tc.wantErr {
			requireKind(t, err, InvalidPercent, "amount_capital_percent")
		} else {
			assert.NoError(t, err, "percent %s", tc.percent)
		}
	}
}

func TestEVMRequiresContractAddress(t *testing.T) {
	in := baseSignal(t)
	in.TradeType = TradeTypeEVM

	_, err := NewSignal(in)
	requireKind(t, err, MissingRequiredField, "contract_address")

	in.ContractAddress = "0xabc0000000000000000000000000000000000000"
	sig, err := NewSignal(in)
	require.NoError(t, err)
	assert.Equal(t, TradeTypeEVM, sig.TradeType)
}

func TestOrderTypePriceRequirements(t *testing.T) {
	cases := []struct {
		orderType OrderType
		field     string
		set       func(t *testing.T, s *TradingSignal)
	}{
		{OrderTypeLimit, "limit_price", func(t *testing.T, s *TradingSignal) { s.LimitPrice = decPtr(t, "2000.0") }},
		{OrderTypeStopLoss, "stop_price", func(t *testing.T, s *TradingSignal) { s.StopPrice = decPtr(t, "1900.0") }},
		{OrderTypeTakeProfit, "take_profit_price", func(t *testing.T, s *TradingSignal) { s.TakeProfitPrice = decPtr(t, "2100.0") }},
	}
	for _, tc := range cases {
		t.Run(string(tc.orderType), func(t *testing.T) {
			in := baseSignal(t)
			in.OrderType = tc.orderType
			in.LimitPrice = nil
			in.StopPrice = nil
			in.TakeProfitPrice = nil

			_, err := NewSignal(in)
			requireKind(t, err, MissingRequiredField, tc.field)

			tc.set(t, &in)
			_, err = NewSignal(in)
			assert.NoError(t, err)
		})
	}
}

func TestMarketOrderNeedsNoPrices(t *testing.T) {
	in := baseSignal(t)
	in.OrderType = OrderTypeMarket
	in.LimitPrice = nil

	_, err := NewSignal(in)
	assert.NoError(t, err)
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	in := baseSignal(t)
	in.Side = Side("HOLD")
	_, err := NewSignal(in)
	requireKind(t, err, UnknownEnumValue, "side")
}
