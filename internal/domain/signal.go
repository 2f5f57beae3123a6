package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TradeType string

const (
	TradeTypePerp TradeType = "PERP"
	TradeTypeSpot TradeType = "SPOT"
	TradeTypeEVM  TradeType = "EVM"
)

type SignalType string

const (
	SignalTypeTrade SignalType = "TRADE"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

type OrderType string

const (
	OrderTypeMarket     OrderType = "MARKET"
	OrderTypeLimit      OrderType = "LIMIT"
	OrderTypeStopLoss   OrderType = "STOP_LOSS"
	OrderTypeTakeProfit OrderType = "TAKE_PROFIT"
)

// Tag lookup tables used when decoding. Anything not listed here is rejected.
var (
	tradeTypes = map[string]TradeType{
		string(TradeTypePerp): TradeTypePerp,
		string(TradeTypeSpot): TradeTypeSpot,
		string(TradeTypeEVM):  TradeTypeEVM,
	}
	signalTypes = map[string]SignalType{
		string(SignalTypeTrade): SignalTypeTrade,
	}
	sides = map[string]Side{
		string(SideBuy):  SideBuy,
		string(SideSell): SideSell,
	}
	orderTypes = map[string]OrderType{
		string(OrderTypeMarket):     OrderTypeMarket,
		string(OrderTypeLimit):      OrderTypeLimit,
		string(OrderTypeStopLoss):   OrderTypeStopLoss,
		string(OrderTypeTakeProfit): OrderTypeTakeProfit,
	}
)

// TradingSignal carries everything an execution component needs to place a
// trade. All prices and sizes are exact decimals so values survive the trip
// through the interchange form without rounding. A nil decimal or an empty
// string means the field was not supplied; such fields are left out of the
// encoded form entirely.
type TradingSignal struct {
	// Core
	SignalID  string
	Timestamp time.Time
	Type      SignalType
	TradeType TradeType
	Symbol    string
	Side      Side
	OrderType OrderType
	Message   string

	// Sizing
	AmountCapitalPercent decimal.Decimal
	FixedSize            *decimal.Decimal
	Leverage             *decimal.Decimal

	// Pricing
	LimitPrice      *decimal.Decimal
	StopPrice       *decimal.Decimal
	TakeProfitPrice *decimal.Decimal
	Slippage        *decimal.Decimal

	// EVM specific
	Network         string
	ContractAddress string
	DexID           string

	// Position management
	ReduceOnly bool

	// Metadata
	Source       string
	StrategyName string
	Timeframe    string
	Exchange     string
}

var hundred = decimal.NewFromInt(100)

// Validate enforces the cross-field rules every signal must satisfy. Both
// construction paths run it, so anything downstream only ever sees signals
// that passed. Returns a *ValidationError for the first rule violated.
func (s *TradingSignal) Validate() error {
	if !s.AmountCapitalPercent.IsPositive() || s.AmountCapitalPercent.GreaterThan(hundred) {
		return &ValidationError{Kind: InvalidPercent, Field: "amount_capital_percent", Value: s.AmountCapitalPercent.String()}
	}
	if s.TradeType == TradeTypeEVM && s.ContractAddress == "" {
		return &ValidationError{Kind: MissingRequiredField, Field: "contract_address"}
	}
	if s.OrderType == OrderTypeLimit && s.LimitPrice == nil {
		return &ValidationError{Kind: MissingRequiredField, Field: "limit_price"}
	}
	if s.OrderType == OrderTypeStopLoss && s.StopPrice == nil {
		return &ValidationError{Kind: MissingRequiredField, Field: "stop_price"}
	}
	if s.OrderType == OrderTypeTakeProfit && s.TakeProfitPrice == nil {
		return &ValidationError{Kind: MissingRequiredField, Field: "take_profit_price"}
	}
	if _, ok := signalTypes[string(s.Type)]; !ok {
		return &ValidationError{Kind: UnknownEnumValue, Field: "type", Value: string(s.Type)}
	}
	if _, ok := tradeTypes[string(s.TradeType)]; !ok {
		return &ValidationError{Kind: UnknownEnumValue, Field: "trade_type", Value: string(s.TradeType)}
	}
	if _, ok := sides[string(s.Side)]; !ok {
		return &ValidationError{Kind: UnknownEnumValue, Field: "side", Value: string(s.Side)}
	}
	if _, ok := orderTypes[string(s.OrderType)]; !ok {
		return &ValidationError{Kind: UnknownEnumValue, Field: "order_type", Value: string(s.OrderType)}
	}
	return nil
}

// NewSignal validates a fully populated record and returns a copy of it.
// Programmatic producers may leave SignalID blank to get a fresh UUID and
// Timestamp zero to get the current time; the timestamp is normalized to UTC
// either way. The input is never mutated and nothing is retained on failure.
func NewSignal(s TradingSignal) (*TradingSignal, error) {
	if s.SignalID == "" {
		s.SignalID = uuid.NewString()
	}
	if s.Timestamp.IsZero() {
		s.Timestamp = time.Now()
	}
	s.Timestamp = s.Timestamp.UTC()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}
