package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// The interchange form is a flat JSON object. Enum fields carry their tag
// strings, timestamps are RFC 3339 UTC with an explicit Z, and decimals are
// always JSON strings so no producer or consumer ever pushes a price through
// a binary float. Optional fields that were not supplied are absent from the
// object, not null.

// ToMap renders the signal as the interchange key/value form.
func (s *TradingSignal) ToMap() map[string]any {
	m := map[string]any{
		"signal_id":              s.SignalID,
		"timestamp":              s.Timestamp.UTC().Format(time.RFC3339Nano),
		"type":                   string(s.Type),
		"trade_type":             string(s.TradeType),
		"symbol":                 s.Symbol,
		"side":                   string(s.Side),
		"order_type":             string(s.OrderType),
		"message":                s.Message,
		"amount_capital_percent": s.AmountCapitalPercent.String(),
		"reduce_only":            s.ReduceOnly,
	}

	putDecimal(m, "fixed_size", s.FixedSize)
	putDecimal(m, "leverage", s.Leverage)
	putDecimal(m, "limit_price", s.LimitPrice)
	putDecimal(m, "stop_price", s.StopPrice)
	putDecimal(m, "take_profit_price", s.TakeProfitPrice)
	putDecimal(m, "slippage", s.Slippage)

	putString(m, "network", s.Network)
	putString(m, "contract_address", s.ContractAddress)
	putString(m, "dex_id", s.DexID)
	putString(m, "source", s.Source)
	putString(m, "strategy_name", s.StrategyName)
	putString(m, "timeframe", s.Timeframe)
	putString(m, "exchange", s.Exchange)

	return m
}

// ToJSON serializes the interchange form. Decimals are already rendered as
// strings by ToMap, so the stdlib encoder cannot lose precision here.
func (s *TradingSignal) ToJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// FromMap builds a validated signal from an interchange map. Enum tags are
// looked up in the closed sets, decimal fields are parsed exactly, and the
// result goes through the same validation as direct construction.
func FromMap(m map[string]any) (*TradingSignal, error) {
	var s TradingSignal
	var err error

	if s.SignalID, err = requireString(m, "signal_id"); err != nil {
		return nil, err
	}

	ts, err := requireString(m, "timestamp")
	if err != nil {
		return nil, err
	}
	t, terr := time.Parse(time.RFC3339, ts)
	if terr != nil {
		return nil, &ValidationError{Kind: MalformedInterchange, Field: "timestamp", Value: ts}
	}
	s.Timestamp = t.UTC()

	rawType, err := requireString(m, "type")
	if err != nil {
		return nil, err
	}
	sigType, ok := signalTypes[rawType]
	if !ok {
		return nil, &ValidationError{Kind: UnknownEnumValue, Field: "type", Value: rawType}
	}
	s.Type = sigType

	rawTrade, err := requireString(m, "trade_type")
	if err != nil {
		return nil, err
	}
	tradeType, ok := tradeTypes[rawTrade]
	if !ok {
		return nil, &ValidationError{Kind: UnknownEnumValue, Field: "trade_type", Value: rawTrade}
	}
	s.TradeType = tradeType

	if s.Symbol, err = requireString(m, "symbol"); err != nil {
		return nil, err
	}

	rawSide, err := requireString(m, "side")
	if err != nil {
		return nil, err
	}
	side, ok := sides[rawSide]
	if !ok {
		return nil, &ValidationError{Kind: UnknownEnumValue, Field: "side", Value: rawSide}
	}
	s.Side = side

	rawOrder, err := requireString(m, "order_type")
	if err != nil {
		return nil, err
	}
	orderType, ok := orderTypes[rawOrder]
	if !ok {
		return nil, &ValidationError{Kind: UnknownEnumValue, Field: "order_type", Value: rawOrder}
	}
	s.OrderType = orderType

	if s.Message, err = requireString(m, "message"); err != nil {
		return nil, err
	}

	if s.AmountCapitalPercent, err = requireDecimal(m, "amount_capital_percent"); err != nil {
		return nil, err
	}
	if s.FixedSize, err = optionalDecimal(m, "fixed_size"); err != nil {
		return nil, err
	}
	if s.Leverage, err = optionalDecimal(m, "leverage"); err != nil {
		return nil, err
	}
	if s.LimitPrice, err = optionalDecimal(m, "limit_price"); err != nil {
		return nil, err
	}
	if s.StopPrice, err = optionalDecimal(m, "stop_price"); err != nil {
		return nil, err
	}
	if s.TakeProfitPrice, err = optionalDecimal(m, "take_profit_price"); err != nil {
		return nil, err
	}
	if s.Slippage, err = optionalDecimal(m, "slippage"); err != nil {
		return nil, err
	}

	if s.Network, err = optionalString(m, "network"); err != nil {
		return nil, err
	}
	if s.ContractAddress, err = optionalString(m, "contract_address"); err != nil {
		return nil, err
	}
	if s.DexID, err = optionalString(m, "dex_id"); err != nil {
		return nil, err
	}
	if s.Source, err = optionalString(m, "source"); err != nil {
		return nil, err
	}
	if s.StrategyName, err = optionalString(m, "strategy_name"); err != nil {
		return nil, err
	}
	if s.Timeframe, err = optionalString(m, "timeframe"); err != nil {
		return nil, err
	}
	if s.Exchange, err = optionalString(m, "exchange"); err != nil {
		return nil, err
	}

	if v, ok := m["reduce_only"]; ok && v != nil {
		b, ok := v.(bool)
		if !ok {
			return nil, &ValidationError{Kind: MalformedInterchange, Field: "reduce_only", Value: fmt.Sprint(v)}
		}
		s.ReduceOnly = b
	}

	return NewSignal(s)
}

// FromJSON decodes a raw interchange document. The top level must be a JSON
// object; numbers are kept as json.Number so decimal fields never pass
// through a float64.
func FromJSON(data []byte) (*TradingSignal, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, &ValidationError{Kind: MalformedInterchange, Value: err.Error()}
	}
	return FromMap(m)
}

func putDecimal(m map[string]any, key string, d *decimal.Decimal) {
	if d != nil {
		m[key] = d.String()
	}
}

func putString(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func requireString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", &ValidationError{Kind: MissingRequiredField, Field: key}
	}
	str, ok := v.(string)
	if !ok {
		return "", &ValidationError{Kind: MalformedInterchange, Field: key, Value: fmt.Sprint(v)}
	}
	return str, nil
}

func optionalString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	str, ok := v.(string)
	if !ok {
		return "", &ValidationError{Kind: MalformedInterchange, Field: key, Value: fmt.Sprint(v)}
	}
	return str, nil
}

func requireDecimal(m map[string]any, key string) (decimal.Decimal, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return decimal.Decimal{}, &ValidationError{Kind: MissingRequiredField, Field: key}
	}
	return parseDecimal(key, v)
}

func optionalDecimal(m map[string]any, key string) (*decimal.Decimal, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	d, err := parseDecimal(key, v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseDecimal converts one decoded JSON value into an exact decimal. Strings
// and json.Number stay lossless; float64 and the integer cases cover callers
// handing in maps they built themselves.
func parseDecimal(key string, v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Decimal{}, &ValidationError{Kind: InvalidDecimal, Field: key, Value: n}
		}
		return d, nil
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Decimal{}, &ValidationError{Kind: InvalidDecimal, Field: key, Value: n.String()}
		}
		return d, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case decimal.Decimal:
		return n, nil
	default:
		return decimal.Decimal{}, &ValidationError{Kind: InvalidDecimal, Field: key, Value: fmt.Sprint(v)}
	}
}
