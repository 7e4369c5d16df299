package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderSide string

const (
	OrderSideBuy  = OrderSide("BUY")
	OrderSideSell = OrderSide("SELL")
)

type OrderType string

const (
	OrderTypeMarket    = OrderType("MARKET")
	OrderTypeLimit     = OrderType("LIMIT")
	OrderTypeStopLimit = OrderType("STOP_LIMIT")
)

type OrderStatus string

const (
	OrderStatusNew             = OrderStatus("NEW")
	OrderStatusPartiallyFilled = OrderStatus("PARTIALLY_FILLED")
	OrderStatusFilled          = OrderStatus("FILLED")
	OrderStatusCanceled        = OrderStatus("CANCELED")
	OrderStatusRejected        = OrderStatus("REJECTED")
	OrderStatusExpired         = OrderStatus("EXPIRED")
)

// OrderRequest is a fully validated order, ready to be mapped onto wire
// parameters. It is built fresh per operator action and consumed at
// most once by submission.
type OrderRequest struct {
	Symbol     string
	Side       OrderSide
	Type       OrderType
	Quantity   decimal.Decimal
	LimitPrice decimal.Decimal // LIMIT and STOP_LIMIT only
	StopPrice  decimal.Decimal // STOP_LIMIT only
}

// ExchangeOrderParams are the wire-level order parameters. A STOP_LIMIT
// request maps onto the exchange order type "STOP".
type ExchangeOrderParams struct {
	Symbol      string
	Side        OrderSide
	Type        string
	Quantity    decimal.Decimal
	Price       *decimal.Decimal
	StopPrice   *decimal.Decimal
	TimeInForce string
}

// OrderResult is an immutable snapshot of an order as the exchange last
// reported it; the live order may keep changing status afterwards.
type OrderResult struct {
	OrderID   int64
	Symbol    string
	Side      OrderSide
	Type      string
	Status    OrderStatus
	OrigQty   decimal.Decimal
	Price     decimal.Decimal
	StopPrice decimal.Decimal
	CreatedAt time.Time
}

type SymbolStatus string

const SymbolStatusTrading = SymbolStatus("TRADING")

// SymbolInfo is exchange metadata for one symbol. It is fetched per
// request and never cached, tradability can change between calls.
type SymbolInfo struct {
	Symbol       string
	Status       SymbolStatus
	PriceTick    decimal.Decimal
	QuantityStep decimal.Decimal
}
