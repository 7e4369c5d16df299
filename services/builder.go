package services

import "github.com/iPalashAcharya/futures-trading-bot/domain"

// BuildOrderParams maps a validated request onto wire-level parameters.
// Pure mapping with no I/O: validation happens upstream, so the wire
// format can change without touching the rules.
func BuildOrderParams(request *domain.OrderRequest) domain.ExchangeOrderParams {
	params := domain.ExchangeOrderParams{
		Symbol:   request.Symbol,
		Side:     request.Side,
		Quantity: request.Quantity,
	}

	switch request.Type {
	case domain.OrderTypeMarket:
		params.Type = "MARKET"
	case domain.OrderTypeLimit:
		params.Type = "LIMIT"
		price := request.LimitPrice
		params.Price = &price
		params.TimeInForce = "GTC"
	case domain.OrderTypeStopLimit:
		params.Type = "STOP"
		price := request.LimitPrice
		stopPrice := request.StopPrice
		params.Price = &price
		params.StopPrice = &stopPrice
		params.TimeInForce = "GTC"
	}

	return params
}
