package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iPalashAcharya/futures-trading-bot/domain"
)

// OrderInput is the raw operator input before any validation.
type OrderInput struct {
	Symbol    string
	Side      string
	Quantity  string
	Price     string
	StopPrice string
}

// ParseOrderInput runs the local checks: side enumeration and
// positive-decimal quantity and prices. It touches no network state, so
// malformed input never reaches the exchange.
func ParseOrderInput(orderType domain.OrderType, input OrderInput) (*domain.OrderRequest, error) {
	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	if symbol == "" {
		return nil, domain.NewValidationError(domain.SymbolNotTradable, "symbol is required")
	}

	var side domain.OrderSide
	switch strings.ToUpper(strings.TrimSpace(input.Side)) {
	case string(domain.OrderSideBuy):
		side = domain.OrderSideBuy
	case string(domain.OrderSideSell):
		side = domain.OrderSideSell
	default:
		return nil, domain.NewValidationError(domain.InvalidSide, "side must be BUY or SELL, got %q", input.Side)
	}

	quantity, err := parsePositiveDecimal(input.Quantity)
	if err != nil {
		return nil, domain.NewValidationError(domain.InvalidQuantity, "quantity must be a positive number, got %q", input.Quantity)
	}

	request := domain.OrderRequest{
		Symbol:   symbol,
		Side:     side,
		Type:     orderType,
		Quantity: quantity,
	}

	if orderType == domain.OrderTypeLimit || orderType == domain.OrderTypeStopLimit {
		price, err := parsePositiveDecimal(input.Price)
		if err != nil {
			return nil, domain.NewValidationError(domain.InvalidPrice, "limit price must be a positive number, got %q", input.Price)
		}
		request.LimitPrice = price
	}

	if orderType == domain.OrderTypeStopLimit {
		stopPrice, err := parsePositiveDecimal(input.StopPrice)
		if err != nil {
			return nil, domain.NewValidationError(domain.InvalidPrice, "stop price must be a positive number, got %q", input.StopPrice)
		}
		request.StopPrice = stopPrice
	}

	return &request, nil
}

// ValidateSymbol checks the exchange metadata allows trading.
func ValidateSymbol(symbolInfo *domain.SymbolInfo) error {
	if symbolInfo == nil {
		return domain.NewValidationError(domain.SymbolNotTradable, "symbol not found")
	}
	if symbolInfo.Status != domain.SymbolStatusTrading {
		return domain.NewValidationError(domain.SymbolNotTradable, "symbol %s is not available for trading (status %s)", symbolInfo.Symbol, symbolInfo.Status)
	}
	return nil
}

// ValidateStopDirection rejects stop prices on the wrong side of the
// reference price. The exchange accepts such orders and either triggers
// them immediately or never, a silent logic error rather than a
// transport one.
func ValidateStopDirection(side domain.OrderSide, stopPrice, referencePrice decimal.Decimal) error {
	switch side {
	case domain.OrderSideBuy:
		if stopPrice.LessThanOrEqual(referencePrice) {
			return domain.NewValidationError(domain.InvalidStopDirection,
				"stop price %s must be above current price %s for a BUY stop-limit order", stopPrice, referencePrice)
		}
	case domain.OrderSideSell:
		if stopPrice.GreaterThanOrEqual(referencePrice) {
			return domain.NewValidationError(domain.InvalidStopDirection,
				"stop price %s must be below current price %s for a SELL stop-limit order", stopPrice, referencePrice)
		}
	}
	return nil
}

func parsePositiveDecimal(text string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Decimal{}, err
	}
	if value.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("%s is not positive", value)
	}
	return value, nil
}
