package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iPalashAcharya/futures-trading-bot/domain"
	"github.com/iPalashAcharya/futures-trading-bot/services"
)

func TestBuildMarketOrderParams(t *testing.T) {
	request := domain.OrderRequest{
		Symbol:   "BTCUSDT",
		Side:     domain.OrderSideBuy,
		Type:     domain.OrderTypeMarket,
		Quantity: decimal.RequireFromString("0.01"),
	}

	params := services.BuildOrderParams(&request)

	assert.Equal(t, "BTCUSDT", params.Symbol)
	assert.Equal(t, domain.OrderSideBuy, params.Side)
	assert.Equal(t, "MARKET", params.Type)
	assert.True(t, params.Quantity.Equal(decimal.RequireFromString("0.01")))
	assert.Nil(t, params.Price)
	assert.Nil(t, params.StopPrice)
	assert.Equal(t, "", params.TimeInForce)
}

func TestBuildLimitOrderParams(t *testing.T) {
	request := domain.OrderRequest{
		Symbol:     "ETHUSDT",
		Side:       domain.OrderSideSell,
		Type:       domain.OrderTypeLimit,
		Quantity:   decimal.NewFromInt(2),
		LimitPrice: decimal.RequireFromString("2900.50"),
	}

	params := services.BuildOrderParams(&request)

	assert.Equal(t, "LIMIT", params.Type)
	require.NotNil(t, params.Price)
	assert.True(t, params.Price.Equal(decimal.RequireFromString("2900.50")))
	assert.Nil(t, params.StopPrice)
	assert.Equal(t, "GTC", params.TimeInForce)
}

func TestBuildStopLimitOrderParams(t *testing.T) {
	request := domain.OrderRequest{
		Symbol:     "BTCUSDT",
		Side:       domain.OrderSideSell,
		Type:       domain.OrderTypeStopLimit,
		Quantity:   decimal.RequireFromString("0.5"),
		LimitPrice: decimal.NewFromInt(47500),
		StopPrice:  decimal.NewFromInt(48000),
	}

	params := services.BuildOrderParams(&request)

	// the exchange calls stop-limit orders STOP
	assert.Equal(t, "STOP", params.Type)
	require.NotNil(t, params.Price)
	require.NotNil(t, params.StopPrice)
	assert.True(t, params.Price.Equal(decimal.NewFromInt(47500)))
	assert.True(t, params.StopPrice.Equal(decimal.NewFromInt(48000)))
	assert.Equal(t, "GTC", params.TimeInForce)
}

func TestBuildOrderParamsIsDeterministic(t *testing.T) {
	request := domain.OrderRequest{
		Symbol:     "BTCUSDT",
		Side:       domain.OrderSideBuy,
		Type:       domain.OrderTypeLimit,
		Quantity:   decimal.NewFromInt(1),
		LimitPrice: decimal.NewFromInt(50000),
	}

	first := services.BuildOrderParams(&request)
	second := services.BuildOrderParams(&request)

	assert.Equal(t, first.Symbol, second.Symbol)
	assert.Equal(t, first.Type, second.Type)
	assert.Equal(t, first.TimeInForce, second.TimeInForce)
	assert.True(t, first.Quantity.Equal(second.Quantity))
	assert.True(t, first.Price.Equal(*second.Price))
}
