package handlers_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iPalashAcharya/futures-trading-bot/domain"
	"github.com/iPalashAcharya/futures-trading-bot/handlers"
	"github.com/iPalashAcharya/futures-trading-bot/services"
)

type tradingSessionTest struct {
	placeCalls  int
	lastType    domain.OrderType
	lastInput   services.OrderInput
	confirmed   bool
	cancelCalls int
}

func (session *tradingSessionTest) PlaceOrder(orderType domain.OrderType, input services.OrderInput, confirmer services.Confirmer) (*domain.OrderResult, error) {
	session.placeCalls++
	session.lastType = orderType
	session.lastInput = input

	request := domain.OrderRequest{
		Symbol:   strings.ToUpper(input.Symbol),
		Side:     domain.OrderSideBuy,
		Type:     orderType,
		Quantity: decimal.RequireFromString("0.01"),
	}

	session.confirmed = confirmer.Confirm(&request, decimal.NewFromInt(49000))
	if !session.confirmed {
		return nil, nil
	}

	return &domain.OrderResult{
		OrderID:   12345,
		Symbol:    request.Symbol,
		Side:      request.Side,
		Type:      "MARKET",
		Status:    domain.OrderStatusNew,
		OrigQty:   request.Quantity,
		CreatedAt: time.Unix(1625097600, 0),
	}, nil
}

func (session *tradingSessionTest) AccountSnapshot() (*domain.AccountSnapshot, error) {
	return &domain.AccountSnapshot{
		TotalWalletBalance: decimal.NewFromInt(1000),
		AvailableBalance:   decimal.NewFromInt(900),
	}, nil
}

func (session *tradingSessionTest) OrderStatus(symbol string, orderID int64) (*domain.OrderResult, error) {
	return &domain.OrderResult{OrderID: orderID, Symbol: strings.ToUpper(symbol), Status: domain.OrderStatusFilled}, nil
}

func (session *tradingSessionTest) CancelOrder(symbol string, orderID int64) (*domain.OrderResult, error) {
	session.cancelCalls++
	return &domain.OrderResult{OrderID: orderID, Symbol: strings.ToUpper(symbol), Status: domain.OrderStatusCanceled}, nil
}

func (session *tradingSessionTest) OpenOrders(symbol string) ([]domain.OrderResult, error) {
	return nil, nil
}

func runTerminal(session *tradingSessionTest, script string) string {
	output := bytes.Buffer{}
	terminal := handlers.NewTerminal(session, strings.NewReader(script), &output)
	terminal.Run()
	return output.String()
}

func TestTerminalPlacesMarketOrder(t *testing.T) {
	session := tradingSessionTest{}

	output := runTerminal(&session, "1\nBTCUSDT\nBUY\n0.01\ny\n8\n")

	require.Equal(t, 1, session.placeCalls)
	assert.Equal(t, domain.OrderTypeMarket, session.lastType)
	assert.Equal(t, "BTCUSDT", session.lastInput.Symbol)
	assert.Equal(t, "0.01", session.lastInput.Quantity)
	assert.True(t, session.confirmed)
	assert.Contains(t, output, "Current price: 49000")
	assert.Contains(t, output, "ORDER DETAILS")
	assert.Contains(t, output, "Goodbye!")
}

func TestTerminalDeclinedOrderIsCancelled(t *testing.T) {
	session := tradingSessionTest{}

	output := runTerminal(&session, "1\nBTCUSDT\nBUY\n0.01\nn\n8\n")

	require.Equal(t, 1, session.placeCalls)
	assert.False(t, session.confirmed)
	assert.Contains(t, output, "Order cancelled.")
	assert.NotContains(t, output, "ORDER DETAILS")
}

func TestTerminalStopLimitPromptsForBothPrices(t *testing.T) {
	session := tradingSessionTest{}

	runTerminal(&session, "3\nBTCUSDT\nSELL\n0.01\n48000\n47500\ny\n8\n")

	require.Equal(t, 1, session.placeCalls)
	assert.Equal(t, domain.OrderTypeStopLimit, session.lastType)
	assert.Equal(t, "48000", session.lastInput.StopPrice)
	assert.Equal(t, "47500", session.lastInput.Price)
}

func TestTerminalAccountView(t *testing.T) {
	session := tradingSessionTest{}

	output := runTerminal(&session, "4\n8\n")

	assert.Contains(t, output, "ACCOUNT INFORMATION")
	assert.Contains(t, output, "Total Wallet Balance: 1000 USDT")
}

func TestTerminalCancelOrder(t *testing.T) {
	session := tradingSessionTest{}

	output := runTerminal(&session, "7\nBTCUSDT\n12345\n8\n")

	assert.Equal(t, 1, session.cancelCalls)
	assert.Contains(t, output, "Order 12345 cancelled.")
}

func TestTerminalRejectsBadOrderID(t *testing.T) {
	session := tradingSessionTest{}

	output := runTerminal(&session, "7\nBTCUSDT\nnot-a-number\n8\n")

	assert.Equal(t, 0, session.cancelCalls)
	assert.Contains(t, output, "Invalid order ID.")
}

func TestTerminalInvalidMenuOption(t *testing.T) {
	output := runTerminal(&tradingSessionTest{}, "9\n8\n")

	assert.Contains(t, output, "Invalid option. Please try again.")
}

func TestTerminalExitsOnEndOfInput(t *testing.T) {
	session := tradingSessionTest{}

	runTerminal(&session, "")

	assert.Equal(t, 0, session.placeCalls)
}
