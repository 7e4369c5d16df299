package handlers

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iPalashAcharya/futures-trading-bot/domain"
	"github.com/iPalashAcharya/futures-trading-bot/services"
)

type tradingSession interface {
	PlaceOrder(orderType domain.OrderType, input services.OrderInput, confirmer services.Confirmer) (*domain.OrderResult, error)
	AccountSnapshot() (*domain.AccountSnapshot, error)
	OrderStatus(symbol string, orderID int64) (*domain.OrderResult, error)
	CancelOrder(symbol string, orderID int64) (*domain.OrderResult, error)
	OpenOrders(symbol string) ([]domain.OrderResult, error)
}

// Terminal is the interactive menu surface. One workflow runs to
// completion before the next prompt is shown. Terminal is also the
// session's Confirmer: the confirmation question reads from the same
// input stream as the menu.
type Terminal struct {
	session tradingSession
	scanner *bufio.Scanner
	writer  io.Writer
}

func NewTerminal(session tradingSession, reader io.Reader, writer io.Writer) *Terminal {
	return &Terminal{
		session: session,
		scanner: bufio.NewScanner(reader),
		writer:  writer,
	}
}

// Run loops over the menu until the operator exits or input ends.
func (terminal *Terminal) Run() {
	for {
		fmt.Fprint(terminal.writer, "\nBINANCE FUTURES TRADING BOT\n"+
			"===============================\n"+
			"1. Place Market Order\n"+
			"2. Place Limit Order\n"+
			"3. Place Stop-Limit Order\n"+
			"4. View Account Info\n"+
			"5. View Open Orders\n"+
			"6. Check Order Status\n"+
			"7. Cancel Order\n"+
			"8. Exit\n"+
			"===============================\n")

		choice, ok := terminal.prompt("Select an option (1-8): ")
		if !ok {
			return
		}

		switch choice {
		case "1":
			terminal.placeOrderMenu(domain.OrderTypeMarket)
		case "2":
			terminal.placeOrderMenu(domain.OrderTypeLimit)
		case "3":
			terminal.placeOrderMenu(domain.OrderTypeStopLimit)
		case "4":
			terminal.accountMenu()
		case "5":
			terminal.openOrdersMenu()
		case "6":
			terminal.orderStatusMenu()
		case "7":
			terminal.cancelOrderMenu()
		case "8":
			fmt.Fprintln(terminal.writer, "Goodbye!")
			return
		default:
			fmt.Fprintln(terminal.writer, "Invalid option. Please try again.")
		}
	}
}

// Confirm shows the reference price and asks for a yes/no decision.
func (terminal *Terminal) Confirm(request *domain.OrderRequest, referencePrice decimal.Decimal) bool {
	fmt.Fprintf(terminal.writer, "Current price: %s\n", referencePrice)

	switch request.Type {
	case domain.OrderTypeLimit:
		fmt.Fprintf(terminal.writer, "Confirm %s %s %s at %s? (y/N): ",
			request.Side, request.Quantity, request.Symbol, request.LimitPrice)
	case domain.OrderTypeStopLimit:
		fmt.Fprintf(terminal.writer, "Confirm %s %s %s (Stop: %s, Limit: %s)? (y/N): ",
			request.Side, request.Quantity, request.Symbol, request.StopPrice, request.LimitPrice)
	default:
		fmt.Fprintf(terminal.writer, "Confirm %s %s %s at market price? (y/N): ",
			request.Side, request.Quantity, request.Symbol)
	}

	answer, ok := terminal.readLine()
	if !ok {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

func (terminal *Terminal) placeOrderMenu(orderType domain.OrderType) {
	switch orderType {
	case domain.OrderTypeLimit:
		fmt.Fprintln(terminal.writer, "\nLIMIT ORDER")
	case domain.OrderTypeStopLimit:
		fmt.Fprintln(terminal.writer, "\nSTOP-LIMIT ORDER")
	default:
		fmt.Fprintln(terminal.writer, "\nMARKET ORDER")
	}

	input := services.OrderInput{}
	var ok bool

	if input.Symbol, ok = terminal.prompt("Enter symbol (e.g., BTCUSDT): "); !ok {
		return
	}
	if input.Side, ok = terminal.prompt("Enter side (BUY/SELL): "); !ok {
		return
	}
	if input.Quantity, ok = terminal.prompt("Enter quantity: "); !ok {
		return
	}
	if orderType == domain.OrderTypeStopLimit {
		if input.StopPrice, ok = terminal.prompt("Enter stop price: "); !ok {
			return
		}
	}
	if orderType == domain.OrderTypeLimit || orderType == domain.OrderTypeStopLimit {
		if input.Price, ok = terminal.prompt("Enter limit price: "); !ok {
			return
		}
	}

	result, err := terminal.session.PlaceOrder(orderType, input, terminal)
	if err != nil {
		fmt.Fprintf(terminal.writer, "Error: %v\n", err)
		return
	}
	if result == nil {
		fmt.Fprintln(terminal.writer, "Order cancelled.")
		return
	}

	services.RenderOrderDetails(terminal.writer, result)
}

func (terminal *Terminal) accountMenu() {
	snapshot, err := terminal.session.AccountSnapshot()
	if err != nil {
		fmt.Fprintf(terminal.writer, "Error getting account info: %v\n", err)
		return
	}

	services.RenderAccountSnapshot(terminal.writer, snapshot)
}

func (terminal *Terminal) openOrdersMenu() {
	orders, err := terminal.session.OpenOrders("")
	if err != nil {
		fmt.Fprintf(terminal.writer, "Error getting orders: %v\n", err)
		return
	}

	services.RenderOpenOrders(terminal.writer, orders)
}

func (terminal *Terminal) orderStatusMenu() {
	symbol, orderID, ok := terminal.promptOrderKey()
	if !ok {
		return
	}

	result, err := terminal.session.OrderStatus(symbol, orderID)
	if err != nil {
		fmt.Fprintf(terminal.writer, "Error getting order status: %v\n", err)
		return
	}

	services.RenderOrderDetails(terminal.writer, result)
}

func (terminal *Terminal) cancelOrderMenu() {
	symbol, orderID, ok := terminal.promptOrderKey()
	if !ok {
		return
	}

	result, err := terminal.session.CancelOrder(symbol, orderID)
	if err != nil {
		fmt.Fprintf(terminal.writer, "Error cancelling order: %v\n", err)
		return
	}

	fmt.Fprintf(terminal.writer, "Order %d cancelled.\n", result.OrderID)
	services.RenderOrderDetails(terminal.writer, result)
}

func (terminal *Terminal) promptOrderKey() (string, int64, bool) {
	symbol, ok := terminal.prompt("Enter symbol (e.g., BTCUSDT): ")
	if !ok {
		return "", 0, false
	}

	orderIDText, ok := terminal.prompt("Enter order ID: ")
	if !ok {
		return "", 0, false
	}

	orderID, err := strconv.ParseInt(orderIDText, 10, 64)
	if err != nil {
		fmt.Fprintln(terminal.writer, "Invalid order ID.")
		return "", 0, false
	}

	return symbol, orderID, true
}

func (terminal *Terminal) prompt(label string) (string, bool) {
	fmt.Fprint(terminal.writer, label)
	return terminal.readLine()
}

func (terminal *Terminal) readLine() (string, bool) {
	if !terminal.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(terminal.scanner.Text()), true
}
