package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/iPalashAcharya/futures-trading-bot/domain"
)

// RenderOrderDetails writes the formatted order summary block.
func RenderOrderDetails(writer io.Writer, result *domain.OrderResult) {
	separator := strings.Repeat("=", 50)

	fmt.Fprintf(writer, "\n%s\nORDER DETAILS\n%s\n", separator, separator)
	fmt.Fprintf(writer, "Order ID: %d\n", result.OrderID)
	fmt.Fprintf(writer, "Symbol: %s\n", result.Symbol)
	fmt.Fprintf(writer, "Side: %s\n", result.Side)
	fmt.Fprintf(writer, "Type: %s\n", result.Type)
	fmt.Fprintf(writer, "Quantity: %s\n", result.OrigQty)
	fmt.Fprintf(writer, "Price: %s\n", result.Price)
	fmt.Fprintf(writer, "Status: %s\n", result.Status)
	fmt.Fprintf(writer, "Time: %s\n", result.CreatedAt.Format(time.RFC1123))
	if !result.StopPrice.IsZero() {
		fmt.Fprintf(writer, "Stop Price: %s\n", result.StopPrice)
	}
	fmt.Fprintln(writer, separator)
}

// RenderAccountSnapshot writes the balances and the non-flat positions.
func RenderAccountSnapshot(writer io.Writer, snapshot *domain.AccountSnapshot) {
	fmt.Fprintf(writer, "\nACCOUNT INFORMATION\n")
	fmt.Fprintf(writer, "Total Wallet Balance: %s USDT\n", snapshot.TotalWalletBalance)
	fmt.Fprintf(writer, "Available Balance: %s USDT\n", snapshot.AvailableBalance)
	fmt.Fprintf(writer, "Total Unrealized PnL: %s USDT\n", snapshot.TotalUnrealizedPnl)

	openPositions := make([]domain.Position, 0)
	for _, position := range snapshot.Positions {
		if !position.IsFlat() {
			openPositions = append(openPositions, position)
		}
	}

	if len(openPositions) == 0 {
		return
	}

	fmt.Fprintf(writer, "\nOpen Positions: %d\n", len(openPositions))

	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"Symbol", "Position", "Unrealized PnL"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	for _, position := range openPositions {
		table.Append([]string{position.Symbol, position.PositionAmt.String(), position.UnrealizedPnl.String()})
	}
	table.Render()
}

// RenderOpenOrders writes the open-orders table.
func RenderOpenOrders(writer io.Writer, orders []domain.OrderResult) {
	if len(orders) == 0 {
		fmt.Fprintln(writer, "\nNo open orders found.")
		return
	}

	fmt.Fprintf(writer, "\nOPEN ORDERS (%d)\n", len(orders))

	table := tablewriter.NewWriter(writer)
	table.SetHeader([]string{"ID", "Symbol", "Side", "Type", "Quantity", "Price", "Status"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	for _, order := range orders {
		table.Append([]string{
			strconv.FormatInt(order.OrderID, 10),
			order.Symbol,
			string(order.Side),
			order.Type,
			order.OrigQty.String(),
			order.Price.String(),
			string(order.Status),
		})
	}
	table.Render()
}
