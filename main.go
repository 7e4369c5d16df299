package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iPalashAcharya/futures-trading-bot/domain"
	"github.com/iPalashAcharya/futures-trading-bot/handlers"
	"github.com/iPalashAcharya/futures-trading-bot/services"
	"github.com/iPalashAcharya/futures-trading-bot/storage"
)

var rootCmd = &cobra.Command{
	Use:   "futures-trading-bot",
	Short: "Binance USDT-M futures trading terminal",
	Long: "Places, inspects and cancels futures orders on the Binance testnet. " +
		"With --symbol, --side, --type and --quantity the order is placed once " +
		"without confirmation; otherwise an interactive menu is shown.",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()

		godotenv.Load()

		credentials := storage.NewCredentialsStorage(logger)
		httpClient := services.NewHTTPClient(credentials)

		// Connectivity check up front: an authentication problem should
		// surface before any order input is collected.
		snapshot, err := httpClient.GetAccountSnapshot()
		if err != nil {
			logger.Panicf("failed to connect to exchange: %v", err)
		}
		logger.Printf("successfully connected, wallet balance: %s USDT", snapshot.TotalWalletBalance)

		telegramBot := services.NewTelegramBot(credentials, logger)
		var notifier services.OrderNotifier
		if telegramBot != nil {
			notifier = telegramBot
		}

		session := services.NewSession(httpClient, notifier, logger)

		symbol, _ := cmd.Flags().GetString("symbol")
		side, _ := cmd.Flags().GetString("side")
		orderTypeText, _ := cmd.Flags().GetString("type")
		quantity, _ := cmd.Flags().GetString("quantity")
		price, _ := cmd.Flags().GetString("price")
		stopPrice, _ := cmd.Flags().GetString("stop-price")

		if symbol != "" && side != "" && orderTypeText != "" && quantity != "" {
			input := services.OrderInput{
				Symbol:    symbol,
				Side:      side,
				Quantity:  quantity,
				Price:     price,
				StopPrice: stopPrice,
			}
			if err := runBatch(session, orderTypeText, input); err != nil {
				logger.Errorf("Error: %v", err)
				os.Exit(1)
			}
			return
		}

		terminal := handlers.NewTerminal(session, os.Stdin, os.Stdout)
		terminal.Run()
	},
}

// runBatch places one order without the confirmation gate and exits.
// It shares credentials and session with the interactive path.
func runBatch(session *services.Session, orderTypeText string, input services.OrderInput) error {
	orderType, err := parseOrderType(orderTypeText)
	if err != nil {
		return err
	}

	if (orderType == domain.OrderTypeLimit || orderType == domain.OrderTypeStopLimit) && input.Price == "" {
		return fmt.Errorf("price is required for %s orders", orderType)
	}
	if orderType == domain.OrderTypeStopLimit && input.StopPrice == "" {
		return fmt.Errorf("both price and stop-price are required for stop-limit orders")
	}

	result, err := session.PlaceOrder(orderType, input, services.AutoConfirm{})
	if err != nil {
		return err
	}

	services.RenderOrderDetails(os.Stdout, result)
	return nil
}

func parseOrderType(text string) (domain.OrderType, error) {
	switch domain.OrderType(text) {
	case domain.OrderTypeMarket, domain.OrderTypeLimit, domain.OrderTypeStopLimit:
		return domain.OrderType(text), nil
	}
	return "", fmt.Errorf("type must be MARKET, LIMIT or STOP_LIMIT, got %q", text)
}

// newLogger mirrors everything to stdout and to a date-stamped
// append-only file.
func newLogger() *log.Logger {
	logger := log.New()
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	logFileName := fmt.Sprintf("trading_bot_%s.log", time.Now().Format("20060102"))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.Warnf("could not open log file %s: %v", logFileName, err)
	} else {
		logger.SetOutput(io.MultiWriter(os.Stdout, logFile))
	}

	return logger
}

func main() {
	rootCmd.PersistentFlags().String("symbol", "", "Trading symbol (e.g., BTCUSDT).")
	rootCmd.PersistentFlags().String("side", "", "Order side: BUY or SELL.")
	rootCmd.PersistentFlags().String("type", "", "Order type: MARKET, LIMIT or STOP_LIMIT.")
	rootCmd.PersistentFlags().String("quantity", "", "Order quantity.")
	rootCmd.PersistentFlags().String("price", "", "Limit price.")
	rootCmd.PersistentFlags().String("stop-price", "", "Stop price for stop-limit orders.")

	rootCmd.Execute()
}
