package storage

import "os"

type credentialsLogger interface {
	Panicf(format string, args ...interface{})
}

const (
	testnetHTTPUrl = "https://testnet.binancefuture.com"
	mainnetHTTPUrl = "https://fapi.binance.com"
)

// Credentials are loaded once at startup and read-only afterwards. Both
// the batch and the interactive paths take them from here.
type Credentials struct {
	apiKey              string
	apiSecret           string
	httpUrl             string
	telegramBotAPIToken string
	telegramChatID      string
	logger              credentialsLogger
}

func NewCredentialsStorage(credentialsLogger credentialsLogger) *Credentials {
	credentials := Credentials{logger: credentialsLogger}

	credentials.apiKey = credentials.getKeyFromEnv("BINANCE_API_KEY")
	credentials.apiSecret = credentials.getKeyFromEnv("BINANCE_API_SECRET")

	credentials.httpUrl = testnetHTTPUrl
	if os.Getenv("BINANCE_MAINNET") == "1" {
		credentials.httpUrl = mainnetHTTPUrl
	}

	// Optional, order notifications stay off without them
	credentials.telegramBotAPIToken = os.Getenv("TELEGRAM_BOT_API_TOKEN")
	credentials.telegramChatID = os.Getenv("TELEGRAM_CHAT_ID")

	return &credentials
}

func (credentials *Credentials) GetAPIKey() string {
	return credentials.apiKey
}

func (credentials *Credentials) GetAPISecret() string {
	return credentials.apiSecret
}

func (credentials *Credentials) GetHTTPUrl() string {
	return credentials.httpUrl
}

func (credentials *Credentials) GetTelegramBotAPIToken() string {
	return credentials.telegramBotAPIToken
}

func (credentials *Credentials) GetTelegramChatID() string {
	return credentials.telegramChatID
}

func (credentials *Credentials) getKeyFromEnv(keyName string) string {
	key := os.Getenv(keyName)
	if key == "" {
		credentials.logger.Panicf("Please set %s in system environment variables", keyName)
	}
	return key
}
