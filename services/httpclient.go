package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iPalashAcharya/futures-trading-bot/domain"
)

type httpCredentials interface {
	GetAPIKey() string
	GetAPISecret() string
	GetHTTPUrl() string
}

// HTTPClient talks to the Binance USDT-M futures REST API. It owns the
// timeout policy; callers never retry a submission through it.
type HTTPClient struct {
	httpCredentials httpCredentials
	client          *http.Client
	now             func() time.Time
}

func NewHTTPClient(httpCredentials httpCredentials) *HTTPClient {
	return &HTTPClient{
		httpCredentials: httpCredentials,
		client:          &http.Client{Timeout: 10 * time.Second},
		now:             time.Now,
	}
}

// GenerateSignature signs a query string with HMAC SHA-256 of the API
// secret, hex encoded, as the futures API requires.
func (httpClient *HTTPClient) GenerateSignature(queryString string) string {
	mac := hmac.New(sha256.New, []byte(httpClient.httpCredentials.GetAPISecret()))
	mac.Write([]byte(queryString))
	return hex.EncodeToString(mac.Sum(nil))
}

type exchangeAnswer struct {
	Code int64  `json:"code"`
	Msg  string `json:"msg"`
}

func (httpClient *HTTPClient) sendRequest(method string, endPoint string, params url.Values, signed bool) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	if signed {
		params.Set("recvWindow", "5000")
		params.Set("timestamp", strconv.FormatInt(httpClient.now().UnixMilli(), 10))
	}

	query := params.Encode()
	if signed {
		query = query + "&signature=" + httpClient.GenerateSignature(query)
	}

	newRequest, err := http.NewRequest(method, httpClient.httpCredentials.GetHTTPUrl()+endPoint+"?"+query, nil)
	if err != nil {
		return nil, err
	}
	newRequest.Header.Add("X-MBX-APIKEY", httpClient.httpCredentials.GetAPIKey())

	resp, err := httpClient.client.Do(newRequest)
	if err != nil {
		kind := domain.Unreachable
		if isTimeout(err) {
			kind = domain.Timeout
		}
		return nil, &domain.ConnectivityError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	bytesAnswer, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ConnectivityError{Kind: domain.Unreachable, Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &domain.ConnectivityError{Kind: domain.AuthFailure, Err: fmt.Errorf("http %s: %s", resp.Status, bytesAnswer)}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var answer exchangeAnswer
		if err := json.Unmarshal(bytesAnswer, &answer); err == nil && answer.Code != 0 {
			if isAuthCode(answer.Code) {
				return nil, &domain.ConnectivityError{Kind: domain.AuthFailure, Err: errors.New(answer.Msg)}
			}
			return nil, &domain.RejectionError{Code: answer.Code, Reason: answer.Msg}
		}
		return nil, fmt.Errorf("unexpected exchange response %s: %s", resp.Status, bytesAnswer)
	}

	return bytesAnswer, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// -1022 bad signature, -2014 bad API key format, -2015 rejected key
func isAuthCode(code int64) bool {
	switch code {
	case -1022, -2014, -2015:
		return true
	}
	return false
}

type accountPositionAnswer struct {
	Symbol           string `json:"symbol"`
	PositionAmt      string `json:"positionAmt"`
	UnrealizedProfit string `json:"unrealizedProfit"`
}

type accountAnswer struct {
	TotalWalletBalance    string                  `json:"totalWalletBalance"`
	AvailableBalance      string                  `json:"availableBalance"`
	TotalUnrealizedProfit string                  `json:"totalUnrealizedProfit"`
	Positions             []accountPositionAnswer `json:"positions"`
}

func (httpClient *HTTPClient) GetAccountSnapshot() (*domain.AccountSnapshot, error) {
	bytesAnswer, err := httpClient.sendRequest(http.MethodGet, "/fapi/v2/account", nil, true)
	if err != nil {
		return nil, err
	}

	var answer accountAnswer
	if err := json.Unmarshal(bytesAnswer, &answer); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}

	snapshot := domain.AccountSnapshot{
		TotalWalletBalance: parseDecimal(answer.TotalWalletBalance),
		AvailableBalance:   parseDecimal(answer.AvailableBalance),
		TotalUnrealizedPnl: parseDecimal(answer.TotalUnrealizedProfit),
	}

	for _, position := range answer.Positions {
		snapshot.Positions = append(snapshot.Positions, domain.Position{
			Symbol:        position.Symbol,
			PositionAmt:   parseDecimal(position.PositionAmt),
			UnrealizedPnl: parseDecimal(position.UnrealizedProfit),
		})
	}

	return &snapshot, nil
}

type symbolFilterAnswer struct {
	FilterType string `json:"filterType"`
	TickSize   string `json:"tickSize"`
	StepSize   string `json:"stepSize"`
}

type symbolAnswer struct {
	Symbol  string               `json:"symbol"`
	Status  string               `json:"status"`
	Filters []symbolFilterAnswer `json:"filters"`
}

type exchangeInfoAnswer struct {
	Symbols []symbolAnswer `json:"symbols"`
}

func (httpClient *HTTPClient) GetSymbolInfo(symbol string) (*domain.SymbolInfo, error) {
	bytesAnswer, err := httpClient.sendRequest(http.MethodGet, "/fapi/v1/exchangeInfo", nil, false)
	if err != nil {
		return nil, err
	}

	var answer exchangeInfoAnswer
	if err := json.Unmarshal(bytesAnswer, &answer); err != nil {
		return nil, fmt.Errorf("decode exchange info: %w", err)
	}

	symbol = strings.ToUpper(symbol)
	for _, listed := range answer.Symbols {
		if listed.Symbol != symbol {
			continue
		}

		symbolInfo := domain.SymbolInfo{
			Symbol: listed.Symbol,
			Status: domain.SymbolStatus(listed.Status),
		}
		for _, filter := range listed.Filters {
			switch filter.FilterType {
			case "PRICE_FILTER":
				symbolInfo.PriceTick = parseDecimal(filter.TickSize)
			case "LOT_SIZE":
				symbolInfo.QuantityStep = parseDecimal(filter.StepSize)
			}
		}
		return &symbolInfo, nil
	}

	return nil, domain.NewValidationError(domain.SymbolNotTradable, "symbol %s not found", symbol)
}

type tickerAnswer struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

func (httpClient *HTTPClient) GetLastPrice(symbol string) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("symbol", strings.ToUpper(symbol))

	bytesAnswer, err := httpClient.sendRequest(http.MethodGet, "/fapi/v1/ticker/price", params, false)
	if err != nil {
		return decimal.Decimal{}, err
	}

	var answer tickerAnswer
	if err := json.Unmarshal(bytesAnswer, &answer); err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode ticker: %w", err)
	}

	price, err := decimal.NewFromString(answer.Price)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse ticker price %q: %w", answer.Price, err)
	}

	return price, nil
}

type orderAnswer struct {
	OrderID    int64  `json:"orderId"`
	Symbol     string `json:"symbol"`
	Side       string `json:"side"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	OrigQty    string `json:"origQty"`
	Price      string `json:"price"`
	StopPrice  string `json:"stopPrice"`
	Time       int64  `json:"time"`
	UpdateTime int64  `json:"updateTime"`
}

func (answer *orderAnswer) toOrderResult() *domain.OrderResult {
	createdAt := answer.Time
	if createdAt == 0 {
		createdAt = answer.UpdateTime
	}

	return &domain.OrderResult{
		OrderID:   answer.OrderID,
		Symbol:    answer.Symbol,
		Side:      domain.OrderSide(answer.Side),
		Type:      answer.Type,
		Status:    domain.OrderStatus(answer.Status),
		OrigQty:   parseDecimal(answer.OrigQty),
		Price:     parseDecimal(answer.Price),
		StopPrice: parseDecimal(answer.StopPrice),
		CreatedAt: time.UnixMilli(createdAt),
	}
}

func (httpClient *HTTPClient) SubmitOrder(orderParams domain.ExchangeOrderParams) (*domain.OrderResult, error) {
	params := url.Values{}
	params.Set("symbol", orderParams.Symbol)
	params.Set("side", string(orderParams.Side))
	params.Set("type", orderParams.Type)
	params.Set("quantity", orderParams.Quantity.String())
	if orderParams.Price != nil {
		params.Set("price", orderParams.Price.String())
	}
	if orderParams.StopPrice != nil {
		params.Set("stopPrice", orderParams.StopPrice.String())
	}
	if orderParams.TimeInForce != "" {
		params.Set("timeInForce", orderParams.TimeInForce)
	}

	bytesAnswer, err := httpClient.sendRequest(http.MethodPost, "/fapi/v1/order", params, true)
	if err != nil {
		return nil, err
	}

	var answer orderAnswer
	if err := json.Unmarshal(bytesAnswer, &answer); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}

	return answer.toOrderResult(), nil
}

func (httpClient *HTTPClient) GetOrder(symbol string, orderID int64) (*domain.OrderResult, error) {
	params := url.Values{}
	params.Set("symbol", strings.ToUpper(symbol))
	params.Set("orderId", strconv.FormatInt(orderID, 10))

	bytesAnswer, err := httpClient.sendRequest(http.MethodGet, "/fapi/v1/order", params, true)
	if err != nil {
		return nil, err
	}

	var answer orderAnswer
	if err := json.Unmarshal(bytesAnswer, &answer); err != nil {
		return nil, fmt.Errorf("decode order: %w", err)
	}

	return answer.toOrderResult(), nil
}

func (httpClient *HTTPClient) CancelOrder(symbol string, orderID int64) (*domain.OrderResult, error) {
	params := url.Values{}
	params.Set("symbol", strings.ToUpper(symbol))
	params.Set("orderId", strconv.FormatInt(orderID, 10))

	bytesAnswer, err := httpClient.sendRequest(http.MethodDelete, "/fapi/v1/order", params, true)
	if err != nil {
		return nil, err
	}

	var answer orderAnswer
	if err := json.Unmarshal(bytesAnswer, &answer); err != nil {
		return nil, fmt.Errorf("decode cancel: %w", err)
	}

	return answer.toOrderResult(), nil
}

// ListOpenOrders returns open orders for one symbol, or for the whole
// account when symbol is empty.
func (httpClient *HTTPClient) ListOpenOrders(symbol string) ([]domain.OrderResult, error) {
	params := url.Values{}
	if symbol != "" {
		params.Set("symbol", strings.ToUpper(symbol))
	}

	bytesAnswer, err := httpClient.sendRequest(http.MethodGet, "/fapi/v1/openOrders", params, true)
	if err != nil {
		return nil, err
	}

	var answers []orderAnswer
	if err := json.Unmarshal(bytesAnswer, &answers); err != nil {
		return nil, fmt.Errorf("decode open orders: %w", err)
	}

	orders := make([]domain.OrderResult, 0, len(answers))
	for index := range answers {
		orders = append(orders, *answers[index].toOrderResult())
	}

	return orders, nil
}

// parseDecimal tolerates the empty strings the exchange sends for
// unset numeric fields.
func parseDecimal(text string) decimal.Decimal {
	value, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}
	}
	return value
}
