package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iPalashAcharya/futures-trading-bot/domain"
)

type exchangeService interface {
	GetSymbolInfo(symbol string) (*domain.SymbolInfo, error)
	GetLastPrice(symbol string) (decimal.Decimal, error)
	SubmitOrder(params domain.ExchangeOrderParams) (*domain.OrderResult, error)
	GetAccountSnapshot() (*domain.AccountSnapshot, error)
	GetOrder(symbol string, orderID int64) (*domain.OrderResult, error)
	CancelOrder(symbol string, orderID int64) (*domain.OrderResult, error)
	ListOpenOrders(symbol string) ([]domain.OrderResult, error)
}

// Confirmer is the human gate in front of a live submission. The
// interactive terminal prompts; batch mode wires AutoConfirm instead.
type Confirmer interface {
	Confirm(request *domain.OrderRequest, referencePrice decimal.Decimal) bool
}

// AutoConfirm approves every order without prompting.
type AutoConfirm struct{}

func (AutoConfirm) Confirm(*domain.OrderRequest, decimal.Decimal) bool {
	return true
}

// OrderNotifier receives acknowledged orders.
type OrderNotifier interface {
	NotifyOrder(result *domain.OrderResult)
}

type sessionLogger interface {
	Printf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Session runs one order workflow at a time, from raw input to an
// exchange acknowledgement. It owns no state beyond the current
// in-flight request.
type Session struct {
	exchange exchangeService
	notifier OrderNotifier
	logger   sessionLogger
	state    domain.SessionState
}

func NewSession(exchangeService exchangeService, notifier OrderNotifier, sessionLogger sessionLogger) *Session {
	return &Session{
		exchange: exchangeService,
		notifier: notifier,
		logger:   sessionLogger,
		state:    domain.StateDrafting,
	}
}

func (session *Session) State() domain.SessionState {
	return session.state
}

func (session *Session) transition(state domain.SessionState) {
	session.state = state
	session.logger.Printf("session state: %s", state)
}

// PlaceOrder walks one request through validation, price referencing,
// confirmation and submission. The submit call happens at most once:
// order submission is not idempotent, so retrying is left to the
// operator. A declined confirmation returns (nil, nil) with the session
// in the aborted state.
func (session *Session) PlaceOrder(orderType domain.OrderType, input OrderInput, confirmer Confirmer) (*domain.OrderResult, error) {
	session.transition(domain.StateDrafting)

	request, err := ParseOrderInput(orderType, input)
	if err != nil {
		return nil, session.abort(err)
	}

	symbolInfo, err := session.exchange.GetSymbolInfo(request.Symbol)
	if err != nil {
		return nil, session.abort(err)
	}
	if err := ValidateSymbol(symbolInfo); err != nil {
		return nil, session.abort(err)
	}
	session.transition(domain.StateValidated)

	referencePrice, err := session.exchange.GetLastPrice(request.Symbol)
	if err != nil {
		return nil, session.abort(err)
	}
	session.logger.Printf("current price for %s: %s", request.Symbol, referencePrice)

	if request.Type == domain.OrderTypeStopLimit {
		if err := ValidateStopDirection(request.Side, request.StopPrice, referencePrice); err != nil {
			return nil, session.abort(err)
		}
	}
	session.transition(domain.StatePriceReferenced)

	session.transition(domain.StateConfirmationPending)
	if !confirmer.Confirm(request, referencePrice) {
		session.transition(domain.StateAborted)
		session.logger.Printf("order declined by operator")
		return nil, nil
	}

	params := BuildOrderParams(request)
	session.transition(domain.StateSubmitted)
	session.logger.Printf("placing %s %s order: %s %s", request.Type, request.Side, request.Quantity, request.Symbol)

	result, err := session.exchange.SubmitOrder(params)
	if err != nil {
		var rejection *domain.RejectionError
		if errors.As(err, &rejection) {
			session.transition(domain.StateRejected)
			session.logger.Errorf("%v", rejection)
			return nil, rejection
		}
		return nil, session.abort(err)
	}

	session.transition(domain.StateAcknowledged)
	session.logger.Printf("order placed successfully: id=%d status=%s", result.OrderID, result.Status)

	if session.notifier != nil {
		session.notifier.NotifyOrder(result)
	}

	return result, nil
}

// AccountSnapshot, OrderStatus, CancelOrder and OpenOrders are
// idempotent from the caller's perspective and run outside the order
// state machine; they share the same error normalization.

func (session *Session) AccountSnapshot() (*domain.AccountSnapshot, error) {
	snapshot, err := session.exchange.GetAccountSnapshot()
	if err != nil {
		return nil, session.fail("get account info", err)
	}
	session.logger.Printf("account information retrieved successfully")
	return snapshot, nil
}

func (session *Session) OrderStatus(symbol string, orderID int64) (*domain.OrderResult, error) {
	result, err := session.exchange.GetOrder(symbol, orderID)
	if err != nil {
		return nil, session.fail(fmt.Sprintf("get status of order %d", orderID), err)
	}
	session.logger.Printf("order %d status: %s", result.OrderID, result.Status)
	return result, nil
}

func (session *Session) CancelOrder(symbol string, orderID int64) (*domain.OrderResult, error) {
	result, err := session.exchange.CancelOrder(symbol, orderID)
	if err != nil {
		return nil, session.fail(fmt.Sprintf("cancel order %d", orderID), err)
	}
	session.logger.Printf("order %d cancelled successfully", result.OrderID)
	return result, nil
}

func (session *Session) OpenOrders(symbol string) ([]domain.OrderResult, error) {
	orders, err := session.exchange.ListOpenOrders(symbol)
	if err != nil {
		return nil, session.fail("list open orders", err)
	}
	session.logger.Printf("found %d open orders", len(orders))
	return orders, nil
}

func (session *Session) abort(err error) error {
	err = normalizeError(err)
	session.transition(domain.StateAborted)
	session.logger.Errorf("order workflow aborted: %v", err)
	return err
}

func (session *Session) fail(operation string, err error) error {
	err = normalizeError(err)
	session.logger.Errorf("failed to %s: %v", operation, err)
	return err
}

// normalizeError keeps taxonomy errors as they are and wraps anything
// unrecognized, so nothing crosses the session boundary unclassified.
func normalizeError(err error) error {
	var validationErr *domain.ValidationError
	var connectivityErr *domain.ConnectivityError
	var rejectionErr *domain.RejectionError
	if errors.As(err, &validationErr) || errors.As(err, &connectivityErr) || errors.As(err, &rejectionErr) {
		return err
	}
	return fmt.Errorf("unexpected error: %w", err)
}
