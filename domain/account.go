package domain

import "github.com/shopspring/decimal"

type AccountSnapshot struct {
	TotalWalletBalance decimal.Decimal
	AvailableBalance   decimal.Decimal
	TotalUnrealizedPnl decimal.Decimal
	Positions          []Position
}

type Position struct {
	Symbol        string
	PositionAmt   decimal.Decimal // signed, zero means flat
	UnrealizedPnl decimal.Decimal
}

func (position *Position) IsFlat() bool {
	return position.PositionAmt.IsZero()
}
