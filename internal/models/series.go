package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeriesPoint is one entry of a graph-ready expense series: the expense
// date, the amount spent by that entry, and the running total up to and
// including it. The series carries no rendering concerns.
type SeriesPoint struct {
	Date       time.Time       `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Cumulative decimal.Decimal `json:"cumulative"`
}
