package randtest

import "errors"

var (
	ErrEmptySample            = errors.New("sample has no elements")
	ErrPokerClassification    = errors.New("digit pattern matches no poker hand")
	ErrInsufficientCategories = errors.New("fewer than two poker categories after merging")
	ErrDegenerateRuns         = errors.New("runs deviation is zero")
)
