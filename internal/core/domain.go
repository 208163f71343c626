package core

import (
	"errors"
	"time"
)

// DateLayout is the ISO-8601 calendar date layout used wherever a date is
// stored or compared. Lexicographic order on these strings equals
// chronological order, which the query engine relies on for range filtering.
const DateLayout = "2006-01-02"

type (
	// Money is a fixed-point amount in cents. Aggregation over cents stays
	// exact where repeated float64 addition would drift.
	Money struct {
		Cents int64
	}

	// ExpenseRecord is one logged expense, field for field as it appears in
	// the ledger file. Date keeps its stored string form.
	ExpenseRecord struct {
		Date     string // ISO-8601 YYYY-MM-DD
		Category string
		Amount   Money
		Note     string
	}
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrNegativeAmount = errors.New("negative amount")
	ErrInvalidAmount  = errors.New("invalid amount")
)

// ValidateDate checks that s is a well-formed ISO-8601 calendar date.
// Out-of-range days such as "2024-02-30" fail here.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}

func (r ExpenseRecord) Validate() error {
	if err := ValidateDate(r.Date); err != nil {
		return err
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	return nil
}
