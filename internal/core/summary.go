package core

// CategoryTotal is a category label with its summed amount. Slices of these
// are ranked by descending amount with stable first-appearance tie-breaks.
type CategoryTotal struct {
	Name   string
	Amount Money
}

// DayTotal is one calendar date with its summed amount, consumed by charting
// collaborators for line and stacked series.
type DayTotal struct {
	Date   string
	Amount Money
}
