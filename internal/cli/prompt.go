package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"spendlog/internal/core"
)

// Prompter reads interactive answers from in and writes prompts to out.
// Helpers re-prompt on invalid input instead of failing, matching the
// retry-by-reprompting policy of the presentation layer.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Line asks prompt and returns the trimmed answer.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Date asks for an ISO date; blank defaults to today, invalid input
// re-prompts.
func (p *Prompter) Date(prompt string) (string, error) {
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		if s == "" {
			return time.Now().Format(core.DateLayout), nil
		}
		if core.ValidateDate(s) == nil {
			return s, nil
		}
		fmt.Fprintln(p.out, "Invalid format, use YYYY-MM-DD.")
	}
}

// OptionalDate asks for an ISO date; blank means no bound and returns "".
func (p *Prompter) OptionalDate(prompt string) (string, error) {
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		if s == "" {
			return "", nil
		}
		if core.ValidateDate(s) == nil {
			return s, nil
		}
		fmt.Fprintln(p.out, "Invalid format, use YYYY-MM-DD.")
	}
}

// Amount asks for a non-negative decimal amount, re-prompting until valid.
func (p *Prompter) Amount(prompt string) (core.Money, error) {
	for {
		s, err := p.Line(prompt)
		if err != nil {
			return core.Money{}, err
		}
		m, err := core.ParseAmount(s)
		switch {
		case err == nil:
			return m, nil
		case err == core.ErrNegativeAmount:
			fmt.Fprintln(p.out, "Amount must be non-negative.")
		default:
			fmt.Fprintln(p.out, "Enter a valid number.")
		}
	}
}

// Category asks for a category label; blank defaults to "Misc".
func (p *Prompter) Category(prompt string) (string, error) {
	s, err := p.Line(prompt)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "Misc", nil
	}
	return s, nil
}

// PrintTable writes records as an aligned table, long categories truncated.
func PrintTable(w io.Writer, records []core.ExpenseRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No expenses found.")
		return
	}
	fmt.Fprintf(w, "%-10s  %-15s  %10s  %s\n", "Date", "Category", "Amount", "Note")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, r := range records {
		fmt.Fprintf(w, "%-10s  %-15s  %10s  %s\n", r.Date, truncate(r.Category, 15), r.Amount.String(), r.Note)
	}
}

// PrintSummary writes a ranked category summary.
func PrintSummary(w io.Writer, summary []core.CategoryTotal) {
	if len(summary) == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}
	fmt.Fprintln(w, "Category summary:")
	for _, ct := range summary {
		fmt.Fprintf(w, "  %-15s  %s\n", truncate(ct.Name, 15), ct.Amount.String())
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
