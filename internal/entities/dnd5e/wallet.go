package dnd5e

import "sort"

// CurrencyContribution is the amount of one currency a single source added
type CurrencyContribution struct {
	Currency string `json:"currency"`
	Source   string `json:"source"`
	Amount   int    `json:"amount"`
}

// CurrencyLine is the merged amount of one currency
type CurrencyLine struct {
	Currency string `json:"currency"`
	Amount   int    `json:"amount"`
}

// Wallet tracks currency per source so one source can be reversed without
// touching what others granted. Presentation merges to one line per currency.
type Wallet struct {
	Contributions []CurrencyContribution `json:"contributions,omitempty"`
}

// Set replaces the contribution of source for currency. A non-positive
// amount removes it.
func (w *Wallet) Set(currency, source string, amount int) {
	w.Remove(currency, source)
	if amount <= 0 {
		return
	}
	w.Contributions = append(w.Contributions, CurrencyContribution{
		Currency: currency,
		Source:   source,
		Amount:   amount,
	})
}

// Remove drops the contribution of source for currency, returning what it held
func (w *Wallet) Remove(currency, source string) int {
	removed := 0
	kept := w.Contributions[:0]
	for _, c := range w.Contributions {
		if c.Currency == currency && c.Source == source {
			removed += c.Amount
			continue
		}
		kept = append(kept, c)
	}
	w.Contributions = kept
	return removed
}

// Has reports whether source has contributed currency
func (w *Wallet) Has(currency, source string) bool {
	for _, c := range w.Contributions {
		if c.Currency == currency && c.Source == source {
			return true
		}
	}
	return false
}

// Total sums every contribution of currency
func (w *Wallet) Total(currency string) int {
	total := 0
	for _, c := range w.Contributions {
		if c.Currency == currency {
			total += c.Amount
		}
	}
	return total
}

// Lines merges contributions into one line per currency, sorted by code
func (w *Wallet) Lines() []CurrencyLine {
	totals := make(map[string]int)
	for _, c := range w.Contributions {
		totals[c.Currency] += c.Amount
	}

	lines := make([]CurrencyLine, 0, len(totals))
	for currency, amount := range totals {
		lines = append(lines, CurrencyLine{Currency: currency, Amount: amount})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].Currency < lines[j].Currency
	})
	return lines
}
