package payments

import "sort"

// StatusSummary counts payments sharing a status.
type StatusSummary struct {
	Status Status `json:"status"`
	Count  int64  `json:"count"`
}

// CurrencyTotal sums the amounts of succeeded payments in one currency.
type CurrencyTotal struct {
	Currency string `json:"currency"`
	Amount   int64  `json:"amount"`
	Count    int64  `json:"count"`
}

type Summary struct {
	TotalPayments int64           `json:"totalPayments"`
	ByStatus      []StatusSummary `json:"byStatus"`
	Succeeded     []CurrencyTotal `json:"succeeded"`
}

var summaryOrder = []Status{StatusSucceeded, StatusPending, StatusFailed, StatusUnknown}

// Summarize aggregates a payment list for the dashboard. Only succeeded
// payments contribute to the currency totals; amounts of different currencies
// are never added together.
func Summarize(list []Payment) Summary {
	counts := make(map[Status]int64)
	totals := make(map[string]*CurrencyTotal)

	for _, p := range list {
		status := ParseStatus(string(p.Status))
		counts[status]++

		if status != StatusSucceeded {
			continue
		}
		t, ok := totals[p.Currency]
		if !ok {
			t = &CurrencyTotal{Currency: p.Currency}
			totals[p.Currency] = t
		}
		t.Amount += p.Amount
		t.Count++
	}

	s := Summary{TotalPayments: int64(len(list))}
	for _, status := range summaryOrder {
		if status == StatusUnknown && counts[status] == 0 {
			continue
		}
		s.ByStatus = append(s.ByStatus, StatusSummary{Status: status, Count: counts[status]})
	}

	for _, t := range totals {
		s.Succeeded = append(s.Succeeded, *t)
	}
	sort.Slice(s.Succeeded, func(i, j int) bool {
		return s.Succeeded[i].Currency < s.Succeeded[j].Currency
	})
	return s
}
