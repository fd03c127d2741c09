package models

// Finance entry types.
const (
	FinanceIncome  = "income"
	FinanceExpense = "expense"
)

// FinanceEntry is one ledger line. Amount is a decimal string in the farm's
// operating currency; the server does not state a precision, so the client
// never rounds it.
type FinanceEntry struct {
	Meta
	Date        string `json:"date"`
	EntryType   string `json:"entry_type"` // income | expense
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
}
