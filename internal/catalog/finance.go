package catalog

import (
	"github.com/mamadbah2/dairydesk/internal/controller"
	"github.com/mamadbah2/dairydesk/internal/domain/models"
)

// FinanceSchema drives the ledger screen. Income and expense totals are
// summed separately through the entry_type enum filter; the unfiltered
// summary carries the combined amount.
func FinanceSchema() controller.Schema[models.FinanceEntry] {
	return controller.Schema[models.FinanceEntry]{
		Name:     "finance",
		Endpoint: FinanceEndpoint,
		Date:     func(r models.FinanceEntry) string { return r.Date },
		Search:   func(r models.FinanceEntry) []string { return []string{r.Category, r.Description} },
		Enums: map[string]func(models.FinanceEntry) string{
			"entry_type": func(r models.FinanceEntry) string { return r.EntryType },
			"category":   func(r models.FinanceEntry) string { return r.Category },
		},
		Sums: map[string]func(models.FinanceEntry) string{
			"amount": func(r models.FinanceEntry) string { return r.Amount },
		},
		Maxima: map[string]func(models.FinanceEntry) string{
			"amount": func(r models.FinanceEntry) string { return r.Amount },
		},
	}
}

// FinanceForm declares the ledger modal.
func FinanceForm() controller.FormSpec[models.FinanceEntry] {
	return controller.FormSpec[models.FinanceEntry]{
		Endpoint: FinanceEndpoint,
		Fields: []controller.Field{
			{Name: "date", Label: "Date", Required: true},
			{Name: "entry_type", Label: "Type", Required: true, Enum: []string{models.FinanceIncome, models.FinanceExpense}},
			{Name: "category", Label: "Category", Required: true},
			{Name: "description", Label: "Description"},
			{Name: "amount", Label: "Amount", Required: true, Numeric: true},
		},
		Defaults: func() map[string]string {
			return map[string]string{"date": today(), "entry_type": models.FinanceExpense}
		},
		FromRecord: func(r models.FinanceEntry) map[string]string {
			return map[string]string{
				"date":        r.Date,
				"entry_type":  r.EntryType,
				"category":    r.Category,
				"description": r.Description,
				"amount":      r.Amount,
			}
		},
		Payload: func(draft map[string]string, actorID int) any {
			return map[string]any{
				"date":          draft["date"],
				"entry_type":    draft["entry_type"],
				"category":      draft["category"],
				"description":   draft["description"],
				"amount":        num(draft["amount"]),
				"supervisor_id": actorID,
			}
		},
	}
}
