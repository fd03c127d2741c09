package catalog

import (
	"github.com/mamadbah2/dairydesk/internal/controller"
	"github.com/mamadbah2/dairydesk/internal/domain/models"
)

// MilkYieldSchema drives the milk production screen: date-range filtering,
// search over animal and notes, litre totals and the best single day.
func MilkYieldSchema() controller.Schema[models.MilkYield] {
	return controller.Schema[models.MilkYield]{
		Name:     "milk-yield",
		Endpoint: MilkYieldEndpoint,
		Date:     func(r models.MilkYield) string { return r.Date },
		Search:   func(r models.MilkYield) []string { return []string{r.AnimalID, r.Notes} },
		Sums: map[string]func(models.MilkYield) string{
			"morning_litres": func(r models.MilkYield) string { return r.MorningLitres },
			"evening_litres": func(r models.MilkYield) string { return r.EveningLitres },
			"total_litres":   func(r models.MilkYield) string { return r.TotalLitres },
		},
		Maxima: map[string]func(models.MilkYield) string{
			"total_litres": func(r models.MilkYield) string { return r.TotalLitres },
		},
	}
}

// MilkYieldForm declares the add/edit modal for milk yields.
func MilkYieldForm() controller.FormSpec[models.MilkYield] {
	return controller.FormSpec[models.MilkYield]{
		Endpoint: MilkYieldEndpoint,
		Fields: []controller.Field{
			{Name: "date", Label: "Date", Required: true},
			{Name: "animal_id", Label: "Animal"},
			{Name: "morning_litres", Label: "Morning litres", Required: true, Numeric: true},
			{Name: "evening_litres", Label: "Evening litres", Required: true, Numeric: true},
			{Name: "notes", Label: "Notes"},
		},
		Defaults: func() map[string]string {
			return map[string]string{"date": today()}
		},
		FromRecord: func(r models.MilkYield) map[string]string {
			return map[string]string{
				"date":           r.Date,
				"animal_id":      r.AnimalID,
				"morning_litres": r.MorningLitres,
				"evening_litres": r.EveningLitres,
				"notes":          r.Notes,
			}
		},
		Payload: func(draft map[string]string, actorID int) any {
			return map[string]any{
				"date":           draft["date"],
				"animal_id":      draft["animal_id"],
				"morning_litres": num(draft["morning_litres"]),
				"evening_litres": num(draft["evening_litres"]),
				"notes":          draft["notes"],
				"supervisor_id":  actorID,
			}
		},
	}
}
