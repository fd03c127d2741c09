package catalog

import (
	"github.com/mamadbah2/dairydesk/internal/controller"
	"github.com/mamadbah2/dairydesk/internal/domain/models"
)

// CalfFeedingSchema drives the calf feeding log.
func CalfFeedingSchema() controller.Schema[models.CalfFeeding] {
	return controller.Schema[models.CalfFeeding]{
		Name:     "calf-feeding",
		Endpoint: CalfFeedingEndpoint,
		Date:     func(r models.CalfFeeding) string { return r.Date },
		Search:   func(r models.CalfFeeding) []string { return []string{r.CalfID, r.FeedType, r.Remarks} },
		Enums: map[string]func(models.CalfFeeding) string{
			"session": func(r models.CalfFeeding) string { return r.Session },
		},
		Sums: map[string]func(models.CalfFeeding) string{
			"milk_litres": func(r models.CalfFeeding) string { return r.MilkLitres },
			"feed_kg":     func(r models.CalfFeeding) string { return r.FeedKg },
		},
	}
}

// CalfFeedingForm declares the feeding modal; the calf id field is backed
// by the breeding-record autocomplete.
func CalfFeedingForm() controller.FormSpec[models.CalfFeeding] {
	return controller.FormSpec[models.CalfFeeding]{
		Endpoint: CalfFeedingEndpoint,
		Fields: []controller.Field{
			{Name: "calf_id", Label: "Calf", Required: true},
			{Name: "date", Label: "Date", Required: true},
			{Name: "session", Label: "Session", Required: true, Enum: []string{"morning", "evening"}},
			{Name: "milk_litres", Label: "Milk (litres)", Required: true, Numeric: true},
			{Name: "feed_type", Label: "Feed type"},
			{Name: "feed_kg", Label: "Feed (kg)", Numeric: true},
			{Name: "remarks", Label: "Remarks"},
		},
		Defaults: func() map[string]string {
			return map[string]string{"date": today(), "session": "morning"}
		},
		FromRecord: func(r models.CalfFeeding) map[string]string {
			return map[string]string{
				"calf_id":     r.CalfID,
				"date":        r.Date,
				"session":     r.Session,
				"milk_litres": r.MilkLitres,
				"feed_type":   r.FeedType,
				"feed_kg":     r.FeedKg,
				"remarks":     r.Remarks,
			}
		},
		Payload: func(draft map[string]string, actorID int) any {
			return map[string]any{
				"calf_id":       draft["calf_id"],
				"date":          draft["date"],
				"session":       draft["session"],
				"milk_litres":   num(draft["milk_litres"]),
				"feed_type":     draft["feed_type"],
				"feed_kg":       num(draft["feed_kg"]),
				"remarks":       draft["remarks"],
				"supervisor_id": actorID,
			}
		},
	}
}

// WeanedCalfSchema drives the weaning register.
func WeanedCalfSchema() controller.Schema[models.WeanedCalf] {
	return controller.Schema[models.WeanedCalf]{
		Name:     "weaned-calf",
		Endpoint: WeanedCalfEndpoint,
		Date:     func(r models.WeanedCalf) string { return r.WeaningDate },
		Search:   func(r models.WeanedCalf) []string { return []string{r.CalfID, r.Remarks} },
		Enums: map[string]func(models.WeanedCalf) string{
			"destination": func(r models.WeanedCalf) string { return r.Destination },
		},
		Sums: map[string]func(models.WeanedCalf) string{
			"weight_kg": func(r models.WeanedCalf) string { return r.WeightKg },
		},
		Maxima: map[string]func(models.WeanedCalf) string{
			"weight_kg": func(r models.WeanedCalf) string { return r.WeightKg },
		},
	}
}

// WeanedCalfForm declares the weaning modal.
func WeanedCalfForm() controller.FormSpec[models.WeanedCalf] {
	return controller.FormSpec[models.WeanedCalf]{
		Endpoint: WeanedCalfEndpoint,
		Fields: []controller.Field{
			{Name: "calf_id", Label: "Calf", Required: true},
			{Name: "weaning_date", Label: "Weaning date", Required: true},
			{Name: "weight_kg", Label: "Weight (kg)", Required: true, Numeric: true},
			{Name: "age_days", Label: "Age (days)", Numeric: true},
			{Name: "destination", Label: "Destination", Required: true, Enum: []string{"herd", "sale", "other"}},
			{Name: "remarks", Label: "Remarks"},
		},
		Defaults: func() map[string]string {
			return map[string]string{"weaning_date": today(), "destination": "herd"}
		},
		FromRecord: func(r models.WeanedCalf) map[string]string {
			return map[string]string{
				"calf_id":      r.CalfID,
				"weaning_date": r.WeaningDate,
				"weight_kg":    r.WeightKg,
				"age_days":     itoa(r.AgeDays),
				"destination":  r.Destination,
				"remarks":      r.Remarks,
			}
		},
		Payload: func(draft map[string]string, actorID int) any {
			return map[string]any{
				"calf_id":       draft["calf_id"],
				"weaning_date":  draft["weaning_date"],
				"weight_kg":     num(draft["weight_kg"]),
				"age_days":      num(draft["age_days"]),
				"destination":   draft["destination"],
				"remarks":       draft["remarks"],
				"supervisor_id": actorID,
			}
		},
	}
}
