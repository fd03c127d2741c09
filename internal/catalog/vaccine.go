package catalog

import (
	"github.com/mamadbah2/dairydesk/internal/controller"
	"github.com/mamadbah2/dairydesk/internal/domain/models"
)

// VaccinationSchema drives the vaccine register: searchable by vaccine,
// disease and animal, filterable by status.
func VaccinationSchema() controller.Schema[models.Vaccination] {
	return controller.Schema[models.Vaccination]{
		Name:     "vaccination",
		Endpoint: VaccinationEndpoint,
		Date:     func(r models.Vaccination) string { return r.Date },
		Search: func(r models.Vaccination) []string {
			return []string{r.VaccineName, r.Disease, r.AnimalID}
		},
		Enums: map[string]func(models.Vaccination) string{
			"status": func(r models.Vaccination) string { return r.Status },
		},
		Sums: map[string]func(models.Vaccination) string{
			"dosage_ml": func(r models.Vaccination) string { return r.DosageML },
		},
	}
}

// VaccinationForm declares the add/edit modal for vaccine entries.
func VaccinationForm() controller.FormSpec[models.Vaccination] {
	return controller.FormSpec[models.Vaccination]{
		Endpoint: VaccinationEndpoint,
		Fields: []controller.Field{
			{Name: "animal_id", Label: "Animal", Required: true},
			{Name: "vaccine_name", Label: "Vaccine", Required: true},
			{Name: "disease", Label: "Disease"},
			{Name: "date", Label: "Date", Required: true},
			{Name: "next_due_date", Label: "Next due"},
			{Name: "dosage_ml", Label: "Dosage (ml)", Numeric: true},
			{Name: "status", Label: "Status", Required: true, Enum: []string{
				models.VaccinationCompleted, models.VaccinationScheduled, models.VaccinationOverdue,
			}},
			{Name: "veterinarian", Label: "Veterinarian"},
		},
		Defaults: func() map[string]string {
			return map[string]string{"date": today(), "status": models.VaccinationCompleted}
		},
		FromRecord: func(r models.Vaccination) map[string]string {
			return map[string]string{
				"animal_id":     r.AnimalID,
				"vaccine_name":  r.VaccineName,
				"disease":       r.Disease,
				"date":          r.Date,
				"next_due_date": r.NextDueDate,
				"dosage_ml":     r.DosageML,
				"status":        r.Status,
				"veterinarian":  r.Veterinarian,
			}
		},
		Payload: func(draft map[string]string, actorID int) any {
			return map[string]any{
				"animal_id":     draft["animal_id"],
				"vaccine_name":  draft["vaccine_name"],
				"disease":       draft["disease"],
				"date":          draft["date"],
				"next_due_date": draft["next_due_date"],
				"dosage_ml":     num(draft["dosage_ml"]),
				"status":        draft["status"],
				"veterinarian":  draft["veterinarian"],
				"supervisor_id": actorID,
			}
		},
	}
}
