package tui

import (
	"github.com/mamadbah2/dairydesk/internal/catalog"
	"github.com/mamadbah2/dairydesk/internal/controller"
	"github.com/mamadbah2/dairydesk/pkg/clients/dairy"
)

// BuildPages assembles the dashboard's screens. Admins get the extra
// user-management page; everyone gets the eight operational screens.
func BuildPages(client *dairy.Client, downloadsDir string) []Page {
	// Each screen gets its own exporter so a failed or in-flight export on
	// one screen never shows up on, or blocks, another.
	newExport := func() *controller.Exporter {
		return controller.NewExporter(client, downloadsDir)
	}
	animalLookup := catalog.AnimalLookup(client)
	calfLookup := catalog.CalfLookup(client)

	pages := []Page{
		NewEntityPage(
			"milk",
			client,
			controller.NewList(catalog.MilkYieldSchema(), client),
			controller.NewForm(catalog.MilkYieldForm(), client),
			newExport(),
			[]Column{
				{Key: "id", Title: "ID", Width: 5},
				{Key: "date", Title: "Date", Width: 12},
				{Key: "animal_id", Title: "Animal", Width: 10},
				{Key: "morning_litres", Title: "Morning", Width: 9},
				{Key: "evening_litres", Title: "Evening", Width: 9},
				{Key: "total_litres", Title: "Total", Width: 8},
				{Key: "notes", Title: "Notes", Width: 24},
			},
			animalLookup, "animal_id",
		),
		NewEntityPage(
			"vaccines",
			client,
			controller.NewList(catalog.VaccinationSchema(), client),
			controller.NewForm(catalog.VaccinationForm(), client),
			newExport(),
			[]Column{
				{Key: "id", Title: "ID", Width: 5},
				{Key: "animal_id", Title: "Animal", Width: 10},
				{Key: "vaccine_name", Title: "Vaccine", Width: 14},
				{Key: "date", Title: "Date", Width: 12},
				{Key: "next_due_date", Title: "Next due", Width: 12},
				{Key: "dosage_ml", Title: "ml", Width: 6},
				{Key: "status", Title: "Status", Width: 11},
			},
			animalLookup, "animal_id",
		),
		NewEntityPage(
			"calf feed",
			client,
			controller.NewList(catalog.CalfFeedingSchema(), client),
			controller.NewForm(catalog.CalfFeedingForm(), client),
			newExport(),
			[]Column{
				{Key: "id", Title: "ID", Width: 5},
				{Key: "calf_id", Title: "Calf", Width: 10},
				{Key: "date", Title: "Date", Width: 12},
				{Key: "session", Title: "Session", Width: 9},
				{Key: "milk_litres", Title: "Milk", Width: 7},
				{Key: "feed_type", Title: "Feed", Width: 12},
				{Key: "feed_kg", Title: "kg", Width: 6},
			},
			calfLookup, "calf_id",
		),
		NewEntityPage(
			"weaning",
			client,
			controller.NewList(catalog.WeanedCalfSchema(), client),
			controller.NewForm(catalog.WeanedCalfForm(), client),
			newExport(),
			[]Column{
				{Key: "id", Title: "ID", Width: 5},
				{Key: "calf_id", Title: "Calf", Width: 10},
				{Key: "weaning_date", Title: "Weaned", Width: 12},
				{Key: "weight_kg", Title: "Weight", Width: 8},
				{Key: "age_days", Title: "Age", Width: 6},
				{Key: "destination", Title: "Destination", Width: 12},
			},
			calfLookup, "calf_id",
		),
		NewEntityPage(
			"finance",
			client,
			controller.NewList(catalog.FinanceSchema(), client),
			controller.NewForm(catalog.FinanceForm(), client),
			newExport(),
			[]Column{
				{Key: "id", Title: "ID", Width: 5},
				{Key: "date", Title: "Date", Width: 12},
				{Key: "entry_type", Title: "Type", Width: 9},
				{Key: "category", Title: "Category", Width: 14},
				{Key: "description", Title: "Description", Width: 24},
				{Key: "amount", Title: "Amount", Width: 10},
			},
			nil, "",
		),
		NewEntityPage(
			"hygiene",
			client,
			controller.NewList(catalog.HygieneSchema(), client),
			controller.NewForm(catalog.HygieneForm(), client),
			newExport(),
			[]Column{
				{Key: "id", Title: "ID", Width: 5},
				{Key: "date", Title: "Date", Width: 12},
				{Key: "session", Title: "Session", Width: 9},
				{Key: "procedure", Title: "Procedure", Width: 16},
				{Key: "detergent_use", Title: "Detergent", Width: 12},
				{Key: "compliant", Title: "OK", Width: 5},
			},
			nil, "",
		),
		NewEntityPage(
			"shifts",
			client,
			controller.NewList(catalog.ShiftSchema(), client),
			controller.NewForm(catalog.ShiftForm(), client),
			newExport(),
			[]Column{
				{Key: "id", Title: "ID", Width: 5},
				{Key: "employee_id", Title: "Emp", Width: 8},
				{Key: "employee_name", Title: "Name", Width: 18},
				{Key: "date", Title: "Date", Width: 12},
				{Key: "shift", Title: "Shift", Width: 9},
				{Key: "task", Title: "Task", Width: 20},
			},
			nil, "",
		),
		NewEntityPage(
			"alerts",
			client,
			controller.NewList(catalog.NotificationSchema(), client),
			nil,
			newExport(),
			[]Column{
				{Key: "id", Title: "ID", Width: 5},
				{Key: "date", Title: "Date", Width: 12},
				{Key: "category", Title: "Category", Width: 13},
				{Key: "message", Title: "Message", Width: 40},
				{Key: "read", Title: "Read", Width: 6},
			},
			nil, "",
		),
	}

	if client.Session().IsAdmin() {
		pages = append(pages, NewEntityPage(
			"users",
			client,
			controller.NewList(catalog.UserSchema(), client),
			controller.NewForm(catalog.UserForm(), client),
			newExport(),
			[]Column{
				{Key: "id", Title: "ID", Width: 5},
				{Key: "username", Title: "Username", Width: 14},
				{Key: "full_name", Title: "Name", Width: 20},
				{Key: "email", Title: "Email", Width: 22},
				{Key: "role", Title: "Role", Width: 12},
				{Key: "active", Title: "Active", Width: 7},
			},
			nil, "",
		))
	}

	return pages
}
