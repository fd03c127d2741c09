package devserver

// entityDef describes how the fixture server treats one collection: which
// fields must be present on create/update, which numeric fields it
// normalizes to decimal strings on the way out, and which fields the
// server-side search and export cover.
type entityDef struct {
	// Name is the store collection and URL slug, e.g. "milk-yields".
	Name     string
	Required []string
	Numeric  []string
	Search   []string
	// DateField backs server-side start_date/end_date filtering; empty
	// disables it.
	DateField string
	// Columns lists the export spreadsheet columns in order.
	Columns []string
	// ReadOnly collections reject create/update/delete (notification feed,
	// reference lookups).
	ReadOnly bool
	// AdminOnly collections require the admin role for any access.
	AdminOnly bool
}

var entityDefs = []entityDef{
	{
		Name:      "milk-yields",
		Required:  []string{"date", "morning_litres", "evening_litres"},
		Numeric:   []string{"morning_litres", "evening_litres", "total_litres"},
		Search:    []string{"animal_id", "notes"},
		DateField: "date",
		Columns:   []string{"id", "date", "animal_id", "morning_litres", "evening_litres", "total_litres", "notes", "supervisor_id"},
	},
	{
		Name:      "vaccinations",
		Required:  []string{"animal_id", "vaccine_name", "date", "status"},
		Numeric:   []string{"dosage_ml"},
		Search:    []string{"vaccine_name", "disease", "animal_id"},
		DateField: "date",
		Columns:   []string{"id", "animal_id", "vaccine_name", "disease", "date", "next_due_date", "dosage_ml", "status", "veterinarian", "supervisor_id"},
	},
	{
		Name:      "calf-feedings",
		Required:  []string{"calf_id", "date", "session", "milk_litres"},
		Numeric:   []string{"milk_litres", "feed_kg"},
		Search:    []string{"calf_id", "feed_type", "remarks"},
		DateField: "date",
		Columns:   []string{"id", "calf_id", "date", "session", "milk_litres", "feed_type", "feed_kg", "remarks", "supervisor_id"},
	},
	{
		Name:      "weaned-calves",
		Required:  []string{"calf_id", "weaning_date", "weight_kg", "destination"},
		Numeric:   []string{"weight_kg"},
		Search:    []string{"calf_id", "remarks"},
		DateField: "weaning_date",
		Columns:   []string{"id", "calf_id", "weaning_date", "weight_kg", "age_days", "destination", "remarks", "supervisor_id"},
	},
	{
		Name:      "finance-entries",
		Required:  []string{"date", "entry_type", "category", "amount"},
		Numeric:   []string{"amount"},
		Search:    []string{"category", "description"},
		DateField: "date",
		Columns:   []string{"id", "date", "entry_type", "category", "description", "amount", "supervisor_id"},
	},
	{
		Name:      "hygiene-checks",
		Required:  []string{"date", "session", "procedure"},
		Search:    []string{"procedure", "detergent_use", "remarks"},
		DateField: "date",
		Columns:   []string{"id", "date", "session", "procedure", "detergent_use", "compliant", "remarks", "supervisor_id"},
	},
	{
		Name:      "shift-assignments",
		Required:  []string{"employee_id", "employee_name", "date", "shift"},
		Search:    []string{"employee_id", "employee_name", "task"},
		DateField: "date",
		Columns:   []string{"id", "employee_id", "employee_name", "date", "shift", "task", "supervisor_id"},
	},
	{
		Name:      "notifications",
		Search:    []string{"message"},
		DateField: "date",
		Columns:   []string{"id", "date", "category", "message", "read"},
		ReadOnly:  true,
	},
	{
		Name:      "users",
		Required:  []string{"username", "full_name", "role"},
		Search:    []string{"username", "full_name", "email"},
		Columns:   []string{"id", "username", "full_name", "email", "phone", "role", "active"},
		AdminOnly: true,
	},
	{
		Name:     "animals",
		Search:   []string{"tag", "breed"},
		Columns:  []string{"id", "tag", "breed"},
		ReadOnly: true,
	},
	{
		Name:     "breeding-calving-records",
		Search:   []string{"calf_tag", "dam_tag"},
		Columns:  []string{"id", "calf_tag", "dam_tag", "born_on", "is_active"},
		ReadOnly: true,
	},
}

func findEntity(name string) (entityDef, bool) {
	for _, def := range entityDefs {
		if def.Name == name {
			return def, true
		}
	}
	return entityDef{}, false
}
