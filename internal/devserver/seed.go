package devserver

import (
	"context"
	"fmt"
	"time"
)

// Seed loads a small, coherent data set: two accounts (admin/admin,
// supervisor/supervisor), a reference herd and a few records per screen so
// every dashboard page has something to show on first run.
func Seed(ctx context.Context, store Store) error {
	adminID, err := SeedUser(ctx, store, "admin", "admin", "admin")
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	supervisorID, err := SeedUser(ctx, store, "supervisor", "supervisor", "supervisor")
	if err != nil {
		return fmt.Errorf("seed supervisor: %w", err)
	}

	today := time.Now().Format("2006-01-02")
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	docs := map[string][]map[string]any{
		"animals": {
			{"tag": "COW-001", "breed": "Holstein"},
			{"tag": "COW-002", "breed": "Jersey"},
			{"tag": "COW-003", "breed": "N'Dama"},
		},
		"breeding-calving-records": {
			{"calf_tag": "CALF-101", "dam_tag": "COW-001", "born_on": yesterday, "is_active": true},
			{"calf_tag": "CALF-102", "dam_tag": "COW-002", "born_on": yesterday, "is_active": true},
			{"calf_tag": "CALF-090", "dam_tag": "COW-003", "born_on": "2024-01-01", "is_active": false},
		},
		"milk-yields": {
			{"date": yesterday, "animal_id": "COW-001", "morning_litres": "12.50", "evening_litres": "10.25", "total_litres": "22.75", "notes": "", "supervisor_id": supervisorID},
			{"date": today, "animal_id": "COW-002", "morning_litres": "9.00", "evening_litres": "8.50", "total_litres": "17.5", "notes": "slow milker", "supervisor_id": supervisorID},
		},
		"vaccinations": {
			{"animal_id": "COW-001", "vaccine_name": "BVD", "disease": "bovine viral diarrhoea", "date": yesterday, "next_due_date": "", "dosage_ml": "5", "status": "completed", "veterinarian": "Dr Diallo", "supervisor_id": supervisorID},
			{"animal_id": "COW-002", "vaccine_name": "FMD", "disease": "foot and mouth", "date": today, "next_due_date": "", "dosage_ml": "2", "status": "scheduled", "veterinarian": "Dr Diallo", "supervisor_id": supervisorID},
		},
		"calf-feedings": {
			{"calf_id": "CALF-101", "date": today, "session": "morning", "milk_litres": "4.00", "feed_type": "starter", "feed_kg": "0.50", "remarks": "", "supervisor_id": supervisorID},
		},
		"weaned-calves": {
			{"calf_id": "CALF-090", "weaning_date": "2024-03-01", "weight_kg": "82.5", "age_days": 60, "destination": "herd", "remarks": "", "supervisor_id": supervisorID},
		},
		"finance-entries": {
			{"date": yesterday, "entry_type": "income", "category": "milk sales", "description": "cooperative delivery", "amount": "150.00", "supervisor_id": supervisorID},
			{"date": today, "entry_type": "expense", "category": "feed", "description": "starter bags", "amount": "42.50", "supervisor_id": supervisorID},
		},
		"hygiene-checks": {
			{"date": today, "session": "morning", "procedure": "teat dip", "detergent_use": "iodine", "compliant": true, "remarks": "", "supervisor_id": supervisorID},
		},
		"shift-assignments": {
			{"employee_id": "EMP-01", "employee_name": "Aissatou Bah", "date": today, "shift": "morning", "task": "milking parlour", "supervisor_id": supervisorID},
		},
		"notifications": {
			{"date": today, "category": "vaccination", "message": "FMD booster due for COW-002", "read": false, "supervisor_id": adminID},
		},
	}

	for entity, rows := range docs {
		for _, row := range rows {
			if _, err := store.Insert(ctx, entity, row); err != nil {
				return fmt.Errorf("seed %s: %w", entity, err)
			}
		}
	}
	return nil
}
