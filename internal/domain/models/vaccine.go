package models

// Vaccination statuses as the server encodes them.
const (
	VaccinationCompleted = "completed"
	VaccinationScheduled = "scheduled"
	VaccinationOverdue   = "overdue"
)

// Vaccination is one entry in the herd vaccine register.
type Vaccination struct {
	Meta
	AnimalID     string `json:"animal_id"`
	VaccineName  string `json:"vaccine_name"`
	Disease      string `json:"disease"`
	Date         string `json:"date"`
	NextDueDate  string `json:"next_due_date"`
	DosageML     string `json:"dosage_ml"`
	Status       string `json:"status"`
	Veterinarian string `json:"veterinarian"`
}
