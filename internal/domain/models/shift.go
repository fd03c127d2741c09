package models

// Shift codes used by the schedule screen.
const (
	ShiftMorning = "morning"
	ShiftEvening = "evening"
	ShiftNight   = "night"
)

// ShiftAssignment puts one employee on one shift for one day.
type ShiftAssignment struct {
	Meta
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Shift        string `json:"shift"`
	Task         string `json:"task"`
}
