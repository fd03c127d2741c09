package models

// Notification is a server-generated alert surfaced on the dashboard,
// e.g. an overdue vaccination or a pending weaning.
type Notification struct {
	Meta
	Date     string `json:"date"`
	Category string `json:"category"` // vaccination | weaning | finance | system
	Message  string `json:"message"`
	Read     bool   `json:"read"`
}
