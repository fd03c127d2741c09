package models

// HygieneCheck is one milking-hygiene checklist entry per parlour session.
type HygieneCheck struct {
	Meta
	Date         string `json:"date"`
	Session      string `json:"session"` // "morning" | "evening"
	Procedure    string `json:"procedure"`
	DetergentUse string `json:"detergent_use"`
	Compliant    bool   `json:"compliant"`
	Remarks      string `json:"remarks"`
}
