package models

// MilkYield records one day's production for the whole herd or a single
// animal. Litre quantities arrive as decimal strings from the server.
type MilkYield struct {
	Meta
	Date          string `json:"date"`
	AnimalID      string `json:"animal_id"`
	MorningLitres string `json:"morning_litres"`
	EveningLitres string `json:"evening_litres"`
	TotalLitres   string `json:"total_litres"`
	Notes         string `json:"notes"`
}
