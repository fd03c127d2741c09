package models

// CalfFeeding logs one feeding session for a pre-weaning calf.
type CalfFeeding struct {
	Meta
	CalfID     string `json:"calf_id"`
	Date       string `json:"date"`
	Session    string `json:"session"` // "morning" | "evening"
	MilkLitres string `json:"milk_litres"`
	FeedType   string `json:"feed_type"`
	FeedKg     string `json:"feed_kg"`
	Remarks    string `json:"remarks"`
}

// WeanedCalf marks a calf's transition off milk, with the closing weight.
type WeanedCalf struct {
	Meta
	CalfID      string `json:"calf_id"`
	WeaningDate string `json:"weaning_date"`
	WeightKg    string `json:"weight_kg"`
	AgeDays     int    `json:"age_days"`
	Destination string `json:"destination"` // "herd" | "sale" | "other"
	Remarks     string `json:"remarks"`
}
