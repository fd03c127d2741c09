package models

// Animal is a reference entry used only to populate identifier lookups;
// the dashboard never edits animals directly.
type Animal struct {
	ID    int    `json:"id"`
	Tag   string `json:"tag"`
	Breed string `json:"breed"`
}

// BreedingRecord links a calf to its dam. The active subset feeds the calf
// id autocomplete on the feeding and weaning screens.
type BreedingRecord struct {
	ID       int    `json:"id"`
	CalfTag  string `json:"calf_tag"`
	DamTag   string `json:"dam_tag"`
	BornOn   string `json:"born_on"`
	IsActive bool   `json:"is_active"`
}
