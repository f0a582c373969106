package entity

import "time"

// Comp is a user-authored Battlegrounds composition. Card lists hold card
// image URLs from the catalog.
type Comp struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CoreCards  []string  `json:"coreCards"`
	AddonCards []string  `json:"addonCards"`
	HeroCards  []string  `json:"heroCards"`
	SpellCards []string  `json:"spellCards"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by"`
}
