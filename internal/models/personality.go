package models

// PersonalityType is one of the four static financial personality archetypes.
type PersonalityType struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Strengths        []string `json:"strengths"`
	Weaknesses       []string `json:"weaknesses"`
	Color            string   `json:"colorScheme"`
	Icon             string   `json:"icon"`
	StrengthsAdvice  string   `json:"strengthsAdvice"`
	WeaknessesAdvice string   `json:"weaknessesAdvice"`
}

// Coordinates place a visitor on the risk tolerance (X) and decision style (Y) axes, both in [-10, 10].
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Classification is the personality placement computed from bias results.
//
// MatchPercentages is keyed by personality type id. The values are independent products of the axis positions
// and do not sum to 100.
type Classification struct {
	PrimaryType      PersonalityType `json:"primaryType"`
	SecondaryType    PersonalityType `json:"secondaryType"`
	MatchPercentages map[string]int  `json:"matchPercentages"`
	Coordinates      Coordinates     `json:"coordinates"`
}
