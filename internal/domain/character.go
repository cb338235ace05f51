package domain

// CharacterID identifies one of the selectable personas.
type CharacterID string

const (
	CharacterKaoruko CharacterID = "kaoruko"
	CharacterSubaru  CharacterID = "subaru"
)

// Valid reports whether the id names a known persona.
func (c CharacterID) Valid() bool {
	return c == CharacterKaoruko || c == CharacterSubaru
}

// Character describes a selectable persona.
type Character struct {
	ID          CharacterID
	DisplayName string
	// Palette maps a relationship stage to the UI color token shown for
	// emotion and affection displays while that stage is active.
	Palette map[Stage]string
	// DefaultColor is the color token used when no stage-specific token
	// or server-provided color applies.
	DefaultColor string
}

// Characters returns the fixed persona roster.
func Characters() []Character {
	return []Character{kaoruko, subaru}
}

// CharacterByID looks up a persona by id.
func CharacterByID(id CharacterID) (Character, bool) {
	switch id {
	case CharacterKaoruko:
		return kaoruko, true
	case CharacterSubaru:
		return subaru, true
	}
	return Character{}, false
}

var kaoruko = Character{
	ID:          CharacterKaoruko,
	DisplayName: "Kaoruko",
	Palette: map[Stage]string{
		StageEstranged:     "slate",
		StageStranger:      "blush",
		StageAcquaintance:  "peach",
		StageFriend:        "rose",
		StageCloseFriend:   "coral",
		StageSpecialPerson: "scarlet",
	},
	DefaultColor: "blush",
}

var subaru = Character{
	ID:          CharacterSubaru,
	DisplayName: "Subaru",
	Palette: map[Stage]string{
		StageEstranged:     "ash",
		StageStranger:      "sky",
		StageAcquaintance:  "teal",
		StageFriend:        "azure",
		StageCloseFriend:   "indigo",
		StageSpecialPerson: "violet",
	},
	DefaultColor: "sky",
}
