package state

// BlindLevel is one step of the tournament blind structure. Owned by the
// tournament config, read-only to the engine.
type BlindLevel struct {
	SmallBlind      int `json:"smallBlind" hcl:"small_blind"`
	BigBlind        int `json:"bigBlind" hcl:"big_blind"`
	Ante            int `json:"ante,omitempty" hcl:"ante,optional"`
	DurationMinutes int `json:"durationMinutes" hcl:"duration_minutes,optional"`
}

// TournamentConfig is the static tournament setup.
type TournamentConfig struct {
	StartingStack  int          `json:"startingStack"`
	MaxRebuys      int          `json:"maxRebuys"`
	RebuyChips     int          `json:"rebuyChips"`
	AddonChips     int          `json:"addonChips"`
	BuyInCost      int          `json:"buyInCost"`
	RebuyCost      int          `json:"rebuyCost"`
	BlindStructure []BlindLevel `json:"blindStructure"`
}

// Level returns the blind level at index, clamped to the last configured
// level so a tournament can outlive its structure without a nil blind.
func (c TournamentConfig) Level(index int) BlindLevel {
	if len(c.BlindStructure) == 0 {
		return BlindLevel{}
	}
	if index < 0 {
		index = 0
	}
	if index >= len(c.BlindStructure) {
		index = len(c.BlindStructure) - 1
	}
	return c.BlindStructure[index]
}

// Tournament is the top-level aggregate root.
type Tournament struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Config TournamentConfig `json:"config"`
}
