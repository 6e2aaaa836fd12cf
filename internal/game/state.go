package game

// State is the phase of the game loop.
type State uint8

const (
	Menu State = iota
	Displaying
	Inputting
	Next
	Failure
	Score
)

func (s State) String() string {
	switch s {
	case Menu:
		return "menu"
	case Displaying:
		return "displaying"
	case Inputting:
		return "inputting"
	case Next:
		return "next"
	case Failure:
		return "failure"
	case Score:
		return "score"
	}
	return "unknown"
}
