package editor

// Action is the outcome the operator picked for a line.
type Action int

const (
	// ActionKeep writes the line unchanged.
	ActionKeep Action = iota
	// ActionReplace substitutes the first quoted literal with Decision.Text.
	ActionReplace
	// ActionSkip writes nothing. The line is offered again on the next run.
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionKeep:
		return "keep"
	case ActionReplace:
		return "replace"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Decision is the operator's result for one entry.
type Decision struct {
	Action Action
	Text   string
}

func Keep() Decision { return Decision{Action: ActionKeep} }

func Replace(text string) Decision { return Decision{Action: ActionReplace, Text: text} }

func Skip() Decision { return Decision{Action: ActionSkip} }
