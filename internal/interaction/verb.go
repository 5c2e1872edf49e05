package interaction

import "fmt"

// Verb is the operation an interaction applies to its resource.
type Verb string

const (
	// VerbPost creates a resource.
	VerbPost Verb = "POST"

	// VerbPut updates (replaces) a resource.
	VerbPut Verb = "PUT"

	// VerbDelete deletes a resource.
	VerbDelete Verb = "DELETE"

	// VerbGet retrieves a resource.
	VerbGet Verb = "GET"
)

// ValidVerbs lists the verbs in declaration order.
var ValidVerbs = []Verb{VerbPost, VerbPut, VerbDelete, VerbGet}

// ParseVerb converts s to a Verb.
func ParseVerb(s string) (Verb, error) {
	for _, v := range ValidVerbs {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid verb %q: must be one of %v", s, ValidVerbs)
}

// State tags where an interaction sits in the processing pipeline.
// The interaction does not police transitions between states.
type State int

const (
	StateInternal State = iota
	StateUndefined
	StateExternal
)

var stateNames = map[State]string{
	StateInternal:  "internal",
	StateUndefined: "undefined",
	StateExternal:  "external",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState converts a state name ("internal", "undefined", "external").
func ParseState(s string) (State, error) {
	for st, name := range stateNames {
		if name == s {
			return st, nil
		}
	}
	return StateUndefined, fmt.Errorf("invalid state %q", s)
}
