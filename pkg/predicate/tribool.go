package predicate

// Tribool is the three-valued logic result of evaluating an expression:
// True, False, or Unknown. Unknown is produced by missing fields, null
// operands, and comparisons between incompatible types, so that records the
// engine cannot judge are never flagged as violations.
type Tribool int8

const (
	// False means the predicate did not match.
	False Tribool = iota
	// Unknown means the predicate could not be decided.
	Unknown
	// True means the predicate matched.
	True
)

// String returns the tribool name.
func (t Tribool) String() string {
	switch t {
	case False:
		return "false"
	case Unknown:
		return "unknown"
	case True:
		return "true"
	default:
		return "invalid"
	}
}

// And returns the Kleene conjunction: False dominates, then Unknown.
func (t Tribool) And(o Tribool) Tribool {
	if t == False || o == False {
		return False
	}
	if t == Unknown || o == Unknown {
		return Unknown
	}
	return True
}

// Or returns the Kleene disjunction: True dominates, then Unknown.
func (t Tribool) Or(o Tribool) Tribool {
	if t == True || o == True {
		return True
	}
	if t == Unknown || o == Unknown {
		return Unknown
	}
	return False
}

// Not returns the Kleene negation; Unknown stays Unknown.
func (t Tribool) Not() Tribool {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}
