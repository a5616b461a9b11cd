package table

// Tri is a three-valued boolean: the result of comparing against a missing
// value is Unknown rather than false. And, Or, and Negate follow Kleene
// logic, so negating Unknown stays Unknown. Unknown collapses to false only
// at the Filter boundary.
type Tri int

const (
	False Tri = iota
	True
	Unknown
)

// And returns the Kleene conjunction of t and o.
func (t Tri) And(o Tri) Tri {
	if t == False || o == False {
		return False
	}
	if t == Unknown || o == Unknown {
		return Unknown
	}
	return True
}

// Or returns the Kleene disjunction of t and o.
func (t Tri) Or(o Tri) Tri {
	if t == True || o == True {
		return True
	}
	if t == Unknown || o == Unknown {
		return Unknown
	}
	return False
}

// Negate returns the Kleene negation of t. Unknown negates to Unknown.
func (t Tri) Negate() Tri {
	switch t {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

func (t Tri) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}
