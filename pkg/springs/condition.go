package springs

// Condition is the known state of a spring, or [Unknown] when it has not
// been recorded.
type Condition uint8

const (
	Operational Condition = iota
	Damaged
	Unknown
)

// Symbol returns the record character for c: '.', '#' or '?'.
func (c Condition) Symbol() byte {
	switch c {
	case Operational:
		return '.'
	case Damaged:
		return '#'
	case Unknown:
		return '?'
	default:
		return '!'
	}
}

func (c Condition) String() string {
	switch c {
	case Operational:
		return "operational"
	case Damaged:
		return "damaged"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

func (c Condition) valid() bool {
	return c <= Unknown
}

// ParseCondition maps a record character to its condition.
func ParseCondition(b byte) (Condition, bool) {
	switch b {
	case '.':
		return Operational, true
	case '#':
		return Damaged, true
	case '?':
		return Unknown, true
	default:
		return 0, false
	}
}
