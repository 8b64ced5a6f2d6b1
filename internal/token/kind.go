package token

// Kind represents the coarse category of a lexed token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// Word is a run of non-separator characters: keyword, identifier or anything else.
	Word
	// Number is a Word made only of digits, with an optional decimal point and exponent.
	Number
	// String is a quoted literal, possibly unterminated.
	String
	// Sep is one of the separators : ; , ( ).
	Sep
	// Op is one of the operators = < > + - * / ^.
	Op
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case Number:
		return "Number"
	case String:
		return "String"
	case Sep:
		return "Sep"
	case Op:
		return "Op"
	default:
		return "Invalid"
	}
}
