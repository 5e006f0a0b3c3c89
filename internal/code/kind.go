package code

// Kind identifies the variant of a Token.
type Kind uint8

// Token kinds; punctuation kinds are listed in source symbol order.
const (
	Comma     Kind = iota // ,
	Dot                   // .
	Semicolon             // ;
	At                    // @
	Question              // ?
	Tilde                 // ~
	Equal                 // =
	Star                  // *
	Percent               // %
	Caret                 // ^
	Colon                 // :
	Plus                  // +
	Pipe                  // |
	Amp                   // &
	Minus                 // -
	Bang                  // !
	Less                  // <
	Greater               // >
	Slash                 // /
	Hash                  // #
	Dollar                // $

	Identifier
	TextLit
	IntLit
	FloatLit
	CodeLit

	EndOfProgram
)

var kindNames = [...]string{
	Comma:        ",",
	Dot:          ".",
	Semicolon:    ";",
	At:           "@",
	Question:     "?",
	Tilde:        "~",
	Equal:        "=",
	Star:         "*",
	Percent:      "%",
	Caret:        "^",
	Colon:        ":",
	Plus:         "+",
	Pipe:         "|",
	Amp:          "&",
	Minus:        "-",
	Bang:         "!",
	Less:         "<",
	Greater:      ">",
	Slash:        "/",
	Hash:         "#",
	Dollar:       "$",
	Identifier:   "identifier",
	TextLit:      "text",
	IntLit:       "int",
	FloatLit:     "float",
	CodeLit:      "code",
	EndOfProgram: "end",
}

// Punct maps each single character operator to its kind.
var Punct = map[rune]Kind{
	',': Comma,
	'.': Dot,
	';': Semicolon,
	'@': At,
	'?': Question,
	'~': Tilde,
	'=': Equal,
	'*': Star,
	'%': Percent,
	'^': Caret,
	':': Colon,
	'+': Plus,
	'|': Pipe,
	'&': Amp,
	'-': Minus,
	'!': Bang,
	'<': Less,
	'>': Greater,
	'/': Slash,
	'#': Hash,
	'$': Dollar,
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsLiteral returns true for kinds that carry a Value.
func (k Kind) IsLiteral() bool {
	switch k {
	case TextLit, IntLit, FloatLit, CodeLit:
		return true
	}
	return false
}
