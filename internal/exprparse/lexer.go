package exprparse

import "strings"

// TokenType classifies a lexed token.
type TokenType int

const (
	Identifier TokenType = iota
	Number
	String
	True
	False
	Plus
	Minus
	Star
	Slash
	Equals
	NotEquals
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	And
	Or
	Not
	Assign
	Comma
	ParenOpen
	ParenClose
	EOF
	Unknown
)

// Token is one lexed unit of an expression string.
type Token struct {
	Type  TokenType
	Value string
}

func (t Token) String() string {
	switch t.Type {
	case Identifier:
		return "Identifier(" + t.Value + ")"
	case Number:
		return "Number(" + t.Value + ")"
	case String:
		return "String(" + t.Value + ")"
	case EOF:
		return "EOF"
	default:
		return t.Value
	}
}

// Lexer walks an expression string producing tokens.
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
}

// NewLexer returns a lexer over input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// Next returns the next token, consuming it.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	var tok Token
	switch l.ch {
	case 0:
		tok = Token{Type: EOF}
	case '+':
		tok = Token{Type: Plus, Value: "+"}
	case '-':
		tok = Token{Type: Minus, Value: "-"}
	case '*':
		tok = Token{Type: Star, Value: "*"}
	case '/':
		tok = Token{Type: Slash, Value: "/"}
	case ',':
		tok = Token{Type: Comma, Value: ","}
	case '(':
		tok = Token{Type: ParenOpen, Value: "("}
	case ')':
		tok = Token{Type: ParenClose, Value: ")"}
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: Equals, Value: "=="}
		} else {
			tok = Token{Type: Assign, Value: "="}
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: NotEquals, Value: "!="}
		} else {
			tok = Token{Type: Not, Value: "!"}
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: LessThanOrEqual, Value: "<="}
		} else {
			tok = Token{Type: LessThan, Value: "<"}
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: GreaterThanOrEqual, Value: ">="}
		} else {
			tok = Token{Type: GreaterThan, Value: ">"}
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = Token{Type: And, Value: "&&"}
		} else {
			tok = Token{Type: Unknown, Value: "&"}
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = Token{Type: Or, Value: "||"}
		} else {
			tok = Token{Type: Unknown, Value: "|"}
		}
	case '\'', '"':
		return l.readString(l.ch)
	default:
		if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			return l.readNumber()
		}
		if isIdentChar(l.ch) {
			return l.readIdentifier()
		}
		tok = Token{Type: Unknown, Value: string(l.ch)}
	}
	l.readChar()
	return tok
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readString(quote byte) Token {
	l.readChar()
	start := l.position
	for l.ch != quote && l.ch != 0 {
		l.readChar()
	}
	if l.ch == 0 {
		return Token{Type: Unknown, Value: l.input[start:]}
	}
	s := l.input[start:l.position]
	l.readChar()
	return Token{Type: String, Value: s}
}

func (l *Lexer) readNumber() Token {
	start := l.position
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return Token{Type: Number, Value: l.input[start:l.position]}
}

func (l *Lexer) readIdentifier() Token {
	start := l.position
	for isIdentChar(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	word := l.input[start:l.position]
	switch strings.ToLower(word) {
	case "true":
		return Token{Type: True, Value: word}
	case "false":
		return Token{Type: False, Value: word}
	case "and":
		return Token{Type: And, Value: word}
	case "or":
		return Token{Type: Or, Value: word}
	case "not":
		return Token{Type: Not, Value: word}
	}
	return Token{Type: Identifier, Value: word}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentChar(ch byte) bool {
	return ch == '_' || ch == '.' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
