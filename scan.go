package fifth

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// scanner is the textual token source: whitespace-delimited tokens where
// numbers and quoted strings become literals and everything else is a word
// reference. It sits outside the machine proper; the compiler only ever
// sees the Token values it emits.
type scanner struct {
	in     io.RuneScanner
	queued []Token
}

func newScanner(r io.Reader) *scanner {
	rs, ok := r.(io.RuneScanner)
	if !ok {
		rs = bufio.NewReader(r)
	}
	return &scanner{in: rs}
}

// next returns the next token, or io.EOF at a clean end of input.
func (sc *scanner) next() (Token, error) {
	if len(sc.queued) > 0 {
		tok := sc.queued[0]
		sc.queued = sc.queued[1:]
		return tok, nil
	}

	r, err := sc.skipSpace()
	if err != nil {
		return Token{}, err
	}

	switch r {
	case '\\':
		if err := sc.skipLine(); err != nil {
			return Token{}, err
		}
		return sc.next()
	case '"':
		s, err := sc.scanString()
		if err != nil {
			return Token{}, err
		}
		return Lit(s), nil
	}

	sc.in.UnreadRune()
	word, err := sc.scanBare()
	if err != nil {
		return Token{}, err
	}

	// ": name" sugar: the definition word takes its name from the stack,
	// so the scanner turns the following token into a string literal.
	if word == ":" {
		name, err := sc.next()
		if err == io.EOF {
			return Token{}, fmt.Errorf("missing name after %q", word)
		} else if err != nil {
			return Token{}, err
		}
		if !name.isWord {
			return Token{}, fmt.Errorf("invalid name after %q: %v", word, name)
		}
		sc.queued = append(sc.queued, Ref(":"))
		return Lit(name.word), nil
	}

	if n, err := strconv.ParseInt(word, 10, strconv.IntSize); err == nil {
		return Lit(int(n)), nil
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return Lit(f), nil
	}
	return Ref(word), nil
}

func (sc *scanner) skipSpace() (rune, error) {
	for {
		r, _, err := sc.in.ReadRune()
		if err != nil {
			return 0, err
		}
		if !unicode.IsSpace(r) && !unicode.IsControl(r) {
			return r, nil
		}
	}
}

func (sc *scanner) skipLine() error {
	for {
		r, _, err := sc.in.ReadRune()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if r == '\n' {
			return nil
		}
	}
}

func (sc *scanner) scanBare() (string, error) {
	var sb strings.Builder
	for {
		r, _, err := sc.in.ReadRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			break
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

func (sc *scanner) scanString() (string, error) {
	var sb strings.Builder
	for {
		r, _, err := sc.in.ReadRune()
		if err == io.EOF {
			return "", fmt.Errorf("unterminated string %q", sb.String())
		} else if err != nil {
			return "", err
		}
		switch r {
		case '"':
			return sb.String(), nil
		case '\\':
			esc, _, err := sc.in.ReadRune()
			if err != nil {
				return "", fmt.Errorf("unterminated string %q", sb.String())
			}
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"', '\\':
				sb.WriteRune(esc)
			default:
				return "", fmt.Errorf("invalid string escape \\%c", esc)
			}
		default:
			sb.WriteRune(r)
		}
	}
}
