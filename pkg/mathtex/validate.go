package mathtex

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrMalformed is matched by every validation failure.
var ErrMalformed = errors.New("mathtex: malformed markup")

// SyntaxError describes the first structural problem found in a markup
// string.
type SyntaxError struct {
	// Offset is the byte offset of the offending token.
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("mathtex: %s at offset %d", e.Msg, e.Offset)
}

// Unwrap returns ErrMalformed.
func (e *SyntaxError) Unwrap() error {
	return ErrMalformed
}

type frameKind int

const (
	frameGroup frameKind = iota
	frameLeft
	frameEnv
)

type frame struct {
	kind   frameKind
	name   string
	offset int
}

func (f frame) describe() string {
	switch f.kind {
	case frameLeft:
		return `\left`
	case frameEnv:
		return `\begin{` + f.name + `}`
	default:
		return "{"
	}
}

// Validate checks that markup is structurally well formed: groups are
// balanced, every \left has a \right, environments close in order and no
// control sequence is cut off. It does not know individual commands.
func Validate(markup string) error {
	if strings.TrimSpace(markup) == "" {
		return &SyntaxError{Offset: 0, Msg: "empty expression"}
	}
	var stack []frame
	pop := func(kind frameKind, name string, offset int, token string) error {
		if len(stack) == 0 {
			return &SyntaxError{Offset: offset, Msg: "unexpected " + token}
		}
		top := stack[len(stack)-1]
		if top.kind != kind || top.name != name {
			return &SyntaxError{Offset: offset, Msg: fmt.Sprintf("%s closes %s opened at offset %d", token, top.describe(), top.offset)}
		}
		stack = stack[:len(stack)-1]
		return nil
	}

	for i := 0; i < len(markup); {
		switch c := markup[i]; c {
		case '%':
			for i < len(markup) && markup[i] != '\n' {
				i++
			}
		case '{':
			stack = append(stack, frame{kind: frameGroup, offset: i})
			i++
		case '}':
			if err := pop(frameGroup, "", i, "}"); err != nil {
				return err
			}
			i++
		case '\\':
			start := i
			name, next := controlSequence(markup, i)
			if name == "" {
				return &SyntaxError{Offset: start, Msg: "dangling backslash"}
			}
			i = next
			switch name {
			case "left":
				stack = append(stack, frame{kind: frameLeft, offset: start})
			case "right":
				if err := pop(frameLeft, "", start, `\right`); err != nil {
					return err
				}
			case "begin", "end":
				env, after, ok := groupArgument(markup, i)
				if !ok {
					return &SyntaxError{Offset: start, Msg: `\` + name + " without environment name"}
				}
				i = after
				if name == "begin" {
					stack = append(stack, frame{kind: frameEnv, name: env, offset: start})
				} else if err := pop(frameEnv, env, start, `\end{`+env+`}`); err != nil {
					return err
				}
			}
		default:
			i++
		}
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return &SyntaxError{Offset: top.offset, Msg: "unclosed " + top.describe()}
	}
	return nil
}

// controlSequence reads the control sequence starting at the backslash at
// i. Letters form a word; any other single character is a control symbol.
func controlSequence(s string, i int) (string, int) {
	j := i + 1
	if j >= len(s) {
		return "", j
	}
	if !isLetter(s[j]) {
		return s[j : j+1], j + 1
	}
	for j < len(s) && isLetter(s[j]) {
		j++
	}
	return s[i+1 : j], j
}

// groupArgument reads a braced word such as {pmatrix} after optional spaces.
func groupArgument(s string, i int) (string, int, bool) {
	for i < len(s) && unicode.IsSpace(rune(s[i])) {
		i++
	}
	if i >= len(s) || s[i] != '{' {
		return "", i, false
	}
	end := strings.IndexByte(s[i+1:], '}')
	if end < 0 {
		return "", i, false
	}
	name := strings.TrimSpace(s[i+1 : i+1+end])
	if name == "" || strings.ContainsAny(name, `{\`) {
		return "", i, false
	}
	return name, i + end + 2, true
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
