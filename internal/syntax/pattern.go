package syntax

import (
	"strconv"
	"unicode"

	"github.com/rook-computer/codeshot/internal/theme"
)

// PatternTokenizer is the grammar-free fallback: it recognizes whitespace,
// quoted strings, "//" comments and words, and colors words by lookup tables.
type PatternTokenizer struct{}

func (PatternTokenizer) Tokenize(code string, th theme.Theme) ([]Line, error) {
	raw := SplitLines(code)
	lines := make([]Line, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, scanLine([]rune(line), th))
	}
	return lines, nil
}

func isDelimiter(r rune) bool {
	switch r {
	case '"', '\'', '(', ')', '{', '}', '[', ']', ';', ',', '.':
		return true
	}
	return false
}

func scanLine(chars []rune, th theme.Theme) Line {
	var tokens []Token
	i := 0
	for i < len(chars) {
		start := i

		for i < len(chars) && unicode.IsSpace(chars[i]) {
			i++
		}
		if i > start {
			tokens = append(tokens, Token{Text: string(chars[start:i]), Color: th.Foreground})
			continue
		}

		if chars[i] == '"' || chars[i] == '\'' {
			quote := chars[i]
			i++
			for i < len(chars) && chars[i] != quote {
				if chars[i] == '\\' && i+1 < len(chars) {
					i += 2
				} else {
					i++
				}
			}
			if i < len(chars) {
				i++
			}
			tokens = append(tokens, Token{Text: string(chars[start:i]), Color: th.String})
			continue
		}

		if i+1 < len(chars) && chars[i] == '/' && chars[i+1] == '/' {
			tokens = append(tokens, Token{Text: string(chars[i:]), Color: th.Comment})
			break
		}

		for i < len(chars) && !unicode.IsSpace(chars[i]) && !isDelimiter(chars[i]) {
			i++
		}
		if i > start {
			word := string(chars[start:i])
			tokens = append(tokens, Token{Text: word, Color: th.Color(ClassifyWord(word))})
		} else {
			tokens = append(tokens, Token{Text: string(chars[i]), Color: th.Punctuation})
			i++
		}
	}
	return Line{Tokens: tokens}
}

// ClassifyWord maps a bare word to a theme role.
func ClassifyWord(word string) theme.Role {
	if _, err := strconv.ParseFloat(word, 64); err == nil {
		return theme.RoleNumber
	}
	if _, ok := keywords[word]; ok {
		return theme.RoleKeyword
	}
	if _, ok := typeNames[word]; ok {
		return theme.RoleType
	}
	if isConstantName(word) {
		return theme.RoleConstant
	}
	return theme.RoleForeground
}

func isConstantName(word string) bool {
	n := 0
	for _, r := range word {
		if !unicode.IsUpper(r) && r != '_' {
			return false
		}
		n++
	}
	return n > 1
}

var keywords = map[string]struct{}{
	"fn": {}, "let": {}, "mut": {}, "const": {}, "if": {}, "else": {}, "while": {},
	"for": {}, "loop": {}, "match": {}, "return": {}, "break": {}, "continue": {},
	"pub": {}, "mod": {}, "use": {}, "struct": {}, "enum": {}, "trait": {},
	"impl": {}, "where": {}, "async": {}, "await": {}, "move": {}, "static": {},
	"function": {}, "var": {}, "class": {}, "import": {}, "export": {}, "from": {},
	"as": {}, "default": {}, "def": {}, "lambda": {}, "pass": {}, "with": {},
	"try": {}, "except": {}, "finally": {}, "raise": {}, "and": {}, "or": {},
	"not": {}, "is": {}, "in": {}, "True": {}, "False": {}, "None": {},
	"null": {}, "undefined": {},
}

var typeNames = map[string]struct{}{
	"i8": {}, "i16": {}, "i32": {}, "i64": {}, "u8": {}, "u16": {}, "u32": {},
	"u64": {}, "f32": {}, "f64": {}, "bool": {}, "char": {}, "str": {},
	"String": {}, "Vec": {}, "Option": {}, "Result": {}, "Box": {}, "int": {},
	"float": {}, "string": {}, "boolean": {}, "object": {}, "array": {},
}
