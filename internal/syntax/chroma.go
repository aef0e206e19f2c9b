package syntax

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/rook-computer/codeshot/internal/theme"
)

var lexerAliases = map[string]string{
	"c++":   "cpp",
	"shell": "bash",
	"text":  "plaintext",
	"plain": "plaintext",
	"yml":   "yaml",
	"md":    "markdown",
}

// ChromaTokenizer tokenizes with a chroma grammar.
type ChromaTokenizer struct {
	lexer chroma.Lexer
}

// NewChromaTokenizer returns a tokenizer for language, or false when chroma
// has no lexer registered under that name, alias or extension.
func NewChromaTokenizer(language string) (*ChromaTokenizer, bool) {
	name := strings.ToLower(strings.TrimSpace(language))
	if name == "" {
		return nil, false
	}
	if alias, ok := lexerAliases[name]; ok {
		name = alias
	}
	lexer := lexers.Get(name)
	if lexer == nil {
		return nil, false
	}
	return &ChromaTokenizer{lexer: chroma.Coalesce(lexer)}, true
}

func (c *ChromaTokenizer) Tokenize(code string, th theme.Theme) ([]Line, error) {
	want := len(SplitLines(code))
	it, err := c.lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("tokenise with %s: %w", c.lexer.Config().Name, err)
	}

	lines := make([]Line, 0, want)
	var current Line
	for tok := it(); tok != chroma.EOF; tok = it() {
		color := th.Color(roleFor(tok.Type))
		parts := strings.Split(strings.ReplaceAll(tok.Value, "\r", ""), "\n")
		for i, part := range parts {
			if part != "" {
				current.Tokens = append(current.Tokens, Token{Text: part, Color: color})
			}
			if i < len(parts)-1 {
				lines = append(lines, current)
				current = Line{}
			}
		}
	}
	if len(current.Tokens) > 0 {
		lines = append(lines, current)
	}

	// Lexers may append a newline; keep the line count of the raw input.
	if len(lines) > want {
		lines = lines[:want]
	}
	for len(lines) < want {
		lines = append(lines, Line{})
	}
	return lines, nil
}

func roleFor(tt chroma.TokenType) theme.Role {
	switch tt {
	case chroma.KeywordType, chroma.NameBuiltin, chroma.NameBuiltinPseudo:
		return theme.RoleType
	case chroma.KeywordConstant, chroma.NameConstant:
		return theme.RoleConstant
	case chroma.NameFunction, chroma.NameFunctionMagic, chroma.NameDecorator:
		return theme.RoleFunction
	case chroma.NameClass, chroma.NameException, chroma.NameNamespace:
		return theme.RoleClass
	case chroma.NameVariable, chroma.NameVariableAnonymous, chroma.NameVariableClass,
		chroma.NameVariableGlobal, chroma.NameVariableInstance, chroma.NameVariableMagic,
		chroma.NameAttribute, chroma.NameProperty:
		return theme.RoleVariable
	case chroma.NameTag:
		return theme.RoleKeyword
	case chroma.OperatorWord:
		return theme.RoleKeyword
	}
	switch {
	case tt.InCategory(chroma.Keyword):
		return theme.RoleKeyword
	case tt.InSubCategory(chroma.LiteralString):
		return theme.RoleString
	case tt.InSubCategory(chroma.LiteralNumber):
		return theme.RoleNumber
	case tt.InCategory(chroma.Comment):
		return theme.RoleComment
	case tt.InCategory(chroma.Operator):
		return theme.RoleOperator
	case tt.InCategory(chroma.Punctuation):
		return theme.RolePunctuation
	default:
		return theme.RoleForeground
	}
}

// LanguageForFile guesses a language tag from a file name, or returns "" when
// no grammar claims it.
func LanguageForFile(filename string) string {
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}
