package syntax

import (
	"io"
	"log/slog"
	"strings"

	"github.com/rook-computer/codeshot/internal/theme"
	"golang.org/x/text/unicode/norm"
)

// Token is a run of text painted with a single color.
type Token struct {
	Text  string
	Color theme.Color
}

// Line is one source line without its terminator.
type Line struct {
	Tokens []Token
}

// Text concatenates the token texts of l.
func (l Line) Text() string {
	var sb strings.Builder
	for _, tok := range l.Tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// Tokenizer turns raw source into styled lines.
type Tokenizer interface {
	Tokenize(code string, th theme.Theme) ([]Line, error)
}

// Highlighter picks a grammar tokenizer for the language when one exists and
// falls back to pattern scanning otherwise.
type Highlighter struct {
	Logger *slog.Logger
}

func NewHighlighter(logger *slog.Logger) *Highlighter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Highlighter{Logger: logger}
}

// Highlight never fails: grammar errors degrade to the pattern tokenizer.
func (h *Highlighter) Highlight(code, language string, th theme.Theme) []Line {
	code = norm.NFC.String(code)
	if tok, ok := NewChromaTokenizer(language); ok {
		lines, err := tok.Tokenize(code, th)
		if err == nil {
			return lines
		}
		h.Logger.Warn("grammar tokenizer failed, using patterns",
			slog.String("component", "syntax"),
			slog.String("language", language),
			slog.String("error", err.Error()))
	}
	lines, _ := PatternTokenizer{}.Tokenize(code, th)
	return lines
}

// SplitLines splits code on "\n", dropping one trailing empty line and any
// trailing "\r". An empty input has no lines.
func SplitLines(code string) []string {
	if code == "" {
		return nil
	}
	lines := strings.Split(code, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// knownLanguages mirrors the language tags accepted by the public API even
// when no grammar is bundled for them.
var knownLanguages = map[string]struct{}{
	"javascript": {}, "js": {}, "typescript": {}, "ts": {}, "python": {}, "py": {},
	"rust": {}, "rs": {}, "go": {}, "java": {}, "c": {}, "cpp": {}, "c++": {},
	"html": {}, "css": {}, "json": {}, "yaml": {}, "yml": {}, "xml": {},
	"markdown": {}, "md": {}, "bash": {}, "shell": {}, "sh": {}, "sql": {},
	"php": {}, "ruby": {}, "rb": {}, "swift": {}, "kotlin": {}, "kt": {},
	"scala": {}, "clojure": {}, "clj": {}, "haskell": {}, "hs": {}, "lua": {},
	"vim": {}, "dockerfile": {}, "text": {}, "plain": {},
}

// IsLanguageSupported reports whether language is a known tag or has a grammar.
func IsLanguageSupported(language string) bool {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return false
	}
	if _, ok := knownLanguages[lang]; ok {
		return true
	}
	_, ok := NewChromaTokenizer(lang)
	return ok
}
