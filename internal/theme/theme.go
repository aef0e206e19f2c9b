package theme

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned by Lookup for names missing from the catalog.
var ErrUnknown = errors.New("unknown theme")

// Role is a semantic slot a token can be painted with.
type Role int

const (
	RoleForeground Role = iota
	RoleBackground
	RoleComment
	RoleKeyword
	RoleString
	RoleNumber
	RoleFunction
	RoleType
	RoleVariable
	RoleOperator
	RolePunctuation
	RoleConstant
	RoleClass
)

type Theme struct {
	Name        string
	Background  Color
	Foreground  Color
	Comment     Color
	Keyword     Color
	String      Color
	Number      Color
	Function    Color
	Type        Color
	Variable    Color
	Operator    Color
	Punctuation Color
	Constant    Color
	Class       Color
}

// Color returns the color assigned to role. Unknown roles map to the foreground.
func (t Theme) Color(role Role) Color {
	switch role {
	case RoleBackground:
		return t.Background
	case RoleComment:
		return t.Comment
	case RoleKeyword:
		return t.Keyword
	case RoleString:
		return t.String
	case RoleNumber:
		return t.Number
	case RoleFunction:
		return t.Function
	case RoleType:
		return t.Type
	case RoleVariable:
		return t.Variable
	case RoleOperator:
		return t.Operator
	case RolePunctuation:
		return t.Punctuation
	case RoleConstant:
		return t.Constant
	case RoleClass:
		return t.Class
	default:
		return t.Foreground
	}
}

// Lookup finds a theme by case-insensitive name.
func Lookup(name string) (Theme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, entry := range catalog {
		if entry.key == key {
			return entry.theme, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %s", ErrUnknown, name)
}

// Names lists catalog keys in a stable order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		names = append(names, entry.key)
	}
	return names
}
