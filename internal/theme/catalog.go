package theme

type catalogEntry struct {
	key   string
	theme Theme
}

var catalog = []catalogEntry{
	{
		key: "dracula",
		theme: Theme{
			Name:        "Dracula",
			Background:  MustParseHex("#282a36"),
			Foreground:  MustParseHex("#f8f8f2"),
			Comment:     MustParseHex("#6272a4"),
			Keyword:     MustParseHex("#ff79c6"),
			String:      MustParseHex("#f1fa8c"),
			Number:      MustParseHex("#bd93f9"),
			Function:    MustParseHex("#50fa7b"),
			Type:        MustParseHex("#8be9fd"),
			Variable:    MustParseHex("#f8f8f2"),
			Operator:    MustParseHex("#ff79c6"),
			Punctuation: MustParseHex("#f8f8f2"),
			Constant:    MustParseHex("#bd93f9"),
			Class:       MustParseHex("#8be9fd"),
		},
	},
	{
		key: "monokai",
		theme: Theme{
			Name:        "Monokai",
			Background:  MustParseHex("#272822"),
			Foreground:  MustParseHex("#f8f8f2"),
			Comment:     MustParseHex("#75715e"),
			Keyword:     MustParseHex("#f92672"),
			String:      MustParseHex("#e6db74"),
			Number:      MustParseHex("#ae81ff"),
			Function:    MustParseHex("#a6e22e"),
			Type:        MustParseHex("#66d9ef"),
			Variable:    MustParseHex("#f8f8f2"),
			Operator:    MustParseHex("#f92672"),
			Punctuation: MustParseHex("#f8f8f2"),
			Constant:    MustParseHex("#ae81ff"),
			Class:       MustParseHex("#a6e22e"),
		},
	},
	{
		key: "github",
		theme: Theme{
			Name:        "GitHub",
			Background:  MustParseHex("#ffffff"),
			Foreground:  MustParseHex("#24292e"),
			Comment:     MustParseHex("#6a737d"),
			Keyword:     MustParseHex("#d73a49"),
			String:      MustParseHex("#032f62"),
			Number:      MustParseHex("#005cc5"),
			Function:    MustParseHex("#6f42c1"),
			Type:        MustParseHex("#005cc5"),
			Variable:    MustParseHex("#24292e"),
			Operator:    MustParseHex("#d73a49"),
			Punctuation: MustParseHex("#24292e"),
			Constant:    MustParseHex("#005cc5"),
			Class:       MustParseHex("#6f42c1"),
		},
	},
	{
		key: "nord",
		theme: Theme{
			Name:        "Nord",
			Background:  MustParseHex("#2e3440"),
			Foreground:  MustParseHex("#d8dee9"),
			Comment:     MustParseHex("#616e88"),
			Keyword:     MustParseHex("#81a1c1"),
			String:      MustParseHex("#a3be8c"),
			Number:      MustParseHex("#b48ead"),
			Function:    MustParseHex("#88c0d0"),
			Type:        MustParseHex("#81a1c1"),
			Variable:    MustParseHex("#d8dee9"),
			Operator:    MustParseHex("#81a1c1"),
			Punctuation: MustParseHex("#eceff4"),
			Constant:    MustParseHex("#b48ead"),
			Class:       MustParseHex("#8fbcbb"),
		},
	},
	{
		key: "solarized-dark",
		theme: Theme{
			Name:        "Solarized Dark",
			Background:  MustParseHex("#002b36"),
			Foreground:  MustParseHex("#839496"),
			Comment:     MustParseHex("#586e75"),
			Keyword:     MustParseHex("#859900"),
			String:      MustParseHex("#2aa198"),
			Number:      MustParseHex("#d33682"),
			Function:    MustParseHex("#268bd2"),
			Type:        MustParseHex("#b58900"),
			Variable:    MustParseHex("#839496"),
			Operator:    MustParseHex("#859900"),
			Punctuation: MustParseHex("#93a1a1"),
			Constant:    MustParseHex("#cb4b16"),
			Class:       MustParseHex("#b58900"),
		},
	},
	{
		key: "solarized-light",
		theme: Theme{
			Name:        "Solarized Light",
			Background:  MustParseHex("#fdf6e3"),
			Foreground:  MustParseHex("#657b83"),
			Comment:     MustParseHex("#93a1a1"),
			Keyword:     MustParseHex("#859900"),
			String:      MustParseHex("#2aa198"),
			Number:      MustParseHex("#d33682"),
			Function:    MustParseHex("#268bd2"),
			Type:        MustParseHex("#b58900"),
			Variable:    MustParseHex("#657b83"),
			Operator:    MustParseHex("#859900"),
			Punctuation: MustParseHex("#586e75"),
			Constant:    MustParseHex("#cb4b16"),
			Class:       MustParseHex("#b58900"),
		},
	},
	{
		key: "one-dark",
		theme: Theme{
			Name:        "One Dark",
			Background:  MustParseHex("#282c34"),
			Foreground:  MustParseHex("#abb2bf"),
			Comment:     MustParseHex("#5c6370"),
			Keyword:     MustParseHex("#c678dd"),
			String:      MustParseHex("#98c379"),
			Number:      MustParseHex("#d19a66"),
			Function:    MustParseHex("#61afef"),
			Type:        MustParseHex("#e06c75"),
			Variable:    MustParseHex("#abb2bf"),
			Operator:    MustParseHex("#c678dd"),
			Punctuation: MustParseHex("#abb2bf"),
			Constant:    MustParseHex("#d19a66"),
			Class:       MustParseHex("#e5c07b"),
		},
	},
	{
		key: "gruvbox",
		theme: Theme{
			Name:        "Gruvbox",
			Background:  MustParseHex("#282828"),
			Foreground:  MustParseHex("#ebdbb2"),
			Comment:     MustParseHex("#928374"),
			Keyword:     MustParseHex("#fb4934"),
			String:      MustParseHex("#b8bb26"),
			Number:      MustParseHex("#d3869b"),
			Function:    MustParseHex("#fabd2f"),
			Type:        MustParseHex("#fe8019"),
			Variable:    MustParseHex("#ebdbb2"),
			Operator:    MustParseHex("#fb4934"),
			Punctuation: MustParseHex("#ebdbb2"),
			Constant:    MustParseHex("#d3869b"),
			Class:       MustParseHex("#8ec07c"),
		},
	},
}
