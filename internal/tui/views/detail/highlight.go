package detail

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
)

// Highlight renders code with terminal colors. The language is taken from
// the category when it names one, otherwise guessed from the code. Code is
// returned unchanged when no lexer applies or formatting fails.
func Highlight(code, category, styleName string) string {
	lexer := pickLexer(code, category)
	if lexer == nil {
		return code
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get(styleName)
	if style == nil {
		style = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return code
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var b strings.Builder
	if err := formatter.Format(&b, style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(b.String(), "\n")
}

func pickLexer(code, category string) chroma.Lexer {
	if category != "" {
		if l := lexers.Get(strings.ToLower(strings.TrimSpace(category))); l != nil {
			return l
		}
	}
	return lexers.Analyse(code)
}
