package generator

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
)

// maxSanitizePasses bounds the fixed-point iteration; realistic inputs
// settle within two or three passes.
const maxSanitizePasses = 8

// Sanitize reduces arbitrary model output to plain text. Backend responses
// mix raw HTML, markdown and prose: tags are stripped first (keeping their
// text), the remainder is rendered as markdown to consume heading and
// emphasis markers, and the rendered tags are stripped again.
//
// One pass is not a fixed point on its own: markdown escapes unescape to
// characters that are themselves live markdown (`\_x\_` becomes `_x_`), so
// the pass repeats until the text stops changing. The result never contains
// '<' or '>' and the function is idempotent.
func Sanitize(s string) string {
	out := strings.TrimSpace(s)
	for i := 0; i < maxSanitizePasses; i++ {
		next := sanitizeOnce(out)
		if next == out {
			return out
		}
		out = next
	}
	return out
}

func sanitizeOnce(s string) string {
	if s == "" {
		return ""
	}

	text := stripTags(s)

	var rendered bytes.Buffer
	if err := goldmark.Convert([]byte(text), &rendered); err != nil {
		// Markdown rendering is best-effort; keep the tag-stripped text.
		rendered.Reset()
		rendered.WriteString(text)
	}
	text = stripTags(rendered.String())

	// Anything still angle-bracketed at this point is stray, not structure.
	text = strings.ReplaceAll(text, "<", "")
	text = strings.ReplaceAll(text, ">", "")

	return strings.Join(strings.Fields(text), " ")
}

// stripTags keeps only text nodes, joining them with spaces so adjacent
// block contents do not run together. Entities are decoded by the tokenizer.
func stripTags(s string) string {
	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			return b.String()
		}
		if tt == html.TextToken {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.Write(tok.Text())
		}
	}
}
