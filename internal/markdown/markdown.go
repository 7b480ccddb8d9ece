// Package markdown renders Markdown fragments (member bios, news items,
// project descriptions) to HTML for page templates.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

// ToHTML renders a Markdown fragment to an HTML fragment.
func ToHTML(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// ToHTMLOrText renders Markdown, degrading to escaped plain text when
// conversion fails. Data-file content never breaks a build.
func ToHTMLOrText(src string) template.HTML {
	out, err := ToHTML(src)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return out
}
