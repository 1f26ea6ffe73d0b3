package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
)

//go:embed *.tmpl
var files embed.FS

// Template names. Each needs <name>.subject.tmpl, <name>.text.tmpl and <name>.html.tmpl.
const Welcome = "welcome"

var ErrUnknownTemplate = errors.New("unknown email template")

// Message is one rendered email body set.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

var funcs = map[string]any{
	"default": defaultFn,
	"upper":   strings.ToUpper,
}

// {{ .FirstName | default "there" }}
func defaultFn(fallback, value any) any {
	switch v := value.(type) {
	case nil:
		return fallback
	case string:
		if strings.TrimSpace(v) == "" {
			return fallback
		}
	}
	return value
}

var (
	textSet = texttpl.Must(texttpl.New("text").Funcs(funcs).ParseFS(files, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("html").Funcs(funcs).ParseFS(files, "*.html.tmpl"))
)

// Render executes the three templates registered under name.
func Render(name string, data any) (Message, error) {
	if htmlSet.Lookup(name+".html.tmpl") == nil {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	var subject, text, html bytes.Buffer
	if err := textSet.ExecuteTemplate(&subject, name+".subject.tmpl", data); err != nil {
		return Message{}, fmt.Errorf("render %s subject: %w", name, err)
	}
	if err := textSet.ExecuteTemplate(&text, name+".text.tmpl", data); err != nil {
		return Message{}, fmt.Errorf("render %s text: %w", name, err)
	}
	if err := htmlSet.ExecuteTemplate(&html, name+".html.tmpl", data); err != nil {
		return Message{}, fmt.Errorf("render %s html: %w", name, err)
	}
	return Message{
		Subject: strings.TrimSpace(subject.String()),
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
