package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
)

//go:embed *.tmpl
var FS embed.FS

var subjects = map[string]string{
	"welcome": "Welcome to BG Companion",
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case nil:
		return fallback
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	default:
		return value
	}
}

// Render renders the named template into subject, text and html bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	ht, err := htmpl.New(name + ".html.tmpl").Funcs(htmpl.FuncMap{"default": defaultFn}).ParseFS(FS, name+".html.tmpl")
	if err != nil {
		return "", "", "", err
	}
	tt, err := texttpl.New(name + ".txt.tmpl").Funcs(texttpl.FuncMap{"default": defaultFn}).ParseFS(FS, name+".txt.tmpl")
	if err != nil {
		return "", "", "", err
	}

	var hb, tb bytes.Buffer
	if err := ht.Execute(&hb, data); err != nil {
		return "", "", "", err
	}
	if err := tt.Execute(&tb, data); err != nil {
		return "", "", "", err
	}
	return subject, tb.String(), hb.String(), nil
}
