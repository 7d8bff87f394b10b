package analyze

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// signatureTemplate renders a method signature for the documentation
// renderer. It must produce a single line without surrounding whitespace.
var signatureTemplate = template.Must(template.New("signature").
	Funcs(template.FuncMap{"union": func(types []string) string { return strings.Join(types, "|") }}).
	Parse(`<div class="cm-signature">` +
		`<span class="type">{{.Return}}</span> <span class="name">{{.Name}}</span>` +
		`(<span class="args">` +
		`{{- range $i, $p := .Params}}{{if $i}}, {{end}}` +
		`{{- if $p}}<span class="{{if $p.HasHint}}arg hint{{else}}arg{{end}}" title="{{$p.Summary}}">` +
		`<span class="type">{{if $p.HasTypes}}{{union $p.DeclaredTypes}} {{end}}</span>${{$p.Name}}</span>` +
		`{{- else}}???{{end}}` +
		`{{- end}}</span>)</div>`))

// FormatSignature renders a method signature: return type, name and the
// comma-separated parameter list. A nil parameter renders as "???".
func FormatSignature(returnType, name string, params []*MemberDescriptor) (string, error) {
	var buf bytes.Buffer

	err := signatureTemplate.Execute(&buf, struct {
		Return string
		Name   string
		Params []*MemberDescriptor
	}{
		Return: returnType,
		Name:   name,
		Params: params,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render signature of %s: %w", name, err)
	}

	return buf.String(), nil
}
