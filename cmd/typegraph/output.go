package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"typegraph/internal/analyze"
	"typegraph/internal/common"
	"typegraph/internal/diagnostic"
)

// renameAll returns copies of descs with every type name passed through
// rename. Method signatures are rendered again from the renamed parts.
func renameAll(descs []*analyze.TypeDescriptor, rename func(string) string) ([]*analyze.TypeDescriptor, error) {
	if rename == nil {
		return descs, nil
	}

	out := make([]*analyze.TypeDescriptor, 0, len(descs))
	for _, d := range descs {
		members, err := renameMembers(d.Members, rename)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", d.Name, err)
		}

		c := *d
		c.Name = rename(d.Name)
		c.Members = members
		out = append(out, &c)
	}

	return out, nil
}

func renameMembers(members []*analyze.MemberDescriptor, rename func(string) string) ([]*analyze.MemberDescriptor, error) {
	if members == nil {
		return nil, nil
	}

	out := make([]*analyze.MemberDescriptor, 0, len(members))
	for _, m := range members {
		if m == nil {
			out = append(out, nil)

			continue
		}

		params, err := renameMembers(m.Params, rename)
		if err != nil {
			return nil, err
		}

		c := *m
		if m.DeclaredTypes != nil {
			c.DeclaredTypes = make([]string, len(m.DeclaredTypes))
			for i, t := range m.DeclaredTypes {
				c.DeclaredTypes[i] = rename(t)
			}
		}
		c.ReturnType = common.RewriteNames(m.ReturnType, rename)
		c.Params = params

		if m.Signature != "" {
			signature, err := analyze.FormatSignature(c.ReturnType, c.Name, c.Params)
			if err != nil {
				return nil, err
			}

			// Summary of a method starts with its signature
			c.Summary = signature + strings.TrimPrefix(m.Summary, m.Signature)
			c.Signature = signature
		}

		out = append(out, &c)
	}

	return out, nil
}

// printYAML writes descs as a YAML sequence.
func printYAML(w io.Writer, descs []*analyze.TypeDescriptor) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(descs); err != nil {
		return fmt.Errorf("failed to encode descriptors: %w", err)
	}

	return enc.Close()
}

// printText writes a human-readable listing of descs.
func printText(w io.Writer, descs []*analyze.TypeDescriptor) {
	typeName := color.New(color.FgCyan, color.Bold)
	memberName := color.New(color.FgGreen)
	faint := color.New(color.Faint)

	for i, d := range descs {
		if i > 0 {
			fmt.Fprintln(w)
		}

		typeName.Fprint(w, d.Name)
		if d.Summary != "" {
			faint.Fprintf(w, "  %s", firstLine(d.Summary))
		}
		fmt.Fprintln(w)

		if d.Link != "" {
			fmt.Fprintf(w, "  see %s\n", d.Link)
		}

		for _, m := range d.Members {
			fmt.Fprintf(w, "  %-9s ", m.Kind)
			memberName.Fprint(w, m.Name)

			switch m.Kind {
			case analyze.KindMethod:
				fmt.Fprintf(w, "(%s) %s", formatParams(m.Params), m.ReturnType)
			default:
				fmt.Fprintf(w, " %s", formatTypes(m.DeclaredTypes))
			}

			if m.Source == analyze.SourceAnnotation {
				faint.Fprint(w, " [doc]")
			}
			fmt.Fprintln(w)
		}
	}
}

func formatTypes(types []string) string {
	if len(types) == 0 {
		return "-"
	}

	return strings.Join(types, "|")
}

func formatParams(params []*analyze.MemberDescriptor) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p == nil {
			parts = append(parts, "???")

			continue
		}

		if p.HasTypes() {
			parts = append(parts, formatTypes(p.DeclaredTypes)+" $"+p.Name)
		} else {
			parts = append(parts, "$"+p.Name)
		}
	}

	return strings.Join(parts, ", ")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")

	return line
}

// printDiagnostics writes all diagnostics, most severe first.
func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics) {
	styles := map[diagnostic.DiagnosticSeverity]*color.Color{
		diagnostic.DiagnosticError:   color.New(color.FgRed, color.Bold),
		diagnostic.DiagnosticWarning: color.New(color.FgYellow, color.Bold),
		diagnostic.DiagnosticInfo:    color.New(color.FgBlue),
	}

	for _, d := range diags.All() {
		styles[d.Severity].Fprintf(w, "%s ", d.Severity)
		fmt.Fprintln(w, d.String())
	}
}
