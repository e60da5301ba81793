package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	jsoniter "github.com/json-iterator/go"

	"github.com/rawbytedev/zerocast/schema"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w io.Writer, v *schema.View) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

func writeTable(w io.Writer, v *schema.View, rest int, styled bool) error {
	style := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", style(titleStyle, fmt.Sprintf("%s (%d bytes)", v.Schema, v.Size)))

	nameWidth := 4
	for _, f := range v.Fields {
		nameWidth = max(nameWidth, len(f.Name))
	}
	for _, f := range v.Fields {
		name := fmt.Sprintf("%-*s", nameWidth, f.Name)
		typ := fmt.Sprintf("%-5s", f.Type)
		fmt.Fprintf(&b, "  %s  %s  %v\n", style(nameStyle, name), style(typeStyle, typ), f.Value)
	}
	if v.Tail != nil {
		name := fmt.Sprintf("%-*s", nameWidth, "tail")
		fmt.Fprintf(&b, "  %s  %s  %v\n", style(nameStyle, name), style(typeStyle, fmt.Sprintf("[%d]", len(v.Tail))), v.Tail)
	}
	if rest > 0 {
		fmt.Fprintf(&b, "%s\n", style(helpStyle, fmt.Sprintf("%d bytes not covered", rest)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}
