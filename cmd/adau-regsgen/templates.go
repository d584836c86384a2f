package main

import (
	"fmt"
	"strings"
	"text/template"
)

var funcMap = template.FuncMap{
	"hexByte": func(v uint8) string { return fmt.Sprintf("0x%02X", v) },
	"quote":   func(s string) string { return fmt.Sprintf("%q", s) },
}

var templates = template.Must(template.New("").Funcs(funcMap).Parse(registersTmpl))

const registersTmpl = `
{{- define "registers" -}}
// Code generated by adau-regsgen. DO NOT EDIT.

package {{.Package}}

func generatedRegisters() []RegisterDef {
	return []RegisterDef{
{{- range .Registers}}
		{Address: {{hexByte .Address}}, Name: {{quote .Name}}, Description: {{quote .Description}}
		{{- if .Volatile}}, Volatile: true{{end}}
		{{- if .ToolOnly}}, ToolOnly: true{{end}}},
{{- end}}
	}
}
{{end}}`

type registersData struct {
	Package   string
	Registers []RawRegisterDef
}

// GenerateRegisters renders the register table for pkg.
func GenerateRegisters(m *RawRegisterMap, pkg string) (string, error) {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, "registers", registersData{Package: pkg, Registers: m.Registers}); err != nil {
		return "", fmt.Errorf("template registers: %w", err)
	}
	return b.String(), nil
}
