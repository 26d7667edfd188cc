package rules

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gpu-ca/internal/grid"
)

//go:embed draw.wgsl
var drawTemplate string

type shaderParams struct {
	Rows      int
	GroupSize int
	Params    map[string]int
}

func renderShader(name, src string, cfg grid.Config, params map[string]int) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse %s shader: %w", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, shaderParams{Rows: cfg.Rows, GroupSize: cfg.GroupSize, Params: params}); err != nil {
		return "", fmt.Errorf("render %s shader: %w", name, err)
	}
	return b.String(), nil
}
