// Package compiler defines the template compilation strategy injected into
// the build pipeline. A Compiler turns template source into a Template whose
// Render produces markup; engines that emit static markup directly are
// expressed as templates ignoring their render context.
package compiler

import (
	"fmt"
	"strings"
	"text/template"
)

// Template is a compiled example template.
type Template interface {
	// Render produces markup for the given data context. Compilers whose
	// output is static markup ignore data.
	Render(data any) (string, error)
}

// Compiler compiles template source text. sourcePath identifies the origin
// for error reporting and engine-specific lookups.
type Compiler interface {
	Compile(source, sourcePath string) (Template, error)
}

// RenderFunc adapts a function to the Template interface.
type RenderFunc func(data any) (string, error)

// Render implements Template.
func (f RenderFunc) Render(data any) (string, error) {
	return f(data)
}

// CompileFunc adapts a function to the Compiler interface.
type CompileFunc func(source, sourcePath string) (Template, error)

// Compile implements Compiler.
func (f CompileFunc) Compile(source, sourcePath string) (Template, error) {
	return f(source, sourcePath)
}

// GoTemplateCompiler compiles examples with text/template. The configured
// Funcs are available to every template.
type GoTemplateCompiler struct {
	Funcs template.FuncMap
}

// Compile implements Compiler.
func (c *GoTemplateCompiler) Compile(source, sourcePath string) (Template, error) {
	tpl := template.New(sourcePath)
	if c.Funcs != nil {
		tpl = tpl.Funcs(c.Funcs)
	}
	tpl, err := tpl.Parse(source)
	if err != nil {
		return nil, err
	}

	return RenderFunc(func(data any) (string, error) {
		var out strings.Builder
		if err := tpl.Execute(&out, data); err != nil {
			return "", err
		}

		return out.String(), nil
	}), nil
}

// StaticCompiler passes template source through unchanged. It serves engines
// whose examples are plain markup.
type StaticCompiler struct{}

// Compile implements Compiler.
func (StaticCompiler) Compile(source, _ string) (Template, error) {
	return RenderFunc(func(any) (string, error) {
		return source, nil
	}), nil
}

// ByName returns a built-in compiler by its configuration name.
func ByName(name string) (Compiler, error) {
	switch name {
	case "", "go-template":
		return &GoTemplateCompiler{}, nil
	case "static":
		return StaticCompiler{}, nil
	default:
		return nil, fmt.Errorf("unknown compiler %q", name)
	}
}
