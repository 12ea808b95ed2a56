// Package content fetches view templates and renders them for the terminal.
package content

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

//go:embed views
var embedded embed.FS

// Provider returns the raw template stored at locator.
type Provider interface {
	Fetch(ctx context.Context, locator string) (string, error)
}

// Locator returns the template path for a view name.
func Locator(view string) string { return path.Join("content", view+".md") }

// Component returns the template path for a shared component.
func Component(name string) string { return path.Join("components", name+".md") }

// FSProvider reads templates from a list of file systems, first match wins.
type FSProvider struct {
	layers []fs.FS
}

// NewProvider returns a provider over the embedded templates. When dir is set
// its files take precedence over the embedded ones.
func NewProvider(dir string) *FSProvider {
	sub, err := fs.Sub(embedded, "views")
	if err != nil {
		panic(err)
	}
	p := &FSProvider{}
	if dir != "" {
		p.layers = append(p.layers, os.DirFS(dir))
	}
	p.layers = append(p.layers, sub)
	return p
}

// NewFSProvider serves templates from fsys only.
func NewFSProvider(fsys fs.FS) *FSProvider {
	return &FSProvider{layers: []fs.FS{fsys}}
}

// Fetch returns the first layer's copy of locator. Within a layer an HTML
// sibling (about.html for about.md) is converted to markdown when the
// markdown file is absent.
func (p *FSProvider) Fetch(ctx context.Context, locator string) (string, error) {
	for _, l := range p.layers {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		b, err := fs.ReadFile(l, locator)
		if err == nil {
			return string(b), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read %s: %w", locator, err)
		}
		alt := htmlSibling(locator)
		if alt == "" {
			continue
		}
		b, err = fs.ReadFile(l, alt)
		if err == nil {
			return FromHTML(b)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("read %s: %w", alt, err)
		}
	}
	return "", fmt.Errorf("template %s: %w", locator, fs.ErrNotExist)
}
