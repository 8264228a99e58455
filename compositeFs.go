//go:build !tinygo

package pitchfork

import (
	"html/template"
	"io/fs"
)

// CompositeFS is a stack of read-only file systems.  A thing layers
// its own web assets on top of the base assets, overriding by name.
type CompositeFS struct {
	stack []fs.FS
}

func NewCompositeFS() *CompositeFS {
	return &CompositeFS{}
}

// AddFS pushes fsys on the stack.  Files in fsys shadow same-named
// files lower in the stack.
func (c *CompositeFS) AddFS(fsys fs.FS) {
	c.stack = append([]fs.FS{fsys}, c.stack...)
}

// Open opens the named file from the top-most layer holding it
func (c *CompositeFS) Open(name string) (fs.File, error) {
	for _, fsys := range c.stack {
		if file, err := fsys.Open(name); err == nil {
			return file, nil
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// ParseFS parses the templates matching patterns from every layer,
// bottom layer first, so upper layers override same-named templates
func (c *CompositeFS) ParseFS(patterns ...string) (*template.Template, error) {
	tmpl := template.New("")
	for i := len(c.stack) - 1; i >= 0; i-- {
		for _, pattern := range patterns {
			matches, err := fs.Glob(c.stack[i], pattern)
			if err != nil {
				return nil, err
			}
			if len(matches) == 0 {
				continue
			}
			if _, err := tmpl.ParseFS(c.stack[i], pattern); err != nil {
				return nil, err
			}
		}
	}
	return tmpl, nil
}
