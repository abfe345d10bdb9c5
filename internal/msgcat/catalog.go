// Package msgcat holds the user-facing text templates. Keys are dotted paths
// into nested YAML documents; values are text/template sources.
package msgcat

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"text/template"

	yaml "gopkg.in/yaml.v3"
)

//go:embed messages.en.yaml
var builtin []byte

// Catalog is safe for concurrent use. Parsed templates are cached per key.
type Catalog struct {
	mu     sync.RWMutex
	source map[string]string
	parsed map[string]*template.Template
}

// New loads the built-in English messages, then any *.yaml / *.yml files in
// overrideDir. A key may be overridden by at most one file.
func New(overrideDir string) (*Catalog, error) {
	c := &Catalog{
		source: make(map[string]string),
		parsed: make(map[string]*template.Template),
	}
	keys, err := decode(builtin)
	if err != nil {
		return nil, fmt.Errorf("builtin messages: %w", err)
	}
	c.merge(keys)

	if dir := strings.TrimSpace(overrideDir); dir != "" {
		if err := c.overlay(dir); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) overlay(dir string) error {
	names, err := yamlFiles(dir)
	if err != nil {
		return err
	}
	owner := make(map[string]string)
	for _, name := range names {
		raw, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		keys, err := decode(raw)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		for k := range keys {
			if prev, dup := owner[k]; dup {
				return fmt.Errorf("duplicate override key %q in %s and %s", k, prev, name)
			}
			owner[k] = name
		}
		c.merge(keys)
	}
	return nil
}

// yamlFiles lists YAML files in dir, sorted by name.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read message dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (c *Catalog) merge(keys map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range keys {
		c.source[k] = v
		delete(c.parsed, k)
	}
}

func decode(raw []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	out := make(map[string]string)
	if err := walk(doc, "", out); err != nil {
		return nil, err
	}
	return out, nil
}

func walk(node any, path string, out map[string]string) error {
	switch v := node.(type) {
	case nil:
		return nil
	case string:
		if path == "" {
			return fmt.Errorf("top-level string is not a message")
		}
		out[path] = v
		return nil
	case map[string]any:
		for k, child := range v {
			next := k
			if path != "" {
				next = path + "." + k
			}
			if err := walk(child, next, out); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%s: messages must be strings, got %T", path, v)
	}
}

// Has reports whether key has a non-blank template.
func (c *Catalog) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return strings.TrimSpace(c.source[strings.TrimSpace(key)]) != ""
}

// Render executes the template for key. Missing keys in data are errors, so
// callers keep their own fallback text.
func (c *Catalog) Render(key string, data any) (string, error) {
	tpl, err := c.lookup(strings.TrimSpace(key))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (c *Catalog) lookup(key string) (*template.Template, error) {
	c.mu.RLock()
	src := c.source[key]
	tpl := c.parsed[key]
	c.mu.RUnlock()
	if tpl != nil {
		return tpl, nil
	}
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("message %q not found", key)
	}
	tpl, err := template.New(key).Option("missingkey=error").Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse message %q: %w", key, err)
	}
	c.mu.Lock()
	c.parsed[key] = tpl
	c.mu.Unlock()
	return tpl, nil
}
