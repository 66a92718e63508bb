// Package i18n resolves localization keys against a translation catalog.
package i18n

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Source produces the raw catalog document. YAML is a superset of JSON so
// either format is accepted.
type Source func(ctx context.Context) ([]byte, error)

// FileSource reads the catalog from a local path.
func FileSource(path string) Source {
	return func(context.Context) ([]byte, error) {
		return os.ReadFile(path)
	}
}

// ObjectReader is the subset of an object store the catalog needs.
type ObjectReader interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

// ObjectSource reads the catalog from an object store key.
func ObjectSource(store ObjectReader, key string) Source {
	return func(ctx context.Context) ([]byte, error) {
		rc, err := store.Download(ctx, key)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
}

// Catalog is a flattened key -> text table. Nested documents are addressed
// with dotted keys ("OFFER.LABEL_EMAIL"). Safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	entries map[string]string
	source  Source
}

// NewCatalog builds a catalog from an in-memory table.
func NewCatalog(entries map[string]string) *Catalog {
	c := &Catalog{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		c.entries[k] = v
	}
	return c
}

// Load reads and parses src. The source is kept for Reload.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	c := &Catalog{source: src}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the catalog source and swaps the table atomically. On
// error the previous table stays in place.
func (c *Catalog) Reload(ctx context.Context) error {
	if c.source == nil {
		return fmt.Errorf("catalog has no source")
	}
	raw, err := c.source(ctx)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	entries, err := parse(raw)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()
	return nil
}

// Resolve returns the text for key, or key itself when it is unknown.
func (c *Catalog) Resolve(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.entries[key]; ok {
		return v
	}
	return key
}

// Keys lists all known keys in sorted order.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parse(raw []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	entries := make(map[string]string)
	if err := flatten("", doc, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) error {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			if err := flatten(key, val, out); err != nil {
				return err
			}
		case string:
			out[key] = val
		case nil:
			out[key] = ""
		case []any:
			return fmt.Errorf("catalog key %q: lists are not supported", key)
		default:
			out[key] = strings.TrimSpace(fmt.Sprint(val))
		}
	}
	return nil
}
