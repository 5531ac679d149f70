// Package catalog is the model registry of an application described by a
// YAML manifest and backed by a live database schema.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"appwrap/internal/db"
	"appwrap/internal/introspect"
	"appwrap/internal/logger"
	"appwrap/internal/model"
)

// SchemaReader reads table metadata for a connection.
type SchemaReader func(ctx context.Context, driver, dsn string, timeoutSec int) (introspect.Schema, error)

var errNotLoaded = errors.New("catalog not loaded")

// Catalog implements model.Registry.
type Catalog struct {
	manifestPath string
	driver       string
	dsn          string
	timeout      int
	readSchema   SchemaReader

	loaded   bool
	manifest Manifest
	schema   introspect.Schema
	byName   map[string]*descriptor
}

// New returns a catalog for the manifest at manifestPath whose tables live
// in the database reached through driver and dsn.
func New(manifestPath, driver, dsn string, timeoutSec int) *Catalog {
	return &Catalog{
		manifestPath: manifestPath,
		driver:       driver,
		dsn:          dsn,
		timeout:      timeoutSec,
		readSchema:   db.ConnectAndExtract,
	}
}

// SetSchemaReader replaces the database reader.
func (c *Catalog) SetSchemaReader(r SchemaReader) {
	c.readSchema = r
}

// Load reads the manifest and the database schema. It is the registry's
// eager-load step; calling it again reloads both.
func (c *Catalog) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := LoadManifest(c.manifestPath)
	if err != nil {
		return fmt.Errorf("manifest %s: %w", c.manifestPath, err)
	}
	s, err := c.readSchema(ctx, c.driver, c.dsn, c.timeout)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	c.use(m, s)
	logger.Debug("catalog loaded %d models, %d tables", len(m.Models), len(s.Tables))
	return nil
}

func (c *Catalog) use(m Manifest, s introspect.Schema) {
	c.manifest = m
	c.schema = s
	c.byName = make(map[string]*descriptor, len(m.Models))
	for i := range m.Models {
		spec := m.Models[i]
		if _, dup := c.byName[spec.Name]; dup {
			// Descriptors still lists both; discovery rejects the duplicate.
			continue
		}
		c.byName[spec.Name] = &descriptor{spec: spec, cat: c}
	}
	c.loaded = true
}

// Descriptors returns one descriptor per manifest entry, in manifest order.
func (c *Catalog) Descriptors() ([]model.Descriptor, error) {
	if !c.loaded {
		return nil, errNotLoaded
	}
	out := make([]model.Descriptor, 0, len(c.manifest.Models))
	for _, spec := range c.manifest.Models {
		out = append(out, &descriptor{spec: spec, cat: c})
	}
	return out, nil
}

// lookup finds a declared model by name.
func (c *Catalog) lookup(name string) (*descriptor, bool) {
	d, ok := c.byName[name]
	return d, ok
}
