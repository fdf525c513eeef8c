package data

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/l1jgo/blueprint/internal/blueprint"
	"github.com/l1jgo/blueprint/internal/core/ecs"
	"github.com/l1jgo/blueprint/internal/property"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoCompiler  = errors.New("expression property found but no compiler configured")
	ErrMissingID   = errors.New("missing id")
	ErrDuplicateID = errors.New("duplicate id")
)

// exprKey marks a declarative property: `{expr: "..."}`.
const exprKey = "expr"

// ExpressionCompiler turns declarative sources into property expressions.
// *scripting.Engine implements it.
type ExpressionCompiler interface {
	Compile(src string) (property.Expression, error)
}

type componentYAML struct {
	ID         string         `yaml:"id"`
	Type       string         `yaml:"type"`
	Properties map[string]any `yaml:"properties"`
}

type definitionYAML struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	Components []componentYAML `yaml:"components"`
}

type initializerYAML struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	Definition string          `yaml:"definition"`
	Order      int             `yaml:"order"`
	Components []componentYAML `yaml:"components"`
}

type contentFile struct {
	path         string
	Definitions  []definitionYAML  `yaml:"definitions"`
	Initializers []initializerYAML `yaml:"initializers"`
}

// ContentFiles expands directories in paths to the YAML files they contain,
// sorted by name. Plain file paths are kept as given.
func ContentFiles(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat content %s: %w", p, err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("read content dir %s: %w", p, err)
		}
		var found []string
		for _, e := range entries {
			ext := strings.ToLower(filepath.Ext(e.Name()))
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			found = append(found, filepath.Join(p, e.Name()))
		}
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

// LoadContent reads content files into a new Catalog. Files are read and
// decoded in parallel; expressions are compiled and the catalog assembled on
// the calling goroutine in path order. compiler may be nil when the content
// has no expression properties.
func LoadContent(ctx context.Context, compiler ExpressionCompiler, paths ...string) (*blueprint.Catalog, error) {
	files := make([]contentFile, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read content: %w", err)
			}
			f := contentFile{path: path}
			if err := yaml.Unmarshal(raw, &f); err != nil {
				return fmt.Errorf("parse content %s: %w", path, err)
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := blueprint.NewCatalog()
	b := builder{compiler: compiler, catalog: catalog}
	for _, f := range files {
		if err := b.add(f); err != nil {
			return nil, fmt.Errorf("content %s: %w", f.path, err)
		}
	}
	return catalog, nil
}

type builder struct {
	compiler ExpressionCompiler
	catalog  *blueprint.Catalog
}

func (b *builder) add(f contentFile) error {
	for _, d := range f.Definitions {
		id := blueprint.DefinitionID(normalize(d.ID))
		if id == "" {
			return fmt.Errorf("definition %q: %w", d.Name, ErrMissingID)
		}
		if _, exists := b.catalog.Definition(id); exists {
			return fmt.Errorf("definition %q: %w", id, ErrDuplicateID)
		}
		entries, err := b.entries(d.Components)
		if err != nil {
			return fmt.Errorf("definition %q: %w", id, err)
		}
		def := &blueprint.Definition{ID: id, Name: normalize(d.Name), Entries: entries}
		if err := def.Validate(); err != nil {
			return fmt.Errorf("definition %q: %w", id, err)
		}
		b.catalog.PutDefinition(def)
	}

	for _, in := range f.Initializers {
		init := blueprint.NewInitializer(normalize(in.Name), blueprint.DefinitionID(normalize(in.Definition)))
		if in.ID != "" {
			init.ID = blueprint.InitializerID(normalize(in.ID))
		}
		if _, exists := b.catalog.Initializer(init.ID); exists {
			return fmt.Errorf("initializer %q: %w", init.ID, ErrDuplicateID)
		}
		init.Order = in.Order
		entries, err := b.entries(in.Components)
		if err != nil {
			return fmt.Errorf("initializer %q: %w", init.ID, err)
		}
		init.Entries = entries
		if err := init.Validate(); err != nil {
			return fmt.Errorf("initializer %q: %w", init.ID, err)
		}
		b.catalog.PutInitializer(init)
	}
	return nil
}

func (b *builder) entries(components []componentYAML) (blueprint.Entries, error) {
	entries := make(blueprint.Entries, 0, len(components))
	for _, c := range components {
		id := normalize(c.ID)
		if id == "" {
			return nil, fmt.Errorf("component of type %q: %w", c.Type, ErrMissingID)
		}
		props, err := b.properties(c.Properties)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", id, err)
		}
		entries = append(entries, blueprint.ComponentEntry{
			ID:         ecs.ComponentID(id),
			TypeID:     ecs.TypeID(normalize(c.Type)),
			Properties: props,
		})
	}
	return entries, nil
}

func (b *builder) properties(raw map[string]any) (*property.Definitions, error) {
	values := make(map[string]property.Value, len(raw))
	for name, v := range raw {
		name = normalize(name)
		if src, ok := expression(v); ok {
			if b.compiler == nil {
				return nil, fmt.Errorf("property %q: %w", name, ErrNoCompiler)
			}
			expr, err := b.compiler.Compile(src)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", name, err)
			}
			values[name] = property.Computed(expr)
			continue
		}
		values[name] = property.Literal(normalizeValue(v))
	}
	return property.FromValues(values), nil
}

// expression reports whether v is a mapping with the single key "expr".
func expression(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return "", false
	}
	src, ok := m[exprKey].(string)
	if !ok {
		return "", false
	}
	return normalize(src), true
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// normalizeValue NFC-normalises every string inside v. Leading and trailing
// space in literal text is kept.
func normalizeValue(v any) any {
	switch x := v.(type) {
	case string:
		return norm.NFC.String(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalizeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[norm.NFC.String(k)] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
