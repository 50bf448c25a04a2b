package types

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ScyllaDigital/graphql-go/ast"
)

// TypeLoader resolves a type by name on demand. It is consulted only for
// names not reachable from the schema roots, and must return the same
// instance every time it is asked for a given name.
type TypeLoader func(name string) NamedType

type SchemaConfig struct {
	Query        *Object
	Mutation     *Object
	Subscription *Object
	// Types forces otherwise unreachable types into the schema, e.g. object
	// types only ever returned behind an interface.
	Types      []NamedType
	Directives []*Directive
	TypeLoader TypeLoader
}

// Schema ties the root types together and indexes everything reachable from
// them. A Schema is immutable and safe for concurrent use.
type Schema struct {
	query        *Object
	mutation     *Object
	subscription *Object
	directives   []*Directive
	extraTypes   []NamedType
	loader       TypeLoader

	once      sync.Once
	typeMap   map[string]NamedType
	typeNames []string
	possible  map[Abstract][]*Object
	conflicts []string

	mu     sync.Mutex
	loaded map[string]NamedType
}

// NewSchema builds and validates a schema.
func NewSchema(cfg SchemaConfig) (*Schema, error) {
	s := &Schema{
		query:        cfg.Query,
		mutation:     cfg.Mutation,
		subscription: cfg.Subscription,
		directives:   cfg.Directives,
		extraTypes:   cfg.Types,
		loader:       cfg.TypeLoader,
	}
	if s.directives == nil {
		s.directives = SpecifiedDirectives
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNewSchema is NewSchema, panicking on invalid schemas.
func MustNewSchema(cfg SchemaConfig) *Schema {
	s, err := NewSchema(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) QueryType() *Object        { return s.query }
func (s *Schema) MutationType() *Object     { return s.mutation }
func (s *Schema) SubscriptionType() *Object { return s.subscription }

func (s *Schema) Directives() []*Directive { return s.directives }

func (s *Schema) Directive(name string) (*Directive, bool) {
	for _, d := range s.directives {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// TypeMap returns every named type reachable from the schema roots, keyed by
// name. Types served by the loader appear only once requested.
func (s *Schema) TypeMap() map[string]NamedType {
	s.resolveTypes()
	return s.typeMap
}

// TypeNames returns the reachable type names in sorted order.
func (s *Schema) TypeNames() []string {
	s.resolveTypes()
	return s.typeNames
}

// GetType looks up a named type, consulting the loader for unknown names.
func (s *Schema) GetType(name string) NamedType {
	s.resolveTypes()
	if t, ok := s.typeMap[name]; ok {
		return t
	}
	if s.loader == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.loaded[name]; ok {
		// The loader answered for this name before; ask again and insist on
		// the same instance.
		if again := s.loader(name); again != t {
			panic(fmt.Sprintf("graphql: type loader returned a different instance for type %q", name))
		}
		return t
	}
	t := s.loader(name)
	if t == nil {
		return nil
	}
	if t.TypeName() != name {
		panic(fmt.Sprintf("graphql: type loader returned type %q when asked for %q", t.TypeName(), name))
	}
	if s.loaded == nil {
		s.loaded = make(map[string]NamedType)
	}
	s.loaded[name] = t
	return t
}

// PossibleTypes returns the object types an abstract type can resolve to.
func (s *Schema) PossibleTypes(t Abstract) []*Object {
	s.resolveTypes()
	return s.possible[t]
}

func (s *Schema) IsPossibleType(t Abstract, obj *Object) bool {
	for _, p := range s.PossibleTypes(t) {
		if p == obj {
			return true
		}
	}
	return false
}

func (s *Schema) resolveTypes() {
	s.once.Do(func() {
		s.typeMap = make(map[string]NamedType)
		s.possible = make(map[Abstract][]*Object)

		var reduce func(t Type)
		reduce = func(t Type) {
			named := Named(t)
			if named == nil {
				return
			}
			if seen, ok := s.typeMap[named.TypeName()]; ok {
				if seen != named {
					s.conflicts = append(s.conflicts, named.TypeName())
				}
				return
			}
			s.typeMap[named.TypeName()] = named

			switch named := named.(type) {
			case *Object:
				for _, iface := range named.Interfaces() {
					s.possible[iface] = append(s.possible[iface], named)
					reduce(iface)
				}
				for _, f := range named.Fields() {
					reduce(f.Type)
					for _, arg := range f.Args {
						reduce(arg.Type)
					}
				}
			case *Interface:
				for _, parent := range named.Interfaces() {
					reduce(parent)
				}
				for _, f := range named.Fields() {
					reduce(f.Type)
					for _, arg := range f.Args {
						reduce(arg.Type)
					}
				}
			case *Union:
				for _, member := range named.Types() {
					s.possible[named] = append(s.possible[named], member)
					reduce(member)
				}
			case *InputObject:
				for _, f := range named.Fields() {
					reduce(f.Type)
				}
			}
		}

		if s.query != nil {
			reduce(s.query)
		}
		if s.mutation != nil {
			reduce(s.mutation)
		}
		if s.subscription != nil {
			reduce(s.subscription)
		}
		for _, t := range s.extraTypes {
			reduce(t)
		}
		for _, d := range s.directives {
			for _, arg := range d.Args {
				reduce(arg.Type)
			}
		}
		// The standard scalars are part of every schema, reachable or not;
		// query documents may name them in variable definitions.
		for _, t := range []NamedType{Int, Float, String, Boolean, ID} {
			reduce(t)
		}
		for _, t := range introspectionTypes {
			reduce(t)
		}

		s.typeNames = make([]string, 0, len(s.typeMap))
		for name := range s.typeMap {
			s.typeNames = append(s.typeNames, name)
		}
		sort.Strings(s.typeNames)
	})
}

// TypeFromAST resolves a type reference from a query document against the
// schema. It returns nil when the named type is unknown.
func TypeFromAST(s *Schema, ref ast.Type) Type {
	switch ref := ref.(type) {
	case *ast.Named:
		t := s.GetType(ref.Name.Name)
		if t == nil {
			return nil
		}
		return t
	case *ast.ListType:
		inner := TypeFromAST(s, ref.OfType)
		if inner == nil {
			return nil
		}
		return NewList(inner)
	case *ast.NonNullType:
		inner := TypeFromAST(s, ref.OfType)
		if inner == nil {
			return nil
		}
		return NewNonNull(inner)
	}
	return nil
}
