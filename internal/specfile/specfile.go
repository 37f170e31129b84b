package specfile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/chainspec/internal/dto"
	"github.com/aretw0/chainspec/pkg/adapters/file"
	"github.com/aretw0/chainspec/pkg/adapters/memory"
	"github.com/aretw0/chainspec/pkg/adapters/redis"
	"github.com/aretw0/chainspec/pkg/config"
	"github.com/aretw0/chainspec/pkg/domain"
	"github.com/aretw0/chainspec/pkg/dsl"
	"github.com/aretw0/chainspec/pkg/ports"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidDocument = errors.New("invalid spec file")
	ErrInvalidEntry    = errors.New("invalid chain entry")
)

// Spec is a compiled spec file.
type Spec struct {
	Name    string
	Root    *domain.Node
	Source  ports.SubjectSource
	Config  config.Overrides
	closers []func() error
}

// Close releases the resources held by the subject source.
func (s *Spec) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// Load reads and parses the spec file at path.
func Load(path string) (*dto.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a spec document.
func Parse(data []byte) (*dto.Document, error) {
	var doc dto.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if len(doc.Chains) == 0 {
		return nil, fmt.Errorf("%w: no chains", ErrInvalidDocument)
	}
	if n := countSources(doc.Subject); n > 1 {
		return nil, fmt.Errorf("%w: subject sets %d sources, want at most one", ErrInvalidDocument, n)
	}
	if r := doc.Subject.Redis; r != nil && r.Key == "" {
		return nil, fmt.Errorf("%w: redis subject needs a key", ErrInvalidDocument)
	}
	return &doc, nil
}

// Compile builds the action tree of doc. The root step fetches the subject through
// the source selected by the document, using ctx for every fetch.
func Compile(ctx context.Context, doc *dto.Document, opts ...dsl.Option) (*Spec, error) {
	spec := &Spec{
		Name:   doc.Name,
		Config: doc.Config,
	}
	spec.Source, spec.closers = source(doc.Subject)

	description := doc.Name
	if description == "" {
		description = describe(doc.Subject)
	}

	fetch := spec.Source
	b := dsl.New(description, func(any) (any, error) {
		return fetch.Fetch(ctx)
	}, opts...)

	for i, chain := range doc.Chains {
		h := b.Subject()
		for j, raw := range chain {
			next, err := apply(h, raw)
			if err != nil {
				_ = spec.Close()
				return nil, fmt.Errorf("chain %d, entry %d: %w", i+1, j+1, err)
			}
			h = next
		}
	}

	root, err := b.Build()
	if err != nil {
		_ = spec.Close()
		return nil, err
	}
	spec.Root = root
	return spec, nil
}

// DecodeEntry turns one raw chain entry into an Entry.
func DecodeEntry(raw any) (dto.Entry, error) {
	var e dto.Entry
	if name, ok := raw.(string); ok {
		switch name {
		case domain.DescriptionShould:
			e.Should = true
		case domain.DescriptionShouldEventually:
			e.ShouldEventually = true
		default:
			e.Get = name
		}
		return e, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &e,
	})
	if err != nil {
		return e, err
	}
	if err := decoder.Decode(raw); err != nil {
		return e, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	set := 0
	for _, ok := range []bool{e.Get != "", e.Call != "", e.Should, e.ShouldEventually} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return e, fmt.Errorf("%w: want exactly one of get, call, should, shouldEventually", ErrInvalidEntry)
	}
	if len(e.Args) > 0 && e.Call == "" {
		return e, fmt.Errorf("%w: args without call", ErrInvalidEntry)
	}
	return e, nil
}

func apply(h *dsl.Handle, raw any) (*dsl.Handle, error) {
	e, err := DecodeEntry(raw)
	if err != nil {
		return nil, err
	}
	switch {
	case e.Should:
		return h.Should(), nil
	case e.ShouldEventually:
		return h.ShouldEventually(), nil
	case e.Call != "":
		return h.Call(e.Call, e.Args...), nil
	default:
		return h.Get(e.Get), nil
	}
}

func source(s dto.Subject) (ports.SubjectSource, []func() error) {
	switch {
	case s.Redis != nil:
		src := redis.New(s.Redis.Addr, s.Redis.Password, s.Redis.DB, s.Redis.Key, redis.WithPrefix(s.Redis.Prefix))
		return src, []func() error{src.Close}
	case s.File != "":
		return file.New(s.File), nil
	default:
		return memory.NewSource(s.Value), nil
	}
}

func describe(s dto.Subject) string {
	switch {
	case s.Redis != nil:
		return fmt.Sprintf("reading redis key %s%s", s.Redis.Prefix, s.Redis.Key)
	case s.File != "":
		return "reading " + s.File
	default:
		return "subject"
	}
}

func countSources(s dto.Subject) int {
	n := 0
	if s.Redis != nil {
		n++
	}
	if s.File != "" {
		n++
	}
	if s.Value != nil {
		n++
	}
	return n
}
