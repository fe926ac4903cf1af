// internal/browser/fonts/preprocessor.go
package fonts

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/mpdf/internal/browser/dom"
	"github.com/xkilldash9x/mpdf/internal/browser/parser"
	"github.com/xkilldash9x/mpdf/internal/config"
	"github.com/xkilldash9x/mpdf/internal/observability"
)

const defaultLoadConcurrency = 4

// Preprocessor resolves every font family a document uses before layout.
type Preprocessor struct {
	loader          Loader
	defaultFamily   string
	builtinFallback bool
	concurrency     int
	logger          *zap.Logger
}

// PreprocessorOption configures a Preprocessor.
type PreprocessorOption func(*Preprocessor)

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *zap.Logger) PreprocessorOption {
	return func(p *Preprocessor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithConcurrency bounds the number of font files read at once.
func WithConcurrency(n int) PreprocessorOption {
	return func(p *Preprocessor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// NewPreprocessor creates a preprocessor reading fonts from cfg.Dir.
func NewPreprocessor(cfg config.FontsConfig, opts ...PreprocessorOption) (*Preprocessor, error) {
	dir, err := cfg.ResolvedDir()
	if err != nil {
		return nil, err
	}
	p := &Preprocessor{
		loader:          Loader{Dir: dir},
		defaultFamily:   cfg.DefaultFamily,
		builtinFallback: cfg.BuiltinFallback,
		concurrency:     defaultLoadConcurrency,
		logger:          observability.GetLogger().Named("fonts"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Families returns the distinct font families used by the text nodes of doc,
// sorted. Text without a resolved font uses the default family.
func (p *Preprocessor) Families(doc *dom.Document) []string {
	seen := make(map[string]struct{})
	doc.Walk(doc.RootIndex(), func(el *dom.Element) bool {
		if el.IsTextNode() {
			seen[p.familyOf(el)] = struct{}{}
		}
		return true
	})

	families := make([]string, 0, len(seen))
	for f := range seen {
		families = append(families, f)
	}
	sort.Strings(families)
	return families
}

func (p *Preprocessor) familyOf(el *dom.Element) string {
	if v, ok := el.StyleProperty(parser.PropFont); ok {
		if name, ok := parser.AsString(v); ok && name != "" {
			return name
		}
	}
	return p.defaultFamily
}

// Process loads the fonts of doc into a new registry. Fonts that cannot be
// loaded are logged and left out; the only error is cancellation of ctx.
func (p *Preprocessor) Process(ctx context.Context, doc *dom.Document) (*Registry, error) {
	registry := NewRegistry()
	families := p.Families(doc)

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, family := range families {
		family := family
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			f, err := p.load(family)
			if err != nil {
				p.logger.Warn("unable to load font",
					zap.String("family", family),
					zap.Error(err))
				return nil
			}
			registry.Add(family, f)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if _, ok := registry.Font(p.defaultFamily); !ok && p.builtinFallback {
		f, err := LoadBuiltin(BuiltinFallbackFamily)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("using built-in font for default family",
			zap.String("family", p.defaultFamily),
			zap.String("builtin", BuiltinFallbackFamily))
		registry.Add(p.defaultFamily, f)
	}

	p.logger.Debug("fonts resolved",
		zap.Strings("requested", families),
		zap.Strings("loaded", registry.Families()))
	return registry, nil
}

// load reads the family's file, falling back to a built-in of the same name.
func (p *Preprocessor) load(family string) (*Font, error) {
	f, err := p.loader.Load(family)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, ErrFontNotFound) {
		if _, ok := builtinFonts[family]; ok {
			return LoadBuiltin(family)
		}
	}
	return nil, err
}
