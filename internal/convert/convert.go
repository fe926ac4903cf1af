// internal/convert/convert.go
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xkilldash9x/mpdf/internal/browser/dom"
	"github.com/xkilldash9x/mpdf/internal/browser/fonts"
	"github.com/xkilldash9x/mpdf/internal/browser/layout"
	"github.com/xkilldash9x/mpdf/internal/browser/markup"
	"github.com/xkilldash9x/mpdf/internal/config"
	"github.com/xkilldash9x/mpdf/internal/render"
)

// Result holds the intermediate products of one conversion.
type Result struct {
	Document *dom.Document
	Fonts    *fonts.Registry
	Root     *layout.LayoutElement
}

// Pipeline runs markup through cascade, font loading, layout and rendering.
type Pipeline struct {
	cfg    config.Interface
	logger *zap.Logger
}

func NewPipeline(cfg config.Interface, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, logger: logger}
}

// ConvertFile converts the markup file at inputPath into outputPath. The
// output format comes from configuration or the output extension.
func (p *Pipeline) ConvertFile(ctx context.Context, inputPath, outputPath string) (err error) {
	logger := p.logger.With(zap.String("run_id", uuid.NewString()))
	logger.Info("starting conversion",
		zap.String("input", inputPath),
		zap.String("output", outputPath))

	format, err := markup.FormatForPath(inputPath)
	if err != nil {
		return err
	}
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file %s: %w", inputPath, err)
	}
	defer f.Close()

	result, err := p.build(ctx, logger, f, format)
	if err != nil {
		return err
	}

	renderer, err := render.New(p.cfg.Output().Format, outputPath, p.cfg.Page())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := renderer.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close output: %w", cerr))
		}
	}()

	if err := renderer.Render(p.page(result)); err != nil {
		return err
	}
	logger.Info("conversion complete", zap.Int("boxes", result.Root.Count()))
	return nil
}

// Build parses r and lays it out without rendering.
func (p *Pipeline) Build(ctx context.Context, r io.Reader, format markup.Format) (*Result, error) {
	return p.build(ctx, p.logger, r, format)
}

func (p *Pipeline) build(ctx context.Context, logger *zap.Logger, r io.Reader, format markup.Format) (*Result, error) {
	doc, err := markup.NewBuilder(markup.WithLogger(logger.Named("markup"))).Parse(r, format)
	if err != nil {
		return nil, err
	}
	doc.Cascade()

	fontsCfg := p.cfg.Fonts()
	pre, err := fonts.NewPreprocessor(fontsCfg, fonts.WithLogger(logger.Named("fonts")))
	if err != nil {
		return nil, err
	}
	registry, err := pre.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}

	engine := layout.NewEngine(doc, registry,
		layout.WithFontSize(fontsCfg.Size),
		layout.WithDefaultFamily(fontsCfg.DefaultFamily),
		layout.WithLogger(logger.Named("layout")))
	root := engine.ProcessDocument()

	if ce := logger.Check(zapcore.DebugLevel, "box tree"); ce != nil {
		ce.Write(zap.String("tree", layout.Dump(doc, root)))
	}

	return &Result{Document: doc, Fonts: registry, Root: root}, nil
}

func (p *Pipeline) page(r *Result) *render.Page {
	return &render.Page{
		Document:      r.Document,
		Root:          r.Root,
		Fonts:         r.Fonts,
		FontSize:      p.cfg.Fonts().Size,
		DefaultFamily: p.cfg.Fonts().DefaultFamily,
	}
}
