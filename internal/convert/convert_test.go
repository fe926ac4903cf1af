// internal/convert/convert_test.go
package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/xkilldash9x/mpdf/internal/browser/markup"
	"github.com/xkilldash9x/mpdf/internal/config"
	"github.com/xkilldash9x/mpdf/internal/render"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const stackedDivs = `<div><div style="width:64px;height:48px"></div><div style="width:32px;height:32px"></div></div>`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.SetFontsDir(t.TempDir())
	return cfg
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildStackedDivs(t *testing.T) {
	p := NewPipeline(testConfig(t), zap.NewNop())

	res, err := p.Build(context.Background(), strings.NewReader(stackedDivs), markup.FormatHTML)
	require.NoError(t, err)

	assert.Equal(t, 64.0, res.Root.Width)
	assert.Equal(t, 80.0, res.Root.Height)

	// root > html > [head, body > div > [div, div]]
	body := res.Root.Children[0].Children[1]
	outer := body.Children[0]
	require.Len(t, outer.Children, 2)
	assert.Equal(t, 0.0, outer.Children[0].Y)
	assert.Equal(t, 48.0, outer.Children[1].Y)
	assert.Equal(t, 64.0, outer.Width)
	assert.Equal(t, 80.0, outer.Height)
}

func TestBuildMeasuresTextWithFallbackFont(t *testing.T) {
	p := NewPipeline(testConfig(t), zap.NewNop())

	res, err := p.Build(context.Background(), strings.NewReader(`<p>Hello</p>`), markup.FormatHTML)
	require.NoError(t, err)

	_, ok := res.Fonts.Font("Arial")
	require.True(t, ok, "default family resolves to the built-in font")
	assert.Greater(t, res.Root.Width, 0.0)
	assert.Greater(t, res.Root.Height, 0.0)
}

func TestBuildWithoutFonts(t *testing.T) {
	cfg := testConfig(t)
	cfg.FontsCfg.BuiltinFallback = false
	p := NewPipeline(cfg, zap.NewNop())

	res, err := p.Build(context.Background(), strings.NewReader(`<p>Hello</p>`), markup.FormatHTML)
	require.NoError(t, err)
	assert.Zero(t, res.Root.Width, "unknown fonts measure as empty")
	assert.Zero(t, res.Root.Height)
}

func TestConvertFile(t *testing.T) {
	input := writeInput(t, "in.html", `<div style="background-color: #00ff00; width: 20px; height: 10px">hi</div>`)
	outDir := t.TempDir()

	for _, ext := range []string{"pdf", "png", "svg", "json"} {
		t.Run(ext, func(t *testing.T) {
			out := filepath.Join(outDir, "out."+ext)
			p := NewPipeline(testConfig(t), zap.NewNop())

			require.NoError(t, p.ConvertFile(context.Background(), input, out))

			info, err := os.Stat(out)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}

	t.Run("json output carries the box tree", func(t *testing.T) {
		out := filepath.Join(outDir, "tree.json")
		require.NoError(t, NewPipeline(testConfig(t), zap.NewNop()).ConvertFile(context.Background(), input, out))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		var tree render.BoxJSON
		require.NoError(t, json.Unmarshal(data, &tree))
		assert.Equal(t, "root", tree.Tag)
		assert.Equal(t, 20.0, tree.Width)
	})

	t.Run("configured format overrides the extension", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.SetOutputFormat("json")
		out := filepath.Join(outDir, "tree.out")
		require.NoError(t, NewPipeline(cfg, zap.NewNop()).ConvertFile(context.Background(), input, out))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, json.Valid(data))
	})
}

func TestConvertMarkdownFile(t *testing.T) {
	input := writeInput(t, "notes.md", "# Title\n\nbody text\n")
	out := filepath.Join(t.TempDir(), "notes.json")

	require.NoError(t, NewPipeline(testConfig(t), zap.NewNop()).ConvertFile(context.Background(), input, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Title"`)
}

func TestConvertFileErrors(t *testing.T) {
	ctx := context.Background()
	p := NewPipeline(testConfig(t), zap.NewNop())
	outDir := t.TempDir()

	t.Run("missing input", func(t *testing.T) {
		err := p.ConvertFile(ctx, filepath.Join(outDir, "nope.html"), filepath.Join(outDir, "a.pdf"))
		assert.ErrorContains(t, err, "failed to open input file")
	})

	t.Run("unsupported input", func(t *testing.T) {
		input := writeInput(t, "in.txt", "text")
		err := p.ConvertFile(ctx, input, filepath.Join(outDir, "a.pdf"))
		assert.ErrorIs(t, err, markup.ErrUnsupportedInput)
	})

	t.Run("unsupported output", func(t *testing.T) {
		input := writeInput(t, "in.html", "<p>x</p>")
		out := filepath.Join(outDir, "a.docx")
		err := p.ConvertFile(ctx, input, out)
		assert.ErrorIs(t, err, render.ErrUnsupportedFormat)
		_, statErr := os.Stat(out)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("canceled context", func(t *testing.T) {
		input := writeInput(t, "in.html", "<p>x</p>")
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := p.ConvertFile(cctx, input, filepath.Join(outDir, "c.pdf"))
		assert.ErrorIs(t, err, context.Canceled)
	})
}
