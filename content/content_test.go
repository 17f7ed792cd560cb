package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"

	"altodoc/alto"
	"altodoc/config"
	"altodoc/state"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v3#">
<Styles>
<TextStyle ID="font0" FONTFAMILY="Times" FONTSIZE="10" FONTCOLOR="#000000" FONTSTYLE="bold"/>
</Styles>
<Layout>
<Page ID="Page1" PHYSICAL_IMG_NR="1" WIDTH="600" HEIGHT="800">
<PrintSpace>
<TextBlock ID="p1_b1">
<TextLine>
<String CONTENT="Hello" STYLEREFS="font0" HPOS="10" VPOS="10" WIDTH="50" HEIGHT="10"/>
<SP/>
<String CONTENT="world." STYLEREFS="font0" HPOS="70" VPOS="10" WIDTH="60" HEIGHT="10"/>
</TextLine>
</TextBlock>
<Illustration ID="p1_i1" FILEID="page1_1.svg" HPOS="0" VPOS="100" WIDTH="100" HEIGHT="50"/>
</PrintSpace>
</Page>
</Layout>
</alto>`

func newContext(t *testing.T, modify func(*config.Config)) context.Context {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if modify != nil {
		modify(cfg)
	}
	env.Cfg = cfg
	env.Log = zaptest.NewLogger(t)
	return ctx
}

func TestPrepare(t *testing.T) {
	ctx := newContext(t, nil)
	c, err := Prepare(ctx, strings.NewReader(sample), "dir/sample.xml", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if c.SrcName != "dir/sample.xml" || c.Doc == nil {
		t.Errorf("unexpected content: %+v", c)
	}
	if c.RefID.Version() != 7 {
		t.Errorf("RefID version = %d, want 7", c.RefID.Version())
	}
	if c.Language != language.English {
		t.Errorf("Language = %v", c.Language)
	}
	if c.Splitter != nil {
		t.Error("sentence splitter must be off by default")
	}
	if c.WorkDir != "" {
		t.Error("work directory must only be created for debug report")
	}

	doc := c.Document
	if len(doc.Pages) != 1 || len(doc.Blocks) != 1 || len(doc.Images) != 1 {
		t.Fatalf("pages/blocks/images = %d/%d/%d", len(doc.Pages), len(doc.Blocks), len(doc.Images))
	}
	if got := doc.Text(); !strings.HasPrefix(got, "Hello world.") {
		t.Errorf("Text() = %q", got)
	}
	if b := doc.Blocks[0]; b.Font != "times" || !b.Bold {
		t.Errorf("block style = %+v", b)
	}

	dump := c.String()
	for _, want := range []string{"Page[1]", "Block[0:", "type[vector]", `"Hello world.`} {
		if !strings.Contains(dump, want) {
			t.Errorf("String() does not contain %q:\n%s", want, dump)
		}
	}
}

func TestPrepare_Streaming(t *testing.T) {
	ctx := newContext(t, func(cfg *config.Config) {
		cfg.Document.Streaming = true
	})
	c, err := Prepare(ctx, strings.NewReader(sample), "sample.xml", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if c.Doc != nil {
		t.Error("XML tree must not be kept when streaming")
	}
	if got := c.Document.Text(); !strings.HasPrefix(got, "Hello world.") {
		t.Errorf("Text() = %q", got)
	}
	if len(c.Document.Images) != 1 || c.RefID == uuid.Nil {
		t.Errorf("images = %d, ref id = %s", len(c.Document.Images), c.RefID)
	}
}

func TestPrepare_RootID(t *testing.T) {
	ctx := newContext(t, nil)
	id := uuid.MustParse("0190f5c4-8d3a-7c1e-9b2a-1234567890ab")
	src := strings.Replace(sample, `<alto xmlns`, `<alto ID="`+id.String()+`" xmlns`, 1)
	c, err := Prepare(ctx, strings.NewReader(src), "sample.xml", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if c.RefID != id {
		t.Errorf("RefID = %s, want %s", c.RefID, id)
	}
}

func TestPrepare_StrictStyles(t *testing.T) {
	ctx := newContext(t, func(cfg *config.Config) {
		cfg.Document.UnknownStyle = "strict"
	})
	src := strings.ReplaceAll(sample, `STYLEREFS="font0"`, `STYLEREFS="missing"`)
	_, err := Prepare(ctx, strings.NewReader(src), "sample.xml", zaptest.NewLogger(t))
	if !errors.Is(err, alto.ErrUnknownStyle) {
		t.Errorf("Prepare() error = %v, want %v", err, alto.ErrUnknownStyle)
	}
}

func TestPrepare_Sentences(t *testing.T) {
	ctx := newContext(t, func(cfg *config.Config) {
		cfg.Document.Sentences = true
	})
	c, err := Prepare(ctx, strings.NewReader(sample), "sample.xml", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if c.Splitter == nil {
		t.Error("expected English sentence splitter")
	}
}

func TestPrepare_Errors(t *testing.T) {
	ctx := newContext(t, nil)
	if _, err := Prepare(ctx, strings.NewReader(""), "empty.xml", zaptest.NewLogger(t)); err == nil {
		t.Error("expected error for empty input")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Prepare(cancelled, strings.NewReader(sample), "sample.xml", zaptest.NewLogger(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("Prepare() error = %v, want context.Canceled", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := config.DocumentConfig{UnknownStyle: "strict", DefaultFont: "serif", DefaultFontSize: 11, PreloadStyles: true}
	opts, err := Options(&cfg)
	if err != nil {
		t.Fatalf("Options() error = %v", err)
	}
	if opts.UnknownStyle != alto.StylePolicyStrict || !opts.PreloadStyles {
		t.Errorf("unexpected options: %+v", opts)
	}
	if opts.DefaultStyle.FontName != "serif" || opts.DefaultStyle.FontSize != 11 {
		t.Errorf("DefaultStyle = %+v", opts.DefaultStyle)
	}
	if opts.Tokenizer == nil || opts.Normalizer == nil {
		t.Error("tokenizer and normalizer must be set")
	}

	cfg.UnknownStyle = "whatever"
	if _, err := Options(&cfg); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestProbeImages(t *testing.T) {
	ctx := newContext(t, nil)
	dir := t.TempDir()
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 20"><rect width="40" height="20"/></svg>`
	if err := os.WriteFile(filepath.Join(dir, "page1_1.svg"), []byte(svg), 0644); err != nil {
		t.Fatal(err)
	}
	src := strings.Replace(sample, `<Illustration ID="p1_i1"`, `<Illustration ID="p1_i0" FILEID="missing.png" HPOS="0" VPOS="90" WIDTH="10" HEIGHT="10"/>
<Illustration ID="p1_i1"`, 1)

	c, err := Prepare(ctx, strings.NewReader(src), "sample.xml", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if n := c.ProbeImages(dir, zaptest.NewLogger(t)); n != 1 {
		t.Fatalf("ProbeImages() = %d, want 1", n)
	}
	if img := c.Document.Images[0]; img.PixelWidth != 0 || img.Format != "" {
		t.Errorf("missing image must stay unprobed: %+v", img)
	}
	if img := c.Document.Images[1]; img.Format != "svg" || img.PixelWidth != 40 || img.PixelHeight != 20 {
		t.Errorf("unexpected probe result: %+v", img)
	}
}
