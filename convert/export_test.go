package convert

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
	yaml "gopkg.in/yaml.v3"

	"altodoc/config"
	"altodoc/content"
)

func prepareSample(t *testing.T, sentences bool) *content.Content {
	t.Helper()
	ctx, env := setupTestEnv(t)
	env.Cfg.Document.Sentences = sentences
	c, err := content.Prepare(ctx, strings.NewReader(sampleALTO), "book/page.xml", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return c
}

func TestExportText(t *testing.T) {
	var buf bytes.Buffer
	if err := export(prepareSample(t, false), config.OutputFmtText, &buf); err != nil {
		t.Fatalf("export() error = %v", err)
	}
	want := "First sentence. Second sen-\ntence. \n\nTail \n\n"
	if buf.String() != want {
		t.Errorf("text = %q, want %q", buf.String(), want)
	}
}

func TestExportText_Sentences(t *testing.T) {
	var buf bytes.Buffer
	if err := export(prepareSample(t, true), config.OutputFmtText, &buf); err != nil {
		t.Fatalf("export() error = %v", err)
	}
	want := "First sentence.\nSecond sen-tence.\n\nTail\n"
	if buf.String() != want {
		t.Errorf("text = %q, want %q", buf.String(), want)
	}
}

func TestExportYAML(t *testing.T) {
	c := prepareSample(t, false)
	var buf bytes.Buffer
	if err := export(c, config.OutputFmtYaml, &buf); err != nil {
		t.Fatalf("export() error = %v", err)
	}

	var dump struct {
		ID     string `yaml:"id"`
		Source string `yaml:"source"`
		Pages  []struct {
			Number int `yaml:"number"`
			Blocks []struct {
				Start int    `yaml:"start"`
				End   int    `yaml:"end"`
				Font  string `yaml:"font"`
				Text  string `yaml:"text"`
			} `yaml:"blocks"`
		} `yaml:"pages"`
		Images []struct {
			Type  string `yaml:"type"`
			Start int    `yaml:"start"`
		} `yaml:"images"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &dump); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if dump.ID != c.RefID.String() || dump.Source != "book/page.xml" {
		t.Errorf("header = %q %q", dump.ID, dump.Source)
	}
	if len(dump.Pages) != 1 || len(dump.Pages[0].Blocks) != 2 {
		t.Fatalf("unexpected structure: %+v", dump.Pages)
	}
	b := dump.Pages[0].Blocks[1]
	if b.Text != "Tail \n\n" || b.Font != "times" || b.End-b.Start != 4 {
		t.Errorf("second block = %+v", b)
	}
	if len(dump.Images) != 1 || dump.Images[0].Type != "bitmap" || dump.Images[0].Start != dump.Pages[0].Blocks[0].End {
		t.Errorf("images = %+v", dump.Images)
	}
}

func TestExportTokens(t *testing.T) {
	c := prepareSample(t, false)
	var buf bytes.Buffer
	if err := export(c, config.OutputFmtTokens, &buf); err != nil {
		t.Fatalf("export() error = %v", err)
	}
	var dump tokensDump
	if err := yaml.Unmarshal(buf.Bytes(), &dump); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(dump.Tokens) != len(c.Document.Tokens) {
		t.Fatalf("tokens = %d, want %d", len(dump.Tokens), len(c.Document.Tokens))
	}
	for i, tok := range dump.Tokens {
		if tok != c.Document.Tokens[i] {
			t.Errorf("token %d = %+v, want %+v", i, tok, c.Document.Tokens[i])
		}
	}
}

func TestExport_Unsupported(t *testing.T) {
	if err := export(prepareSample(t, false), config.OutputFmt(42), &bytes.Buffer{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestUnwrapLines(t *testing.T) {
	tests := map[string]string{
		"":                    "",
		"one\ntwo \n":         "one two",
		"hy-\nphen":           "hy-phen",
		"  a \n\n\n b\n":      "a b",
		"single line, ended ": "single line, ended",
	}
	for in, want := range tests {
		if got := unwrapLines(in); got != want {
			t.Errorf("unwrapLines(%q) = %q, want %q", in, got, want)
		}
	}
}
