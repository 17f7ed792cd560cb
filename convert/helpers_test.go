package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"altodoc/config"
	"altodoc/state"
)

const sampleALTO = `<?xml version="1.0" encoding="UTF-8"?>
<alto xmlns="http://www.loc.gov/standards/alto/ns-v3#">
<Styles>
<TextStyle ID="font0" FONTFAMILY="Times" FONTSIZE="10" FONTCOLOR="#000000"/>
</Styles>
<Layout>
<Page ID="Page1" PHYSICAL_IMG_NR="1" WIDTH="600" HEIGHT="800">
<PrintSpace>
<TextBlock ID="p1_b1">
<TextLine>
<String CONTENT="First" STYLEREFS="font0" HPOS="10" VPOS="10" WIDTH="50" HEIGHT="10"/>
<String CONTENT="sentence." STYLEREFS="font0" HPOS="70" VPOS="10" WIDTH="90" HEIGHT="10"/>
<String CONTENT="Second" STYLEREFS="font0" HPOS="170" VPOS="10" WIDTH="60" HEIGHT="10"/>
<String CONTENT="sen-" STYLEREFS="font0" HPOS="240" VPOS="10" WIDTH="40" HEIGHT="10"/>
</TextLine>
<TextLine>
<String CONTENT="tence." STYLEREFS="font0" HPOS="10" VPOS="25" WIDTH="60" HEIGHT="10"/>
</TextLine>
</TextBlock>
<Illustration ID="p1_i1" FILEID="page1_1.png" HPOS="0" VPOS="100" WIDTH="100" HEIGHT="50"/>
<TextBlock ID="p1_b2">
<TextLine>
<String CONTENT="Tail" STYLEREFS="font0" HPOS="10" VPOS="200" WIDTH="40" HEIGHT="10"/>
</TextLine>
</TextBlock>
</PrintSpace>
</Page>
</Layout>
</alto>
`

// setupTestEnv creates a test environment with proper context and logger
func setupTestEnv(t *testing.T) (context.Context, *state.LocalEnv) {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func writeZip(t *testing.T, path string, files map[string][]byte) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range files {
		f, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := f.Write(data); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	writeFile(t, path, buf.Bytes())
}

func encodeWithTransformer(t *testing.T, data []byte, encoder transform.Transformer) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := transform.NewWriter(&buf, encoder)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("finalize encoded sample: %v", err)
	}
	return buf.Bytes()
}

func encodeAs(t *testing.T, data []byte, enc srcEncoding) []byte {
	t.Helper()
	switch enc {
	case encUnknown:
		return data
	case encUTF8:
		return append([]byte{0xEF, 0xBB, 0xBF}, data...)
	case encUTF16BigEndian:
		return encodeWithTransformer(t, data, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder())
	case encUTF16LittleEndian:
		return encodeWithTransformer(t, data, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
	case encUTF32BigEndian:
		return encodeWithTransformer(t, data, utf32.UTF32(utf32.BigEndian, utf32.UseBOM).NewEncoder())
	case encUTF32LittleEndian:
		return encodeWithTransformer(t, data, utf32.UTF32(utf32.LittleEndian, utf32.UseBOM).NewEncoder())
	}
	t.Fatalf("unsupported encoding: %v", enc)
	return nil
}
