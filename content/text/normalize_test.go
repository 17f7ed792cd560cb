package text

import "testing"

func TestUnicodeNormalizer(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Hello", "Hello"},
		{"trim", "  Hello world \t", "Hello world"},
		{"ligature fi", "\ufb01nal", "final"},
		{"ligature ffl", "ba\ufb04e", "baffle"},
		{"nbsp", "a\u00a0b", "a b"},
		{"thin space", "a\u2009b", "a b"},
		{"hyphen variants", "a\u2010b\u2212c", "a-b-c"},
		{"soft hyphen dropped", "hy\u00adphen", "hyphen"},
		{"control dropped", "a\u0007b", "ab"},
		{"zero width dropped", "a\u200bb", "ab"},
		{"replacement dropped", "a\ufffdb", "ab"},
		{"composition", "e\u0301", "\u00e9"},
		{"only spaces", "   ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizerFunc(t *testing.T) {
	f := NormalizerFunc(func(in string) string { return in + "!" })
	if got := f.Normalize("x"); got != "x!" {
		t.Errorf("NormalizerFunc.Normalize() = %q", got)
	}
}
