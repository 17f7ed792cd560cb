package debug

import "testing"

func TestTreeWriter(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" {
		t.Fatal("Expected empty string from new TreeWriter")
	}

	tw.Line(0, "Page[%d]", 1)
	tw.Line(2, "Block[%d:%d]", 0, 4)
	tw.TextBlock(3, "Text", "Hello \n")
	tw.TextBlock(1, "Empty", "")

	want := "Page[1]\n" +
		"    Block[0:4]\n" +
		"      Text: \"Hello \\n\"\n" +
		"  Empty: \n"
	if got := tw.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
