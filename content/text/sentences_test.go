package text

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"golang.org/x/text/language"
)

func TestNewSplitter(t *testing.T) {
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))

	t.Run("English language", func(t *testing.T) {
		if tok := NewSplitter(language.English, logger); tok == nil {
			t.Fatal("Expected tokenizer for English, got nil")
		}
	})

	t.Run("Regional English", func(t *testing.T) {
		if tok := NewSplitter(language.BritishEnglish, logger); tok == nil {
			t.Fatal("Expected tokenizer for en-GB, got nil")
		}
	})

	t.Run("Unsupported language", func(t *testing.T) {
		if tok := NewSplitter(language.Afrikaans, logger); tok != nil {
			t.Fatal("Expected nil for unsupported language")
		}
	})
}

func TestSplit(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("Nil splitter", func(t *testing.T) {
		var s *Splitter
		result := s.Split("This is a test. This is another test.")
		if len(result) != 1 || result[0] != "This is a test. This is another test." {
			t.Errorf("Expected original text as single sentence, got %q", result)
		}
	})

	t.Run("Nil splitter empty input", func(t *testing.T) {
		var s *Splitter
		if result := s.Split(""); len(result) != 0 {
			t.Errorf("Expected no sentences, got %q", result)
		}
	})

	t.Run("Simple English sentences", func(t *testing.T) {
		s := NewSplitter(language.English, logger)
		if s == nil {
			t.Skip("English tokenizer not available")
		}
		text := "This is a test. This is another test."
		result := s.Split(text)
		if len(result) != 2 {
			t.Fatalf("Expected 2 sentences, got %d: %q", len(result), result)
		}
		if strings.Join(result, "") != text {
			t.Errorf("Sentences do not reassemble into input: %q", result)
		}
		if !strings.HasSuffix(result[0], " ") {
			t.Errorf("Separator should stay with first sentence, got %q", result[0])
		}
	})

	t.Run("Single sentence", func(t *testing.T) {
		s := NewSplitter(language.English, logger)
		if s == nil {
			t.Skip("English tokenizer not available")
		}
		text := "This is a single sentence"
		result := s.Split(text)
		if len(result) != 1 || result[0] != text {
			t.Errorf("Expected %q, got %q", text, result)
		}
	})
}

func TestSentences_EarlyStop(t *testing.T) {
	s := NewSplitter(language.English, zaptest.NewLogger(t))
	if s == nil {
		t.Skip("English tokenizer not available")
	}
	count := 0
	for range s.Sentences("One. Two. Three.") {
		count++
		break
	}
	if count != 1 {
		t.Errorf("Expected iteration to stop after first sentence, got %d", count)
	}
}
