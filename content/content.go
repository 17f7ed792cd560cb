// Package content turns a single ALTO source into reconstructed document
// ready for export.
package content

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"altodoc/alto"
	"altodoc/config"
	"altodoc/content/text"
	"altodoc/layout"
	"altodoc/misc"
	"altodoc/state"
	"altodoc/utils/images"
)

// Content encapsulates both the raw ALTO XML document and the positional
// model reconstructed from it.
type Content struct {
	SrcName  string
	Doc      *etree.Document
	Document *layout.Document
	RefID    uuid.UUID
	Language language.Tag

	Splitter *text.Splitter
	WorkDir  string
}

// Options converts document configuration into reconstruction options.
func Options(cfg *config.DocumentConfig) (alto.Options, error) {
	policy, err := alto.ParseStylePolicy(cfg.UnknownStyle)
	if err != nil {
		return alto.Options{}, err
	}
	return alto.Options{
		Tokenizer:     text.NewTokenizer(cfg.Tokenizer.Delimiters),
		Normalizer:    text.NewNormalizer(),
		UnknownStyle:  policy,
		DefaultStyle:  alto.TextStyle{FontName: cfg.DefaultFont, FontSize: cfg.DefaultFontSize},
		PreloadStyles: cfg.PreloadStyles,
	}, nil
}

// Prepare reads, parses and reconstructs ALTO content.
func Prepare(ctx context.Context, r io.Reader, srcName string, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	opts, err := Options(&env.Cfg.Document)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare reconstruction options: %w", err)
	}

	var (
		doc   *etree.Document
		model *layout.Document
		refID uuid.UUID
	)
	if env.Cfg.Document.Streaming {
		if refID, err = newDocumentID(); err != nil {
			return nil, err
		}
		log = log.With(zap.Stringer("ref_id", refID))
		if model, err = alto.BuildStream(ctx, r, opts, log); err != nil {
			return nil, fmt.Errorf("unable to reconstruct ALTO: %w", err)
		}
	} else {
		if doc, err = alto.ReadDocument(r); err != nil {
			return nil, fmt.Errorf("unable to read ALTO: %w", err)
		}
		if refID, err = documentID(doc); err != nil {
			return nil, err
		}
		log = log.With(zap.Stringer("ref_id", refID))
		if model, err = alto.Build(ctx, doc, opts, log); err != nil {
			return nil, fmt.Errorf("unable to reconstruct ALTO: %w", err)
		}
	}
	log.Debug("Document reconstructed",
		zap.Int("pages", len(model.Pages)), zap.Int("blocks", len(model.Blocks)),
		zap.Int("tokens", len(model.Tokens)), zap.Int("images", len(model.Images)))

	lang := language.English
	if len(env.Cfg.Document.Language) > 0 {
		if lang, err = language.Parse(env.Cfg.Document.Language); err != nil {
			log.Warn("Bad language specification, using English", zap.String("language", env.Cfg.Document.Language), zap.Error(err))
			lang = language.English
		}
	}

	c := &Content{
		SrcName:  srcName,
		Doc:      doc,
		Document: model,
		RefID:    refID,
		Language: lang,
	}

	if env.Cfg.Document.Sentences {
		c.Splitter = text.NewSplitter(lang, log)
	}

	// Save source and reconstructed model for debugging
	if env.Rpt != nil {
		if c.WorkDir, err = os.MkdirTemp("", misc.GetAppName()+"-"); err != nil {
			return nil, fmt.Errorf("unable to create temporary directory: %w", err)
		}
		env.Rpt.Store(fmt.Sprintf("%s-%s", misc.GetAppName(), refID), c.WorkDir)

		baseSrcName := filepath.Base(srcName)
		if doc != nil {
			doc.WriteSettings = etree.WriteSettings{CanonicalText: true, CanonicalAttrVal: true}
			if err := doc.WriteToFile(filepath.Join(c.WorkDir, baseSrcName)); err != nil {
				return nil, fmt.Errorf("unable to write input doc for debugging: %w", err)
			}
		}
		if err := os.WriteFile(filepath.Join(c.WorkDir, baseSrcName+"_prepared"), []byte(c.String()), 0644); err != nil {
			return nil, fmt.Errorf("unable to write prepared doc for debugging: %w", err)
		}
	}
	return c, nil
}

// documentID takes ID of the root element when it is a valid UUID, ALTO
// producers rarely set it so new time ordered UUID is generated otherwise.
func documentID(doc *etree.Document) (uuid.UUID, error) {
	if root := doc.Root(); root != nil {
		if id, err := uuid.Parse(root.SelectAttrValue("ID", "")); err == nil {
			return id, nil
		}
	}
	return newDocumentID()
}

func newDocumentID() (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("unable to generate document UUID: %w", err)
	}
	return id, nil
}

// ProbeImages resolves illustration files relative to dir and records their
// format and pixel size. Files which cannot be found or decoded are skipped.
// Returns number of probed images.
func (c *Content) ProbeImages(dir string, log *zap.Logger) int {
	count := 0
	for i := range c.Document.Images {
		img := &c.Document.Images[i]
		if len(img.FilePath) == 0 {
			continue
		}
		path := filepath.FromSlash(img.FilePath)
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		info, err := images.Probe(path)
		if err != nil {
			log.Debug("Unable to probe illustration", zap.String("file", path), zap.Error(err))
			continue
		}
		img.Format, img.PixelWidth, img.PixelHeight, img.Grayscale = info.Format, info.Width, info.Height, info.Grayscale
		count++
	}
	return count
}
