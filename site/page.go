// Package site turns a directory of markdown files into a static html site.
package site

import (
	"context"
	_ "embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/hhhapz/mdsite/markdown"
)

// DefaultTemplate is used when no template file exists.
//
//go:embed template.html
var DefaultTemplate string

const (
	titlePlaceholder    = "{{ Title }}"
	contentPlaceholder  = "{{ Content }}"
	basePathPlaceholder = "{{ BasePath }}"
)

// RenderPage converts doc and substitutes it into tmpl. Placeholders are
// replaced in order, so content may itself refer to {{ BasePath }}.
func RenderPage(doc, tmpl, basePath string) (string, error) {
	node, err := markdown.Convert(doc)
	if err != nil {
		return "", err
	}
	content, err := node.HTML()
	if err != nil {
		return "", err
	}
	title, err := markdown.ExtractTitle(doc)
	if err != nil {
		return "", err
	}

	page := strings.ReplaceAll(tmpl, titlePlaceholder, title)
	page = strings.ReplaceAll(page, contentPlaceholder, content)
	page = strings.ReplaceAll(page, basePathPlaceholder, basePath)
	return Prettify(page)
}

// GeneratePage renders the markdown file at src into dst.
func (b *Builder) GeneratePage(src, dst, tmpl string) error {
	log := b.log().WithFields(logrus.Fields{"src": src, "dst": dst})
	log.Debug("generating page")

	doc, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrap(err, "could not read markdown")
	}

	page, err := RenderPage(string(doc), tmpl, b.BasePath)
	if err != nil {
		return errors.Wrapf(err, "could not render %s", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return errors.Wrap(err, "could not create output directory")
	}
	if err := os.WriteFile(dst, []byte(page), 0o644); err != nil {
		return errors.Wrap(err, "could not write page")
	}

	b.pages.Add(1)
	b.bytes.Add(int64(len(page)))
	b.Metrics.pageGenerated(len(page))
	log.WithField("size", humanize.Bytes(uint64(len(page)))).Info("generated page")
	return nil
}

// GenerateDir renders every .md file under b.Content to the mirrored .html
// path under b.Public. Pages are generated concurrently; the first failure
// stops the walk and is returned.
func (b *Builder) GenerateDir(ctx context.Context, tmpl string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers())

	walkErr := filepath.WalkDir(b.Content, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".md" {
			return nil
		}

		rel, err := filepath.Rel(b.Content, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(b.Public, strings.TrimSuffix(rel, ".md")+".html")

		g.Go(func() error {
			return b.GeneratePage(path, dst, tmpl)
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return errors.Wrap(walkErr, "could not walk content")
}
