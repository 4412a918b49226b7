package site

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const defaultWorkers = 4

// Builder holds the directories of a site. The zero values of Log and
// Metrics are usable: logging goes to the standard logrus logger and metrics
// are not recorded.
type Builder struct {
	Content  string
	Static   string
	Public   string
	Template string
	BasePath string
	Workers  int

	Log     logrus.FieldLogger
	Metrics *Metrics

	pages atomic.Int64
	bytes atomic.Int64
}

// Build copies static files into a fresh public directory, then generates
// every page.
func (b *Builder) Build(ctx context.Context) error {
	start := time.Now()
	b.pages.Store(0)
	b.bytes.Store(0)

	err := b.build(ctx)
	b.Metrics.buildFinished(time.Since(start), err)
	if err != nil {
		return err
	}

	b.log().Infof("built %s pages (%s) in %s",
		humanize.Comma(b.pages.Load()),
		humanize.Bytes(uint64(b.bytes.Load())),
		time.Since(start).Round(time.Millisecond),
	)
	return nil
}

func (b *Builder) build(ctx context.Context) error {
	if err := b.CopyStatic(); err != nil {
		return err
	}
	tmpl, err := b.LoadTemplate()
	if err != nil {
		return err
	}
	return b.GenerateDir(ctx, tmpl)
}

// LoadTemplate reads b.Template, falling back to DefaultTemplate when the
// path is empty or does not exist.
func (b *Builder) LoadTemplate() (string, error) {
	if b.Template == "" {
		return DefaultTemplate, nil
	}

	data, err := os.ReadFile(b.Template)
	switch {
	case errors.Is(err, os.ErrNotExist):
		b.log().WithField("template", b.Template).Warn("template not found, using built-in template")
		return DefaultTemplate, nil
	case err != nil:
		return "", errors.Wrap(err, "could not read template")
	}
	return string(data), nil
}

// CopyStatic deletes b.Public and recreates it with the contents of b.Static.
func (b *Builder) CopyStatic() error {
	if clean := filepath.Clean(b.Public); clean == "." || clean == filepath.VolumeName(clean)+string(filepath.Separator) {
		return errors.Errorf("refusing to use %q as the public directory", b.Public)
	}

	if _, err := os.Stat(b.Public); err == nil {
		b.log().WithField("dir", b.Public).Info("deleting existing directory")
		if err := os.RemoveAll(b.Public); err != nil {
			return errors.Wrap(err, "could not delete public directory")
		}
	}

	b.log().WithField("dir", b.Public).Debug("creating directory")
	if err := os.MkdirAll(b.Public, 0o755); err != nil {
		return errors.Wrap(err, "could not create public directory")
	}

	if _, err := os.Stat(b.Static); errors.Is(err, os.ErrNotExist) {
		b.log().WithField("dir", b.Static).Warn("static directory not found, nothing to copy")
		return nil
	}
	return b.copyDir(b.Static, b.Public)
}

func (b *Builder) copyDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrap(err, "could not read static directory")
	}

	for _, e := range entries {
		from, to := filepath.Join(src, e.Name()), filepath.Join(dst, e.Name())

		if e.IsDir() {
			b.log().WithField("dir", to).Debug("creating directory")
			if err := os.Mkdir(to, 0o755); err != nil {
				return errors.Wrap(err, "could not create directory")
			}
			if err := b.copyDir(from, to); err != nil {
				return err
			}
			continue
		}

		n, err := copyFile(from, to)
		if err != nil {
			return errors.Wrapf(err, "could not copy %s", from)
		}
		b.Metrics.staticCopied()
		b.log().WithFields(logrus.Fields{
			"src":  from,
			"dst":  to,
			"size": humanize.Bytes(uint64(n)),
		}).Debug("copied file")
	}
	return nil
}

func copyFile(src, dst string) (int, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(src)
	if err != nil {
		return 0, err
	}
	return len(data), os.WriteFile(dst, data, info.Mode().Perm())
}

func (b *Builder) log() logrus.FieldLogger {
	if b.Log == nil {
		return logrus.StandardLogger()
	}
	return b.Log
}

func (b *Builder) workers() int {
	if b.Workers <= 0 {
		return defaultWorkers
	}
	return b.Workers
}
