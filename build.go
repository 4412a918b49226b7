package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hhhapz/mdsite/site"
)

func buildCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "build [basepath]",
		Short: "Copy static files and generate every page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, cfg, err := newBuilder(args)
			if err != nil {
				return err
			}

			err = b.Build(cmd.Context())
			writeMetrics(b, cfg)
			return err
		},
	}
}

func watchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [basepath]",
		Short: "Build, then rebuild whenever content, static files or the template change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, cfg, err := newBuilder(args)
			if err != nil {
				return err
			}

			rebuild := func() error {
				err := b.Build(cmd.Context())
				writeMetrics(b, cfg)
				return err
			}
			if err := rebuild(); err != nil {
				log.WithError(err).Error("initial build failed")
			}

			w, err := site.NewWatcher(log, site.WatchOptions{
				Dirs:     []string{cfg.Content, cfg.Static},
				Files:    []string{cfg.Template},
				Debounce: debounce,
			})
			if err != nil {
				return err
			}

			log.Info("watching for changes")
			return w.Run(cmd.Context(), rebuild)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 200*time.Millisecond, "wait this long after a change before rebuilding")
	return cmd
}

func newBuilder(args []string) (*site.Builder, configuration, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, configuration{}, err
	}
	cfg.applyEnv(os.LookupEnv)
	if len(args) > 0 {
		cfg.BasePath = normalizeBasePath(args[0])
	}

	log.WithFields(logrus.Fields{
		"content":  cfg.Content,
		"public":   cfg.Public,
		"basepath": cfg.BasePath,
	}).Debug("loaded configuration")

	return &site.Builder{
		Content:  cfg.Content,
		Static:   cfg.Static,
		Public:   cfg.Public,
		Template: cfg.Template,
		BasePath: cfg.BasePath,
		Workers:  cfg.Workers,
		Log:      log,
		Metrics:  site.NewMetrics(),
	}, cfg, nil
}

func writeMetrics(b *site.Builder, cfg configuration) {
	if cfg.MetricsFile == "" {
		return
	}
	if err := b.Metrics.WriteFile(cfg.MetricsFile); err != nil {
		log.WithError(err).Warn("could not write metrics")
	}
}
