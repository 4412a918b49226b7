package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	envFile    string
	logLevel   string
)

var log = logrus.New()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "mdsite",
		Short:         "Generate a static html site from a directory of markdown",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return errors.Wrap(err, "invalid log level")
			}
			log.SetLevel(level)
			log.SetFormatter(&logrus.TextFormatter{
				FullTimestamp: true,
			})

			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Warnf("could not load env file %s: %v", envFile, err)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "mdsite.json", "path to the site configuration")
	flags.StringVar(&envFile, "env", ".env", "path to an environment file")
	flags.StringVar(&logLevel, "log-level", "info", "logging level (debug, info, warn, error)")

	root.AddCommand(buildCommand(), watchCommand(), dumpCommand())
	return root
}
