package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-manager-browser/internal/config"
	"github.com/vfg2006/traffic-manager-browser/internal/datasource"
	"github.com/vfg2006/traffic-manager-browser/internal/tui"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/browsing"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/snapshot"
	"github.com/vfg2006/traffic-manager-browser/pkg/utils"
)

type options struct {
	fixture  string
	postgres bool
	dump     bool
	logFile  string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "browser",
		Short:        "Navega por contas, perfis e campanhas no terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.fixture, "fixture", "", "arquivo YAML com contas, perfis e campanhas")
	flags.BoolVar(&opts.postgres, "postgres", false, "carrega o snapshot do PostgreSQL configurado no ambiente")
	flags.BoolVar(&opts.dump, "json", false, "imprime a tela inicial em JSON e sai")
	flags.StringVar(&opts.logFile, "log-file", "", "grava os logs neste arquivo (por padrão são descartados)")
	cmd.MarkFlagsMutuallyExclusive("fixture", "postgres")

	return cmd
}

func run(ctx context.Context, opts *options, out io.Writer) error {
	closeLog, err := configureLogger(opts.logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	switch {
	case opts.fixture != "":
		cfg.App.DataSource = config.DataSourceFixture
		cfg.App.FixturePath = opts.fixture
	case opts.postgres:
		cfg.App.DataSource = config.DataSourcePostgres
	}

	source, closeSource, err := datasource.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSource()

	service := snapshot.NewService(source)
	current, err := service.Refresh(ctx)
	if err != nil {
		return err
	}

	browser, err := browsing.NewBrowser(current)
	if err != nil {
		return err
	}

	if opts.dump {
		view, err := browser.Render()
		if err != nil {
			return err
		}

		rendered, err := utils.PrettyJson(view)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(out, rendered)
		return err
	}

	return tui.Run(ctx, browser, service.Refresh)
}

// configureLogger tira os logs da tela, que fica com o terminal
func configureLogger(path string) (func(), error) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if path == "" {
		logrus.SetOutput(io.Discard)
		return func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("abrir arquivo de log: %w", err)
	}

	logrus.SetOutput(file)
	return func() { _ = file.Close() }, nil
}
