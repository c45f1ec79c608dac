package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-manager-browser/internal/api"
	"github.com/vfg2006/traffic-manager-browser/internal/api/handler"
	"github.com/vfg2006/traffic-manager-browser/internal/config"
	"github.com/vfg2006/traffic-manager-browser/internal/datasource"
	"github.com/vfg2006/traffic-manager-browser/internal/scheduler"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/browsing"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/snapshot"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, closeSource, err := datasource.Open(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir a origem do snapshot")
	}
	defer closeSource()

	snapshotService := snapshot.NewService(source)
	sessionStore := browsing.NewSessionStore(snapshotService)
	authenticator := authenticating.NewService(cfg)

	snapshotSyncService := scheduler.NewSnapshotSyncService(snapshotService, cfg)
	sessionCleanupService := scheduler.NewSessionCleanupService(sessionStore, cfg)

	// Primeira carga antes de aceitar requisições; em erro o servidor sobe
	// com o snapshot vazio e a cron tenta de novo
	if err := snapshotSyncService.RunNow(ctx); err != nil {
		logrus.WithError(err).Error("Erro na carga inicial do snapshot")
	}

	// Inicia os agendadores em background
	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga do snapshot")
	} else {
		logrus.Info("Agendador de recarga do snapshot iniciado com sucesso")
	}

	if err := sessionCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de sessões")
	} else {
		logrus.Info("Agendador de limpeza de sessões iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		sessionStore,
		snapshotService,
		handler.CronJobServices{
			handler.CronJobTypeSnapshot: snapshotSyncService,
			handler.CronJobTypeSessions: sessionCleanupService,
		},
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
