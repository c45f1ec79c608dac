package main

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-manager-browser/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-browser/infrastructure/fixture"
	"github.com/vfg2006/traffic-manager-browser/infrastructure/migration"
	"github.com/vfg2006/traffic-manager-browser/internal/config"
)

// Uso: go run ./infrastructure/migration/script [arquivo.yaml]
// Sem argumento usa FIXTURE_PATH.
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	logrus.Info("Iniciando script de migração...")
	startTime := time.Now()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	fixturePath := cfg.App.FixturePath
	if len(os.Args) > 1 {
		fixturePath = os.Args[1]
	}

	snapshot, err := fixture.Load(fixturePath)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao ler arquivo de snapshot")
	}

	if err := migration.Up(cfg.Database.DSN); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := migration.Seed(ctx, conn, snapshot); err != nil {
		logrus.WithError(err).Fatal("Erro ao gravar snapshot")
	}

	logrus.WithFields(logrus.Fields{
		"path":     fixturePath,
		"duration": time.Since(startTime).String(),
	}).Info("Migração concluída com sucesso")
}
