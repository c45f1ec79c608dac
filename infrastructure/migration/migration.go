// Package migration cria o schema das três coleções e carrega um snapshot
// inicial a partir de um arquivo YAML
package migration

import (
	"context"
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-manager-browser/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-browser/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/pkg/log"
)

//go:embed sql/*.sql
var files embed.FS

// Up aplica as migrações pendentes no banco do DSN informado
func Up(dsn string) error {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return errors.Wrap(err, "migration: source")
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return errors.Wrap(err, "migration: init")
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.L.Info("Schema já está atualizado")
			return nil
		}
		return errors.Wrap(err, "migration: up")
	}

	version, _, _ := m.Version()
	log.L.WithField("version", version).Info("Migrações aplicadas")

	return nil
}

// Seed grava o snapshot em uma única transação. Contas vêm antes de perfis e
// perfis antes de campanhas por causa das chaves estrangeiras.
func Seed(ctx context.Context, conn postgres.Conn, snapshot *domain.Snapshot) error {
	if snapshot == nil {
		return nil
	}

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := repository.NewAccountRepository(tx).SaveOrUpdate(ctx, snapshot.Accounts); err != nil {
			return err
		}
		if err := repository.NewProfileRepository(tx).SaveOrUpdate(ctx, snapshot.Profiles); err != nil {
			return err
		}
		return repository.NewCampaignRepository(tx).SaveOrUpdate(ctx, snapshot.Campaigns)
	})
	if err != nil {
		return errors.Wrap(err, "migration: seed")
	}

	log.L.WithFields(log.Fields{
		"accounts":  len(snapshot.Accounts),
		"profiles":  len(snapshot.Profiles),
		"campaigns": len(snapshot.Campaigns),
	}).Info("Snapshot gravado no banco")

	return nil
}
