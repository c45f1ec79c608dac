// Package datasource escolhe a origem do snapshot conforme a configuração
package datasource

import (
	"context"
	"fmt"

	"github.com/vfg2006/traffic-manager-browser/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-manager-browser/infrastructure/fixture"
	"github.com/vfg2006/traffic-manager-browser/infrastructure/repository"
	"github.com/vfg2006/traffic-manager-browser/internal/config"
	"github.com/vfg2006/traffic-manager-browser/internal/usecases/snapshot"
	"github.com/vfg2006/traffic-manager-browser/pkg/log"
)

// Open monta a origem configurada. A função de fechamento libera a conexão
// com o banco, quando houver.
func Open(ctx context.Context, cfg *config.Config) (snapshot.Source, func() error, error) {
	switch cfg.App.DataSource {
	case config.DataSourceFixture:
		log.L.WithField("path", cfg.App.FixturePath).Info("Usando snapshot de arquivo YAML")
		return fixture.NewSource(cfg.App.FixturePath), func() error { return nil }, nil

	case config.DataSourcePostgres:
		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}

		log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")

		source := snapshot.NewRepositorySource(
			repository.NewAccountRepository(conn),
			repository.NewProfileRepository(conn),
			repository.NewCampaignRepository(conn),
		)
		return source, conn.Close, nil
	}

	return nil, nil, fmt.Errorf("datasource: origem desconhecida %q", cfg.App.DataSource)
}
