package datasource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-browser/internal/config"
)

const snapshotYAML = `
accounts:
  - accountId: 1
    email: a@example.com
profiles:
  - profileId: 5
    country: BR
    accountId: 1
campaigns: []
`

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(snapshotYAML), 0o600))

	tests := []struct {
		name     string
		cfg      *config.Config
		validate func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "Arquivo YAML",
			cfg:  &config.Config{App: config.App{DataSource: config.DataSourceFixture, FixturePath: path}},
			validate: func(t *testing.T, cfg *config.Config) {
				source, closeSource, err := Open(context.Background(), cfg)
				require.NoError(t, err)
				defer closeSource()

				snapshot, err := source.Load(context.Background())
				require.NoError(t, err)
				assert.Len(t, snapshot.Accounts, 1)
				assert.Len(t, snapshot.Profiles, 1)
				assert.Empty(t, snapshot.Campaigns)
			},
		},
		{
			name: "Origem desconhecida",
			cfg:  &config.Config{App: config.App{DataSource: "mysql"}},
			validate: func(t *testing.T, cfg *config.Config) {
				source, closeSource, err := Open(context.Background(), cfg)
				assert.Error(t, err)
				assert.Nil(t, source)
				assert.Nil(t, closeSource)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, tt.cfg)
		})
	}
}
