package migration

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
)

type fakeConn struct {
	txErr error
	calls int
}

func (f *fakeConn) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, nil
}

func (f *fakeConn) QueryContext(context.Context, string, ...any) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeConn) QueryRowContext(context.Context, string, ...any) *sql.Row {
	return nil
}

func (f *fakeConn) Close() error { return nil }
func (f *fakeConn) Ping(context.Context) error { return nil }

func (f *fakeConn) RunInTransaction(context.Context, func(*sql.Tx) error) error {
	f.calls++
	return f.txErr
}

func TestEmbeddedMigrations(t *testing.T) {
	source, err := iofs.New(files, "sql")
	require.NoError(t, err)
	defer source.Close()

	version, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	up, _, err := source.ReadUp(version)
	require.NoError(t, err)
	defer up.Close()

	body, err := io.ReadAll(up)
	require.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS accounts")
	assert.Contains(t, string(body), "REFERENCES profiles (profile_id) ON DELETE SET NULL")

	down, _, err := source.ReadDown(version)
	require.NoError(t, err)
	down.Close()
}

func TestSeed(t *testing.T) {
	tests := []struct {
		name      string
		snapshot  *domain.Snapshot
		txErr     error
		wantCalls int
		wantErr   bool
	}{
		{
			name:      "Snapshot nulo não abre transação",
			snapshot:  nil,
			wantCalls: 0,
		},
		{
			name:      "Grava em uma transação",
			snapshot:  domain.EmptySnapshot(),
			wantCalls: 1,
		},
		{
			name:      "Erro da transação é propagado",
			snapshot:  domain.EmptySnapshot(),
			txErr:     errors.New("violação de chave estrangeira"),
			wantCalls: 1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := &fakeConn{txErr: tt.txErr}

			err := Seed(context.Background(), conn, tt.snapshot)

			assert.Equal(t, tt.wantCalls, conn.calls)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.txErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
