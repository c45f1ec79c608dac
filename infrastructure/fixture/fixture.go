// Package fixture lê snapshots de arquivos YAML, usados em desenvolvimento e
// como carga inicial do banco
package fixture

import (
	"bytes"
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/vfg2006/traffic-manager-browser/internal/domain"
	"github.com/vfg2006/traffic-manager-browser/pkg/utils"
	"gopkg.in/yaml.v3"
)

// Load lê o snapshot do arquivo informado
func Load(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read fixture %s", path)
	}

	snapshot, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse fixture %s", path)
	}

	return snapshot, nil
}

// Parse decodifica um documento com as listas accounts, profiles e campaigns.
// Campos desconhecidos são rejeitados para pegar erros de digitação.
func Parse(data []byte) (*domain.Snapshot, error) {
	snapshot := domain.EmptySnapshot()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(snapshot); err != nil {
		return nil, err
	}

	for _, campaign := range snapshot.Campaigns {
		if campaign == nil {
			continue
		}
		if _, err := utils.ParseDate(campaign.Date); err != nil {
			return nil, errors.Wrapf(err, "campaign %d: invalid date", campaign.CampaignID)
		}
	}

	snapshot.Accounts = compact(snapshot.Accounts)
	snapshot.Profiles = compact(snapshot.Profiles)
	snapshot.Campaigns = compact(snapshot.Campaigns)

	return snapshot, nil
}

// compact remove entradas nulas (itens vazios "-" no YAML)
func compact[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}

// Source carrega o snapshot do arquivo a cada chamada
type Source struct {
	Path string
}

func NewSource(path string) *Source {
	return &Source{Path: path}
}

func (s *Source) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path)
}
