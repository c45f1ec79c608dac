package domain

import "strings"

// Level identifica um nível da navegação (contas → perfis → campanhas)
type Level string

const (
	LevelAccounts  Level = "accounts"
	LevelProfiles  Level = "profiles"
	LevelCampaigns Level = "campaigns"
)

// Levels lista os níveis na ordem de exibição
var Levels = []Level{LevelAccounts, LevelProfiles, LevelCampaigns}

// ParseLevel converte o nome recebido na URL em um Level
func ParseLevel(s string) (Level, bool) {
	level := Level(strings.ToLower(strings.TrimSpace(s)))
	switch level {
	case LevelAccounts, LevelProfiles, LevelCampaigns:
		return level, true
	}
	return "", false
}

func (l Level) String() string {
	return string(l)
}
