package domain

import "time"

// Snapshot é a fotografia somente leitura das três coleções usada em uma renderização
type Snapshot struct {
	Accounts  []*Account  `json:"accounts" yaml:"accounts"`
	Profiles  []*Profile  `json:"profiles" yaml:"profiles"`
	Campaigns []*Campaign `json:"campaigns" yaml:"campaigns"`
	LoadedAt  time.Time   `json:"loaded_at" yaml:"-"`
	Version   int64       `json:"version" yaml:"-"`
}

// EmptySnapshot retorna um snapshot sem registros
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Accounts:  []*Account{},
		Profiles:  []*Profile{},
		Campaigns: []*Campaign{},
	}
}

// Counts retorna a quantidade de registros por coleção, usado nos logs
func (s *Snapshot) Counts() map[string]int {
	if s == nil {
		return map[string]int{"accounts": 0, "profiles": 0, "campaigns": 0}
	}

	return map[string]int{
		"accounts":  len(s.Accounts),
		"profiles":  len(s.Profiles),
		"campaigns": len(s.Campaigns),
	}
}
