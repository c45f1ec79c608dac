package domain

// Profile é um perfil de marketplace vinculado a uma conta pelo AccountID
type Profile struct {
	ProfileID   int64  `json:"profileId" yaml:"profileId"`
	Country     string `json:"country" yaml:"country"`
	Marketplace string `json:"marketplace" yaml:"marketplace"`
	AccountID   *int64 `json:"accountId" yaml:"accountId"`
}

// BelongsTo indica se o perfil pertence à conta informada
func (p *Profile) BelongsTo(accountID int64) bool {
	return p != nil && p.AccountID != nil && *p.AccountID == accountID
}
