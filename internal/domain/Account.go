package domain

// Account representa uma conta de anúncios, raiz da navegação
type Account struct {
	AccountID    int64  `json:"accountId" yaml:"accountId"`
	Email        string `json:"email" yaml:"email"`
	AuthToken    string `json:"authToken" yaml:"authToken"`
	CreationDate string `json:"creationDate" yaml:"creationDate"`
}
