package table

// SortDirection é a direção de ordenação da tabela
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Toggle retorna a direção oposta
func (d SortDirection) Toggle() SortDirection {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Symbol retorna o indicador exibido no controle de ordenação
func (d SortDirection) Symbol() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

func (d SortDirection) orDefault() SortDirection {
	if d == Descending {
		return Descending
	}
	return Ascending
}

// Column descreve como um campo do registro vira uma coluna exibida.
// Value substitui a indexação dinâmica por nome: é o acessor tipado do campo.
type Column[T any] struct {
	Label string
	Field string
	Value func(T) any
	Sort  SortDirection

	// Key marca a coluna usada como identidade estável da linha
	Key bool
}

// Header é o cabeçalho renderizado de uma coluna
type Header struct {
	Label     string        `json:"label"`
	Field     string        `json:"field"`
	Sortable  bool          `json:"sortable"`
	Direction SortDirection `json:"direction,omitempty"`
	Symbol    string        `json:"symbol,omitempty"`
}
