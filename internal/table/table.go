// Package table implementa a tabela genérica usada em todos os níveis da navegação:
// exibe qualquer coleção homogênea, ordena pela primeira coluna e repassa o
// registro clicado para quem a montou.
package table

import (
	"slices"
	"strconv"
)

// Row é uma linha renderizada
type Row[T any] struct {
	Key    string   // Identidade estável da linha
	Index  int      // Posição do registro na coleção recebida
	Record T        // Registro original
	Cells  []string // Valores formatados na ordem das colunas
}

// RowView é a forma serializável de uma linha
type RowView struct {
	Key      string   `json:"key"`
	Cells    []string `json:"cells"`
	Selected bool     `json:"selected"` // Preenchido por quem conhece a seleção
}

// View é a forma serializável da tabela em uma renderização
type View struct {
	Headers   []Header      `json:"headers"`
	Rows      []RowView     `json:"rows"`
	SortField string        `json:"sort_field"`
	Direction SortDirection `json:"direction"`
	Symbol    string        `json:"symbol"`
}

// Table mantém o estado de ordenação de uma coleção exibida
type Table[T any] struct {
	columns   []Column[T]
	data      []T
	onSelect  func(T)
	direction SortDirection
	keyColumn int
}

// New valida as colunas e monta a tabela. Erros de configuração são
// retornados como *ConfigError.
func New[T any](data []T, columns []Column[T], onSelect func(T)) (*Table[T], error) {
	if len(columns) == 0 {
		return nil, configError(ErrNoColumns, -1, "")
	}

	if onSelect == nil {
		return nil, configError(ErrMissingSelectHandler, -1, "")
	}

	keyColumn := -1
	fields := make(map[string]struct{}, len(columns))
	for i, column := range columns {
		if column.Field == "" {
			return nil, configError(ErrMissingField, i, "")
		}

		if column.Value == nil {
			return nil, configError(ErrMissingAccessor, i, column.Field)
		}

		if _, exists := fields[column.Field]; exists {
			return nil, configError(ErrDuplicateField, i, column.Field)
		}
		fields[column.Field] = struct{}{}

		if column.Key && keyColumn < 0 {
			keyColumn = i
		}
	}

	return &Table[T]{
		columns:   slices.Clone(columns),
		data:      data,
		onSelect:  onSelect,
		direction: columns[0].Sort.orDefault(),
		keyColumn: keyColumn,
	}, nil
}

// SetData troca a coleção exibida mantendo o estado de ordenação
func (t *Table[T]) SetData(data []T) {
	t.data = data
}

// Len retorna a quantidade de linhas
func (t *Table[T]) Len() int {
	return len(t.data)
}

// Direction retorna a direção de ordenação atual
func (t *Table[T]) Direction() SortDirection {
	return t.direction
}

// SortField retorna o campo usado na ordenação (sempre a primeira coluna)
func (t *Table[T]) SortField() string {
	return t.columns[0].Field
}

// ToggleSort inverte a direção de ordenação
func (t *Table[T]) ToggleSort() SortDirection {
	t.direction = t.direction.Toggle()
	return t.direction
}

// Headers retorna os cabeçalhos; apenas o primeiro tem controle de ordenação
func (t *Table[T]) Headers() []Header {
	headers := make([]Header, 0, len(t.columns))
	for i, column := range t.columns {
		header := Header{
			Label: column.Label,
			Field: column.Field,
		}

		if i == 0 {
			header.Sortable = true
			header.Direction = t.direction
			header.Symbol = t.direction.Symbol()
		}

		headers = append(headers, header)
	}

	return headers
}

// Rows retorna as linhas ordenadas. A coleção recebida não é alterada:
// a ordenação é feita sobre uma cópia.
func (t *Table[T]) Rows() []Row[T] {
	rows := make([]Row[T], 0, len(t.data))
	for i, record := range t.data {
		rows = append(rows, Row[T]{
			Key:    t.rowKey(i, record),
			Index:  i,
			Record: record,
			Cells:  t.cells(record),
		})
	}

	sortBy := t.columns[0].Value
	desc := t.direction == Descending
	slices.SortStableFunc(rows, func(a, b Row[T]) int {
		c := compareValues(sortBy(a.Record), sortBy(b.Record))
		if desc {
			return -c
		}
		return c
	})

	return rows
}

// View retorna a renderização serializável da tabela
func (t *Table[T]) View() View {
	rows := t.Rows()

	views := make([]RowView, 0, len(rows))
	for _, row := range rows {
		views = append(views, RowView{
			Key:   row.Key,
			Cells: row.Cells,
		})
	}

	return View{
		Headers:   t.Headers(),
		Rows:      views,
		SortField: t.SortField(),
		Direction: t.direction,
		Symbol:    t.direction.Symbol(),
	}
}

// Select trata o clique na linha com a chave informada, chamando onSelect
// uma única vez com o registro original
func (t *Table[T]) Select(key string) error {
	for i, record := range t.data {
		if t.rowKey(i, record) == key {
			t.onSelect(record)
			return nil
		}
	}

	return ErrRowNotFound
}

// SelectAt trata o clique pela posição renderizada (após a ordenação)
func (t *Table[T]) SelectAt(position int) error {
	rows := t.Rows()
	if position < 0 || position >= len(rows) {
		return ErrRowNotFound
	}

	t.onSelect(rows[position].Record)
	return nil
}

// KeyOf retorna a chave que a tabela atribuiria ao registro, ou "" sem coluna chave
func (t *Table[T]) KeyOf(record T) string {
	if t.keyColumn < 0 {
		return ""
	}
	return formatValue(t.columns[t.keyColumn].Value(record))
}

func (t *Table[T]) rowKey(index int, record T) string {
	if t.keyColumn < 0 {
		return strconv.Itoa(index)
	}
	return formatValue(t.columns[t.keyColumn].Value(record))
}

func (t *Table[T]) cells(record T) []string {
	cells := make([]string, 0, len(t.columns))
	for _, column := range t.columns {
		cells = append(cells, formatValue(column.Value(record)))
	}
	return cells
}
