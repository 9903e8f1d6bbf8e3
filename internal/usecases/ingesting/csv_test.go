package ingesting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickColumn(t *testing.T) {
	tests := []struct {
		name       string
		headers    []string
		candidates []string
		wantName   string
		wantIdx    int
	}{
		{
			name:       "match exato vence mesmo vindo depois no cabeçalho",
			headers:    []string{"Dia", "Data", "Valor"},
			candidates: dateCandidates,
			wantName:   "Data",
			wantIdx:    1,
		},
		{
			name:       "match exato é case-insensitive",
			headers:    []string{"DATE", "valor"},
			candidates: dateCandidates,
			wantName:   "DATE",
			wantIdx:    0,
		},
		{
			name:       "fallback por substring quando não há match exato",
			headers:    []string{"Data", "Receita Total (R$)"},
			candidates: valueCandidates,
			wantName:   "Receita Total (R$)",
			wantIdx:    1,
		},
		{
			name:       "nenhum candidato casa",
			headers:    []string{"foo", "bar"},
			candidates: valueCandidates,
			wantName:   "",
			wantIdx:    -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotName, gotIdx := pickColumn(tt.headers, tt.candidates)

			assert.Equal(t, tt.wantName, gotName)
			assert.Equal(t, tt.wantIdx, gotIdx)
		})
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "CSV só com cabeçalho é rejeitado",
			content: "data,valor\n",
			wantErr: "CSV vazio.",
		},
		{
			name:    "CSV sem conteúdo é rejeitado",
			content: "",
			wantErr: "CSV vazio.",
		},
		{
			name:    "coluna de data ausente",
			content: "categoria,valor\nLentes,10.00\n",
			wantErr: "Coluna de data não encontrada. Aceitas: [date data event_date dia]",
		},
		{
			name:    "coluna de valor ausente",
			content: "data,categoria\n2024-01-01,Lentes\n",
			wantErr: "Coluna de valor não encontrada. Aceitas: [value valor amount receita total]",
		},
		{
			name:    "todas as linhas inválidas",
			content: "data,valor\nnão-é-data,10.00\n2024-01-01,não-é-número\n",
			wantErr: "Nenhuma linha válida após o parse (data/valor inválidos).",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseCSV([]byte(tt.content))

			require.Error(t, err)
			assert.Nil(t, parsed)
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestParseCSV_NormalizaLinhas(t *testing.T) {
	content := "data,categoria,vendedor,valor\n" +
		"2024-01-02,Lentes,Ana,100.567\n" +
		"2024/01/03,,Bruno,50\n" +
		"data-inválida,Lentes,Ana,10\n" +
		"2024-01-04,Armações, ,abc\n" +
		"05/01/2024,Armações,  Carla  ,25.5\n"

	parsed, err := parseCSV([]byte(content))
	require.NoError(t, err)

	assert.Equal(t, "data", parsed.DateColumn)
	assert.Equal(t, "valor", parsed.ValueColumn)
	assert.Equal(t, "categoria", parsed.CategoryColumn)
	assert.Equal(t, "vendedor", parsed.SellerColumn)

	// Linhas com data ou valor inválidos são descartadas em silêncio
	require.Len(t, parsed.Rows, 3)

	first := parsed.Rows[0]
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), first.EventDate)
	assert.Equal(t, 100.57, first.Value)
	require.NotNil(t, first.Category)
	assert.Equal(t, "Lentes", *first.Category)
	assert.Equal(t, "Ana", first.SellerName)

	// Categoria vazia vira nil, nunca string vazia
	second := parsed.Rows[1]
	assert.Equal(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), second.EventDate)
	assert.Nil(t, second.Category)
	assert.Equal(t, "Bruno", second.SellerName)

	// Layout dd/mm/yyyy e trim do nome do vendedor
	third := parsed.Rows[2]
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), third.EventDate)
	assert.Equal(t, 25.5, third.Value)
	assert.Equal(t, "Carla", third.SellerName)
}

func TestParseCSV_SemColunasOpcionais(t *testing.T) {
	content := "data,valor\n2024-01-01,10.00\n"

	parsed, err := parseCSV([]byte(content))
	require.NoError(t, err)

	assert.Empty(t, parsed.CategoryColumn)
	assert.Empty(t, parsed.SellerColumn)

	require.Len(t, parsed.Rows, 1)
	assert.Nil(t, parsed.Rows[0].Category)
	assert.Empty(t, parsed.Rows[0].SellerName)
}

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
		ok   bool
	}{
		{
			name: "formato ISO",
			raw:  "2024-03-10",
			want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "timestamp é truncado para a data",
			raw:  "2024-03-10 15:04:05",
			want: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			ok:   true,
		},
		{
			name: "string vazia",
			raw:  "  ",
			ok:   false,
		},
		{
			name: "formato desconhecido",
			raw:  "10.03.2024",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseEventDate(tt.raw)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
