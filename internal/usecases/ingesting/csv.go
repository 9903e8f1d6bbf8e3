package ingesting

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/sales-insights-api/internal/domain"
	"github.com/vfg2006/sales-insights-api/pkg/utils"
)

// Listas ordenadas de candidatos por papel semântico. A ordem importa: o
// primeiro candidato com match exato vence antes de qualquer match parcial.
var (
	dateCandidates     = []string{"date", "data", "event_date", "dia"}
	valueCandidates    = []string{"value", "valor", "amount", "receita", "total"}
	categoryCandidates = []string{"category", "categoria", "segmento", "canal", "channel"}
	sellerCandidates   = []string{"seller", "vendedor", "seller_name", "salesperson", "loja"}
)

// Layouts de data aceitos na coerção de linhas
var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	"02/01/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// parsedCSV é o resultado da inferência de colunas + normalização de linhas
type parsedCSV struct {
	Rows           []domain.NormalizedRow
	DateColumn     string
	ValueColumn    string
	CategoryColumn string // vazio quando o CSV não tem coluna de categoria
	SellerColumn   string // vazio quando o CSV não tem coluna de vendedor
}

// pickColumn identifica a coluna de um papel semântico: primeiro tenta match
// exato case-insensitive seguindo a ordem dos candidatos, depois match por
// substring na ordem das colunas do cabeçalho. Devolve o nome original da
// coluna e seu índice, ou índice -1 quando nenhum candidato casa.
func pickColumn(headers []string, candidates []string) (string, int) {
	lowerIndex := make(map[string]int, len(headers))
	for i, header := range headers {
		lowerIndex[strings.ToLower(strings.TrimSpace(header))] = i
	}

	for _, candidate := range candidates {
		if i, ok := lowerIndex[candidate]; ok {
			return headers[i], i
		}
	}

	for i, header := range headers {
		lowered := strings.ToLower(header)
		for _, candidate := range candidates {
			if strings.Contains(lowered, candidate) {
				return headers[i], i
			}
		}
	}

	return "", -1
}

// parseCSV infere as colunas semânticas e normaliza as linhas do CSV.
// Linhas com data ou valor inválidos são descartadas silenciosamente; o CSV
// inteiro só é rejeitado quando vazio, sem coluna obrigatória ou sem nenhuma
// linha válida após a coerção.
func parseCSV(content []byte) (*parsedCSV, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("CSV malformado: %v", err))
	}
	if len(allRows) < 2 {
		return nil, domain.NewValidationError("CSV vazio.")
	}

	headers := allRows[0]
	dataRows := allRows[1:]

	dateColumn, dateIdx := pickColumn(headers, dateCandidates)
	valueColumn, valueIdx := pickColumn(headers, valueCandidates)
	categoryColumn, categoryIdx := pickColumn(headers, categoryCandidates)
	sellerColumn, sellerIdx := pickColumn(headers, sellerCandidates)

	if dateIdx < 0 {
		return nil, domain.NewValidationError(
			fmt.Sprintf("Coluna de data não encontrada. Aceitas: %v", dateCandidates),
		)
	}
	if valueIdx < 0 {
		return nil, domain.NewValidationError(
			fmt.Sprintf("Coluna de valor não encontrada. Aceitas: %v", valueCandidates),
		)
	}

	rows := make([]domain.NormalizedRow, 0, len(dataRows))
	for _, raw := range dataRows {
		eventDate, ok := parseEventDate(raw[dateIdx])
		if !ok {
			continue
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(raw[valueIdx]), 64)
		if err != nil {
			continue
		}

		row := domain.NormalizedRow{
			EventDate: eventDate,
			Value:     utils.RoundWithTwoDecimalPlace(value),
		}

		if categoryIdx >= 0 {
			if category := strings.TrimSpace(raw[categoryIdx]); category != "" {
				row.Category = &category
			}
		}
		if sellerIdx >= 0 {
			// Vendedor vazio significa "sem vendedor", nunca um placeholder
			row.SellerName = strings.TrimSpace(raw[sellerIdx])
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, domain.NewValidationError("Nenhuma linha válida após o parse (data/valor inválidos).")
	}

	return &parsedCSV{
		Rows:           rows,
		DateColumn:     dateColumn,
		ValueColumn:    valueColumn,
		CategoryColumn: categoryColumn,
		SellerColumn:   sellerColumn,
	}, nil
}

// parseEventDate tenta os layouts aceitos e trunca o resultado para a data
func parseEventDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		year, month, day := parsed.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
	}

	return time.Time{}, false
}
