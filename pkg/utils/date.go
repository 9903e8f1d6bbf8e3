package utils

import "time"

// ParseDate interpreta uma data opcional (YYYY-MM-DD) vinda de query string.
// String vazia devolve nil, indicando filtro ausente.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// FormatDate formata uma data opcional como YYYY-MM-DD, vazio quando nula
func FormatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(time.DateOnly)
}
