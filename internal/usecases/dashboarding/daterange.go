package dashboarding

import (
	"time"

	"github.com/vfg2006/sales-insights-api/internal/domain"
)

// normalizeRange completa um par (start, end) parcialmente informado usando os
// limites conhecidos do dataset: só start vira [start, date_max], só end vira
// [date_min, end]. Nenhum dos dois informados significa "sem filtro". Um par
// explícito invertido é rejeitado.
func normalizeRange(start, end *time.Time, dataset *domain.Dataset) (*time.Time, *time.Time, error) {
	if start != nil && end != nil {
		if start.After(*end) {
			return nil, nil, domain.ErrInvalidDateRange
		}
		return start, end, nil
	}

	if start != nil && end == nil {
		return start, dataset.DateMax, nil
	}
	if end != nil && start == nil {
		return dataset.DateMin, end, nil
	}

	return nil, nil, nil
}

// resolveWindow materializa uma janela concreta para a comparação de períodos,
// caindo nos limites do dataset quando o filtro está aberto. Falha quando o
// dataset não tem limites (sem registros) ou quando a janela fica invertida.
func resolveWindow(start, end *time.Time, dataset *domain.Dataset) (time.Time, time.Time, error) {
	start, end, err := normalizeRange(start, end, dataset)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if start == nil {
		start = dataset.DateMin
	}
	if end == nil {
		end = dataset.DateMax
	}
	if start == nil || end == nil {
		return time.Time{}, time.Time{}, domain.ErrUnboundedRange
	}
	if start.After(*end) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}

	return *start, *end, nil
}

// previousWindow deriva a janela imediatamente anterior com a mesma duração em
// dias (inclusiva), terminando na véspera de start
func previousWindow(start, end time.Time) (time.Time, time.Time) {
	days := int(end.Sub(start).Hours()/24) + 1

	previousEnd := start.AddDate(0, 0, -1)
	previousStart := previousEnd.AddDate(0, 0, -(days - 1))

	return previousStart, previousEnd
}
