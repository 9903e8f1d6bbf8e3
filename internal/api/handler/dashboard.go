package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/vfg2006/sales-insights-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-insights-api/pkg/apiErrors"
	"github.com/vfg2006/sales-insights-api/pkg/log"
)

// dashboardRequest concentra o parse comum de :id + query string dos
// endpoints de leitura do dashboard
func dashboardRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, dashboarding.Query, bool) {
	id, err := pathID(r)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id de dataset inválido", nil)
		return uuid.Nil, dashboarding.Query{}, false
	}

	query, err := parseDashboardQuery(r)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return uuid.Nil, dashboarding.Query{}, false
	}

	return id, query, true
}

func GetDatasetFilters(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id de dataset inválido", nil)
			return
		}

		options, err := service.FilterOptions(r.Context(), id)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, options)
	})
}

func GetSeries(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, query, ok := dashboardRequest(w, r)
		if !ok {
			return
		}

		series, err := service.Series(r.Context(), id, query)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, series)
	})
}

func GetKPIs(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, query, ok := dashboardRequest(w, r)
		if !ok {
			return
		}

		kpis, err := service.KPIs(r.Context(), id, query)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, kpis)
	})
}

func GetTopCategories(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, query, ok := dashboardRequest(w, r)
		if !ok {
			return
		}

		categories, err := service.TopCategories(r.Context(), id, query)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, categories)
	})
}

// GetDatasetSellers lista os vendedores presentes no conjunto filtrado
func GetDatasetSellers(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, query, ok := dashboardRequest(w, r)
		if !ok {
			return
		}

		sellers, err := service.Sellers(r.Context(), id, query)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, sellers)
	})
}

func GetSellerRanking(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, query, ok := dashboardRequest(w, r)
		if !ok {
			return
		}

		ranking, err := service.SellerRanking(r.Context(), id, query)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, ranking)
	})
}

func GetDashboard(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, query, ok := dashboardRequest(w, r)
		if !ok {
			return
		}

		dashboard, err := service.Dashboard(r.Context(), id, query)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, dashboard)
	})
}

func CompareDashboard(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, query, ok := dashboardRequest(w, r)
		if !ok {
			return
		}

		comparison, err := service.Compare(r.Context(), id, query)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, comparison)
	})
}

// ExportDashboardCSV devolve o dashboard serializado como anexo CSV
func ExportDashboardCSV(service dashboarding.Dashboarder) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, query, ok := dashboardRequest(w, r)
		if !ok {
			return
		}

		content, filename, err := service.ExportCSV(r.Context(), id, query)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"dataset_id": id,
			"filename":   filename,
			"size":       len(content),
		}).Info("dashboard: export CSV gerado")

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)

		if _, err := w.Write(content); err != nil {
			logger.WithError(err).Error("dashboard: falha ao enviar o CSV")
		}
	})
}
