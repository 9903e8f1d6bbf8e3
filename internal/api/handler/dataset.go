package handler

import (
	"net/http"

	"github.com/vfg2006/sales-insights-api/internal/domain"
	"github.com/vfg2006/sales-insights-api/internal/usecases/dataset"
	"github.com/vfg2006/sales-insights-api/pkg/apiErrors"
	"github.com/vfg2006/sales-insights-api/pkg/log"
)

func ListDatasets(service dataset.DatasetService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		datasets, err := service.List(r.Context())
		if err != nil {
			logger.WithError(err).Error("datasets: falha ao listar")
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, datasets)
	})
}

func GetDataset(service dataset.DatasetService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id de dataset inválido", nil)
			return
		}

		found, err := service.Get(r.Context(), id)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, found)
	})
}

func UpdateDataset(service dataset.DatasetService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id de dataset inválido", nil)
			return
		}

		var update domain.DatasetUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "payload JSON inválido", nil)
			return
		}

		updated, err := service.Update(r.Context(), id, update)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		logger.WithField("dataset_id", id).Info("datasets: dataset atualizado")
		respondJSON(w, logger, http.StatusOK, updated)
	})
}

func DeleteDataset(service dataset.DatasetService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id de dataset inválido", nil)
			return
		}

		if err := service.Delete(r.Context(), id); err != nil {
			writeDomainError(w, logger, err)
			return
		}

		logger.WithField("dataset_id", id).Info("datasets: dataset removido em cascata")
		respondJSON(w, logger, http.StatusOK, map[string]any{
			"deleted":    true,
			"dataset_id": id,
		})
	})
}

// GetDatasetInsights lista as anotações geradas na ingestão do dataset
func GetDatasetInsights(service dataset.DatasetService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id de dataset inválido", nil)
			return
		}

		insights, err := service.Insights(r.Context(), id)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, insights)
	})
}
