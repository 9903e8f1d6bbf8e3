package handler

import (
	"net/http"

	"github.com/vfg2006/sales-insights-api/internal/domain"
	"github.com/vfg2006/sales-insights-api/internal/usecases/seller"
	"github.com/vfg2006/sales-insights-api/pkg/apiErrors"
	"github.com/vfg2006/sales-insights-api/pkg/log"
)

func CreateSeller(service seller.SellerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var payload domain.SellerCreate
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "payload JSON inválido", nil)
			return
		}

		created, err := service.Create(r.Context(), payload)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"seller_id": created.ID,
			"name":      created.Name,
		}).Info("sellers: vendedor criado")

		respondJSON(w, logger, http.StatusCreated, created)
	})
}

// ListSellers lista vendedores, com busca opcional por nome via ?q=
func ListSellers(service seller.SellerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		sellers, err := service.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusOK, sellers)
	})
}

func GetSeller(service seller.SellerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id de vendedor inválido", nil)
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

func UpdateSeller(service seller.SellerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id de vendedor inválido", nil)
			return
		}

		var update domain.SellerUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "payload JSON inválido", nil)
			return
		}

		updated, err := service.Update(r.Context(), id, update)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		logger.WithField("seller_id", id).Info("sellers: vendedor atualizado")
		respondJSON(w, logger, http.StatusOK, updated)
	})
}

// DeleteSeller remove o vendedor; registros vinculados ficam sem vendedor
// pela constraint ON DELETE SET NULL
func DeleteSeller(service seller.SellerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id, err := pathID(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id de vendedor inválido", nil)
			return
		}

		if err := service.Delete(r.Context(), id); err != nil {
			writeDomainError(w, logger, err)
			return
		}

		logger.WithField("seller_id", id).Info("sellers: vendedor removido")
		respondJSON(w, logger, http.StatusOK, map[string]any{
			"deleted":   true,
			"seller_id": id,
		})
	})
}
