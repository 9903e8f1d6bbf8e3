package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-insights-api/internal/domain"
	"github.com/vfg2006/sales-insights-api/internal/usecases/record"
	"github.com/vfg2006/sales-insights-api/pkg/apiErrors"
	"github.com/vfg2006/sales-insights-api/pkg/log"
)

// UpdateRecordSeller reatribui o vendedor de um registro. O corpo precisa
// trazer o campo seller_id; enviar null desvincula o vendedor atual.
func UpdateRecordSeller(service record.RecordService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		raw := httprouter.ParamsFromContext(r.Context()).ByName("id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "id de registro inválido", nil)
			return
		}

		var update domain.RecordSellerUpdate
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "payload JSON inválido", nil)
			return
		}

		updated, err := service.UpdateSeller(r.Context(), id, update)
		if err != nil {
			writeDomainError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"record_id": id,
			"seller_id": update.SellerID,
		}).Info("records: vendedor do registro atualizado")

		respondJSON(w, logger, http.StatusOK, updated)
	})
}
