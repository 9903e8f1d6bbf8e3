package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-insights-api/internal/domain"
	"github.com/vfg2006/sales-insights-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-insights-api/pkg/apiErrors"
	"github.com/vfg2006/sales-insights-api/pkg/log"
	"github.com/vfg2006/sales-insights-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// respondJSON serializa o payload e loga falhas de encoding sem sobrescrever
// o status já enviado
func respondJSON(w http.ResponseWriter, logger log.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("api: falha ao serializar resposta")
	}
}

// writeDomainError traduz erros de domínio para o contrato de erro da API
func writeDomainError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrDatasetNotFound):
		apiErrors.WriteError(w, apiErrors.ErrDatasetNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrSellerNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSellerNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrRecordNotFound):
		apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrSellerNameConflict):
		apiErrors.WriteError(w, apiErrors.ErrSellerConflict, err.Error(), nil)
	case errors.Is(err, domain.ErrEmptySellerName):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidDateRange), errors.Is(err, domain.ErrUnboundedRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRange, err.Error(), nil)
	case domain.IsValidation(err):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	default:
		logger.WithError(err).Error("api: erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "erro interno ao processar a requisição", nil)
	}
}

// pathID extrai e valida o parâmetro :id como UUID
func pathID(r *http.Request) (uuid.UUID, error) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName("id")
	return uuid.Parse(raw)
}

// parseDashboardQuery monta os filtros comuns dos endpoints de dashboard a
// partir da query string. Datas inválidas e UUIDs malformados falham aqui;
// limites fora da faixa são corrigidos pelo serviço.
func parseDashboardQuery(r *http.Request) (dashboarding.Query, error) {
	query := dashboarding.Query{}

	startDate, err := utils.ParseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		return query, domain.NewValidationError("start_date inválido, use YYYY-MM-DD")
	}
	query.StartDate = startDate

	endDate, err := utils.ParseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		return query, domain.NewValidationError("end_date inválido, use YYYY-MM-DD")
	}
	query.EndDate = endDate

	if raw := r.URL.Query().Get("seller_id"); raw != "" {
		sellerID, err := uuid.Parse(raw)
		if err != nil {
			return query, domain.NewValidationError("seller_id inválido")
		}
		query.SellerID = &sellerID
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return query, domain.NewValidationError("limit inválido")
		}
		query.CategoryLimit = limit
		query.RankingLimit = limit
	}

	return query, nil
}
