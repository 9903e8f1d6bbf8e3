package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de recurso (1000-1999)
	ErrDatasetNotFound = "RES_001" // Dataset não encontrado
	ErrSellerNotFound  = "RES_002" // Vendedor não encontrado
	ErrRecordNotFound  = "RES_003" // Registro não encontrado

	// Erros de validação (2000-2999)
	ErrInvalidRequest = "VAL_001" // Requisição inválida
	ErrInvalidUpload  = "VAL_002" // Upload malformado (extensão ou conteúdo do CSV)
	ErrInvalidFormat  = "VAL_003" // Formato de dados inválido
	ErrInvalidRange   = "VAL_004" // Intervalo de datas inválido (start > end)

	// Erros de conflito (3000-3999)
	ErrSellerConflict = "CONF_001" // Nome de vendedor duplicado

	// Erros do servidor (5000-5999)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrDatasetNotFound:   http.StatusNotFound,
	ErrSellerNotFound:    http.StatusNotFound,
	ErrRecordNotFound:    http.StatusNotFound,
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrInvalidUpload:     http.StatusBadRequest,
	ErrInvalidFormat:     http.StatusBadRequest,
	ErrInvalidRange:      http.StatusUnprocessableEntity,
	ErrSellerConflict:    http.StatusConflict,
	ErrInternalServer:    http.StatusInternalServerError,
	ErrDatabaseOperation: http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
