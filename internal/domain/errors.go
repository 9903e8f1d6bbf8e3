package domain

import "errors"

// Erros de domínio traduzidos para HTTP na camada de handlers
var (
	ErrDatasetNotFound    = errors.New("dataset não encontrado")
	ErrSellerNotFound     = errors.New("vendedor não encontrado")
	ErrRecordNotFound     = errors.New("registro não encontrado")
	ErrSellerNameConflict = errors.New("já existe um vendedor com esse nome")
	ErrEmptySellerName    = errors.New("nome de vendedor vazio")
	ErrInvalidDateRange   = errors.New("intervalo de datas inválido: start_date maior que end_date")
	ErrUnboundedRange     = errors.New("não foi possível resolver a janela de datas do dataset")
)

// ValidationError sinaliza falha de validação da ingestão (CSV malformado,
// coluna obrigatória ausente, nenhuma linha válida). A mensagem é exposta
// diretamente ao cliente.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError cria um ValidationError com a mensagem dada
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation informa se err é uma falha de validação de ingestão
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
