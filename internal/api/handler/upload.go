package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/vfg2006/sales-insights-api/internal/domain"
	"github.com/vfg2006/sales-insights-api/internal/usecases/ingesting"
	"github.com/vfg2006/sales-insights-api/pkg/apiErrors"
	"github.com/vfg2006/sales-insights-api/pkg/log"
)

// Limite de tamanho do multipart mantido em memória antes de ir para disco
const maxUploadMemory = 32 << 20

// UploadDataset recebe um CSV multipart e dispara a ingestão transacional
func UploadDataset(service ingesting.Ingester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidUpload, "multipart inválido, envie o arquivo no campo 'file'", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidUpload, "campo 'file' ausente no upload", nil)
			return
		}
		defer file.Close()

		if strings.ToLower(filepath.Ext(header.Filename)) != ".csv" {
			logger.WithField("filename", header.Filename).Warn("upload: extensão rejeitada")
			apiErrors.WriteError(w, apiErrors.ErrInvalidUpload, "apenas arquivos .csv são aceitos", nil)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			logger.WithError(err).Error("upload: falha ao ler o arquivo")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "falha ao ler o arquivo enviado", nil)
			return
		}

		logger.WithFields(log.Fields{
			"filename": header.Filename,
			"size":     len(content),
		}).Info("upload: arquivo recebido")

		result, err := service.IngestUpload(r.Context(), header.Filename, content)
		if err != nil {
			if domain.IsValidation(err) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidUpload, err.Error(), nil)
				return
			}
			writeDomainError(w, logger, err)
			return
		}

		respondJSON(w, logger, http.StatusCreated, result)
	})
}
