// Package bootstrap concentra os passos explícitos de inicialização do
// processo: criação idempotente do schema e seed do dataset demo quando o
// banco ainda não tem nenhum dataset.
package bootstrap

import (
	"context"
	_ "embed"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-insights-api/infrastructure/repository"
	"github.com/vfg2006/sales-insights-api/internal/config"
	"github.com/vfg2006/sales-insights-api/internal/usecases/ingesting"
	"github.com/vfg2006/sales-insights-api/pkg/log"
)

//go:embed demo_sales_with_seller.csv
var demoCSV []byte

const (
	demoDatasetName = "Demo - Vendas (CSV Seed)"
	demoFilename    = "demo_sales_with_seller.csv"
)

// Run cria o schema e aplica o seed sob demanda. O seed usa o mesmo pipeline
// de ingestão do upload, então o dataset demo se comporta como qualquer outro.
func Run(
	ctx context.Context,
	conn *postgres.Connection,
	datasetRepo repository.DatasetRepository,
	ingester ingesting.Ingester,
	cfg *config.Config,
) error {
	if err := conn.EnsureSchema(ctx); err != nil {
		return errors.Wrap(err, "erro ao garantir o schema")
	}
	log.L.Info("Schema do banco verificado")

	if !cfg.Seed.OnEmpty {
		log.L.Info("Seed desabilitado por configuração")
		return nil
	}

	count, err := datasetRepo.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "erro ao contar datasets")
	}
	if count > 0 {
		log.L.WithField("datasets", count).Info("Banco já populado, seed ignorado")
		return nil
	}

	result, err := ingester.IngestSeed(ctx, demoDatasetName, demoFilename, demoCSV)
	if err != nil {
		return errors.Wrap(err, "erro ao aplicar o seed demo")
	}

	log.L.WithFields(log.Fields{
		"dataset_id": result.DatasetID,
		"rows":       result.RowsInserted,
	}).Info("Dataset demo criado via seed")

	return nil
}
