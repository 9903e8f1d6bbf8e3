package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-insights-api/infrastructure/repository"
	"github.com/vfg2006/sales-insights-api/internal/api"
	"github.com/vfg2006/sales-insights-api/internal/bootstrap"
	"github.com/vfg2006/sales-insights-api/internal/config"
	"github.com/vfg2006/sales-insights-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-insights-api/internal/usecases/dataset"
	"github.com/vfg2006/sales-insights-api/internal/usecases/ingesting"
	"github.com/vfg2006/sales-insights-api/internal/usecases/record"
	"github.com/vfg2006/sales-insights-api/internal/usecases/seller"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	datasetRepo := repository.NewDatasetRepository(pgConn)
	sellerRepo := repository.NewSellerRepository(pgConn)
	recordRepo := repository.NewRecordRepository(pgConn)
	insightRepo := repository.NewInsightRepository(pgConn)
	aggregateRepo := repository.NewAggregateRepository(pgConn)
	ingestionRepo := repository.NewIngestionRepository(pgConn)

	ingestService := ingesting.NewService(ingestionRepo)
	datasetService := dataset.NewService(datasetRepo, insightRepo)
	dashboardService := dashboarding.NewService(datasetRepo, aggregateRepo)
	sellerService := seller.NewService(sellerRepo)
	recordService := record.NewService(recordRepo, sellerRepo)

	// Schema e seed demo antes de aceitar requisições
	if err := bootstrap.Run(ctx, pgConn, datasetRepo, ingestService, cfg); err != nil {
		logrus.WithError(err).Fatal("Erro durante o bootstrap da aplicação")
	}

	server, err := api.New(
		cfg,
		pgConn,
		datasetService,
		ingestService,
		dashboardService,
		sellerService,
		recordService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
