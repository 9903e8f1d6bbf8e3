package handler

import (
	"net/http"

	"github.com/vfg2006/sales-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-insights-api/internal/api/handler/router"
	"github.com/vfg2006/sales-insights-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-insights-api/internal/usecases/dataset"
	"github.com/vfg2006/sales-insights-api/internal/usecases/ingesting"
	"github.com/vfg2006/sales-insights-api/internal/usecases/record"
	"github.com/vfg2006/sales-insights-api/internal/usecases/seller"
)

func Healthcheck(conn postgres.Conn) []router.Route {
	return []router.Route{
		{
			Path:    "/health",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(conn),
		},
	}
}

func Datasets(
	datasetService dataset.DatasetService,
	ingestService ingesting.Ingester,
) []router.Route {
	return []router.Route{
		{
			Path:    "/datasets",
			Method:  http.MethodGet,
			Handler: ListDatasets(datasetService),
		},
		{
			Path:    "/datasets/upload",
			Method:  http.MethodPost,
			Handler: UploadDataset(ingestService),
		},
		{
			Path:    "/datasets/:id",
			Method:  http.MethodGet,
			Handler: GetDataset(datasetService),
		},
		{
			Path:    "/datasets/:id",
			Method:  http.MethodPatch,
			Handler: UpdateDataset(datasetService),
		},
		{
			Path:    "/datasets/:id",
			Method:  http.MethodDelete,
			Handler: DeleteDataset(datasetService),
		},
		{
			Path:    "/datasets/:id/insights",
			Method:  http.MethodGet,
			Handler: GetDatasetInsights(datasetService),
		},
	}
}

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:    "/datasets/:id/filters",
			Method:  http.MethodGet,
			Handler: GetDatasetFilters(service),
		},
		{
			Path:    "/datasets/:id/series",
			Method:  http.MethodGet,
			Handler: GetSeries(service),
		},
		{
			Path:    "/datasets/:id/kpis",
			Method:  http.MethodGet,
			Handler: GetKPIs(service),
		},
		{
			Path:    "/datasets/:id/categories",
			Method:  http.MethodGet,
			Handler: GetTopCategories(service),
		},
		{
			Path:    "/datasets/:id/sellers",
			Method:  http.MethodGet,
			Handler: GetDatasetSellers(service),
		},
		{
			Path:    "/datasets/:id/sellers/ranking",
			Method:  http.MethodGet,
			Handler: GetSellerRanking(service),
		},
		{
			Path:    "/datasets/:id/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
		{
			Path:    "/datasets/:id/dashboard/compare",
			Method:  http.MethodGet,
			Handler: CompareDashboard(service),
		},
		{
			Path:    "/datasets/:id/dashboard/export.csv",
			Method:  http.MethodGet,
			Handler: ExportDashboardCSV(service),
		},
	}
}

func Sellers(service seller.SellerService) []router.Route {
	return []router.Route{
		{
			Path:    "/sellers",
			Method:  http.MethodGet,
			Handler: ListSellers(service),
		},
		{
			Path:    "/sellers",
			Method:  http.MethodPost,
			Handler: CreateSeller(service),
		},
		{
			Path:    "/sellers/:id",
			Method:  http.MethodGet,
			Handler: GetSeller(service),
		},
		{
			Path:    "/sellers/:id",
			Method:  http.MethodPatch,
			Handler: UpdateSeller(service),
		},
		{
			Path:    "/sellers/:id",
			Method:  http.MethodDelete,
			Handler: DeleteSeller(service),
		},
	}
}

func Records(service record.RecordService) []router.Route {
	return []router.Route{
		{
			Path:    "/records/:id",
			Method:  http.MethodPatch,
			Handler: UpdateRecordSeller(service),
		},
	}
}
