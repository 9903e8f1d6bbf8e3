package dashboarding

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/vfg2006/sales-insights-api/internal/domain"
	"github.com/vfg2006/sales-insights-api/pkg/utils"
)

// Cabeçalhos das seções do export, na ordem fixa do documento
const (
	sectionMetadata      = "Metadata"
	sectionKPIs          = "KPIs"
	sectionSeries        = "Series"
	sectionTopCategories = "Top Categories"
	sectionSellerRanking = "Seller Ranking"
)

// buildExportCSV serializa o dashboard em seções delimitadas por linha em
// branco. Cada seção tem um cabeçalho próprio e pode ser parseada isoladamente.
func buildExportCSV(dashboard *domain.Dashboard) []byte {
	var buffer bytes.Buffer

	writeSection(&buffer, sectionMetadata,
		[]string{"dataset_id", "start_date", "end_date", "seller_id"},
		[][]string{{
			dashboard.Filters.DatasetID.String(),
			utils.FormatDate(dashboard.Filters.StartDate),
			utils.FormatDate(dashboard.Filters.EndDate),
			formatSellerID(dashboard.Filters.SellerID),
		}},
	)
	buffer.WriteString("\n")

	kpis := dashboard.KPIs
	writeSection(&buffer, sectionKPIs,
		[]string{"total_value", "avg_daily_value", "days", "best_day_date", "best_day_value", "worst_day_date", "worst_day_value"},
		[][]string{{
			formatValue(kpis.TotalValue),
			formatValue(kpis.AvgDailyValue),
			strconv.Itoa(kpis.Days),
			formatDayDate(kpis.BestDay),
			formatDayValue(kpis.BestDay),
			formatDayDate(kpis.WorstDay),
			formatDayValue(kpis.WorstDay),
		}},
	)
	buffer.WriteString("\n")

	seriesRows := make([][]string, 0, len(dashboard.Series))
	for _, point := range dashboard.Series {
		seriesRows = append(seriesRows, []string{
			point.Date.Format(time.DateOnly),
			formatValue(point.Value),
		})
	}
	writeSection(&buffer, sectionSeries, []string{"date", "value"}, seriesRows)
	buffer.WriteString("\n")

	categoryRows := make([][]string, 0, len(dashboard.TopCategories))
	for _, category := range dashboard.TopCategories {
		categoryRows = append(categoryRows, []string{
			category.Category,
			formatValue(category.Value),
		})
	}
	writeSection(&buffer, sectionTopCategories, []string{"category", "value"}, categoryRows)
	buffer.WriteString("\n")

	rankingRows := make([][]string, 0, len(dashboard.SellerRanking))
	for _, item := range dashboard.SellerRanking {
		rankingRows = append(rankingRows, []string{
			item.SellerID.String(),
			item.SellerName,
			formatValue(item.TotalValue),
			formatValue(item.AvgDailyValue),
			strconv.Itoa(item.Days),
		})
	}
	writeSection(&buffer, sectionSellerRanking,
		[]string{"seller_id", "seller_name", "total_value", "avg_daily_value", "days"},
		rankingRows,
	)

	return buffer.Bytes()
}

func writeSection(buffer *bytes.Buffer, title string, header []string, rows [][]string) {
	writer := csv.NewWriter(buffer)

	_ = writer.Write([]string{title})
	_ = writer.Write(header)
	for _, row := range rows {
		_ = writer.Write(row)
	}

	writer.Flush()
}

// exportFilename codifica dataset e janela resolvida no nome do anexo
func exportFilename(datasetID uuid.UUID, filters domain.RecordFilters) string {
	start := "all"
	if filters.StartDate != nil {
		start = filters.StartDate.Format(time.DateOnly)
	}

	end := "all"
	if filters.EndDate != nil {
		end = filters.EndDate.Format(time.DateOnly)
	}

	return fmt.Sprintf("dashboard_%s_%s_%s.csv", datasetID, start, end)
}

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func formatSellerID(sellerID *uuid.UUID) string {
	if sellerID == nil {
		return ""
	}
	return sellerID.String()
}

func formatDayDate(day *domain.DayValue) string {
	if day == nil {
		return ""
	}
	return day.Date.Format(time.DateOnly)
}

func formatDayValue(day *domain.DayValue) string {
	if day == nil {
		return ""
	}
	return formatValue(day.Value)
}
