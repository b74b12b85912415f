package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/growai/backend/internal/domain/shared"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of exported workbooks
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names of the exported workbook
const (
	SheetSummary       = "Summary"
	SheetSalesSeries   = "Sales Series"
	SheetTopProducts   = "Top Products"
	SheetCategoryShare = "Category Share"
)

// ExportService renders the dashboard reports into a spreadsheet
type ExportService struct {
	reports *ReportService
	clock   shared.Clock
}

// NewExportService creates a new ExportService
func NewExportService(reports *ReportService, clock shared.Clock) *ExportService {
	return &ExportService{reports: reports, clock: clock}
}

// Filename returns the download name of a workbook exported now
func (s *ExportService) Filename() string {
	return fmt.Sprintf("report-%s.xlsx", s.clock.Now().Format("2006-01-02"))
}

// ExportWorkbook builds an XLSX workbook with one sheet per report.
// days and limit follow the same rules as the report endpoints.
func (s *ExportService) ExportWorkbook(ctx context.Context, days, limit int) ([]byte, error) {
	summary, err := s.reports.Summary(ctx)
	if err != nil {
		return nil, err
	}
	series, err := s.reports.SalesSeries(ctx, days)
	if err != nil {
		return nil, err
	}
	top, err := s.reports.TopProducts(ctx, limit)
	if err != nil {
		return nil, err
	}
	shares, err := s.reports.CategoryShare(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	topName, topRevenue := "", 0.0
	if summary.TopProduct != nil {
		topName, topRevenue = summary.TopProduct.Name, summary.TopProduct.Revenue
	}
	summaryRows := [][]interface{}{
		{"Metric", "Value"},
		{"Today sales", summary.TodaySales},
		{"Week sales", summary.WeekSales},
		{"Month sales", summary.MonthSales},
		{"Pending dues", summary.PendingDues},
		{"Low stock products", summary.LowStock},
		{"Top product (30 days)", topName},
		{"Top product revenue", topRevenue},
	}
	if err := writeRows(f, SheetSummary, summaryRows); err != nil {
		return nil, err
	}

	seriesRows := [][]interface{}{{"Date", "Total"}}
	for _, p := range series {
		seriesRows = append(seriesRows, []interface{}{p.Date, p.Total})
	}
	if err := writeSheet(f, SheetSalesSeries, seriesRows); err != nil {
		return nil, err
	}

	topRows := [][]interface{}{{"Rank", "Product", "Revenue"}}
	for i, p := range top {
		topRows = append(topRows, []interface{}{i + 1, p.Name, p.Revenue})
	}
	if err := writeSheet(f, SheetTopProducts, topRows); err != nil {
		return nil, err
	}

	shareRows := [][]interface{}{{"Category", "Revenue", "Percentage"}}
	for _, c := range shares {
		shareRows = append(shareRows, []interface{}{c.Category, c.Revenue, c.Percentage})
	}
	if err := writeSheet(f, SheetCategoryShare, shareRows); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
