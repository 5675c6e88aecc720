package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"toolsail-backend/internal/domains/tool/model"
	"toolsail-backend/internal/shared"
	"toolsail-backend/internal/shared/utils"
)

const exportSheet = "Tools"

var exportHeaders = []string{
	"ID",
	"Name",
	"URL",
	"Category",
	"Pricing",
	"Featured",
	"Published",
	"View Count",
	"Logo URL",
	"Created At",
	"Description",
}

// Export trả workbook .xlsx của toàn bộ tools khớp filter (không phân trang)
func (s *toolService) Export(ctx context.Context, p shared.Principal, q model.AdminListQuery) ([]byte, error) {
	if err := p.RequireAdmin(); err != nil {
		return nil, err
	}

	filter := model.ListFilter{
		Search:    q.Search,
		Featured:  parseBool(q.Featured),
		Published: parseBool(q.Published),
		Sort:      q.Sort,
	}
	if q.Category != "" {
		ids, err := s.categoryIDs(ctx, q.Category)
		if err != nil {
			return nil, err
		}
		filter.CategoryIDs = ids
	}

	tools, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	f, err := buildToolsExcelFile(tools)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func buildToolsExcelFile(tools []*model.Tool) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
		f.SetCellStyle(exportSheet, "A1", last, headerStyle)
	}

	for i, t := range tools {
		categoryName := ""
		if t.Category != nil {
			categoryName = t.Category.Name
		}

		row := []interface{}{
			t.ID,
			t.Name,
			t.URL,
			categoryName,
			string(t.Pricing),
			t.IsFeatured,
			t.IsPublished,
			t.ViewCount,
			utils.StringValue(t.LogoURL),
			t.CreatedAt.Format("2006-01-02 15:04:05"),
			t.Description,
		}

		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, start, &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
