package utils

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ApplicationExportRow is the flattened shape handed to the exporter; the
// exporter has no opinion on where the data came from.
type ApplicationExportRow struct {
	Title          string
	UnitName       string
	LeaderName     string
	Status         string
	SubmissionTime string
	CurrentStage   string
	AverageScore   *float64
	FinalResult    string
}

var applicationExportHeaders = []string{
	"序号", "项目名称", "申报单位", "项目负责人", "申报状态",
	"提交时间", "当前阶段", "评审平均分", "最终结果",
}

func writeHeaderRow(f *excelize.File, sheet string, headers []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// ExportApplicationsToExcel renders the application list sheet.
func ExportApplicationsToExcel(rows []ApplicationExportRow) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "申报列表"
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeaderRow(f, sheet, applicationExportHeaders); err != nil {
		return nil, err
	}

	for idx, row := range rows {
		values := []interface{}{
			idx + 1, row.Title, row.UnitName, row.LeaderName, row.Status,
			row.SubmissionTime, row.CurrentStage, nil, row.FinalResult,
		}
		if row.AverageScore != nil {
			values[7] = *row.AverageScore
		}
		for col, value := range values {
			if value == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, idx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	widths := []float64{8, 35, 25, 15, 15, 20, 20, 15, 15}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// StatisticsExport is the aggregate shape for the statistics workbook.
type StatisticsExport struct {
	TotalApplications   int64
	TotalOrganizations  int64
	TotalExperts        int64
	TotalReviews        int64
	ApplicationByStatus map[string]int64
}

// ExportStatisticsToExcel renders the overview and status-distribution sheets.
func ExportStatisticsToExcel(stats StatisticsExport) (*excelize.File, error) {
	f := excelize.NewFile()
	const overview = "统计概览"
	f.SetSheetName("Sheet1", overview)

	cells := [][2]interface{}{
		{"统计项目", "数值"},
		{"申报总数", stats.TotalApplications},
		{"组织总数", stats.TotalOrganizations},
		{"专家总数", stats.TotalExperts},
		{"评审总数", stats.TotalReviews},
	}
	for row, pair := range cells {
		if err := f.SetCellValue(overview, fmt.Sprintf("A%d", row+1), pair[0]); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(overview, fmt.Sprintf("B%d", row+1), pair[1]); err != nil {
			return nil, err
		}
	}

	if len(stats.ApplicationByStatus) > 0 {
		const bystatus = "申报状态分布"
		if _, err := f.NewSheet(bystatus); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(bystatus, "A1", "状态"); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(bystatus, "B1", "数量"); err != nil {
			return nil, err
		}
		row := 2
		for status, count := range stats.ApplicationByStatus {
			if err := f.SetCellValue(bystatus, fmt.Sprintf("A%d", row), status); err != nil {
				return nil, err
			}
			if err := f.SetCellValue(bystatus, fmt.Sprintf("B%d", row), count); err != nil {
				return nil, err
			}
			row++
		}
	}

	return f, nil
}

var applicationTemplateHeaders = []string{
	"申报单位名称", "项目名称", "项目负责人", "负责人职称", "团队成员",
	"项目摘要", "主要创新点", "技术指标", "应用价值", "经济效益",
	"社会效益", "联系人", "联系电话", "电子邮箱",
}

// NewApplicationTemplate builds the downloadable application template.
func NewApplicationTemplate() (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "申报信息"
	f.SetSheetName("Sheet1", sheet)

	if err := writeHeaderRow(f, sheet, applicationTemplateHeaders); err != nil {
		return nil, err
	}

	widths := []float64{25, 30, 15, 15, 30, 40, 40, 30, 30, 25, 25, 15, 15, 20}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return nil, err
		}
	}

	return f, nil
}
