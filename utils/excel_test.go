package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportApplicationsToExcel(t *testing.T) {
	avg := 91.5
	rows := []ApplicationExportRow{
		{
			Title:        "智能调度平台",
			UnitName:     "华新科技",
			LeaderName:   "张三",
			Status:       "approved",
			CurrentStage: "终审通过",
			AverageScore: &avg,
			FinalResult:  "一等奖",
		},
		{Title: "未评分项目", UnitName: "单位B", Status: "submitted"},
	}

	f, err := ExportApplicationsToExcel(rows)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "申报列表"
	header, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "项目名称", header)

	title, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "智能调度平台", title)

	score, err := f.GetCellValue(sheet, "H2")
	require.NoError(t, err)
	assert.Equal(t, "91.5", score)

	// Missing scores stay blank instead of rendering as zero
	blank, err := f.GetCellValue(sheet, "H3")
	require.NoError(t, err)
	assert.Empty(t, blank)
}

func TestNewApplicationTemplate(t *testing.T) {
	f, err := NewApplicationTemplate()
	require.NoError(t, err)
	defer f.Close()

	first, err := f.GetCellValue("申报信息", "A1")
	require.NoError(t, err)
	assert.Equal(t, "申报单位名称", first)

	last, err := f.GetCellValue("申报信息", "N1")
	require.NoError(t, err)
	assert.Equal(t, "电子邮箱", last)
}
