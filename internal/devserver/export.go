package devserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// exportRecords renders the scoped, filtered collection as an xlsx
// spreadsheet, matching the production backend's export contract.
func (s *Server) exportRecords(c *gin.Context) {
	def, ok := findEntity(c.Param("entity"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}
	if !s.allow(c, def) {
		return
	}

	rows, err := s.fetchScoped(c, def)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage failure"})
		return
	}

	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sheet := file.GetSheetName(0)
	for col, header := range def.Columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = file.SetCellValue(sheet, cell, header)
	}

	for i, row := range rows {
		presented := s.present(def, row)
		for col, header := range def.Columns {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			value := presented[header]
			if t, ok := value.(time.Time); ok {
				value = t.Format(time.RFC3339)
			}
			_ = file.SetCellValue(sheet, cell, value)
		}
	}

	payload, err := file.WriteToBuffer()
	if err != nil {
		s.logger.Error("spreadsheet generation failed", zap.Error(err), zap.String("entity", def.Name))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "spreadsheet generation failed"})
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", def.Name, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/octet-stream", payload.Bytes())
}
