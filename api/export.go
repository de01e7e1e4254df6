package api

import (
	"fmt"
	"net/http"

	"github.com/Soufianejami/coworkingcaisse/database"
	"github.com/Soufianejami/coworkingcaisse/models"
	"github.com/Soufianejami/coworkingcaisse/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves back-office Excel exports.
type ExportHandler struct{}

// NewExportHandler creates an export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// ExportExcel writes the transactions and expenses of a date range to an xlsx
// workbook, one sheet each (admin).
// @Summary Export transactions and expenses
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param startDate query string true "start date (2024-01-01)"
// @Param endDate query string true "end date (2024-12-31)"
// @Success 200 {file} file "xlsx workbook"
// @Failure 400 {object} Response
// @Router /api/v1/admin/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		BadRequest(c, "startDate and endDate are required")
		return
	}

	start, err := parseDate(startStr)
	if err != nil {
		BadRequest(c, "invalid startDate, expected 2006-01-02")
		return
	}
	end, err := parseDate(endStr)
	if err != nil {
		BadRequest(c, "invalid endDate, expected 2006-01-02")
		return
	}

	var transactions []models.Transaction
	if err := database.DB.
		Where("date >= ? AND date <= ?", service.DayFloor(start), service.DayCeil(end)).
		Order("date ASC").Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	var expenses []models.Expense
	if err := database.DB.
		Where("date >= ? AND date <= ?", service.DayFloor(start), service.DayCeil(end)).
		Order("date ASC").Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "query failed"))
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	txSheet := "Transactions"
	f.SetSheetName("Sheet1", txSheet)
	txHeaders := []string{"ID", "Type", "Amount", "Date", "Payment", "Client", "Notes"}
	for i, header := range txHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(txSheet, cell, header)
		f.SetCellStyle(txSheet, cell, cell, headerStyle)
	}
	var txTotal float64
	for i, t := range transactions {
		row := i + 2
		f.SetCellValue(txSheet, fmt.Sprintf("A%d", row), t.ID)
		f.SetCellValue(txSheet, fmt.Sprintf("B%d", row), string(t.Type))
		f.SetCellValue(txSheet, fmt.Sprintf("C%d", row), t.Amount)
		f.SetCellValue(txSheet, fmt.Sprintf("D%d", row), t.Date.Format("2006-01-02 15:04:05"))
		f.SetCellValue(txSheet, fmt.Sprintf("E%d", row), t.PaymentMethod)
		f.SetCellValue(txSheet, fmt.Sprintf("F%d", row), t.ClientName)
		f.SetCellValue(txSheet, fmt.Sprintf("G%d", row), t.Notes)
		txTotal += t.Amount
	}
	txSummary := len(transactions) + 2
	f.SetCellValue(txSheet, fmt.Sprintf("A%d", txSummary), "Total")
	f.SetCellValue(txSheet, fmt.Sprintf("C%d", txSummary), txTotal)

	expSheet := "Expenses"
	f.NewSheet(expSheet)
	expHeaders := []string{"ID", "Amount", "Category", "Date", "Description", "Payment"}
	for i, header := range expHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(expSheet, cell, header)
		f.SetCellStyle(expSheet, cell, cell, headerStyle)
	}
	var expTotal float64
	for i, e := range expenses {
		row := i + 2
		f.SetCellValue(expSheet, fmt.Sprintf("A%d", row), e.ID)
		f.SetCellValue(expSheet, fmt.Sprintf("B%d", row), e.Amount)
		f.SetCellValue(expSheet, fmt.Sprintf("C%d", row), string(e.Category))
		f.SetCellValue(expSheet, fmt.Sprintf("D%d", row), e.Date.Format("2006-01-02"))
		f.SetCellValue(expSheet, fmt.Sprintf("E%d", row), e.Description)
		f.SetCellValue(expSheet, fmt.Sprintf("F%d", row), e.PaymentMethod)
		expTotal += e.Amount
	}
	expSummary := len(expenses) + 2
	f.SetCellValue(expSheet, fmt.Sprintf("A%d", expSummary), "Total")
	f.SetCellValue(expSheet, fmt.Sprintf("B%d", expSummary), expTotal)

	filename := fmt.Sprintf("caisse_%s_%s.xlsx", startStr, endStr)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, Response{Code: 500, Message: "write workbook failed"})
		return
	}
}
