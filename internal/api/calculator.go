package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mandi-mitra/internal/calculator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type billRequest struct {
	Items    []calculator.Line `json:"items"`
	Language string            `json:"language"`
}

// CalculateBill prices the items. With ?format=xlsx the bill is returned as a workbook.
func (h *APIHandler) CalculateBill(c *gin.Context) {
	var req billRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bill, err := calculator.NewBill(req.Items)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "xlsx" {
		c.Header("Content-Type", xlsxContentType)
		c.Header("Content-Disposition", `attachment; filename="bill.xlsx"`)
		c.Status(http.StatusOK)
		if err := bill.WriteXLSX(c.Writer); err != nil {
			log.Printf("bill export failed: %v", err)
		}
		return
	}

	lang := req.Language
	if lang == "" {
		lang = "en"
	}
	c.JSON(http.StatusOK, gin.H{
		"items":      bill.Lines,
		"grandTotal": bill.GrandTotal,
		"spokenText": calculator.SpokenTotal(bill.GrandTotal, lang),
	})
}

// ParseSpokenLine turns a phrase like "10 kilos at 28 rupees" into a bill line.
func (h *APIHandler) ParseSpokenLine(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	line, ok := calculator.ParseSpoken(req.Text)
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not find a weight and a price in the text"})
		return
	}
	c.JSON(http.StatusOK, line)
}
