package api

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mandi-mitra/internal/services/ocr"
)

const maxImageBytes = 10 << 20

type translateRequest struct {
	Text   string `json:"text" binding:"required"`
	Source string `json:"source"`
	Target string `json:"target" binding:"required"`
}

func (h *APIHandler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Source == "" {
		req.Source = "en"
	}

	out, err := h.translator.Translate(c.Request.Context(), req.Text, req.Source, req.Target)
	if err != nil {
		log.Printf("translate %s->%s failed: %v", req.Source, req.Target, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Translation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"translatedText": out})
}

// SignboardTranslate reads an uploaded sign photo and translates its text.
func (h *APIHandler) SignboardTranslate(c *gin.Context) {
	if h.signboard == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Signboard reading is not configured"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image provided"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	if len(image) > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image too large"})
		return
	}

	target := c.DefaultPostForm("targetLanguage", "en")
	res, err := h.signboard.Read(c.Request.Context(), image, header.Filename, target)
	if errors.Is(err, ocr.ErrNotConfigured) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Text recognition is not configured"})
		return
	}
	if err != nil {
		log.Printf("signboard translation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process image", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
