package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mandi-mitra/internal/models"
	"mandi-mitra/internal/ratings"
)

type vendorView struct {
	models.Vendor
	Badge ratings.Badge `json:"badge"`
}

func newVendorView(v models.Vendor, lang string) vendorView {
	return vendorView{Vendor: v, Badge: ratings.BadgeFor(v.TrustBadge, lang)}
}

func vendorID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendor id"})
		return 0, false
	}
	return uint(id), true
}

func (h *APIHandler) ListVendors(c *gin.Context) {
	vendors, err := h.ratings.Vendors(c.Request.Context())
	if err != nil {
		log.Printf("list vendors failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vendors"})
		return
	}

	lang := c.DefaultQuery("lang", "en")
	views := make([]vendorView, 0, len(vendors))
	for _, v := range vendors {
		views = append(views, newVendorView(v, lang))
	}
	c.JSON(http.StatusOK, gin.H{
		"vendors": views,
		"count":   len(views),
	})
}

func (h *APIHandler) GetVendor(c *gin.Context) {
	id, ok := vendorID(c)
	if !ok {
		return
	}
	v, err := h.ratings.Vendor(c.Request.Context(), id)
	if errors.Is(err, ratings.ErrVendorNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
		return
	}
	if err != nil {
		log.Printf("get vendor %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load vendor"})
		return
	}
	c.JSON(http.StatusOK, newVendorView(v, c.DefaultQuery("lang", "en")))
}

// RateVendor folds a buyer's stars and feedback tags into the vendor's score.
func (h *APIHandler) RateVendor(c *gin.Context) {
	id, ok := vendorID(c)
	if !ok {
		return
	}
	var req ratings.Submission
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, err := h.ratings.Submit(c.Request.Context(), id, req)
	switch {
	case errors.Is(err, ratings.ErrInvalidStars):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ratings.ErrVendorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "vendor not found"})
		return
	case err != nil:
		log.Printf("rate vendor %d failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}

	log.Printf("vendor %d rated %d stars, now %.1f over %d ratings", id, req.Stars, v.Rating, v.TotalRatings)
	c.JSON(http.StatusOK, gin.H{
		"message": "Thank you for your feedback!",
		"vendor":  newVendorView(v, c.DefaultQuery("lang", "en")),
	})
}
