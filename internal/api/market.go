package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mandi-mitra/internal/negotiation"
	"mandi-mitra/internal/pricing"
	"mandi-mitra/internal/services/translate"
)

type priceDiscoveryRequest struct {
	Commodity string      `json:"commodity"`
	Location  string      `json:"location"`
	Quantity  interface{} `json:"quantity"`
	Language  string      `json:"language"`
}

type marketData struct {
	Min        float64            `json:"min"`
	Max        float64            `json:"max"`
	Trend      pricing.Trend      `json:"trend"`
	Source     string             `json:"source"`
	SourceKind pricing.SourceKind `json:"sourceKind"`
}

// requestQuantity accepts a JSON number or a string such as "25kg".
func requestQuantity(raw interface{}) int {
	switch v := raw.(type) {
	case float64:
		if v >= 1 {
			return int(v)
		}
	case string:
		return pricing.ParseQuantity(v)
	}
	return pricing.DefaultQuantity
}

type priceDiscoveryResponse struct {
	AveragePrice   float64    `json:"averagePrice"`
	SuggestedPrice float64    `json:"suggestedPrice"`
	Explanation    string     `json:"explanation"`
	Rationale      []string   `json:"rationale"`
	SpokenText     string     `json:"spokenText"`
	MarketData     marketData `json:"marketData"`
}

// PriceDiscovery resolves a market quote and suggests a sale price for the quantity.
// Upstream failures only change marketData.source.
func (h *APIHandler) PriceDiscovery(c *gin.Context) {
	var req priceDiscoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quantity := requestQuantity(req.Quantity)
	ctx := c.Request.Context()

	quote := h.resolver.Resolve(ctx, pricing.Query{
		Commodity: req.Commodity,
		Location:  req.Location,
		Quantity:  quantity,
	})
	suggestion := pricing.Suggest(quote, quantity)
	explanation := translate.Localize(ctx, h.translator, suggestion.Explanation(), req.Language)

	c.JSON(http.StatusOK, priceDiscoveryResponse{
		AveragePrice:   quote.AvgPrice,
		SuggestedPrice: suggestion.SuggestedPrice,
		Explanation:    explanation,
		Rationale:      suggestion.Rationale,
		SpokenText:     fmt.Sprintf("%s %.0f", explanation, suggestion.SuggestedPrice),
		MarketData: marketData{
			Min:        quote.MinPrice,
			Max:        quote.MaxPrice,
			Trend:      quote.Trend,
			Source:     quote.Source.Label,
			SourceKind: quote.Source.Kind,
		},
	})
}

type negotiationRequest struct {
	Mode        string  `json:"mode"`
	Commodity   string  `json:"commodity"`
	VendorPrice float64 `json:"vendorPrice"`
	BuyerOffer  float64 `json:"buyerOffer"`
	MarketPrice float64 `json:"marketPrice"`
	Language    string  `json:"language"`
}

type negotiationResponse struct {
	FairnessTier       int     `json:"fairnessTier"`
	FairnessLabel      string  `json:"fairnessLabel"`
	FairnessAssessment string  `json:"fairnessAssessment"`
	FairnessColor      string  `json:"fairnessColor"`
	CounterOffer       float64 `json:"counterOffer"`
	MarketPrice        float64 `json:"marketPrice"`
	SuggestedPhrase    string  `json:"suggestedPhrase"`
}

// Negotiation rates an offer and proposes a counter-offer. Only missing or
// non-positive prices are rejected.
func (h *APIHandler) Negotiation(c *gin.Context) {
	var req negotiationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := negotiation.ParseRole(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in := negotiation.Input{
		Role:        role,
		Commodity:   req.Commodity,
		AskingPrice: req.VendorPrice,
		Offer:       req.BuyerOffer,
		MarketPrice: req.MarketPrice,
	}
	res, err := negotiation.Assess(in)
	if errors.Is(err, negotiation.ErrInvalidPrice) || errors.Is(err, negotiation.ErrInvalidRole) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("negotiation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process negotiation"})
		return
	}

	ctx := c.Request.Context()
	phrase := h.rephraser.Phrase(ctx, in, res)

	c.JSON(http.StatusOK, negotiationResponse{
		FairnessTier:       res.Tier,
		FairnessLabel:      res.Label,
		FairnessAssessment: translate.Localize(ctx, h.translator, res.Assessment, req.Language),
		FairnessColor:      res.Color,
		CounterOffer:       res.CounterOffer,
		MarketPrice:        res.MarketPrice,
		SuggestedPhrase:    translate.Localize(ctx, h.translator, phrase, req.Language),
	})
}

// Catalog lists the commodity and location ids the pricing routes understand.
func (h *APIHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"commodities": h.catalog.Commodities(),
		"locations":   h.catalog.Regions(),
	})
}
