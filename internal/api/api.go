package api

import (
	"github.com/gin-gonic/gin"

	"mandi-mitra/internal/catalog"
	"mandi-mitra/internal/chat"
	"mandi-mitra/internal/negotiation"
	"mandi-mitra/internal/pricing"
	"mandi-mitra/internal/ratings"
	"mandi-mitra/internal/services/translate"
	"mandi-mitra/internal/signboard"
)

// Deps are the services the handlers call into. Limiter may be nil.
type Deps struct {
	Catalog    *catalog.Catalog
	Resolver   *pricing.Resolver
	Rephraser  *negotiation.Rephraser
	Translator translate.Translator
	Signboard  *signboard.Reader
	Ratings    *ratings.Service
	Chat       *chat.Hub
	Limiter    *RateLimiter
}

type APIHandler struct {
	catalog    *catalog.Catalog
	resolver   *pricing.Resolver
	rephraser  *negotiation.Rephraser
	translator translate.Translator
	signboard  *signboard.Reader
	ratings    *ratings.Service
	chat       *chat.Hub
	limiter    *RateLimiter
}

func SetupRoutes(r *gin.RouterGroup, deps Deps) *APIHandler {
	handler := &APIHandler{
		catalog:    deps.Catalog,
		resolver:   deps.Resolver,
		rephraser:  deps.Rephraser,
		translator: deps.Translator,
		signboard:  deps.Signboard,
		ratings:    deps.Ratings,
		chat:       deps.Chat,
		limiter:    deps.Limiter,
	}
	if handler.catalog == nil {
		handler.catalog = catalog.Default()
	}
	if handler.translator == nil {
		handler.translator = translate.Passthrough{}
	}
	limit := handler.rateLimit()

	// Core pricing routes
	r.POST("/price-discovery", limit, handler.PriceDiscovery)
	r.POST("/negotiation", limit, handler.Negotiation)
	r.GET("/catalog", handler.Catalog)

	// Language routes
	r.POST("/translate", limit, handler.Translate)
	r.POST("/signboard-translate", limit, handler.SignboardTranslate)

	vendors := r.Group("/vendors")
	{
		vendors.GET("", handler.ListVendors)
		vendors.GET("/:id", handler.GetVendor)
		vendors.POST("/:id/ratings", handler.RateVendor)
	}

	calc := r.Group("/calculator")
	{
		calc.POST("/bill", handler.CalculateBill)
		calc.POST("/parse", handler.ParseSpokenLine)
	}

	rooms := r.Group("/chat/rooms")
	{
		rooms.POST("", handler.CreateChatRoom)
		rooms.GET("/:id/ws", handler.JoinChatRoom)
	}

	return handler
}

// SetupAliases registers the unversioned paths the web client calls.
func (h *APIHandler) SetupAliases(r *gin.RouterGroup) {
	limit := h.rateLimit()
	r.POST("/price-discovery", limit, h.PriceDiscovery)
	r.POST("/negotiation", limit, h.Negotiation)
	r.POST("/signboard-translate", limit, h.SignboardTranslate)
}

func (h *APIHandler) rateLimit() gin.HandlerFunc {
	if h.limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return h.limiter.Middleware()
}
