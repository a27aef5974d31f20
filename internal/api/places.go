package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/set-night/tnguide/internal/domain"
)

type PlaceResponse struct {
	ID                  int64               `json:"id"`
	Name                string              `json:"name"`
	ImageURL            string              `json:"image_url"`
	Category            string              `json:"category"`
	District            string              `json:"district"`
	ShortDescription    string              `json:"short_description"`
	DetailedDescription string              `json:"detailed_description,omitempty"`
	HowToReach          string              `json:"how_to_reach,omitempty"`
	BestTimeToVisit     string              `json:"best_time_to_visit,omitempty"`
	EntryFee            string              `json:"entry_fee,omitempty"`
	Timings             string              `json:"timings,omitempty"`
	NearbyAttractions   string              `json:"nearby_attractions,omitempty"`
	Accommodation       string              `json:"accommodation,omitempty"`
	Latitude            decimal.NullDecimal `json:"latitude"`
	Longitude           decimal.NullDecimal `json:"longitude"`
	Featured            bool                `json:"featured"`
	IsFavorite          bool                `json:"is_favorite"`
	CreatedAt           time.Time           `json:"created_at"`
}

type PlaceRequest struct {
	Name                string              `json:"name" binding:"required"`
	ImageURL            string              `json:"image_url"`
	Category            string              `json:"category" binding:"required"`
	District            string              `json:"district" binding:"required"`
	ShortDescription    string              `json:"short_description" binding:"required"`
	DetailedDescription string              `json:"detailed_description"`
	HowToReach          string              `json:"how_to_reach"`
	BestTimeToVisit     string              `json:"best_time_to_visit"`
	EntryFee            string              `json:"entry_fee"`
	Timings             string              `json:"timings"`
	NearbyAttractions   string              `json:"nearby_attractions"`
	Accommodation       string              `json:"accommodation"`
	Latitude            decimal.NullDecimal `json:"latitude"`
	Longitude           decimal.NullDecimal `json:"longitude"`
	Featured            bool                `json:"featured"`
}

type PlaceListResponse struct {
	Places      []PlaceResponse `json:"places"`
	Page        int             `json:"page"`
	TotalPages  int             `json:"total_pages"`
	Total       int64           `json:"total"`
	HasNext     bool            `json:"has_next"`
	HasPrevious bool            `json:"has_previous"`
	Featured    []PlaceResponse `json:"featured"`
	Categories  []string        `json:"categories"`
	Districts   []string        `json:"districts"`
}

func toPlaceResponse(p domain.Place, favorite bool) PlaceResponse {
	return PlaceResponse{
		ID:                  p.ID,
		Name:                p.Name,
		ImageURL:            p.ImageURL,
		Category:            string(p.Category),
		District:            p.District,
		ShortDescription:    p.ShortDescription,
		DetailedDescription: p.DetailedDescription,
		HowToReach:          p.HowToReach,
		BestTimeToVisit:     p.BestTimeToVisit,
		EntryFee:            p.EntryFee,
		Timings:             p.Timings,
		NearbyAttractions:   p.NearbyAttractions,
		Accommodation:       p.Accommodation,
		Latitude:            p.Latitude,
		Longitude:           p.Longitude,
		Featured:            p.Featured,
		IsFavorite:          favorite,
		CreatedAt:           p.CreatedAt,
	}
}

func toPlaceResponses(places []domain.Place, favorites map[int64]bool) []PlaceResponse {
	out := make([]PlaceResponse, len(places))
	for i, p := range places {
		out[i] = toPlaceResponse(p, favorites[p.ID])
	}
	return out
}

func (r PlaceRequest) toDomain() domain.Place {
	return domain.Place{
		Name:                r.Name,
		ImageURL:            r.ImageURL,
		Category:            domain.Category(r.Category),
		District:            r.District,
		ShortDescription:    r.ShortDescription,
		DetailedDescription: r.DetailedDescription,
		HowToReach:          r.HowToReach,
		BestTimeToVisit:     r.BestTimeToVisit,
		EntryFee:            r.EntryFee,
		Timings:             r.Timings,
		NearbyAttractions:   r.NearbyAttractions,
		Accommodation:       r.Accommodation,
		Latitude:            r.Latitude,
		Longitude:           r.Longitude,
		Featured:            r.Featured,
	}
}

// ListPlaces serves the catalog home: one page of results plus featured
// places and filter values.
func (h *Handler) ListPlaces(c *gin.Context) {
	filter := domain.PlaceFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		District: c.Query("district"),
	}
	// Unparseable page numbers fall back to the first page.
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}

	home, err := h.places.Home(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, err)
		return
	}

	favorites := h.favoriteIDs(c)
	c.JSON(http.StatusOK, PlaceListResponse{
		Places:      toPlaceResponses(home.Page.Places, favorites),
		Page:        home.Page.Page,
		TotalPages:  home.Page.TotalPages,
		Total:       home.Page.Total,
		HasNext:     home.Page.HasNext(),
		HasPrevious: home.Page.HasPrevious(),
		Featured:    toPlaceResponses(home.Featured, favorites),
		Categories:  nonNil(home.Facets.Categories),
		Districts:   nonNil(home.Facets.Districts),
	})
}

func (h *Handler) GetPlace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	place, err := h.places.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	favorite := false
	if claims := GetClaims(c); claims != nil {
		favorite, err = h.favorites.IsFavorite(c.Request.Context(), claims.UserID, id)
		if err != nil {
			slog.Warn("check favorite", "error", err)
		}
	}

	c.JSON(http.StatusOK, toPlaceResponse(*place, favorite))
}

// ListCategories returns every category a place may have plus the districts
// currently in the catalog.
func (h *Handler) ListCategories(c *gin.Context) {
	facets, err := h.places.Facets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	categories := make([]string, len(domain.Categories))
	for i, cat := range domain.Categories {
		categories[i] = string(cat)
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"in_use":     nonNil(facets.Categories),
		"districts":  nonNil(facets.Districts),
	})
}

func (h *Handler) CreatePlace(c *gin.Context) {
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	place, err := h.places.Create(c.Request.Context(), req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPlaceResponse(*place, false))
}

func (h *Handler) UpdatePlace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	place, err := h.places.Update(c.Request.Context(), id, req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPlaceResponse(*place, false))
}

func (h *Handler) DeletePlace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.places.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// favoriteIDs returns the caller's favorites, or an empty set when anonymous.
func (h *Handler) favoriteIDs(c *gin.Context) map[int64]bool {
	claims := GetClaims(c)
	if claims == nil {
		return map[int64]bool{}
	}
	ids, err := h.favorites.IDs(c.Request.Context(), claims.UserID)
	if err != nil {
		slog.Warn("load favorite ids", "error", err)
		return map[int64]bool{}
	}
	return ids
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
