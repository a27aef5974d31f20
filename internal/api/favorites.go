package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListFavorites(c *gin.Context) {
	claims := GetClaims(c)

	places, err := h.favorites.List(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]PlaceResponse, len(places))
	for i, p := range places {
		out[i] = toPlaceResponse(p, true)
	}
	c.JSON(http.StatusOK, gin.H{"places": out})
}

// ToggleFavorite adds the place to the caller's favorites, or removes it when
// already there.
func (h *Handler) ToggleFavorite(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	claims := GetClaims(c)

	if _, err := h.places.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	action, err := h.favorites.Toggle(c.Request.Context(), claims.UserID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "action": string(action)})
}
