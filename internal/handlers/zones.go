package handlers

import (
	"net/http"

	"geminus.dev/internal/auth"
	"geminus.dev/internal/models"
	"geminus.dev/internal/services"
)

// ZoneHandler handles zone catalog endpoints
type ZoneHandler struct {
	zoneService    *services.ZoneService
	sessionService *services.SessionService
}

// NewZoneHandler creates a new ZoneHandler
func NewZoneHandler(zs *services.ZoneService, ss *services.SessionService) *ZoneHandler {
	return &ZoneHandler{zoneService: zs, sessionService: ss}
}

// ListZones handles GET /api/game/zones
func (h *ZoneHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.ZonesResponse{Zones: h.zoneService.All()})
}

// CurrentZone handles GET /api/game/current-zone
func (h *ZoneHandler) CurrentZone(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessionService.Get(auth.SessionID(r.Context()))
	if err != nil {
		respondActionError(w, err)
		return
	}
	zone, err := h.zoneService.Get(state.Game.CurrentZoneID)
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.ZoneResponse{Zone: zone})
}
