package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/garibaycarlos/core-code-camp/internal/api/models"
	"github.com/garibaycarlos/core-code-camp/internal/api/shared"
	"github.com/garibaycarlos/core-code-camp/internal/platform/logger"
	"github.com/garibaycarlos/core-code-camp/internal/store"
)

// CampHandler serves the camps resource. Each request works on its own
// repository obtained from the store.
type CampHandler struct {
	store  store.CampStore
	links  LinkGenerator
	logger *slog.Logger
}

// NewCampHandler creates a new CampHandler.
func NewCampHandler(campStore store.CampStore, links LinkGenerator, logger *slog.Logger) *CampHandler {
	if campStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("campStore cannot be nil")
	}
	if links == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("links cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CampHandler{
		store:  campStore,
		links:  links,
		logger: logger.With(slog.String("component", "camp_handler")),
	}
}

// GetCamps handles GET /camps.
func (h *CampHandler) GetCamps(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	includeTalks, err := parseIncludeTalks(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidIncludeTalks)
		return
	}

	camps, err := h.store.NewCampRepository().GetAllCamps(r.Context(), includeTalks)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("listed camps", slog.Int("count", len(camps)))
	shared.RespondWithJSON(w, r, http.StatusOK, models.CampList{
		Count:   len(camps),
		Results: models.CampsToModels(camps),
	})
}

// GetCamp handles GET /camps/{moniker}. With includeTalks=true the camp's
// talks and their speakers are included.
func (h *CampHandler) GetCamp(w http.ResponseWriter, r *http.Request) {
	moniker := getPathMoniker(r)

	includeTalks, err := parseIncludeTalks(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidIncludeTalks)
		return
	}

	camp, err := h.store.NewCampRepository().GetCamp(r.Context(), moniker, includeTalks)
	if errors.Is(err, store.ErrCampNotFound) {
		shared.RespondWithStatus(w, http.StatusNotFound)
		return
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, models.CampToModel(camp))
}

// SearchByDate handles GET /camps/search?theDate=...&includeTalks=...
// No match is a bare 404.
func (h *CampHandler) SearchByDate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	date, err := parseEventDate(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidDate)
		return
	}
	includeTalks, err := parseIncludeTalks(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidIncludeTalks)
		return
	}

	camps, err := h.store.NewCampRepository().GetCampsByEventDate(r.Context(), date.Time, includeTalks)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if len(camps) == 0 {
		log.Debug("no camps on date", slog.String("date", date.Format(time.DateOnly)))
		shared.RespondWithStatus(w, http.StatusNotFound)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, models.CampsToModels(camps))
}

// CreateCamp handles POST /camps.
func (h *CampHandler) CreateCamp(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req models.CampModel
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequestFormat)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	repo := h.store.NewCampRepository()

	_, err := repo.GetCamp(r.Context(), req.Moniker, false)
	switch {
	case err == nil:
		shared.RespondWithError(w, r, http.StatusBadRequest, msgMonikerInUse)
		return
	case !errors.Is(err, store.ErrCampNotFound):
		HandleAPIError(w, r, err, "")
		return
	}

	location, ok := h.links.CampPath(req.Moniker)
	if !ok {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgMonikerUnusable)
		return
	}

	camp := models.ToCamp(req)
	for _, talk := range camp.Talks {
		talk.Camp = camp
	}
	repo.Add(camp)

	saved, err := repo.SaveChanges(r.Context())
	if err != nil {
		// A moniker taken between the pre-check and the insert is logged at WARN.
		HandleAPIError(w, r, err, "", shared.WithElevatedLogLevel())
		return
	}
	if !saved {
		shared.RespondWithStatus(w, http.StatusBadRequest)
		return
	}

	log.Info("camp created",
		slog.String("moniker", camp.Moniker),
		slog.Int64("camp_id", camp.ID))

	w.Header().Set("Location", location)
	shared.RespondWithJSON(w, r, http.StatusCreated, models.CampToModel(camp))
}

// UpdateCamp handles PUT /camps/{moniker}. The moniker itself cannot change.
func (h *CampHandler) UpdateCamp(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	moniker := getPathMoniker(r)

	var req models.CampModel
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgInvalidRequestFormat)
		return
	}
	// An omitted moniker means "this camp".
	if req.Moniker == "" {
		req.Moniker = moniker
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	repo := h.store.NewCampRepository()

	camp, err := repo.GetCamp(r.Context(), moniker, false)
	if errors.Is(err, store.ErrCampNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, campNotFoundMessage(moniker))
		return
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.Moniker != camp.Moniker {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgMonikerImmutable)
		return
	}

	models.ApplyCampModel(req, camp)

	saved, err := repo.SaveChanges(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if !saved {
		shared.RespondWithStatus(w, http.StatusBadRequest)
		return
	}

	log.Info("camp updated", slog.String("moniker", moniker))
	shared.RespondWithJSON(w, r, http.StatusOK, models.CampToModel(camp))
}

// DeleteCamp handles DELETE /camps/{moniker}.
func (h *CampHandler) DeleteCamp(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	moniker := getPathMoniker(r)

	repo := h.store.NewCampRepository()

	camp, err := repo.GetCamp(r.Context(), moniker, false)
	if errors.Is(err, store.ErrCampNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, campNotFoundMessage(moniker))
		return
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	repo.Delete(camp)

	saved, err := repo.SaveChanges(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if !saved {
		shared.RespondWithError(w, r, http.StatusBadRequest, msgDeleteFailed)
		return
	}

	log.Info("camp deleted", slog.String("moniker", moniker))
	shared.RespondWithStatus(w, http.StatusOK)
}
