package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/c21matthewm/mound-hounds-pickem/internal/models"
	"github.com/c21matthewm/mound-hounds-pickem/internal/services"
)

// ==================== League (public) ====================

// handleGetLeaderboard returns the season standings with the latest-race
// scoreboard
func (h *Handlers) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	standings, err := h.Leaderboard.BuildStandings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, standings)
}

// handleGetPicksByRace returns everyone's picks for one race. An
// omitted or zero race_id selects the default race.
func (h *Handlers) handleGetPicksByRace(w http.ResponseWriter, r *http.Request) {
	var raceID int64
	if raw := r.URL.Query().Get("race_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(w, BadRequest("Invalid race_id parameter"))
			return
		}
		raceID = parsed
	}

	view, err := h.PicksView.BuildPicksByRace(r.Context(), raceID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, view)
}

// handleGetAnalytics returns one participant's season analytics
func (h *Handlers) handleGetAnalytics(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")
	if profileID == "" {
		respondError(w, BadRequest("Missing profileID parameter"))
		return
	}

	analytics, err := h.Analytics.BuildParticipantAnalytics(r.Context(), profileID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, analytics)
}

// handleListRaces returns the active season schedule
func (h *Handlers) handleListRaces(w http.ResponseWriter, r *http.Request) {
	races, err := h.Race.ListRaces(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, races)
}

func (h *Handlers) handleGetRace(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	race, err := h.Race.GetRace(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, race)
}

// handleListActiveDrivers returns the drivers currently selectable in picks
func (h *Handlers) handleListActiveDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.Driver.ListActiveDrivers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, drivers)
}

// ==================== Participants ====================

func (h *Handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	participant, err := h.Participant.Register(r.Context(), req.TeamName, req.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, participant)
}

func (h *Handlers) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.Participant.ListParticipants(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, participants)
}

func (h *Handlers) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")
	participant, err := h.Participant.GetParticipant(r.Context(), profileID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, participant)
}

// ==================== Picks ====================

func (h *Handlers) handleSubmitPick(w http.ResponseWriter, r *http.Request) {
	var req PickSubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if len(req.DriverIDs) != models.NumDriverGroups {
		respondError(w, BadRequest("Exactly six driver picks are required, one per group"))
		return
	}

	input := services.SubmitPickInput{
		ProfileID:    req.ProfileID,
		RaceID:       req.RaceID,
		AverageSpeed: req.AverageSpeed,
	}
	copy(input.DriverIDs[:], req.DriverIDs)

	if err := h.Pick.SubmitPick(r.Context(), input); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Pick saved")
}

// handleGetPick returns one participant's pick for a race, 404 if none
func (h *Handlers) handleGetPick(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")
	raceID, err := parseInt64Param(r, "raceID")
	if err != nil {
		respondError(w, err)
		return
	}

	pick, err := h.Pick.GetPick(r.Context(), profileID, raceID)
	if err != nil {
		respondError(w, err)
		return
	}
	if pick == nil {
		respondError(w, NotFound("No pick submitted"))
		return
	}
	respondOK(w, pick)
}

// ==================== Cron ====================

// handleFinalizeDueWinners sweeps every race whose winner delay has
// elapsed. External schedulers hit this endpoint; the in-process ticker
// calls the same service method.
func (h *Handlers) handleFinalizeDueWinners(w http.ResponseWriter, r *http.Request) {
	processed, err := h.Winner.FinalizeDue(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, FinalizeDueResponse{Processed: processed})
}
