package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/c21matthewm/mound-hounds-pickem/internal/services"
)

// ==================== Races ====================

func (h *Handlers) handleListAllRaces(w http.ResponseWriter, r *http.Request) {
	races, err := h.Race.ListAllRaces(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, races)
}

func (h *Handlers) handleCreateRace(w http.ResponseWriter, r *http.Request) {
	var req RaceCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	raceDate, qualifyingStartAt, err := parseRaceDates(req.RaceDate, req.QualifyingStartAt)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Race.CreateRace(r.Context(), req.Name, raceDate, qualifyingStartAt)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, IDResponse{ID: id})
}

func (h *Handlers) handleUpdateRace(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req RaceUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	raceDate, qualifyingStartAt, err := parseRaceDates(req.RaceDate, req.QualifyingStartAt)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Race.UpdateRace(r.Context(), id, req.Name, raceDate, qualifyingStartAt); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Race updated")
}

func (h *Handlers) handleArchiveRace(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.Race.ArchiveRace(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Race archived")
}

func (h *Handlers) handleSetOfficialSpeed(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req OfficialSpeedRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Race.SetOfficialSpeed(r.Context(), id, req.OfficialAvgSpeed); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Official speed updated")
}

// parseRaceDates parses the RFC3339 date fields shared by the race
// create and update requests
func parseRaceDates(raceDate, qualifyingStartAt string) (time.Time, time.Time, error) {
	rd, err := time.Parse(time.RFC3339, raceDate)
	if err != nil {
		return time.Time{}, time.Time{}, BadRequest("Invalid race_date, expected RFC 3339 timestamp")
	}
	qs, err := time.Parse(time.RFC3339, qualifyingStartAt)
	if err != nil {
		return time.Time{}, time.Time{}, BadRequest("Invalid qualifying_start_at, expected RFC 3339 timestamp")
	}
	return rd, qs, nil
}

// ==================== Results ====================

func (h *Handlers) handleSaveResults(w http.ResponseWriter, r *http.Request) {
	raceID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ResultsSaveRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	entries := make([]services.ResultEntry, len(req.Results))
	for i, row := range req.Results {
		entries[i] = services.ResultEntry{DriverID: row.DriverID, Points: row.Points}
	}
	if err := h.Result.SaveResults(r.Context(), raceID, entries); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Results saved")
}

func (h *Handlers) handleGetResults(w http.ResponseWriter, r *http.Request) {
	raceID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	results, err := h.Result.GetResults(r.Context(), raceID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, results)
}

// ==================== Fantasy winner ====================

func (h *Handlers) handleSetManualWinner(w http.ResponseWriter, r *http.Request) {
	raceID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req ManualWinnerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Winner.SetManualWinner(r.Context(), raceID, req.ProfileID); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Manual winner set")
}

// handleRequestAutoWinner recomputes the fantasy winner from posted
// results, replacing any manual override
func (h *Handlers) handleRequestAutoWinner(w http.ResponseWriter, r *http.Request) {
	raceID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	outcome, err := h.Winner.RequestAutoCalculation(r.Context(), raceID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, outcome)
}

// ==================== Drivers ====================

func (h *Handlers) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.Driver.ListDrivers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, drivers)
}

func (h *Handlers) handleCreateDriver(w http.ResponseWriter, r *http.Request) {
	var req DriverCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	id, err := h.Driver.CreateDriver(r.Context(), req.Name, req.GroupNumber)
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, IDResponse{ID: id})
}

func (h *Handlers) handleUpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req DriverUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Driver.UpdateDriver(r.Context(), id, req.Name, req.GroupNumber, req.IsActive); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Driver updated")
}

// ==================== Participants ====================

func (h *Handlers) handleUpdateParticipant(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")

	var req ParticipantUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Participant.UpdateTeamName(r.Context(), profileID, req.TeamName); err != nil {
		respondError(w, err)
		return
	}
	respondSuccess(w, "Team name updated")
}

// ==================== Settings ====================

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.AllSettings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, settings)
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	ctx := r.Context()
	if req.WinnerDelayMinutes != nil {
		if err := h.Settings.SetWinnerDelayMinutes(ctx, *req.WinnerDelayMinutes); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.FinalizeBatchSize != nil {
		if err := h.Settings.SetSetting(ctx, "finalize_batch_size", strconv.Itoa(*req.FinalizeBatchSize)); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.MomentumWindow != nil {
		if err := h.Settings.SetSetting(ctx, "momentum_window", strconv.Itoa(*req.MomentumWindow)); err != nil {
			respondError(w, err)
			return
		}
	}
	if req.BaseURL != nil {
		if err := h.Settings.SetBaseURL(ctx, *req.BaseURL); err != nil {
			respondError(w, err)
			return
		}
	}
	respondSuccess(w, "Settings updated")
}

func (h *Handlers) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Settings.LeagueStats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, stats)
}

func (h *Handlers) handleResetDatabase(w http.ResponseWriter, r *http.Request) {
	var req DatabaseResetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.Settings.ResetTables(r.Context(), req.Tables)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, ResetResponse{Tables: result.Tables, Message: result.Message})
}

// ==================== Seed ====================

func (h *Handlers) handleSeedDemoData(w http.ResponseWriter, r *http.Request) {
	result, err := h.Seed.SeedDemoData(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// ==================== Picks QR ====================

// handlePicksQR returns a PNG QR code linking to the public picks page
// for a race, for posting at the track
func (h *Handlers) handlePicksQR(w http.ResponseWriter, r *http.Request) {
	raceID, err := parseInt64Param(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.Race.GetRace(r.Context(), raceID); err != nil {
		respondError(w, err)
		return
	}

	baseURL, err := h.Settings.GetBaseURL(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if baseURL == "" {
		respondError(w, BadRequest("Base URL is not configured"))
		return
	}

	target := fmt.Sprintf("%s/picks/%d", baseURL, raceID)
	png, err := qrcode.Encode(target, qrcode.Medium, 512)
	if err != nil {
		respondError(w, InternalError(err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
