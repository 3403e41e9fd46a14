package server

import (
	"errors"
	"net/http"
	"strings"
)

// JoinMatchRequest is the body for POST /joinmatches. ForthPlayer is a legacy
// alias some clients still send for the fourth slot; FourthPlayer wins when
// both are present and the record is always persisted as fourthPlayer.
type JoinMatchRequest struct {
	TournamentName        string `json:"tournamentName"`
	FirstPlayer           string `json:"firstPlayer"`
	SecondPlayer          string `json:"secondPlayer"`
	ThirdPlayer           string `json:"thirdPlayer"`
	FourthPlayer          string `json:"fourthPlayer"`
	ForthPlayer           string `json:"forthPlayer"`
	PlayerEmail           string `json:"playerEmail"`
	PlayerMobileNumber    string `json:"playerMobileNumber"`
	PlayerPassword        string `json:"playerPassword"`
	PlayerConfirmPassword string `json:"playerConfirmPassword"`
}

func handleJoinMatch(stores *StoreHandle, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinMatchRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		fourth := req.FourthPlayer
		if strings.TrimSpace(fourth) == "" {
			fourth = req.ForthPlayer
		}

		if missing := missingFields([]field{
			{"tournamentName", req.TournamentName},
			{"firstPlayer", req.FirstPlayer},
			{"secondPlayer", req.SecondPlayer},
			{"thirdPlayer", req.ThirdPlayer},
			{"fourthPlayer", fourth},
			{"playerEmail", req.PlayerEmail},
			{"playerMobileNumber", req.PlayerMobileNumber},
		}); len(missing) > 0 {
			writeError(w, http.StatusBadRequest, "all fields are required: "+strings.Join(missing, ", "))
			return
		}

		if !validMobile(req.PlayerMobileNumber) {
			writeError(w, http.StatusBadRequest, "mobile number must be exactly 10 digits")
			return
		}

		// The password pair is optional; when either side is supplied they
		// must match.
		if (req.PlayerPassword != "" || req.PlayerConfirmPassword != "") &&
			req.PlayerPassword != req.PlayerConfirmPassword {
			writeError(w, http.StatusBadRequest, "passwords do not match")
			return
		}

		store, ok := stores.Get()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}

		email := normalizeEmail(req.PlayerEmail)
		tournament := strings.TrimSpace(req.TournamentName)

		exists, err := store.RegistrationExists(r.Context(), email, tournament)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if exists {
			writeError(w, http.StatusConflict, "you have already joined this tournament")
			return
		}

		now := nowUTC()
		reg := Registration{
			ID:                 newID(),
			TournamentName:     tournament,
			FirstPlayer:        strings.TrimSpace(req.FirstPlayer),
			SecondPlayer:       strings.TrimSpace(req.SecondPlayer),
			ThirdPlayer:        strings.TrimSpace(req.ThirdPlayer),
			FourthPlayer:       strings.TrimSpace(fourth),
			PlayerEmail:        email,
			PlayerMobileNumber: req.PlayerMobileNumber,
			PlayerPassword:     req.PlayerPassword,
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		err = store.CreateRegistration(r.Context(), reg)
		if errors.Is(err, ErrConflict) {
			// The unique index closes the check-then-insert race.
			writeError(w, http.StatusConflict, "you have already joined this tournament")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writesTotal.WithLabelValues("joinmatches").Inc()
		if event, ok := eventForCollection("joinmatches"); ok {
			broker.Publish(event, reg)
		}

		writeJSON(w, http.StatusCreated, map[string]string{"message": "joined successfully"})
	}
}
