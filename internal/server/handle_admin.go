package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// AdminRegisterRequest is the body for POST /admins. AdminID carries the
// shared registration code the client was given, not a generated identifier.
type AdminRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	AdminID  string `json:"adminId"`
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Message string       `json:"message"`
	Admin   AdminSummary `json:"admin"`
}

type AdminLogoutRequest struct {
	Email string `json:"email"`
}

func handleAdminRegister(logger *slog.Logger, stores *StoreHandle, adminCode string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminRegisterRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if missing := missingFields([]field{
			{"name", req.Name},
			{"email", req.Email},
			{"password", req.Password},
			{"adminId", req.AdminID},
		}); len(missing) > 0 {
			writeError(w, http.StatusBadRequest, "name, email, password, and adminId are required")
			return
		}

		if adminCode == "" {
			logger.Error("admin registration attempted with no ADMIN_CODE configured")
			writeError(w, http.StatusInternalServerError, "server misconfiguration")
			return
		}

		// Compare trimmed values; never log either side in cleartext.
		if strings.TrimSpace(req.AdminID) != strings.TrimSpace(adminCode) {
			logger.Warn("admin registration code mismatch", "email", normalizeEmail(req.Email))
			writeError(w, http.StatusForbidden, "invalid admin ID, registration not allowed")
			return
		}

		store, ok := stores.Get()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}

		email := normalizeEmail(req.Email)
		if _, err := store.AdminByEmail(r.Context(), email); err == nil {
			writeError(w, http.StatusConflict, "admin already exists, please log in")
			return
		} else if !errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		now := nowUTC()
		admin := Admin{
			ID:         newID(),
			Name:       strings.TrimSpace(req.Name),
			Email:      email,
			Password:   req.Password,
			IsVerified: true,
			AdminID:    "admin_" + uuid.NewString(),
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		err := store.CreateAdmin(r.Context(), admin)
		if errors.Is(err, ErrConflict) {
			writeError(w, http.StatusConflict, "admin already exists, please log in")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, map[string]string{"message": "admin registered successfully"})
	}
}

func handleAdminLogin(stores *StoreHandle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if missing := missingFields([]field{
			{"email", req.Email},
			{"password", req.Password},
		}); len(missing) > 0 {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		store, ok := stores.Get()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}

		email := normalizeEmail(req.Email)
		admin, err := store.AdminByEmail(r.Context(), email)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "admin not found, please sign up")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if admin.Password != req.Password {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}

		if err := store.SetAdminVerified(r.Context(), email, true); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		admin.IsVerified = true

		writeJSON(w, http.StatusOK, AdminLoginResponse{
			Message: "login successful",
			Admin:   admin.Summary(),
		})
	}
}

func handleAdminLogout(stores *StoreHandle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLogoutRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		store, ok := stores.Get()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "store not ready")
			return
		}

		err := store.SetAdminVerified(r.Context(), normalizeEmail(req.Email), false)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "admin not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to log out admin")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "admin logged out successfully"})
	}
}
