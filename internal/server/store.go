package server

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// Admin is a tournament organizer account as persisted. The password is kept
// exactly as submitted; hashing is outside this service's scope.
type Admin struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsVerified bool   `json:"isVerified"`
	AdminID    string `json:"adminId"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// AdminSummary is the externally visible shape of an Admin. It never carries
// the password.
type AdminSummary struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	AdminID    string `json:"adminId"`
	IsVerified bool   `json:"isVerified"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

func (a Admin) Summary() AdminSummary {
	return AdminSummary{
		Name:       a.Name,
		Email:      a.Email,
		AdminID:    a.AdminID,
		IsVerified: a.IsVerified,
		CreatedAt:  a.CreatedAt,
	}
}

// Registration is one squad's entry into one tournament. The pair
// (PlayerEmail, TournamentName) is unique, enforced by a storage index.
type Registration struct {
	ID                 string `json:"id"`
	TournamentName     string `json:"tournamentName"`
	FirstPlayer        string `json:"firstPlayer"`
	SecondPlayer       string `json:"secondPlayer"`
	ThirdPlayer        string `json:"thirdPlayer"`
	FourthPlayer       string `json:"fourthPlayer"`
	PlayerEmail        string `json:"playerEmail"`
	PlayerMobileNumber string `json:"playerMobileNumber"`
	PlayerPassword     string `json:"playerPassword,omitempty"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
}

type Store interface {
	CreateAdmin(ctx context.Context, a Admin) error
	AdminByEmail(ctx context.Context, email string) (Admin, error)
	SetAdminVerified(ctx context.Context, email string, verified bool) error
	ListAdmins(ctx context.Context) ([]AdminSummary, error)

	CreateRegistration(ctx context.Context, reg Registration) error
	RegistrationExists(ctx context.Context, playerEmail, tournamentName string) (bool, error)
	ListRegistrations(ctx context.Context) ([]Registration, error)

	InsertMany(ctx context.Context, collection string, docs []map[string]any) error
	FindAll(ctx context.Context, collection string) ([]map[string]any, error)
	FindOneByField(ctx context.Context, collection, field, value string) (map[string]any, error)
}

// StoreHandle is the process-wide store-readiness flag: empty until the
// background connect step publishes the store, after which every data route
// sees it. Routes answer 503 while Get reports not ready.
type StoreHandle struct {
	mu sync.RWMutex
	s  Store
}

func (h *StoreHandle) Set(s Store) {
	h.mu.Lock()
	h.s = s
	h.mu.Unlock()
}

func (h *StoreHandle) Get() (Store, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.s, h.s != nil
}
