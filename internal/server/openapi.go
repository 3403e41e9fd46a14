package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of plain success responses.
type MessageResponse struct {
	Message string `json:"message"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "BGMI Backend API"
	r.Spec.Info.Version = "1.0.0"
	r.Spec.Info.WithDescription("Tournament-registration gateway: admin accounts, match registrations, collection uploads, and a db-update notification stream.")

	// GET /
	getHealth, _ := r.NewOperationContext(http.MethodGet, "/")
	getHealth.SetSummary("Readiness probe")
	getHealth.SetDescription("Always 200; storeReady reports whether data routes will serve.")
	getHealth.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getHealth)

	// POST /admins
	postAdmins, _ := r.NewOperationContext(http.MethodPost, "/admins")
	postAdmins.SetSummary("Register admin")
	postAdmins.SetDescription("Creates an admin account. adminId must carry the shared registration code.")
	postAdmins.AddReqStructure(AdminRegisterRequest{})
	postAdmins.AddRespStructure(MessageResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postAdmins.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAdmins.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postAdmins.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postAdmins.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(postAdmins)

	// POST /adminlogin
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/adminlogin")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Checks credentials and marks the admin verified.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminLoginResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postLogin)

	// POST /logoutadmin
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/logoutadmin")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears the admin's verified flag.")
	postLogout.AddReqStructure(AdminLogoutRequest{})
	postLogout.AddRespStructure(MessageResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogout.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postLogout)

	// POST /joinmatches
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/joinmatches")
	postJoin.SetSummary("Register for a match")
	postJoin.SetDescription("Registers a squad for a tournament. One entry per (playerEmail, tournamentName). Broadcasts JOIN_MATCH.")
	postJoin.AddReqStructure(JoinMatchRequest{})
	postJoin.AddRespStructure(MessageResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postJoin)

	// POST /tournament
	postUpload, _ := r.NewOperationContext(http.MethodPost, "/tournament")
	postUpload.SetSummary("Generic collection upload")
	postUpload.SetDescription("Inserts one object or a list of objects into a named collection and broadcasts the collection's event, if it has one.")
	postUpload.AddReqStructure(CollectionWriteRequest{})
	postUpload.AddRespStructure(CollectionWriteResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postUpload.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postUpload)

	// GET /{collection}
	getCollection, _ := r.NewOperationContext(http.MethodGet, "/{collection}")
	getCollection.SetSummary("List a collection")
	getCollection.SetDescription("Returns all documents of an allow-listed collection. admins is returned without passwords.")
	getCollection.AddRespStructure([]map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	getCollection.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getCollection.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getCollection)

	// GET /tournamentdetail/{id}
	getDetail, _ := r.NewOperationContext(http.MethodGet, "/tournamentdetail/{id}")
	getDetail.SetSummary("Tournament detail by business key")
	getDetail.SetDescription("Looks a tournament detail up by its tournamentId field.")
	getDetail.AddRespStructure(map[string]any{}, openapi.WithHTTPStatus(http.StatusOK))
	getDetail.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getDetail)

	// GET /stream
	getStream, _ := r.NewOperationContext(http.MethodGet, "/stream")
	getStream.SetSummary("SSE notification stream")
	getStream.SetDescription("Server-Sent Events stream of db-update notifications ({event, payload, time}). Best effort, no replay.")
	getStream.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getStream)

	// GET /ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/ws")
	getWS.SetSummary("WebSocket notification stream")
	getWS.SetDescription("Upgrades to a WebSocket carrying the same db-update notifications as /stream.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, err := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			writeError(w, http.StatusInternalServerError, "rendering openapi spec")
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
