package server

import (
	"encoding/json"
	"net/http"
	"testing"
)

func uploadBody(collection string, data any) map[string]any {
	return map[string]any{"collection": collection, "data": data}
}

func TestCollectionWriteAndBroadcast(t *testing.T) {
	r, broker := newTestRouter(t)

	ch := broker.Subscribe()
	defer broker.Unsubscribe(ch)

	doc := map[string]any{"tournamentId": "deadzone", "winnerTeam": "Alpha"}
	w := doJSON(t, r, http.MethodPost, "/tournament", uploadBody("winner", []any{doc}))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := decodeBody[CollectionWriteResponse](t, w)
	if resp.Collection != "winner" || resp.Count != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}

	select {
	case data := <-ch:
		var n Notification
		if err := json.Unmarshal(data, &n); err != nil {
			t.Fatalf("decoding notification: %v", err)
		}
		if n.Event != "WINNER_UPDATED" {
			t.Errorf("expected WINNER_UPDATED, got %q", n.Event)
		}
		list, ok := n.Payload.([]any)
		if !ok || len(list) != 1 {
			t.Fatalf("expected list payload of 1, got %#v", n.Payload)
		}
		got := list[0].(map[string]any)
		if got["tournamentId"] != "deadzone" || got["winnerTeam"] != "Alpha" {
			t.Errorf("unexpected payload document: %#v", got)
		}
	default:
		t.Fatal("expected a broadcast notification")
	}
}

func TestCollectionWriteSingleObjectNormalized(t *testing.T) {
	r, broker := newTestRouter(t)

	ch := broker.Subscribe()
	defer broker.Unsubscribe(ch)

	// A bare object is accepted and broadcast in list form.
	doc := map[string]any{"name": "Deadzone Finals", "slots": float64(25)}
	w := doJSON(t, r, http.MethodPost, "/tournament", uploadBody("tournament", doc))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	select {
	case data := <-ch:
		var n Notification
		json.Unmarshal(data, &n)
		if n.Event != "TOURNAMENT_ADDED" {
			t.Errorf("expected TOURNAMENT_ADDED, got %q", n.Event)
		}
		if _, ok := n.Payload.([]any); !ok {
			t.Errorf("expected list-form payload, got %#v", n.Payload)
		}
	default:
		t.Fatal("expected a broadcast notification")
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	docs := []any{
		map[string]any{"tournamentId": "deadzone", "map": "Erangel", "prize": float64(5000)},
		map[string]any{"tournamentId": "warzone", "map": "Miramar", "prize": float64(3000)},
	}
	if w := doJSON(t, r, http.MethodPost, "/tournament", uploadBody("leaderboard", docs)); w.Code != http.StatusCreated {
		t.Fatalf("write: expected 201, got %d", w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/leaderboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("read: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	got := decodeBody[[]map[string]any](t, w)
	if len(got) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(got))
	}
	for i, want := range docs {
		wantDoc := want.(map[string]any)
		if len(got[i]) != len(wantDoc) {
			t.Errorf("doc %d: field count %d, want %d", i, len(got[i]), len(wantDoc))
		}
		for k, v := range wantDoc {
			if got[i][k] != v {
				t.Errorf("doc %d field %q: got %v, want %v", i, k, got[i][k], v)
			}
		}
	}
}

func TestCollectionWriteRejectsUnknown(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, name := range []string{"", "secrets", "admins", "joinmatches"} {
		w := doJSON(t, r, http.MethodPost, "/tournament", uploadBody(name, []any{map[string]any{"a": 1}}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("collection %q: expected 400, got %d", name, w.Code)
		}
	}
}

func TestCollectionWriteMalformedData(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []map[string]any{
		{"collection": "winner"},
		{"collection": "winner", "data": nil},
		{"collection": "winner", "data": "not an object"},
		{"collection": "winner", "data": []any{}},
	}
	for i, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/tournament", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("case %d: expected 400, got %d: %s", i, w.Code, w.Body.String())
		}
	}
}

func TestCollectionWriteUnmappedEmitsNothing(t *testing.T) {
	r, broker := newTestRouter(t)

	ch := broker.Subscribe()
	defer broker.Unsubscribe(ch)

	w := doJSON(t, r, http.MethodPost, "/tournament", uploadBody("rank", []any{map[string]any{"team": "Alpha", "rank": float64(1)}}))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	select {
	case data := <-ch:
		t.Fatalf("rank has no event mapping, got broadcast %s", data)
	default:
	}
}

func TestCollectionReadUnknown(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/nosuchcollection", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCollectionReadEmptyIsList(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/upcomingscrim", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestTournamentDetailLookup(t *testing.T) {
	r, _ := newTestRouter(t)

	// Before any matching document exists.
	w := doJSON(t, r, http.MethodGet, "/tournamentdetail/deadzone", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	docs := []any{
		map[string]any{"tournamentId": "warzone", "matchName": "Warzone Semis"},
		map[string]any{"tournamentId": "deadzone", "matchName": "Deadzone Finals"},
	}
	if w := doJSON(t, r, http.MethodPost, "/tournament", uploadBody("tournamentdetail", docs)); w.Code != http.StatusCreated {
		t.Fatalf("write: expected 201, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/tournamentdetail/deadzone", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	doc := decodeBody[map[string]any](t, w)
	if doc["matchName"] != "Deadzone Finals" {
		t.Errorf("expected Deadzone Finals, got %v", doc["matchName"])
	}

	// The whole collection still lists through the generic route.
	w = doJSON(t, r, http.MethodGet, "/tournamentdetail", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	if list := decodeBody[[]map[string]any](t, w); len(list) != 2 {
		t.Errorf("expected 2 details, got %d", len(list))
	}
}

func TestStoreNotReady(t *testing.T) {
	r := newNotReadyRouter(t)

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/joinmatches", joinBody()},
		{http.MethodPost, "/tournament", uploadBody("winner", []any{map[string]any{"a": 1}})},
		{http.MethodPost, "/adminlogin", AdminLoginRequest{Email: "a@b.c", Password: "x"}},
		{http.MethodPost, "/logoutadmin", AdminLogoutRequest{Email: "a@b.c"}},
		{http.MethodGet, "/tournament", nil},
		{http.MethodGet, "/tournamentdetail/deadzone", nil},
	}
	for _, tc := range cases {
		w := doJSON(t, r, tc.method, tc.path, tc.body)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s %s: expected 503, got %d", tc.method, tc.path, w.Code)
		}
	}
}
