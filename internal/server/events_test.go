package server

import "testing"

func TestCollectionEventContract(t *testing.T) {
	want := map[string]string{
		"tournament":         "TOURNAMENT_ADDED",
		"upcomingtournament": "TOURNAMENT_ADDED",
		"upcomingscrim":      "UPCOMING_SCRIM_ADDED",
		"tournamentdetail":   "DETAIL_UPDATED",
		"leaderboard":        "LEADERBOARD_UPDATED",
		"winner":             "WINNER_UPDATED",
		"joinmatches":        "JOIN_MATCH",
		"passedmatch":        "PASSED_MATCH_ADDED",
	}

	if len(collectionEvents) != len(want) {
		t.Fatalf("mapping has %d entries, want %d", len(collectionEvents), len(want))
	}
	for name, event := range want {
		got, ok := eventForCollection(name)
		if !ok || got != event {
			t.Errorf("eventForCollection(%q) = %q, %v; want %q", name, got, ok, event)
		}
	}

	if _, ok := eventForCollection("rank"); ok {
		t.Error("rank must not map to an event")
	}
}

func TestWritableCollections(t *testing.T) {
	// Every mapped collection is readable.
	for name := range collectionEvents {
		if !readableCollections[name] {
			t.Errorf("mapped collection %q missing from read allow-list", name)
		}
	}

	// Entity collections only write through their dedicated endpoints.
	for _, name := range []string{"admins", "joinmatches"} {
		if writableCollection(name) {
			t.Errorf("%q must not be writable through the generic endpoint", name)
		}
	}
	if !writableCollection("passedmatch") {
		t.Error("passedmatch should be writable")
	}
	if writableCollection("secrets") {
		t.Error("unknown collections must not be writable")
	}
}
