package server

// collectionEvents maps a collection name to the event broadcast after a
// successful write into it. Collections without an entry emit nothing; the
// event namespace is closed.
var collectionEvents = map[string]string{
	"tournament":         "TOURNAMENT_ADDED",
	"upcomingtournament": "TOURNAMENT_ADDED",
	"upcomingscrim":      "UPCOMING_SCRIM_ADDED",
	"tournamentdetail":   "DETAIL_UPDATED",
	"leaderboard":        "LEADERBOARD_UPDATED",
	"winner":             "WINNER_UPDATED",
	"joinmatches":        "JOIN_MATCH",
	"passedmatch":        "PASSED_MATCH_ADDED",
}

func eventForCollection(name string) (string, bool) {
	event, ok := collectionEvents[name]
	return event, ok
}

// readableCollections is the allow-list for GET /{collection}. Unknown names
// are rejected instead of querying an arbitrary store namespace.
var readableCollections = map[string]bool{
	"tournament":         true,
	"upcomingscrim":      true,
	"upcomingtournament": true,
	"leaderboard":        true,
	"winner":             true,
	"tournamentdetail":   true,
	"joinmatches":        true,
	"passedmatch":        true,
	"admins":             true,
	"mvpplayer":          true,
	"rank":               true,
	"topplayer":          true,
}

// writableCollection reports whether the generic upload endpoint may write to
// name. Admins and registrations are only writable through their dedicated
// endpoints, which own the uniqueness rules.
func writableCollection(name string) bool {
	if name == "admins" || name == "joinmatches" {
		return false
	}
	return readableCollections[name]
}
