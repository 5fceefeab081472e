package domain

// MatchCandidate is one row of the assembled candidate universe: a profile
// other than the requester's, its active location if any, and the count of
// interests shared with the requester.
type MatchCandidate struct {
	Profile         Profile
	Location        *Location
	SharedInterests int
}

// MatchResult is one ranked discovery row. DistanceKm is nil when either
// side has no active location; nil means "unknown", never zero.
type MatchResult struct {
	UserID               int      `json:"user_id"`
	Username             string   `json:"username"`
	DisplayName          string   `json:"display_name"`
	Bio                  string   `json:"bio"`
	AvatarURL            string   `json:"avatar_url"`
	DistanceKm           *float64 `json:"distance_km"`
	SharedInterestsCount int      `json:"shared_interests_count"`
	CompatibilityScore   float64  `json:"compatibility_score"`
}
