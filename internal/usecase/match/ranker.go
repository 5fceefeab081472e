package match

import (
	"sort"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/pkg/geo"
)

const (
	sharedInterestWeight = 10.0
	proximityBonusScale  = 100.0
)

// Score computes the compatibility score for a candidate. Shared interests
// dominate (weight 10 per interest); a known distance adds a bounded bonus
// that is 100 at distance 0 and decays smoothly, never reaching 0.
func Score(sharedInterests int, distanceKm *float64) float64 {
	score := float64(sharedInterests) * sharedInterestWeight
	if distanceKm != nil {
		score += proximityBonusScale / (1 + *distanceKm)
	}
	return score
}

// Rank filters, scores, orders, and truncates the assembled candidate set.
//
// A candidate is excluded on distance grounds only when both the requester
// and the candidate have a known active location and the distance between
// them exceeds maxDistanceKm; an unknown location on either side means
// "distance unknown", never "too far". After distance filtering a candidate
// is retained when it shares at least one interest with the requester or has
// a known distance. Ordering is score desc, then shared-interest count desc,
// then distance asc with unknown distances last. Truncation to limit happens
// only after the full sort.
func Rank(requesterLoc *domain.Location, candidates []*domain.MatchCandidate, maxDistanceKm float64, limit int) []domain.MatchResult {
	type scored struct {
		candidate *domain.MatchCandidate
		distance  *float64
		score     float64
	}

	ranked := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		var distance *float64
		if requesterLoc != nil && c.Location != nil {
			d := geo.DistanceKm(
				requesterLoc.Latitude, requesterLoc.Longitude,
				c.Location.Latitude, c.Location.Longitude,
			)
			if d > maxDistanceKm {
				continue
			}
			distance = &d
		}

		if c.SharedInterests == 0 && distance == nil {
			continue
		}

		ranked = append(ranked, scored{
			candidate: c,
			distance:  distance,
			score:     Score(c.SharedInterests, distance),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].candidate.SharedInterests != ranked[j].candidate.SharedInterests {
			return ranked[i].candidate.SharedInterests > ranked[j].candidate.SharedInterests
		}
		// Unknown distance sorts last among full ties.
		switch {
		case ranked[i].distance == nil:
			return false
		case ranked[j].distance == nil:
			return true
		default:
			return *ranked[i].distance < *ranked[j].distance
		}
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]domain.MatchResult, 0, len(ranked))
	for _, s := range ranked {
		results = append(results, domain.MatchResult{
			UserID:               s.candidate.Profile.UserID,
			Username:             s.candidate.Profile.Username,
			DisplayName:          s.candidate.Profile.DisplayName,
			Bio:                  s.candidate.Profile.Bio,
			AvatarURL:            s.candidate.Profile.AvatarURL,
			DistanceKm:           s.distance,
			SharedInterestsCount: s.candidate.SharedInterests,
			CompatibilityScore:   s.score,
		})
	}
	return results
}

// FilterMinShared applies the caller-side minimum-shared-interests threshold
// to an already-ranked, already-limited result set. It only shrinks the set;
// it never re-ranks or re-fetches.
func FilterMinShared(results []domain.MatchResult, minShared int) []domain.MatchResult {
	if minShared <= 0 {
		return results
	}
	filtered := make([]domain.MatchResult, 0, len(results))
	for _, r := range results {
		if r.SharedInterestsCount >= minShared {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
