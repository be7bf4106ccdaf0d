// Package rank implements the timeline popularity score. It is pure
// computation: candidates come in with their aggregate counters already
// attached, a score comes out, and nothing here touches storage.
package rank

import (
	"math"
	"sort"
	"time"
)

// Counter weights. Retweets signal the strongest endorsement, views the
// weakest.
const (
	retweetWeight = 30
	commentWeight = 20
	likeWeight    = 10
	viewWeight    = 5
)

// halfLife is how long it takes a score to decay to half its value.
const halfLife = time.Hour

// Counters are the aggregate interaction counts for one candidate.
type Counters struct {
	Likes    int
	Views    int
	Retweets int
	Comments int
}

// Candidate is one scoreable timeline entry.
type Candidate struct {
	ID        uint
	CreatedAt time.Time
	Counters  Counters
}

// Score computes the decayed popularity score of a candidate at time now.
// totalInteractions is the global interaction count at query time; it
// normalizes scores so they stay comparable as the corpus grows. A zero
// or negative total is treated as 1.
func Score(c Counters, totalInteractions int64, createdAt, now time.Time) float64 {
	raw := float64(retweetWeight*c.Retweets +
		commentWeight*c.Comments +
		likeWeight*c.Likes +
		viewWeight*c.Views)

	if totalInteractions < 1 {
		totalInteractions = 1
	}

	age := now.Sub(createdAt).Seconds()
	decay := math.Pow(2, age/halfLife.Seconds())

	return raw / float64(totalInteractions) / decay
}

// Sort orders candidates descending by score. Ties break on ID
// descending so ordering stays stable across identical scores.
func Sort(candidates []Candidate, totalInteractions int64, now time.Time) {
	scores := make(map[uint]float64, len(candidates))
	for _, c := range candidates {
		scores[c.ID] = Score(c.Counters, totalInteractions, c.CreatedAt, now)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := scores[candidates[i].ID], scores[candidates[j].ID]
		if si != sj {
			return si > sj
		}
		return candidates[i].ID > candidates[j].ID
	})
}
