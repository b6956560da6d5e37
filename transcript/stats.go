package transcript

import (
	"math"
	"sort"
)

// Stats summarises a transcript for logging.
type Stats struct {
	Utterances int     `json:"utterances"`
	Tokens     int     `json:"tokens"`
	Speech     float64 `json:"speech"`  // sec covered by utterances
	Overlap    float64 `json:"overlap"` // sec where two or more utterances are active
	// SpeakingShare maps speaker -> fraction of Speech; "" collects unlabelled utterances.
	SpeakingShare map[string]float64 `json:"speaking_share,omitempty"`
}

func Summarize(t *Transcript) Stats {
	st := Stats{Utterances: len(t.Utterances)}
	if len(t.Utterances) == 0 {
		return st
	}
	st.SpeakingShare = map[string]float64{}
	type edge struct {
		t     float64
		delta int
	}
	var edges []edge
	for _, u := range t.Utterances {
		d := math.Max(0, u.Duration())
		st.Speech += d
		st.Tokens += len(u.Tokens())
		st.SpeakingShare[u.Speaker] += d
		edges = append(edges, edge{t: u.Start, delta: +1}, edge{t: u.End, delta: -1})
	}
	// ends sort before starts at the same instant so touching spans don't count
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].t != edges[j].t {
			return edges[i].t < edges[j].t
		}
		return edges[i].delta < edges[j].delta
	})
	active := 0
	last := edges[0].t
	for _, e := range edges {
		if active > 1 {
			st.Overlap += e.t - last
		}
		active += e.delta
		last = e.t
	}
	if st.Speech > 0 {
		for k := range st.SpeakingShare {
			st.SpeakingShare[k] /= st.Speech
		}
	}
	return st
}
