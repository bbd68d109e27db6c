package transform

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Search finds utilities by name and description. Utilities whose name or
// description contains the query come first, in catalog order. They are
// followed by fuzzy matches against ids, names and keywords, closest first.
// An empty query finds nothing.
func Search(query string) []*Utility {
	q := strings.ToLower(strings.TrimSpace(query))
	results := []*Utility{}
	if q == "" {
		return results
	}

	type ranked struct {
		u        *Utility
		distance int
	}
	var near []ranked
	for _, u := range All() {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Description), q) {
			results = append(results, u)
			continue
		}
		if d := fuzzyDistance(q, u); d >= 0 {
			near = append(near, ranked{u, d})
		}
	}
	sort.SliceStable(near, func(i, j int) bool {
		return near[i].distance < near[j].distance
	})
	for _, r := range near {
		results = append(results, r.u)
	}
	return results
}

// fuzzyDistance is the best match distance of q against the words that
// identify u, or -1
func fuzzyDistance(q string, u *Utility) int {
	best := -1
	targets := append([]string{u.ID, u.Name}, u.Keywords...)
	for _, target := range targets {
		d := fuzzy.RankMatchFold(q, target)
		if d >= 0 && (best < 0 || d < best) {
			best = d
		}
	}
	return best
}
