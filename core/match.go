package core

import (
	"strings"

	"podpulse/schema"
)

// Match score tiers. Higher tiers never overlap lower ones.
const (
	ScoreExact    = 1000
	ScoreSuffix   = 900
	ScoreAllWords = 500 // base of the all-words band (500..599)
	ScorePartial  = 200 // base of the partial band (200..299)
)

// normalizeName canonicalizes a name for matching: trim, collapse internal
// whitespace, lowercase.
func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ScoreMatch scores how well a candidate project name matches a free-text
// query. The boolean is false when nothing matches, or when the query is
// empty after normalization. Tiers, best first: exact match, suffix match,
// all query words present, some query words present. Within the word bands
// the score scales with coverage so fuller matches rank higher.
func ScoreMatch(candidate, query string) (int, bool) {
	q := normalizeName(query)
	if q == "" {
		return 0, false
	}
	c := normalizeName(candidate)

	if c == q {
		return ScoreExact, true
	}
	if strings.HasSuffix(c, q) {
		return ScoreSuffix, true
	}

	words := strings.Fields(q)
	matched := 0
	for _, w := range words {
		if strings.Contains(c, w) {
			matched++
		}
	}
	if matched == 0 {
		return 0, false
	}

	if matched == len(words) {
		// All words present but scattered; favor candidates the query covers more of.
		coverage := len(q) * 100 / len(c)
		return ScoreAllWords + min(99, coverage), true
	}
	return ScorePartial + matched*100/len(words), true
}

// PodProjects couples a pod with its fetched candidate projects.
type PodProjects struct {
	Pod      string
	Projects []schema.Project
}

// BestMatch scans every candidate project of every pod and returns the highest
// scoring match, or nil when nothing matches. Ties resolve deterministically
// to the first candidate seen: pods in configured order, projects in fetch
// order.
func BestMatch(query string, candidates []PodProjects) *schema.MatchResult {
	var best *schema.MatchResult
	for _, pp := range candidates {
		for _, project := range pp.Projects {
			score, ok := ScoreMatch(project.Name, query)
			if !ok {
				continue
			}
			if best == nil || score > best.Score {
				best = &schema.MatchResult{Pod: pp.Pod, Project: project, Score: score}
			}
		}
	}
	return best
}
