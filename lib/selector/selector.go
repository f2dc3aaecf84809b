package selector

import (
	"errors"
	"strings"
	"time"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/jasidev/trendpost/lib/types"
)

// ErrNoCandidates is returned when every candidate is excluded by
// history or the candidate set is empty.
var ErrNoCandidates = errors.New("no eligible topic candidates")

// cleanTitle0 removes text after a marker if it appears after a minimum length
func cleanTitle0(s string, endingMarker string) string {
	// Only crop if the title stays meaningful after cropping
	minLengthBeforeMarker := 15

	if pos := strings.Index(s, endingMarker); pos != -1 && pos >= minLengthBeforeMarker {
		return s[:pos]
	}
	return s
}

// CleanTitle strips trailing publication names ("... - Reuters",
// "... | TechCrunch") from a headline.
func CleanTitle(s string) string {
	s2 := cleanTitle0(s, " – ")
	s3 := cleanTitle0(s2, " - ")
	s4 := cleanTitle0(s3, "|")
	return strings.TrimSpace(s4)
}

// Normalize produces the comparison form of a topic: cleaned,
// lowercased, single-spaced.
func Normalize(s string) string {
	cleaned := strings.ToLower(CleanTitle(s))
	return strings.Join(strings.Fields(cleaned), " ")
}

// isSimilar checks whether two normalized titles are near-duplicates.
// Longer titles use Hamming distance over a fixed prefix; short ones
// fall back to Jaro-Winkler.
func isSimilar(title1, title2 string) bool {
	lenDiff := len(title1) - len(title2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > 10 {
		return false
	}

	minLength := len(title1)
	if len(title2) < minLength {
		minLength = len(title2)
	}

	if minLength > 20 {
		hamming := metrics.NewHamming()
		compareLength := minLength
		if compareLength > 30 {
			compareLength = 30
		}
		distance := hamming.Distance(title1[:compareLength], title2[:compareLength])
		return distance <= 5
	}

	return strutil.Similarity(title1, title2, metrics.NewJaroWinkler()) >= 0.92
}

// recentTopics returns the normalized exclusion set: topics posted
// within the window, ending at now.
func recentTopics(history []types.HistoryEntry, window time.Duration, now time.Time) []string {
	var recent []string
	for _, entry := range history {
		if now.Sub(entry.PostedAt) > window {
			continue
		}
		normalized := entry.Normalized
		if normalized == "" {
			normalized = Normalize(entry.Topic)
		}
		recent = append(recent, normalized)
	}
	return recent
}

// Excluded reports whether a normalized title collides with any of the
// normalized recent topics.
func Excluded(normalized string, recent []string) bool {
	for _, seen := range recent {
		if normalized == seen || isSimilar(normalized, seen) {
			return true
		}
	}
	return false
}

// Select returns the first candidate, in input order, that is not
// excluded by a recent history entry. Input order is the only ranking;
// given identical inputs the result is identical.
func Select(candidates []types.Topic, history []types.HistoryEntry, window time.Duration) (types.Topic, error) {
	return SelectAt(candidates, history, window, time.Now())
}

// SelectAt is Select with an explicit clock.
func SelectAt(candidates []types.Topic, history []types.HistoryEntry, window time.Duration, now time.Time) (types.Topic, error) {
	recent := recentTopics(history, window, now)

	for _, candidate := range candidates {
		normalized := Normalize(candidate.Title)
		if normalized == "" {
			continue
		}
		if Excluded(normalized, recent) {
			continue
		}
		return candidate, nil
	}
	return types.Topic{}, ErrNoCandidates
}
