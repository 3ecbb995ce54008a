package services

import (
	"strings"

	"roomkeeper/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const (
	// maxNameDistance caps the typo budget of a query matched against a single name.
	maxNameDistance = 2
	// minNameSimilarity is the least similarity a closestmatch suggestion needs to count.
	minNameSimilarity = 0.6
)

// normalizeText strips accents and lowercases.
func normalizeText(input string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(input)))
}

func levenshteinDistance(a, b string) int {
	return levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
}

// nameDistanceBudget grows with the query so that short queries do not match everything.
func nameDistanceBudget(query string) int {
	return min(maxNameDistance, len([]rune(query))/3)
}

// similarity is 1 for equal strings and falls towards 0 with the edit distance.
func similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshteinDistance(a, b))/float64(maxLen)
}

// MatchClient reports whether query looks like the client's name.
func MatchClient(query string, client models.Client) bool {
	q := normalizeText(query)
	if q == "" {
		return true
	}
	first := normalizeText(client.FirstName)
	last := normalizeText(client.LastName)
	if strings.Contains(first+" "+last, q) {
		return true
	}
	budget := nameDistanceBudget(q)
	for _, name := range []string{first, last} {
		if name != "" && levenshteinDistance(q, name) <= budget {
			return true
		}
	}
	return false
}

// FilterClients keeps the clients matching query, preserving order. Besides
// MatchClient, a client whose name is the closest one among all loaded names
// is kept when it is similar enough.
func FilterClients(query string, clients []models.Client) []models.Client {
	q := normalizeText(query)
	if q == "" {
		return clients
	}
	closest := closestName(q, clients)

	filtered := make([]models.Client, 0, len(clients))
	for _, client := range clients {
		if MatchClient(query, client) || hasName(client, closest) {
			filtered = append(filtered, client)
		}
	}
	return filtered
}

// closestName returns the loaded name nearest to q, or "" when none is similar enough.
func closestName(q string, clients []models.Client) string {
	names := make([]string, 0, 2*len(clients))
	for _, client := range clients {
		for _, name := range []string{normalizeText(client.FirstName), normalizeText(client.LastName)} {
			if name != "" {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return ""
	}
	best := closestmatch.New(names, []int{2, 3}).Closest(q)
	if best == "" || similarity(q, best) < minNameSimilarity {
		return ""
	}
	return best
}

func hasName(client models.Client, name string) bool {
	if name == "" {
		return false
	}
	return normalizeText(client.FirstName) == name || normalizeText(client.LastName) == name
}
