package service

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/farmkeep/farmkeep/internal/database/repository"
)

// SuggestExisting returns the inventory item whose name most closely matches
// name, if the match is close enough to look like a duplicate entry. Create
// flows surface the suggestion so "Urea 46%" doesn't end up alongside
// "urea 46".
func SuggestExisting(name string, existing []repository.InventoryItem) *repository.InventoryItem {
	best := -1
	bestScore := 0.0
	for i, item := range existing {
		score := nameSimilarity(name, item.Name)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 || bestScore < 0.6 {
		return nil
	}
	return &existing[best]
}

func nameSimilarity(a, b string) float64 {
	na, nb := normalizeName(a), normalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	maxlen := len(na)
	if len(nb) > maxlen {
		maxlen = len(nb)
	}
	dist := levenshtein.ComputeDistance(na, nb)
	return 1 - float64(dist)/float64(maxlen)
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
