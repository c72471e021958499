package grouping

import (
	"fmt"
	"sort"
	"strings"

	"portfolio/internal/domain/models"
)

// PairDescription is shown under every before/after pair.
const PairDescription = "Color grading transformation"

type pairSlots struct {
	key      string
	title    string
	before   *models.MediaItem
	after    *models.MediaItem
	minOrder int
}

// Pair groups editing samples into before/after pairs keyed by their
// lowercased base name. Items whose name mentions neither marker are skipped.
//
// Each key holds one before and one after slot. When two items claim the same
// slot the later one wins; the count of such overwrites is returned so callers
// can report it.
func Pair(items []models.MediaItem) ([]models.BeforeAfterPair, int) {
	var order []string
	slots := make(map[string]*pairSlots)
	overwrites := 0

	for i := range items {
		item := items[i]

		role := PairRoleOf(item)
		if role == models.PairRoleNone {
			continue
		}

		base := item.GroupKey
		if base == "" {
			base = PairBaseName(item.FileName)
		}
		if base == "" {
			base = PairBaseName(URLFileName(item.URL))
		}

		key := strings.ToLower(strings.TrimSpace(base))
		if key == "" {
			key = fmt.Sprintf("item-%s", item.ID)
		}

		s, ok := slots[key]
		if !ok {
			s = &pairSlots{key: key, title: base, minOrder: item.DisplayOrder}
			slots[key] = s
			order = append(order, key)
		}
		if item.DisplayOrder < s.minOrder {
			s.minOrder = item.DisplayOrder
		}

		switch role {
		case models.PairRoleBefore:
			if s.before != nil {
				overwrites++
			}
			s.before = &item
		case models.PairRoleAfter:
			if s.after != nil {
				overwrites++
			}
			s.after = &item
		}
	}

	pairs := make([]models.BeforeAfterPair, 0, len(order))
	for _, key := range order {
		s := slots[key]
		if s.before == nil && s.after == nil {
			continue
		}

		p := models.BeforeAfterPair{
			Key:          s.key,
			Title:        CapitalizeWords(s.title),
			Description:  PairDescription,
			Before:       s.before,
			After:        s.after,
			DisplayOrder: s.minOrder,
		}
		if s.before != nil {
			p.ID = s.before.ID
			p.IsFallback = s.before.IsFallback
		} else {
			p.ID = s.after.ID
		}
		if s.after != nil && s.after.IsFallback {
			p.IsFallback = true
		}
		pairs = append(pairs, p)
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].DisplayOrder < pairs[j].DisplayOrder
	})

	for i := range pairs {
		if pairs[i].Title == "" {
			pairs[i].Title = fmt.Sprintf("Item %d", i+1)
		}
	}

	return pairs, overwrites
}
