package grouping

import (
	"fmt"
	"sort"

	"portfolio/internal/domain/models"
)

// CarouselDescription is the fixed per-section description of a carousel.
func CarouselDescription(section, title string) string {
	switch section {
	case models.SectionMenus:
		return fmt.Sprintf("%s menu design", title)
	case models.SectionWedding:
		return fmt.Sprintf("%s wedding invitation", title)
	case models.SectionCarouselExample:
		return fmt.Sprintf("%s carousel", title)
	default:
		return ""
	}
}

// Group splits items into carousels. For sections that are not carousel-style
// every item becomes its own single-item group titled by its file name.
//
// Items inside a group keep display order; groups are ordered by their lowest
// member order. Both sorts are stable, so ties fall back to input order and
// grouping the flattened output again yields the same groups.
func Group(items []models.MediaItem, section models.Section) []models.CarouselGroup {
	if section.Grouping != models.GroupingCarousel {
		groups := make([]models.CarouselGroup, 0, len(items))
		for i, item := range items {
			groups = append(groups, models.CarouselGroup{
				ID:         i + 1,
				Title:      item.FileName,
				Items:      []models.MediaItem{item},
				IsFallback: item.IsFallback,
			})
		}
		return groups
	}

	var keys []string
	byKey := make(map[string][]models.MediaItem)

	for _, item := range items {
		key := item.GroupKey
		if key == "" {
			key = CarouselKey(item.FileName)
		}
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], item)
	}

	groups := make([]models.CarouselGroup, 0, len(keys))
	for _, key := range keys {
		members := byKey[key]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].DisplayOrder < members[j].DisplayOrder
		})

		groups = append(groups, models.CarouselGroup{
			Title:       key,
			Description: CarouselDescription(section.Name, key),
			Items:       members,
			IsFallback:  members[0].IsFallback,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Items[0].DisplayOrder < groups[j].Items[0].DisplayOrder
	})

	for i := range groups {
		groups[i].ID = i + 1
	}

	return groups
}

// Flatten returns the items of groups in display sequence.
func Flatten(groups []models.CarouselGroup) []models.MediaItem {
	var out []models.MediaItem
	for _, g := range groups {
		out = append(out, g.Items...)
	}
	return out
}
