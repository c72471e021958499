// Package catalog holds the media and page content the site shipped with
// before anything was stored. It is served whenever a section has no stored
// rows and is the source for migrations into the store.
package catalog

import (
	"fmt"
	"strings"

	"portfolio/internal/domain/models"
	"portfolio/internal/lib/grouping"
)

// Entry is one catalog media item. Names follow the same conventions the
// grouping package parses, so catalog items group exactly like uploads do.
type Entry struct {
	URL      string
	Name     string
	Kind     models.MediaKind
	GroupKey string
	PairRole models.PairRole
}

// Carousel is a titled catalog carousel.
type Carousel struct {
	ID          int
	Title       string
	Description string
	Images      []string
}

type video struct {
	URL   string
	Title string
}

type pair struct {
	Before string
	After  string
}

var (
	images = map[string][]string{
		models.SectionStories: {
			"/assets/stories/1.jpg",
			"/assets/stories/2.jpg",
			"/assets/stories/3.jpg",
			"/assets/stories/4.jpg",
			"/assets/stories/5.jpg",
		},
		models.SectionPinterest: {
			"/assets/pinterest/1.jpg",
			"/assets/pinterest/2.jpg",
			"/assets/pinterest/3.jpg",
			"/assets/pinterest/4.jpg",
			"/assets/pinterest/5.jpg",
		},
		models.SectionPosts: {
			"/assets/posts/bilie eilish.png",
			"/assets/posts/post food.png",
		},
	}

	carousels = map[string][]Carousel{
		models.SectionCarouselExample: {
			{
				ID:          1,
				Title:       "Carousel 1",
				Description: "Instagram carousel example",
				Images: []string{
					"/assets/carousel-posts/carousel-1/1.png",
					"/assets/carousel-posts/carousel-1/2.png",
					"/assets/carousel-posts/carousel-1/3.png",
					"/assets/carousel-posts/carousel-1/4.png",
				},
			},
			{
				ID:          2,
				Title:       "Carousel 2",
				Description: "Instagram carousel example",
				Images: []string{
					"/assets/carousel-posts/carousel-2/17.png",
					"/assets/carousel-posts/carousel-2/18.png",
					"/assets/carousel-posts/carousel-2/19.png",
					"/assets/carousel-posts/carousel-2/20.png",
					"/assets/carousel-posts/carousel-2/21.png",
				},
			},
		},
		models.SectionMenus: {
			{
				ID:          1,
				Title:       "Bistro Restaurant",
				Description: "Elegant dining menu design",
				Images: []string{
					"/assets/menus/Bistro Restaurant_page-0001.jpg",
					"/assets/menus/Bistro Restaurant_page-0002.jpg",
					"/assets/menus/Bistro Restaurant_page-0003.jpg",
					"/assets/menus/Bistro Restaurant_page-0004.jpg",
					"/assets/menus/Bistro Restaurant_page-0005.jpg",
					"/assets/menus/Bistro Restaurant_page-0006.jpg",
					"/assets/menus/Bistro Restaurant_page-0007.jpg",
					"/assets/menus/Bistro Restaurant_page-0008.jpg",
				},
			},
			{
				ID:          2,
				Title:       "Retro Menu",
				Description: "Modern coffee shop menu",
				Images: []string{
					"/assets/menus/Retro menu.pdf_page-0001.jpg",
					"/assets/menus/Retro menu.pdf_page-0002.jpg",
					"/assets/menus/Retro menu.pdf_page-0003.jpg",
				},
			},
		},
		models.SectionWedding: {
			{
				ID:          1,
				Title:       "Wedding Times",
				Description: "Elegant wedding invitation",
				Images: []string{
					"/assets/wedding/Wedding Times-images-1.jpg",
					"/assets/wedding/Wedding Times-images-2.jpg",
					"/assets/wedding/Wedding Times-images-3.jpg",
					"/assets/wedding/Wedding Times-images-4.jpg",
				},
			},
		},
	}

	videos = map[string][]video{
		models.SectionShootEdit: {
			{URL: "/assets/shoot-edit/1.MP4", Title: "Shoot and Edit 1"},
			{URL: "/assets/shoot-edit/2.mp4", Title: "Shoot and Edit 2"},
			{URL: "/assets/shoot-edit/3.mp4", Title: "Shoot and Edit 3"},
		},
		models.SectionReels: {
			{URL: "/assets/reels/1.mp4", Title: "Reel 1"},
			{URL: "/assets/reels/2.mp4", Title: "Reel 2"},
			{URL: "/assets/reels/3.mp4", Title: "Reel 3"},
		},
	}

	pairs = map[string][]pair{
		models.SectionEditing: {
			{Before: "/assets/photo-edit/photo 1 before.JPG", After: "/assets/photo-edit/photo 1 after.JPG"},
			{Before: "/assets/photo-edit/photo 2 before.jpg", After: "/assets/photo-edit/photo 2 after.jpg"},
		},
	}
)

// Media returns the catalog items of a section in display sequence.
// Unknown and content-only sections have none.
func Media(section string) []Entry {
	if urls, ok := images[section]; ok {
		out := make([]Entry, 0, len(urls))
		for _, u := range urls {
			out = append(out, Entry{URL: u, Name: grouping.URLFileName(u), Kind: models.MediaKindImage})
		}
		return out
	}

	if groups, ok := carousels[section]; ok {
		var out []Entry
		for _, c := range groups {
			title := c.Title
			if title == "" {
				title = fmt.Sprintf("Item %d", c.ID)
			}
			for i, u := range c.Images {
				out = append(out, Entry{
					URL:      u,
					Name:     fmt.Sprintf("%s - Slide %d", title, i+1),
					Kind:     models.MediaKindImage,
					GroupKey: title,
				})
			}
		}
		return out
	}

	if vids, ok := videos[section]; ok {
		out := make([]Entry, 0, len(vids))
		for _, v := range vids {
			out = append(out, Entry{URL: v.URL, Name: v.Title, Kind: models.MediaKindVideo})
		}
		return out
	}

	if ps, ok := pairs[section]; ok {
		var out []Entry
		for i, p := range ps {
			out = append(out,
				pairEntry(p.Before, i+1, models.PairRoleBefore),
				pairEntry(p.After, i+1, models.PairRoleAfter),
			)
		}
		return out
	}

	return nil
}

func pairEntry(u string, id int, role models.PairRole) Entry {
	base := grouping.PairBaseName(grouping.URLFileName(u))
	if base == "" {
		base = fmt.Sprintf("Item %d", id)
	}
	return Entry{
		URL:      u,
		Name:     fmt.Sprintf("%s - %s", base, role),
		Kind:     models.MediaKindImage,
		GroupKey: base,
		PairRole: role,
	}
}

// Carousels returns the titled carousels of a carousel section.
func Carousels(section string) []Carousel {
	groups := carousels[section]
	out := make([]Carousel, len(groups))
	copy(out, groups)
	return out
}

// Sections lists every section that has catalog media.
func Sections() []string {
	var out []string
	for _, s := range models.Sections() {
		if len(Media(s.Name)) > 0 {
			out = append(out, s.Name)
		}
	}
	return out
}

// Items builds synthetic media items for a section. Ids carry the fallback
// prefix and orders follow catalog position.
func Items(section string, kind models.MediaKind) []models.MediaItem {
	var out []models.MediaItem
	for _, e := range Media(section) {
		if kind != "" && e.Kind != kind {
			continue
		}
		out = append(out, models.MediaItem{
			ID:           fmt.Sprintf("%s%d", models.FallbackIDPrefix, len(out)),
			Section:      section,
			FileName:     e.Name,
			URL:          e.URL,
			Kind:         e.Kind,
			DisplayOrder: len(out),
			GroupKey:     e.GroupKey,
			PairRole:     e.PairRole,
			IsFallback:   true,
		})
	}
	return out
}

// HasURL reports whether url is one of the catalog URLs of section, ignoring case.
func HasURL(section, url string) bool {
	for _, e := range Media(section) {
		if strings.EqualFold(e.URL, url) {
			return true
		}
	}
	return false
}
