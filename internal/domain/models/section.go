package models

type GroupingMode string

const (
	GroupingNone        GroupingMode = "none"
	GroupingCarousel    GroupingMode = "carousel"
	GroupingBeforeAfter GroupingMode = "before-after"
)

// Section is a named content area of the site. Sections with media carry a
// kind and a grouping mode; the content-only contact section does not. About
// holds the portrait referenced by its content image.
type Section struct {
	Name     string       `json:"name"`
	Kind     MediaKind    `json:"media_type,omitempty"`
	Grouping GroupingMode `json:"grouping,omitempty"`
	HasMedia bool         `json:"has_media"`
}

const (
	SectionAbout           = "about"
	SectionContact         = "contact"
	SectionStories         = "stories"
	SectionPinterest       = "pinterest"
	SectionPosts           = "posts"
	SectionCarouselExample = "carousel-example"
	SectionEditing         = "editing"
	SectionShootEdit       = "shoot-edit"
	SectionReels           = "reels"
	SectionMenus           = "menus"
	SectionWedding         = "wedding"
)

var sections = []Section{
	{Name: SectionAbout, Kind: MediaKindImage, Grouping: GroupingNone, HasMedia: true},
	{Name: SectionStories, Kind: MediaKindImage, Grouping: GroupingNone, HasMedia: true},
	{Name: SectionPinterest, Kind: MediaKindImage, Grouping: GroupingNone, HasMedia: true},
	{Name: SectionPosts, Kind: MediaKindImage, Grouping: GroupingNone, HasMedia: true},
	{Name: SectionCarouselExample, Kind: MediaKindImage, Grouping: GroupingCarousel, HasMedia: true},
	{Name: SectionEditing, Kind: MediaKindImage, Grouping: GroupingBeforeAfter, HasMedia: true},
	{Name: SectionShootEdit, Kind: MediaKindVideo, Grouping: GroupingNone, HasMedia: true},
	{Name: SectionReels, Kind: MediaKindVideo, Grouping: GroupingNone, HasMedia: true},
	{Name: SectionMenus, Kind: MediaKindImage, Grouping: GroupingCarousel, HasMedia: true},
	{Name: SectionWedding, Kind: MediaKindImage, Grouping: GroupingCarousel, HasMedia: true},
	{Name: SectionContact},
}

// Sections returns the section registry in site order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// LookupSection finds a registered section by name.
func LookupSection(name string) (Section, bool) {
	for _, s := range sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// MediaSection finds a registered section that holds media.
func MediaSection(name string) (Section, error) {
	s, ok := LookupSection(name)
	if !ok || !s.HasMedia {
		return Section{}, ErrUnknownSection
	}
	return s, nil
}
