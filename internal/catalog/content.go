package catalog

import (
	"sort"

	"portfolio/internal/domain/models"
)

var content = map[string]models.ContentRecord{
	models.SectionAbout: {
		Section: models.SectionAbout,
		Variant: models.ContentAbout,
		About: &models.AboutContent{
			Title:    "Capturing Moments Creating Stories",
			Subtitle: "Creative Visual Artist",
			Description: "I'm a visual storyteller specializing in photography, videography, and post-production. " +
				"From Instagram stories to cinematic reels, I bring creative visions to life through the lens and editing suite.",
			Image: "/image/Untitled design.svg",
		},
	},
	models.SectionContact: {
		Section: models.SectionContact,
		Variant: models.ContentContact,
		Contact: &models.ContactContent{
			Email: "hello@example.com",
			Phone: "+00 000 000 0000",
			SocialLinks: []models.SocialLink{
				{Icon: "Instagram", Href: "https://www.instagram.com/", Label: "Instagram"},
				{Icon: "Pinterest", Href: "https://www.pinterest.com/", Label: "Pinterest"},
				{Icon: "Linkedin", Href: "https://www.linkedin.com/", Label: "LinkedIn"},
			},
		},
	},
}

// Content returns the catalog page content of a section, marked as fallback.
func Content(section string) (models.ContentRecord, bool) {
	rec, ok := content[section]
	if !ok {
		return models.ContentRecord{}, false
	}

	rec.IsFallback = true
	if rec.About != nil {
		about := *rec.About
		rec.About = &about
	}
	if rec.Contact != nil {
		contact := *rec.Contact
		contact.SocialLinks = append([]models.SocialLink(nil), rec.Contact.SocialLinks...)
		rec.Contact = &contact
	}
	return rec, true
}

// ContentSections lists the sections that have default content.
func ContentSections() []string {
	out := make([]string, 0, len(content))
	for name := range content {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
