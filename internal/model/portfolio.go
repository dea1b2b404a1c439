// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the portfolio document and its section types.
package model

// SingletonKey is the fixed identifier the portfolio document is stored under.
// The system is single-tenant: there is exactly one document, never keyed by user.
const SingletonKey = "main"

// RequiredSections lists the top-level keys a document must carry before a
// write is accepted, in validation order.
var RequiredSections = []string{"hero", "about", "skills", "projects", "blog", "gallery", "contact"}

// Hero is the landing section of the portfolio.
type Hero struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// About is the biography section, including work and education history.
type About struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       string       `json:"image,omitempty"`
	CV          string       `json:"cv,omitempty"`
	Experiences []Experience `json:"experiences"`
	Studies     []Study      `json:"studies"`
}

// Social holds optional social profile links.
type Social struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Contact is the contact section.
type Contact struct {
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Location string  `json:"location"`
	Social   *Social `json:"social,omitempty"`
}

// Skill is one entry in the skills list.
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description"`
	Ord         int    `json:"order"`
}

// Project is one entry in the projects list.
type Project struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	DetailedDescription string   `json:"detailedDescription,omitempty"`
	Image               string   `json:"image,omitempty"`
	Images              []string `json:"images,omitempty"`
	Date                string   `json:"date,omitempty"`
	Link                string   `json:"link,omitempty"`
	Tags                []string `json:"tags,omitempty"`
	Ord                 int      `json:"order"`
}

// BlogPost is one entry in the blog list. Excerpt may contain Markdown.
type BlogPost struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Image   string `json:"image,omitempty"`
	Date    string `json:"date,omitempty"`
	Link    string `json:"link,omitempty"`
	Ord     int    `json:"order"`
}

// GalleryItem is one entry in the gallery list.
type GalleryItem struct {
	ID      string `json:"id"`
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
	Ord     int    `json:"order"`
}

// Experience is one entry in the about section's work history.
type Experience struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	Company     string `json:"company"`
	Period      string `json:"period"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Ord         int    `json:"order"`
}

// Study is one entry in the about section's education history.
type Study struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Ord         int    `json:"order"`
}

// PortfolioDocument is the singleton root record holding all site content.
// Section fields are pointers (or slices) so that a key absent from the
// incoming JSON stays distinguishable from an empty section: absent keys
// decode to nil and fail Validate.
type PortfolioDocument struct {
	Logo     string        `json:"logo,omitempty"`
	Hero     *Hero         `json:"hero"`
	About    *About        `json:"about"`
	Skills   []Skill       `json:"skills"`
	Projects []Project     `json:"projects"`
	Blog     []BlogPost    `json:"blog"`
	Gallery  []GalleryItem `json:"gallery"`
	Contact  *Contact      `json:"contact"`

	// UpdatedAt is set by the store on every save, RFC 3339.
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Validate checks that all required top-level sections are present.
// Returns a *ValidationError naming the first missing section, or nil.
func (d *PortfolioDocument) Validate() error {
	missing := ""
	switch {
	case d.Hero == nil:
		missing = "hero"
	case d.About == nil:
		missing = "about"
	case d.Skills == nil:
		missing = "skills"
	case d.Projects == nil:
		missing = "projects"
	case d.Blog == nil:
		missing = "blog"
	case d.Gallery == nil:
		missing = "gallery"
	case d.Contact == nil:
		missing = "contact"
	}
	if missing != "" {
		return &ValidationError{Section: missing}
	}
	return nil
}

// DefaultDocument returns the statically defined document served when the
// store is empty or unreadable. It always passes Validate.
func DefaultDocument() *PortfolioDocument {
	return &PortfolioDocument{
		Hero: &Hero{
			Title:       "Your Name",
			Subtitle:    "Full-Stack Web Developer",
			Description: "Crafting responsive web experiences with modern technologies",
		},
		About: &About{
			Title:       "About Me",
			Description: "A short introduction goes here.",
			Experiences: []Experience{},
			Studies:     []Study{},
		},
		Skills: []Skill{
			{ID: "1", Name: "Go", Description: "Backend services and tooling", Ord: 0},
			{ID: "2", Name: "JavaScript", Description: "Modern frontend development", Ord: 1},
		},
		Projects: []Project{
			{
				ID:          "1",
				Title:       "Sample Project",
				Description: "Project description here",
				Date:        "2024-01-15",
				Tags:        []string{"Go", "SQLite"},
				Ord:         0,
			},
		},
		Blog:    []BlogPost{},
		Gallery: []GalleryItem{},
		Contact: &Contact{},
	}
}
