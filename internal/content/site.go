// Package content holds the static copy rendered on the landing page and
// served at /api/site.
package content

type Hero struct {
	Name     string   `json:"name"`
	Headline string   `json:"headline"`
	Taglines []string `json:"taglines"` // cycled by the typewriter intro
	CTA      string   `json:"cta"`
}

type SkillGroup struct {
	Title  string   `json:"title"`
	Skills []string `json:"skills"`
}

type Project struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	URL         string   `json:"url,omitempty"`
}

type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Site struct {
	Hero     Hero         `json:"hero"`
	About    string       `json:"about"`
	Skills   []SkillGroup `json:"skills"`
	Projects []Project    `json:"projects"`
	Services []Service    `json:"services"`
}

// Categories lists project categories in first-seen order, for the gallery tabs.
func (s Site) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range s.Projects {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// ServiceNames is the option list for the booking form.
func (s Site) ServiceNames() []string {
	out := make([]string, 0, len(s.Services))
	for _, sv := range s.Services {
		out = append(out, sv.Title)
	}
	return out
}

func Default() Site {
	return Site{
		Hero: Hero{
			Name:     "Alex Rivera",
			Headline: "Full-stack developer building fast, accessible web products.",
			Taglines: []string{"Web applications", "APIs and integrations", "Design systems"},
			CTA:      "Book a consultation",
		},
		About: `I build software that is useful first and clever second. Most projects start with a
simple idea and turn into a chance to learn something new, whether that is a different language,
a new tool, or a tricky problem worth solving properly.`,
		Skills: []SkillGroup{
			{Title: "Frontend", Skills: []string{"TypeScript", "React", "Tailwind CSS", "HTMX"}},
			{Title: "Backend", Skills: []string{"Go", "PostgreSQL", "MySQL", "Redis"}},
			{Title: "Tooling", Skills: []string{"Docker", "GitHub Actions", "Prometheus"}},
		},
		Projects: []Project{
			{
				Title:       "Terminal Mail",
				Category:    "Tools",
				Description: "A terminal email client with fuzzy search over mailboxes.",
				Tech:        []string{"Go", "IMAP"},
			},
			{
				Title:       "Game Recommender",
				Category:    "Web",
				Description: "Content-based game recommendations with TF-IDF and cosine similarity.",
				Tech:        []string{"Python", "Flask"},
			},
			{
				Title:       "Storefront API",
				Category:    "Web",
				Description: "Catalog and checkout API for a small retailer.",
				Tech:        []string{"Go", "MySQL", "Redis"},
			},
			{
				Title:       "Brand Refresh",
				Category:    "Design",
				Description: "Design system and component library for a consulting firm.",
				Tech:        []string{"Figma", "Storybook"},
			},
		},
		Services: []Service{
			{Title: "Web development", Description: "Marketing sites and web applications, from design to deploy."},
			{Title: "API integration", Description: "Connecting your product to payment, email, and CRM providers."},
			{Title: "Consulting", Description: "Architecture reviews and hands-on help for your team."},
		},
	}
}
