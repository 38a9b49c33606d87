package domain

import "time"

// Names of the typed sections in the site content store.
const (
	SectionClinicProfile = "clinic_profile"
	SectionHome          = "home"
)

// ClinicProfile is the single record describing the clinic itself:
// contact details, address and opening hours shown across the site.
type ClinicProfile struct {
	Name           string    `json:"name"`
	Tagline        string    `json:"tagline"`
	PrimaryPhone   string    `json:"primary_phone"`
	SecondaryPhone string    `json:"secondary_phone,omitempty"`
	WhatsAppNumber string    `json:"whatsapp_number,omitempty"`
	AddressText    string    `json:"address_text"`
	HoursText      string    `json:"hours_text"`
	GoogleMapsURL  string    `json:"google_maps_url,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HomeContent drives the public landing page.
type HomeContent struct {
	Hero         HomeHero       `json:"hero"`
	HeroImageURL string         `json:"hero_image_url,omitempty"`
	HeroTag      HomeHeroTag    `json:"hero_tag"`
	HeroStats    []HomeHeroStat `json:"hero_stats,omitempty"`
	Legacy       HomeLegacy     `json:"legacy"`
	Experience   HomeExperience `json:"experience"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type HomeHero struct {
	TitleLines   []string `json:"title_lines,omitempty"`
	Subtitle     string   `json:"subtitle,omitempty"`
	CTAPrimary   string   `json:"cta_primary,omitempty"`
	CTASecondary string   `json:"cta_secondary,omitempty"`
}

type HomeHeroTag struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
}

type HomeHeroStat struct {
	Value string `json:"value,omitempty"`
	Label string `json:"label,omitempty"`
}

type HomeLegacy struct {
	TitlePrefix    string `json:"title_prefix,omitempty"`
	TitleHighlight string `json:"title_highlight,omitempty"`
	Subtitle       string `json:"subtitle,omitempty"`
}

type HomeExperience struct {
	Title  string `json:"title,omitempty"`
	Quote  string `json:"quote,omitempty"`
	Author string `json:"author,omitempty"`
}
