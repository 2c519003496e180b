package siteconfig

// Site describes the branding shown on every page.
type Site struct {
	SiteName     string            `yaml:"site_name" json:"site_name"`
	Description  string            `yaml:"description" json:"description"`
	ContactEmail string            `yaml:"contact_email" json:"contact_email"`
	SocialLinks  map[string]string `yaml:"social_links" json:"social_links"`
	// Extra keeps keys the hub does not interpret so templates can still use them.
	Extra map[string]any `yaml:",inline" json:"extra,omitempty"`
}

// DefaultSite is used when site.yaml is absent or unreadable.
func DefaultSite() Site {
	return Site{
		SiteName:    "Veinity",
		Description: "Latest Tech News",
		SocialLinks: map[string]string{},
		Extra:       map[string]any{},
	}
}

// Social returns the link registered for network, if any.
func (s Site) Social(network string) string {
	return s.SocialLinks[network]
}

func (s Site) withDefaults() Site {
	defaults := DefaultSite()
	if s.SiteName == "" {
		s.SiteName = defaults.SiteName
	}
	if s.Description == "" {
		s.Description = defaults.Description
	}
	if s.SocialLinks == nil {
		s.SocialLinks = map[string]string{}
	}
	if s.Extra == nil {
		s.Extra = map[string]any{}
	}
	return s
}

// Ad slot names known to the page templates.
const (
	SlotHeader    = "header"
	SlotSidebar   = "sidebar"
	SlotInContent = "in_content"
	SlotFooter    = "footer"
)

// Ads holds the ad switch and the markup for each slot.
type Ads struct {
	Enabled bool              `yaml:"enabled" json:"enabled"`
	Slots   map[string]string `yaml:"slots" json:"slots"`
}

// DefaultAds is used when ads.yaml is absent or unreadable: disabled, every
// slot empty.
func DefaultAds() Ads {
	return Ads{
		Enabled: false,
		Slots: map[string]string{
			SlotHeader:    "",
			SlotSidebar:   "",
			SlotInContent: "",
			SlotFooter:    "",
		},
	}
}

// Slot returns the markup for name, or "" when ads are disabled.
func (a Ads) Slot(name string) string {
	if !a.Enabled {
		return ""
	}
	return a.Slots[name]
}

func (a Ads) withDefaults() Ads {
	slots := DefaultAds().Slots
	for name, markup := range a.Slots {
		slots[name] = markup
	}
	a.Slots = slots
	return a
}
