package models

// HomeConfigID is the key of the single home_config document.
const HomeConfigID = "global"

type HeroSlide struct {
	Title    string `json:"title" bson:"title"`
	Subtitle string `json:"subtitle" bson:"subtitle"`
	ImageURL string `json:"imageUrl" bson:"imageUrl"`
}

type TrustBadge struct {
	Icon  string `json:"icon" bson:"icon"`
	Label string `json:"label" bson:"label"`
}

type Step struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

type Review struct {
	Author  string `json:"author" bson:"author"`
	Rating  int    `json:"rating" bson:"rating"`
	Content string `json:"content" bson:"content"`
}

// HomeConfig is the editable storefront content. Purely presentational; a
// hardcoded default is served when the document is absent or empty.
type HomeConfig struct {
	ID          string       `json:"id" bson:"id"`
	HeroSlides  []HeroSlide  `json:"heroSlides" bson:"heroSlides"`
	Marquee     []string     `json:"marquee" bson:"marquee"`
	TrustBadges []TrustBadge `json:"trustBadges" bson:"trustBadges"`
	Steps       []Step       `json:"steps" bson:"steps"`
	Reviews     []Review     `json:"reviews" bson:"reviews"`
	CTAText     string       `json:"ctaText" bson:"ctaText"`
}

// Empty reports whether the config carries no content at all.
func (h *HomeConfig) Empty() bool {
	return len(h.HeroSlides) == 0 && len(h.Marquee) == 0 && len(h.TrustBadges) == 0 &&
		len(h.Steps) == 0 && len(h.Reviews) == 0 && h.CTAText == ""
}
