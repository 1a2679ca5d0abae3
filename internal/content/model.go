package content

// Locale keys used across the whole site. Every localized field carries
// both, always as strings.
const (
	LocalePTBR = "pt-BR"
	LocaleEN   = "en"
)

// LocalizedText holds the two per-locale variants of one piece of copy.
type LocalizedText struct {
	PTBR string `json:"pt-BR" firestore:"pt-BR"`
	EN   string `json:"en" firestore:"en"`
}

// Project is one portfolio entry. The numeric ID is externally visible
// (it appears in URLs) and is assigned by the sequence allocator.
type Project struct {
	ID              int64         `json:"id" firestore:"id"`
	Title           string        `json:"title" firestore:"title"`
	Category        LocalizedText `json:"category" firestore:"category"`
	Year            string        `json:"year" firestore:"year"`
	Description     LocalizedText `json:"description" firestore:"description"`
	FullDescription LocalizedText `json:"fullDescription" firestore:"fullDescription"`
	Image           string        `json:"image" firestore:"image"`
	Gallery         []string      `json:"gallery,omitempty" firestore:"gallery,omitempty"`
	Link            string        `json:"link" firestore:"link"`
	Client          string        `json:"client,omitempty" firestore:"client,omitempty"`
	Stack           []string      `json:"stack,omitempty" firestore:"stack,omitempty"`
}

// Service is one offered-service entry.
type Service struct {
	ID          int64         `json:"id" firestore:"id"`
	Title       LocalizedText `json:"title" firestore:"title"`
	Description LocalizedText `json:"description" firestore:"description"`
}

// HeroSection is the landing block of the page.
type HeroSection struct {
	Role     LocalizedText `json:"role" firestore:"role"`
	Title    LocalizedText `json:"title" firestore:"title"`
	Subtitle LocalizedText `json:"subtitle" firestore:"subtitle"`
	CTA      LocalizedText `json:"cta" firestore:"cta"`
}

// AboutSection holds the bio paragraphs, skill labels and profile image.
type AboutSection struct {
	Title        LocalizedText `json:"title" firestore:"title"`
	P1           LocalizedText `json:"p1" firestore:"p1"`
	P2           LocalizedText `json:"p2" firestore:"p2"`
	SkillsTitle  LocalizedText `json:"skillsTitle" firestore:"skillsTitle"`
	Skills       []string      `json:"skills" firestore:"skills"`
	ProfileImage string        `json:"profileImage" firestore:"profileImage"`
}

// ContactSection is the footer block.
type ContactSection struct {
	Title      LocalizedText `json:"title" firestore:"title"`
	Email      string        `json:"email" firestore:"email"`
	FooterText LocalizedText `json:"footerText" firestore:"footerText"`
}

// SiteContent is the singleton editable copy of the whole page, stored as
// one document (site_content/main).
type SiteContent struct {
	Hero    HeroSection    `json:"hero" firestore:"hero"`
	About   AboutSection   `json:"about" firestore:"about"`
	Contact ContactSection `json:"contact" firestore:"contact"`
}

// Section names accepted by the content update path.
const (
	SectionHero    = "hero"
	SectionAbout   = "about"
	SectionContact = "contact"
)
