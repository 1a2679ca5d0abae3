package content

// Section patches form a closed set of partial updates: one variant per
// section, one optional pointer per field. A nil pointer leaves the field
// untouched, so an edit to about.p1 can never clobber hero or contact.

// TextPatch updates one localized field, per locale. Nil keeps the
// current value for that locale.
type TextPatch struct {
	PTBR *string `json:"pt-BR"`
	EN   *string `json:"en"`
}

func (p *TextPatch) apply(t *LocalizedText) {
	if p == nil {
		return
	}
	if p.PTBR != nil {
		t.PTBR = *p.PTBR
	}
	if p.EN != nil {
		t.EN = *p.EN
	}
}

// SectionPatch is implemented by exactly HeroPatch, AboutPatch and
// ContactPatch.
type SectionPatch interface {
	Section() string
	Apply(c *SiteContent)
}

type HeroPatch struct {
	Role     *TextPatch `json:"role"`
	Title    *TextPatch `json:"title"`
	Subtitle *TextPatch `json:"subtitle"`
	CTA      *TextPatch `json:"cta"`
}

func (p HeroPatch) Section() string { return SectionHero }

func (p HeroPatch) Apply(c *SiteContent) {
	p.Role.apply(&c.Hero.Role)
	p.Title.apply(&c.Hero.Title)
	p.Subtitle.apply(&c.Hero.Subtitle)
	p.CTA.apply(&c.Hero.CTA)
}

type AboutPatch struct {
	Title        *TextPatch `json:"title"`
	P1           *TextPatch `json:"p1"`
	P2           *TextPatch `json:"p2"`
	SkillsTitle  *TextPatch `json:"skillsTitle"`
	Skills       *[]string  `json:"skills"`
	ProfileImage *string    `json:"profileImage"`
}

func (p AboutPatch) Section() string { return SectionAbout }

func (p AboutPatch) Apply(c *SiteContent) {
	p.Title.apply(&c.About.Title)
	p.P1.apply(&c.About.P1)
	p.P2.apply(&c.About.P2)
	p.SkillsTitle.apply(&c.About.SkillsTitle)
	if p.Skills != nil {
		c.About.Skills = append([]string(nil), (*p.Skills)...)
	}
	if p.ProfileImage != nil {
		c.About.ProfileImage = *p.ProfileImage
	}
}

type ContactPatch struct {
	Title      *TextPatch `json:"title"`
	Email      *string    `json:"email"`
	FooterText *TextPatch `json:"footerText"`
}

func (p ContactPatch) Section() string { return SectionContact }

func (p ContactPatch) Apply(c *SiteContent) {
	p.Title.apply(&c.Contact.Title)
	if p.Email != nil {
		c.Contact.Email = *p.Email
	}
	p.FooterText.apply(&c.Contact.FooterText)
}
