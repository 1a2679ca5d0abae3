package content

import (
	"encoding/json"
	"strings"
)

// Normalize turns a raw site_content document into a fully-populated
// SiteContent. The input may be nil, partially shaped or wrong-typed at
// any depth; every localized field falls back per locale to the built-in
// defaults, so no reader ever has to re-validate. Total over all inputs,
// never panics.
func Normalize(raw map[string]any) SiteContent {
	def := DefaultContent()

	hero := section(raw, "hero")
	about := section(raw, "about")
	contact := section(raw, "contact")

	return SiteContent{
		Hero: HeroSection{
			Role:     mergeLang(def.Hero.Role, hero["role"]),
			Title:    mergeLang(def.Hero.Title, hero["title"]),
			Subtitle: mergeLang(def.Hero.Subtitle, hero["subtitle"]),
			CTA:      mergeLang(def.Hero.CTA, hero["cta"]),
		},
		About: AboutSection{
			Title:        mergeLang(def.About.Title, about["title"]),
			P1:           mergeLang(def.About.P1, about["p1"]),
			P2:           mergeLang(def.About.P2, about["p2"]),
			SkillsTitle:  mergeLang(def.About.SkillsTitle, about["skillsTitle"]),
			Skills:       stringList(def.About.Skills, about["skills"]),
			ProfileImage: stringOr(about["profileImage"], ""),
		},
		Contact: ContactSection{
			Title:      mergeLang(def.Contact.Title, contact["title"]),
			Email:      stringOr(contact["email"], ""),
			FooterText: mergeLang(def.Contact.FooterText, contact["footerText"]),
		},
	}
}

// Map converts content into the generic document shape used for store
// writes and cache snapshots.
func Map(c SiteContent) map[string]any {
	b, err := json.Marshal(c)
	if err != nil {
		return map[string]any{}
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return map[string]any{}
	}
	return out
}

func section(raw map[string]any, name string) map[string]any {
	if raw == nil {
		return nil
	}
	if m, ok := raw[name].(map[string]any); ok {
		return m
	}
	return nil
}

// mergeLang keeps a locale's value only when it is a string, falling back
// to the default for that locale alone. One bad locale never discards the
// other.
func mergeLang(base LocalizedText, raw any) LocalizedText {
	out := base
	m, ok := raw.(map[string]any)
	if !ok {
		return out
	}
	if v, ok := m[LocalePTBR].(string); ok {
		out.PTBR = v
	}
	if v, ok := m[LocaleEN].(string); ok {
		out.EN = v
	}
	return out
}

func stringOr(raw any, fallback string) string {
	if s, ok := raw.(string); ok {
		return s
	}
	return fallback
}

// stringList accepts only a list, trims entries and drops anything that
// is not a non-empty string.
func stringList(base []string, raw any) []string {
	items, ok := raw.([]any)
	if !ok {
		return base
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, _ := it.(string)
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
