package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("nil input yields fully-populated defaults", func(t *testing.T) {
		got := Normalize(nil)

		assert.Equal(t, DefaultContent().Hero, got.Hero)
		assert.Equal(t, DefaultContent().Contact, got.Contact)
		assert.NotEmpty(t, got.About.Skills)
	})

	t.Run("every localized field has both locales for malformed inputs", func(t *testing.T) {
		inputs := []map[string]any{
			{},
			{"hero": "not a map"},
			{"hero": map[string]any{"role": 42}},
			{"about": map[string]any{"p1": map[string]any{"pt-BR": true}}},
			{"contact": map[string]any{"title": map[string]any{"en": nil}}},
			{"hero": nil, "about": nil, "contact": nil},
		}

		for _, in := range inputs {
			got := Normalize(in)
			for _, lt := range []LocalizedText{
				got.Hero.Role, got.Hero.Title, got.Hero.Subtitle, got.Hero.CTA,
				got.About.Title, got.About.P1, got.About.P2, got.About.SkillsTitle,
				got.Contact.Title, got.Contact.FooterText,
			} {
				assert.NotEmpty(t, lt.PTBR)
				assert.NotEmpty(t, lt.EN)
			}
		}
	})

	t.Run("one bad locale never discards the other", func(t *testing.T) {
		got := Normalize(map[string]any{
			"hero": map[string]any{
				"title": map[string]any{"pt-BR": "Título novo", "en": 99},
			},
		})

		assert.Equal(t, "Título novo", got.Hero.Title.PTBR)
		assert.Equal(t, DefaultContent().Hero.Title.EN, got.Hero.Title.EN)
	})

	t.Run("scalar fields fall back on wrong types", func(t *testing.T) {
		got := Normalize(map[string]any{
			"about":   map[string]any{"profileImage": 7, "skills": "nope"},
			"contact": map[string]any{"email": []any{"x"}},
		})

		assert.Equal(t, "", got.About.ProfileImage)
		assert.Equal(t, "", got.Contact.Email)
		assert.Equal(t, DefaultContent().About.Skills, got.About.Skills)
	})

	t.Run("skills list drops blanks and non-strings", func(t *testing.T) {
		got := Normalize(map[string]any{
			"about": map[string]any{
				"skills": []any{" Go ", "", 3, "Firestore"},
			},
		})

		assert.Equal(t, []string{"Go", "Firestore"}, got.About.Skills)
	})

	t.Run("normalization is idempotent", func(t *testing.T) {
		inputs := []map[string]any{
			nil,
			{},
			{"hero": map[string]any{"cta": map[string]any{"en": "Hire me"}}},
			{"about": map[string]any{"skills": []any{"Go", " ", "Redis"}, "profileImage": "/p.jpg"}},
			{"contact": map[string]any{"email": "x@y.z", "footerText": 12}},
		}

		for _, in := range inputs {
			once := Normalize(in)
			twice := Normalize(Map(once))
			require.Equal(t, once, twice)
		}
	})
}

func TestSectionPatches(t *testing.T) {
	t.Run("about patch touches only the named fields", func(t *testing.T) {
		c := DefaultContent()
		novo := "novo texto"

		AboutPatch{P1: &TextPatch{PTBR: &novo}}.Apply(&c)

		assert.Equal(t, "novo texto", c.About.P1.PTBR)
		assert.Equal(t, DefaultContent().About.P1.EN, c.About.P1.EN)
		assert.Equal(t, DefaultContent().About.Title, c.About.Title)
		assert.Equal(t, DefaultContent().Hero, c.Hero)
		assert.Equal(t, DefaultContent().Contact, c.Contact)
	})

	t.Run("contact patch replaces scalars when set", func(t *testing.T) {
		c := DefaultContent()
		email := "novo@mauro-rocha.com.br"

		ContactPatch{Email: &email}.Apply(&c)

		assert.Equal(t, email, c.Contact.Email)
		assert.Equal(t, DefaultContent().Contact.Title, c.Contact.Title)
	})

	t.Run("nil fields leave everything untouched", func(t *testing.T) {
		c := DefaultContent()
		HeroPatch{}.Apply(&c)
		assert.Equal(t, DefaultContent().Hero, c.Hero)
	})
}
