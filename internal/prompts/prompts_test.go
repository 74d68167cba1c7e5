package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/sousie/backend/internal/menu"
)

func TestParseTemplate(t *testing.T) {
	t.Run("should default to chat", func(t *testing.T) {
		tpl, err := ParseTemplate("")
		require.NoError(t, err)
		assert.Equal(t, TemplateChat, tpl)
	})

	t.Run("should accept known templates", func(t *testing.T) {
		for _, name := range []string{"chat", "surprise", "generate", "quick"} {
			tpl, err := ParseTemplate(name)
			require.NoError(t, err)
			assert.Equal(t, Template(name), tpl)
		}
	})

	t.Run("should reject unknown templates", func(t *testing.T) {
		_, err := ParseTemplate("banquet")
		assert.Error(t, err)
	})
}

func TestTemplateDelimiters(t *testing.T) {
	assert.Equal(t, menu.ArrayDelimiters, TemplateChat.Delimiters())
	assert.Equal(t, menu.ArrayDelimiters, TemplateSurprise.Delimiters())
	assert.Equal(t, menu.ObjectDelimiters, TemplateGenerate.Delimiters())
	assert.Equal(t, menu.ObjectDelimiters, TemplateQuick.Delimiters())
}

func TestGenerateMenu(t *testing.T) {
	p := GenerateMenu("  chicken, rice ")
	assert.Contains(t, p, "following ingredients: chicken, rice\n")
	assert.Contains(t, p, `"mains"`)
	assert.Contains(t, p, `"metric"`)
}

func TestQuick(t *testing.T) {
	assert.Contains(t, Quick("eggs"), "I have the following ingredients: eggs.")
}

func TestWithCuisine(t *testing.T) {
	assert.Equal(t, "p", WithCuisine("p", "  "))
	assert.Equal(t, "p\n\nAll dishes should belong to Thai cuisine.", WithCuisine("p", " Thai "))
}
