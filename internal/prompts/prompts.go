package prompts

import (
	"fmt"
	"strings"

	"github.com/pageza/sousie/backend/internal/menu"
)

// Template names a prompt family. Each family asks the model for one payload
// layout, so each carries the delimiters its replies are extracted with.
type Template string

const (
	// TemplateChat is free conversation; menus come back as an array of
	// {menu, main, side} entries.
	TemplateChat Template = "chat"
	// TemplateSurprise asks for four themed menus in the same array layout.
	TemplateSurprise Template = "surprise"
	// TemplateGenerate asks for four mains and four sides as a
	// {mains, sides} object.
	TemplateGenerate Template = "generate"
	// TemplateQuick asks for one main and two sides.
	TemplateQuick Template = "quick"
)

// ParseTemplate validates a template name. Empty means TemplateChat.
func ParseTemplate(s string) (Template, error) {
	switch t := Template(strings.TrimSpace(s)); t {
	case "":
		return TemplateChat, nil
	case TemplateChat, TemplateSurprise, TemplateGenerate, TemplateQuick:
		return t, nil
	default:
		return "", fmt.Errorf("unknown prompt template %q", s)
	}
}

// Delimiters returns the extraction delimiters for replies to t.
func (t Template) Delimiters() menu.Delimiters {
	switch t {
	case TemplateGenerate, TemplateQuick:
		return menu.ObjectDelimiters
	default:
		return menu.ArrayDelimiters
	}
}

// Greeting is the assistant's opening line for a new conversation.
const Greeting = "👋 Hi, I'm Sousie! What ingredients do you have or what do you feel like cooking?"

// ChatSystem is the system prompt for conversational turns.
func ChatSystem() string {
	return chatSystem
}

const chatSystem = `You are Sousie, a friendly AI kitchen pal. Chat naturally about cooking.
Whenever you suggest menus, include them as a JSON array in your reply, one entry per menu:

[
  {
    "menu": "Fun menu name",
    "main": {"dish": "...", "ingredients": {"ingredient": "amount"}, "steps": ["...", "..."]},
    "side": {"dish": "...", "ingredients": {"ingredient": "amount"}, "steps": ["...", "..."]}
  }
]

Use straight double quotes and no trailing commas.`

// Surprise is the user turn appended by the "surprise me" action.
func Surprise() string {
	return surprise
}

const surprise = `Surprise me with 4 diverse and exciting menus with fun names, a main dish and side dish, with ingredients and steps in a fun narrative tone like "Sunset in a Bowl".`

// GenerateMenu builds the four-mains, four-sides prompt for the given
// ingredients.
func GenerateMenu(ingredients string) string {
	return fmt.Sprintf(generateMenu, strings.TrimSpace(ingredients))
}

const generateMenu = `You are a professional AI chef assistant. Generate a full menu using the following ingredients: %s

Return exactly:
- 4 main dishes
- 4 side dishes

Each dish must include:
- name
- short description
- ingredients (with both metric and US units)
- detailed step-by-step preparation instructions (5-8 steps as an array of strings)

Return ONLY valid JSON. Do NOT include any explanation or extra text. Format:

{
  "mains": [
    {
      "name": "...",
      "description": "...",
      "ingredients": [
        { "item": "chicken breast", "metric": "200g", "us": "7oz" }
      ],
      "steps": [
        "Step 1: ...",
        "Step 2: ..."
      ]
    }
  ],
  "sides": [ ... ]
}`

// Quick builds the short one-main, two-sides prompt.
func Quick(ingredients string) string {
	return fmt.Sprintf(quick, strings.TrimSpace(ingredients))
}

const quick = `I have the following ingredients: %s. Suggest a menu with 1 main dish and 2 side dishes.
Answer as JSON: {"menu": "title", "main": [{"title": "...", "description": "...", "ingredients": [{"section": "...", "items": ["..."]}], "steps": ["..."]}], "side": [...]}`

// WithCuisine steers a menu prompt toward a cuisine. An empty cuisine leaves
// the prompt unchanged.
func WithCuisine(prompt, cuisine string) string {
	cuisine = strings.TrimSpace(cuisine)
	if cuisine == "" {
		return prompt
	}
	return prompt + "\n\nAll dishes should belong to " + cuisine + " cuisine."
}
