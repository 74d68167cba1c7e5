package service

import (
	"strings"
	"unicode"

	pgvector "github.com/pgvector/pgvector-go"
)

// EmbeddingDims is the width of the recipe_logs.embedding column.
const EmbeddingDims = 3

// EmbedPrompt returns a deterministic embedding of a prompt: its length in
// runes, its vowel count and its consonant count. It only has to place
// similar prompts near each other for the recipe log index.
func EmbedPrompt(text string) pgvector.Vector {
	text = strings.ToLower(strings.TrimSpace(text))
	var length, vowels, consonants float32
	for _, r := range text {
		length++
		switch {
		case strings.ContainsRune("aeiou", r):
			vowels++
		case unicode.IsLetter(r):
			consonants++
		}
	}
	return pgvector.NewVector([]float32{length, vowels, consonants})
}
