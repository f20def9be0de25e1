package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguages(t *testing.T) {
	langs := DetectLanguages(map[string]int{
		".py":  3,
		".pyi": 1,
		".go":  4,
		".png": 2, // unclassified, stays out of the total
	})

	assert.Len(t, langs, 2)
	assert.InDelta(t, 50.0, langs["Python"], 0.01)
	assert.InDelta(t, 50.0, langs["Go"], 0.01)
}

func TestDetectLanguagesRounding(t *testing.T) {
	langs := DetectLanguages(map[string]int{".py": 1, ".go": 2})

	assert.InDelta(t, 33.3, langs["Python"], 0.01)
	assert.InDelta(t, 66.7, langs["Go"], 0.01)
}

func TestDetectLanguagesNothingClassifiable(t *testing.T) {
	assert.Nil(t, DetectLanguages(nil))
	assert.Nil(t, DetectLanguages(map[string]int{".png": 5, ".zip": 2}))
}

func TestDetectLanguagesCap(t *testing.T) {
	// Twelve distinct languages, one file each.
	extensions := map[string]int{
		".py": 1, ".js": 1, ".ts": 1, ".rs": 1, ".go": 1, ".java": 1,
		".kt": 1, ".rb": 1, ".php": 1, ".swift": 1, ".c": 1, ".cpp": 1,
	}

	langs := DetectLanguages(extensions)
	assert.Len(t, langs, languageLimit)
}
