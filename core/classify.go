package core

import "math"

// languageLimit caps how many languages the breakdown reports.
const languageLimit = 10

// DetectLanguages converts the extension histogram into language percentages
// rounded to one decimal. Extensions with no known language stay out of the
// total, so percentages describe classified files only. Returns nil when
// nothing is classifiable.
func DetectLanguages(extensions map[string]int) map[string]float64 {
	counts := map[string]int{}
	total := 0
	for ext, n := range extensions {
		if lang, ok := langByExt[ext]; ok {
			counts[lang] += n
			total += n
		}
	}
	if total == 0 {
		return nil
	}
	langs := make(map[string]float64, min(len(counts), languageLimit))
	for lang, n := range topEntries(counts, languageLimit) {
		pct := float64(n) / float64(total) * 100
		langs[lang] = math.Round(pct*10) / 10
	}
	return langs
}
