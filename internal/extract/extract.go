// Package extract pulls mention and hashtag tokens out of free text.
package extract

import "regexp"

var (
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
)

// Entities holds the raw tokens found in a text. Tokens keep their
// original case and duplicates are preserved in order of appearance;
// resolution against real accounts happens later.
type Entities struct {
	Mentions []string
	Trends   []string
}

// FromText scans text for @mentions and #hashtags. A nil-equivalent
// (empty) text yields empty slices.
func FromText(text string) Entities {
	return Entities{
		Mentions: capture(mentionPattern, text),
		Trends:   capture(hashtagPattern, text),
	}
}

func capture(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, m[1])
	}
	return tokens
}
