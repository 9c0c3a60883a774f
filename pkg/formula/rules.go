package formula

import (
	"strings"
	"unicode"
)

// maxDescLength is the overall desc budget enforced by brew audit
const maxDescLength = 80

// descArticles are leading words that brew audit rejects in a desc
var descArticles = map[string]bool{"a": true, "the": true}

// isClassDelimiter reports whether r separates words in a repository name
func isClassDelimiter(r rune) bool {
	return r == '-' || r == '_' || r == '.' || r == ' '
}

// ClassName derives the Ruby class name from a repository name by
// title-casing word boundaries and removing the delimiters, e.g.
// "my-cool_app" becomes "MyCoolApp" and "my_app-v2" becomes "MyAppV2".
func ClassName(repo string) string {
	var b strings.Builder
	b.Grow(len(repo))

	startOfWord := true
	for _, r := range repo {
		if isClassDelimiter(r) {
			startOfWord = true
			continue
		}
		if unicode.IsLetter(r) {
			if startOfWord {
				b.WriteRune(unicode.ToUpper(r))
			} else {
				b.WriteRune(unicode.ToLower(r))
			}
			startOfWord = false
		} else {
			// Digits pass through and start a new word, so "v2x" keeps
			// the audit-style "V2X" shape
			b.WriteRune(r)
			startOfWord = true
		}
	}

	return b.String()
}

// capitalize uppercases the first letter and lowercases the rest
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	out := make([]rune, len(runes))
	out[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		out[i] = unicode.ToLower(runes[i])
	}
	return string(out)
}

// descBudget returns how many characters of the source description may
// survive: the fixed 80-character desc budget minus the repository name
// length, plus a two character buffer.
func descBudget(repo string) int {
	return maxDescLength - len(repo) + 2
}

// FormatDescription shapes a repository description into a desc value
// that passes brew audit: truncated to the budget for repo, stripped of
// "." and "!", trimmed, capitalized, and with any leading article
// ("a"/"the") removed.
func FormatDescription(desc, repo string) string {
	budget := descBudget(repo)
	runes := []rune(desc)
	if budget > 0 && len(runes) > budget {
		desc = string(runes[:budget])
	}

	desc = strings.Map(func(r rune) rune {
		if r == '.' || r == '!' {
			return -1
		}
		return r
	}, desc)
	desc = capitalize(strings.TrimSpace(desc))

	word, rest, found := strings.Cut(desc, " ")
	if found && descArticles[strings.ToLower(word)] {
		desc = capitalize(strings.TrimSpace(rest))
	}

	return desc
}

// Homepage returns the canonical homepage for a hosted repository
func Homepage(owner, repo string) string {
	return "https://github.com/" + owner + "/" + repo
}
