// Package plan expands a located plan grid into individual link-building tasks
// and orders them for execution.
package plan

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
)

// TitleCase lowercases s and uppercases the first character of every
// space-separated word. Runs of spaces are kept as they are.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func anchor(url, text string) string {
	return fmt.Sprintf(`<a href="%s">%s</a>`, url, text)
}

// FormatDescriptionWithLink links keyword inside description. The first
// case-insensitive occurrence of keyword is wrapped in an anchor to url, with
// its original casing kept. Without an occurrence, a " | <a>Keyword</a>"
// fragment is inserted before the first semicolon, or appended when there is none.
func FormatDescriptionWithLink(description, keyword, url string) string {
	kw := strings.TrimSpace(keyword)
	url = strings.TrimSpace(url)

	if kw != "" {
		re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(kw))
		if loc := re.FindStringIndex(description); loc != nil {
			return description[:loc[0]] + anchor(url, description[loc[0]:loc[1]]) + description[loc[1]:]
		}
	}

	link := " | " + anchor(url, TitleCase(kw))
	if i := strings.Index(description, ";"); i != -1 {
		return strings.TrimSpace(description[:i]) + link + description[i:]
	}
	return description + link
}

// FormatDescriptionForCommunity wraps the title of description, the text
// before its first semicolon, in an anchor to url. A description without a
// semicolon is wrapped whole.
func FormatDescriptionForCommunity(description, url string) string {
	if description == "" {
		return ""
	}
	url = strings.TrimSpace(url)
	if i := strings.Index(description, ";"); i != -1 {
		return anchor(url, strings.TrimSpace(description[:i])) + description[i:]
	}
	return anchor(url, description)
}

// classifiedsFooter is appended to classifieds marketing descriptions.
func classifiedsFooter(keyword, url string) string {
	return "<br><br>Please visit our website: " + url + "<br><br>Keywords: " + TitleCase(keyword)
}

// RenderDescription renders the base description of a task according to its category.
func RenderDescription(category models.Category, description, keyword, url string) string {
	switch category {
	case models.GuestBlogging, models.PRMarketing, models.Web20, models.DA50Plus,
		models.Edu, models.Listicles, models.NicheGroupDiscussion:
		return FormatDescriptionWithLink(description, keyword, url)
	case models.ClassifiedsMarketing:
		return FormatDescriptionWithLink(description, keyword, url) + classifiedsFooter(keyword, url)
	case models.CommunityDiscussion:
		return FormatDescriptionForCommunity(description, url)
	default:
		return description
	}
}
