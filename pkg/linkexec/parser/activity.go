package parser

import (
	"strings"

	"github.com/ukaji3/linkexec-go/pkg/linkexec/models"
)

// activityRule maps a label to a category when match accepts it.
type activityRule struct {
	category models.Category
	match    func(label string) bool
}

func containsAny(subs ...string) func(string) bool {
	return func(label string) bool {
		for _, s := range subs {
			if strings.Contains(label, s) {
				return true
			}
		}
		return false
	}
}

// activityRules are evaluated in order; the first match wins. Labels often
// match several rules ("Edu/Gov Video Submission"), so order is significant.
var activityRules = []activityRule{
	{models.BusinessProfiles, containsAny("profiles", "citation", "business profile")},
	{models.GuestBlogging, containsAny("article marketing")},
	{models.Web20, containsAny("web 2.0", "web 2.o", "social web")},
	{models.PRMarketing, func(l string) bool {
		return l == "pr" || containsAny("press release", "pr marketing", "pr ")(l)
	}},
	{models.DA50Plus, containsAny("high da", "da 50")},
	{models.Edu, containsAny("edu", "gov")},
	{models.ClassifiedsMarketing, containsAny("targeted", "classified")},
	{models.VideoSubmission, containsAny("video")},
	{models.Infographic, containsAny("info", "infographic")},
	{models.Listicles, containsAny("listicle")},
	{models.NicheGroupDiscussion, containsAny("niche group")},
	{models.CommunityDiscussion, containsAny("community")},
}

// NormalizeActivity classifies a free-text activity label. Unmatched labels
// come back lowercased and trimmed.
func NormalizeActivity(label string) models.Category {
	lower := strings.ToLower(strings.TrimSpace(label))
	for _, rule := range activityRules {
		if rule.match(lower) {
			return rule.category
		}
	}
	return models.Category(lower)
}

// MapActivities maps every header column other than the keyword and URL
// columns to an activity category. The label comes from the row above the
// header when that cell is non-empty, else from the header cell itself.
// Empty and purely numeric labels are skipped.
func MapActivities(grid models.Grid, layout Layout) models.ColumnMap {
	var out models.ColumnMap
	header := grid.Row(layout.HeaderRow)
	for c := range header {
		if c == layout.KeywordCol || c == layout.URLCol {
			continue
		}
		label := strings.TrimSpace(grid.Cell(layout.HeaderRow-1, c))
		if label == "" {
			label = strings.TrimSpace(header[c])
		}
		if label == "" || IsNumeric(label) {
			continue
		}
		out = append(out, models.ActivityColumn{
			Index:    c,
			Label:    label,
			Category: NormalizeActivity(label),
		})
	}
	return out
}
