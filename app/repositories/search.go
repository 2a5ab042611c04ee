package repositories

import "strings"

// likeEscape is the ESCAPE character used by every search filter. Backslash
// is avoided because MySQL and Postgres disagree on quoting it.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// containsPattern turns free text into a lowercase LIKE pattern matching it
// anywhere, with % and _ taken literally.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
