package guard

import (
	"regexp"
	"strings"
)

// internal verification tokens the model sometimes echoes, e.g. "[VERIFIED]",
// "[LANG CHECK: fr ✓]", "[Verification complete]".
var markerRe = regexp.MustCompile(`(?i)\[\s*(verif(y|ied|ication)|check(ed)?|lang(uage)?[\s_-]*(check|lock)|self[\s_-]*check)\b[^\]\n]*\]`)

var (
	spaceRunRe = regexp.MustCompile(`[ \t]{2,}`)
	blankRunRe = regexp.MustCompile(`\n{3,}`)
)

// StripMarkers removes internal verification markers and tidies the
// whitespace they leave behind.
func StripMarkers(text string) string {
	if !markerRe.MatchString(text) {
		return strings.TrimSpace(text)
	}
	out := markerRe.ReplaceAllString(text, "")
	out = spaceRunRe.ReplaceAllString(out, " ")
	out = blankRunRe.ReplaceAllString(out, "\n\n")

	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
