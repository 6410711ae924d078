package arg

import (
	"fmt"
	"strings"

	"github.com/Paintersrp/notepy/internal/persistence"
)

// ParseTags splits tag arguments on commas and whitespace, so that both
// `a b c` and `"a, b" c` yield three tags.
func ParseTags(args []string) ([]string, error) {
	var tags []string
	for _, a := range args {
		fields := strings.FieldsFunc(a, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
		for _, f := range fields {
			if strings.ContainsAny(f, "\x00") {
				return nil, fmt.Errorf("invalid tag %q", f)
			}
			tags = append(tags, f)
		}
	}
	return persistence.NormalizeTags(tags), nil
}
