package notes

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/list"

	"github.com/Paintersrp/notepy/internal/model"
)

type ListItem struct {
	note *model.Note
}

func (i ListItem) Title() string {
	return i.note.Name()
}

func (i ListItem) Description() string {
	tags := i.note.Tags()
	if len(tags) == 0 {
		return "No tags"
	}
	return "#" + strings.Join(tags, " #")
}

func (i ListItem) FilterValue() string {
	return i.note.Name()
}

func (i ListItem) Note() *model.Note {
	return i.note
}

func toListItems(notes []*model.Note) []list.Item {
	items := make([]list.Item, len(notes))
	for idx, n := range notes {
		items[idx] = ListItem{note: n}
	}
	return items
}

// parseFilter splits filter input into free text and tags. Words starting
// with '#' are tags; everything else is matched against names and contents.
func parseFilter(input string) (string, []string) {
	var (
		words []string
		tags  []string
	)
	for _, field := range strings.Fields(input) {
		if tag, ok := strings.CutPrefix(field, "#"); ok {
			if tag != "" {
				tags = append(tags, tag)
			}
			continue
		}
		words = append(words, field)
	}
	return strings.Join(words, " "), tags
}

func splitTags(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
