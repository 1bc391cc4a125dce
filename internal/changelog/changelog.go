package changelog

import "fmt"

// Section is a single version entry in a changelog.
type Section struct {
	// Tag is the version identifier following the level-2 heading marker.
	Tag string
	// Header is the heading line without the marker, with tokens joined by a single space.
	Header string
	// Content is every line between this heading and the next one, with trailing blank lines trimmed.
	Content string
}

func (s Section) String() string {
	return fmt.Sprintf("%s\n%s", s.Header, s.Content)
}

// Sections is an ordered list of changelog sections, in document order.
type Sections []Section

// Find looks up a section by its tag.
// If more than one section has the same tag, the first one in document order is returned.
func (s Sections) Find(tag string) (Section, bool) {
	for _, section := range s {
		if section.Tag == tag {
			return section, true
		}
	}

	return Section{}, false
}

// Tags returns the tags of all sections in document order.
func (s Sections) Tags() []string {
	tags := make([]string, len(s))
	for i, section := range s {
		tags[i] = section.Tag
	}

	return tags
}

// Latest returns the first section in document order.
func (s Sections) Latest() (Section, bool) {
	if len(s) == 0 {
		return Section{}, false
	}

	return s[0], true
}
