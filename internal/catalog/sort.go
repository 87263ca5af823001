package catalog

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/consumethetangible/music-2025/internal/model"
)

var leadingArticle = regexp.MustCompile(`(?i)^the\s+`)

// SortKey returns the artist name used for ordering: a leading "The " is
// dropped regardless of case and surrounding whitespace is trimmed.
func SortKey(artist string) string {
	return strings.TrimSpace(leadingArticle.ReplaceAllString(strings.TrimSpace(artist), ""))
}

// SectionReport is the outcome of the sort pass for one section.
type SectionReport struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Found   bool   `json:"found"`
	Entries int    `json:"entries"`
	Shelves int    `json:"shelves"`
	Err     error  `json:"-"`
}

// Message returns the failure message, or "" when the section was sorted.
func (r SectionReport) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

type sortable struct {
	markup string
	key    string
}

// Sort orders the entries of every section by artist and rebuilds the shelves.
//
// Each section is processed independently: a section that cannot be located
// or parsed is reported and skipped. Entries keep their markup verbatim and are
// re-chunked into shelves of the schema's capacity. Entries without an artist
// keep their relative order after all named ones. Sorting an already sorted
// document returns it unchanged.
func (e *Engine) Sort(doc string) (string, []SectionReport) {
	reports := make([]SectionReport, 0, len(e.schema.Sections))
	for _, sec := range e.schema.Sections {
		var r SectionReport
		doc, r = e.sortSection(doc, sec)
		reports = append(reports, r)
	}
	return doc, reports
}

func (e *Engine) sortSection(doc string, sec model.Section) (string, SectionReport) {
	r := SectionReport{Section: sec.Name, Key: sec.Key}
	style := e.schema.Style(sec)

	bounds, err := LocateSection(doc, sec)
	if err != nil {
		r.Err = err
		return doc, r
	}
	r.Found = true

	spans, err := FindEntries(doc, style, bounds.ContentStart, bounds.ContentEnd)
	if err != nil {
		r.Err = err
		return doc, r
	}
	r.Entries = len(spans)
	if len(spans) == 0 {
		return doc, r
	}

	items := make([]sortable, len(spans))
	for i, s := range spans {
		markup := doc[s.Start:s.End]
		items[i] = sortable{markup: markup, key: SortKey(ParseEntry(markup).Artist)}
	}

	col := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].key, items[j].key
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return col.CompareString(a, b) < 0
	})

	fragments := make([]string, len(items))
	for i, it := range items {
		fragments[i] = it.markup
	}

	capacity := e.schema.Capacity()
	r.Shelves = (len(fragments) + capacity - 1) / capacity

	content := RenderShelves(style, sec.Key, fragments, capacity)
	return doc[:bounds.ContentStart] + content + doc[bounds.ContentEnd:], r
}
