package inline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	imagePattern = regexp.MustCompile(`!\[([^\[\]]*)\]\(([^\(\)]*)\)`)
	linkPattern  = regexp.MustCompile(`\[([^\[\]]*)\]\(([^\(\)]*)\)`)
)

var delimiters = []struct {
	delim string
	kind  Kind
}{
	{"**", Bold},
	{"_", Italic},
	{"`", Code},
}

// DelimiterError is returned when a delimiter is opened but never closed
// within a single run of plain text.
type DelimiterError struct {
	Delimiter string
	Text      string
}

func (e *DelimiterError) Error() string {
	return "invalid markdown: no closing delimiter " + e.Delimiter + " in " + quote(e.Text)
}

func quote(s string) string {
	const max = 40
	if len(s) > max {
		cut := max
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return `"` + s + `"`
}

// Resolve splits text into spans. Passes run in a fixed order and each only
// looks at spans that are still plain: bold, italic, code, images, links.
func Resolve(text string) ([]Span, error) {
	spans := []Span{{Content: text, Kind: Plain}}

	var err error
	for _, d := range delimiters {
		spans, err = SplitDelimiter(spans, d.delim, d.kind)
		if err != nil {
			return nil, err
		}
	}
	spans = SplitImages(spans)
	spans = SplitLinks(spans)
	return spans, nil
}

// SplitDelimiter splits every plain span on delim. Odd fragments take kind,
// even ones stay plain, and empty fragments are dropped.
func SplitDelimiter(spans []Span, delim string, kind Kind) ([]Span, error) {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}

		parts := strings.Split(s.Content, delim)
		if len(parts)%2 == 0 {
			return nil, &DelimiterError{Delimiter: delim, Text: s.Content}
		}

		for i, part := range parts {
			if part == "" {
				continue
			}
			k := Plain
			if i%2 == 1 {
				k = kind
			}
			out = append(out, Span{Content: part, Kind: k})
		}
	}
	return out, nil
}

// Ref is the text and target of a markdown link or image.
type Ref struct {
	Text string
	URL  string
}

type ref struct {
	Ref
	start, end int
}

func findImages(text string) []ref {
	var refs []ref
	for _, m := range imagePattern.FindAllStringSubmatchIndex(text, -1) {
		refs = append(refs, ref{
			Ref:   Ref{Text: text[m[2]:m[3]], URL: text[m[4]:m[5]]},
			start: m[0],
			end:   m[1],
		})
	}
	return refs
}

// findLinks matches [text](url) that is not the tail of an image. A bracket
// preceded by "!" is skipped and the scan resumes one byte later.
func findLinks(text string) []ref {
	var refs []ref
	for pos := 0; pos < len(text); {
		m := linkPattern.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		for i := range m {
			m[i] += pos
		}
		if m[0] > 0 && text[m[0]-1] == '!' {
			pos = m[0] + 1
			continue
		}
		refs = append(refs, ref{
			Ref:   Ref{Text: text[m[2]:m[3]], URL: text[m[4]:m[5]]},
			start: m[0],
			end:   m[1],
		})
		pos = m[1]
	}
	return refs
}

func ExtractImages(text string) []Ref {
	return publicRefs(findImages(text))
}

func ExtractLinks(text string) []Ref {
	return publicRefs(findLinks(text))
}

func publicRefs(refs []ref) []Ref {
	out := make([]Ref, len(refs))
	for i, r := range refs {
		out[i] = r.Ref
	}
	return out
}

func SplitImages(spans []Span) []Span {
	return splitRefs(spans, findImages, Image)
}

func SplitLinks(spans []Span) []Span {
	return splitRefs(spans, findLinks, Link)
}

func splitRefs(spans []Span, find func(string) []ref, kind Kind) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Kind != Plain {
			out = append(out, s)
			continue
		}

		refs := find(s.Content)
		if len(refs) == 0 {
			out = append(out, s)
			continue
		}

		last := 0
		for _, r := range refs {
			if before := s.Content[last:r.start]; before != "" {
				out = append(out, Span{Content: before, Kind: Plain})
			}
			out = append(out, Span{Content: r.Text, Kind: kind, URL: r.URL})
			last = r.end
		}
		if rest := s.Content[last:]; rest != "" {
			out = append(out, Span{Content: rest, Kind: Plain})
		}
	}
	return out
}
