package pdf

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// User-facing validation messages
const (
	MsgEmptyInput      = "Please enter the pages you want to extract."
	MsgInvalidChars    = "Invalid format. Use only numbers, commas, and hyphens (e.g., 1, 3-5, 10)."
	MsgExtraPunct      = "Invalid format. Check your input for extra commas or hyphens."
	MsgInvalidFormat   = "Invalid format. Use formats like: 1, 3-5, 10"
	MsgNoPageNumbers   = "Please enter at least one page number."
	msgPageOutOfRange  = "Page %s is out of range. This document has %s."
	msgPagesOutOfRange = "Pages %s are out of range. This document has %s."
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// PageSelection is a strictly ascending list of unique 1-based page numbers.
type PageSelection []int

// String re-serializes the selection in canonical form, e.g. "1,2,3".
func (s PageSelection) String() string {
	return strings.Join(s.Strings(), ",")
}

// Strings returns the page numbers formatted individually, the form pdfcpu
// page selections take.
func (s PageSelection) Strings() []string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = strconv.Itoa(p)
	}
	return parts
}

// pageSpan is an inclusive run of page numbers
type pageSpan struct {
	first, last int
}

// ParsePageRange parses a page specification such as "1, 3-5, 10" into a sorted,
// deduplicated selection. Overlapping ranges are unioned. The boolean is false
// when any token is malformed, a range runs backwards, or the selection would
// hold more than MaxSelectionSize pages.
func ParsePageRange(text string) (PageSelection, bool) {
	spans, ok := parseSpans(text)
	if !ok {
		return nil, false
	}

	n := 0
	for _, s := range spans {
		if s.last-s.first >= MaxSelectionSize-n {
			return nil, false
		}
		n += s.last - s.first + 1
	}
	return expand(spans, n), true
}

// parseSpans returns the ranges named by text, sorted and with overlapping or
// adjacent ranges joined.
func parseSpans(text string) ([]pageSpan, bool) {
	var spans []pageSpan

	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)

		if strings.Contains(token, "-") {
			bounds := strings.Split(token, "-")
			if len(bounds) != 2 {
				return nil, false
			}
			start, ok := parsePageNumber(bounds[0])
			if !ok {
				return nil, false
			}
			end, ok := parsePageNumber(bounds[1])
			if !ok {
				return nil, false
			}
			if start > end {
				return nil, false
			}
			spans = append(spans, pageSpan{start, end})
			continue
		}

		page, ok := parsePageNumber(token)
		if !ok {
			return nil, false
		}
		spans = append(spans, pageSpan{page, page})
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].first < spans[j].first })

	joined := spans[:0]
	for _, s := range spans {
		if n := len(joined); n > 0 && s.first-1 <= joined[n-1].last {
			if s.last > joined[n-1].last {
				joined[n-1].last = s.last
			}
			continue
		}
		joined = append(joined, s)
	}
	return joined, true
}

func parsePageNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !digitsOnly.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// expand lists every page of spans; size is their total length
func expand(spans []pageSpan, size int) PageSelection {
	selection := make(PageSelection, 0, size)
	for _, s := range spans {
		for page := s.first; page <= s.last; page++ {
			selection = append(selection, page)
			if page == s.last {
				break
			}
		}
	}
	return selection
}

// ValidatePageRange checks a page specification against a document's page
// count. It returns nil when the text is acceptable, otherwise a
// *ValidationError carrying the message to show.
func ValidatePageRange(text string, totalPages int) error {
	_, err := SelectPages(text, totalPages)
	return err
}

// SelectPages validates text against totalPages and returns the resulting
// selection.
func SelectPages(text string, totalPages int) (PageSelection, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ValidationError{Message: MsgEmptyInput}
	}

	if strings.IndexFunc(text, disallowed) >= 0 {
		return nil, &ValidationError{Message: MsgInvalidChars}
	}

	// whitespace between punctuation does not separate it
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, trimmed)
	if strings.Contains(compact, "--") || strings.Contains(compact, ",,") ||
		strings.HasPrefix(compact, ",") || strings.HasSuffix(compact, ",") ||
		strings.HasPrefix(compact, "-") || strings.HasSuffix(compact, "-") {
		return nil, &ValidationError{Message: MsgExtraPunct}
	}

	spans, ok := parseSpans(trimmed)
	if !ok {
		return nil, &ValidationError{Message: MsgInvalidFormat}
	}
	if len(spans) == 0 {
		return nil, &ValidationError{Message: MsgNoPageNumbers}
	}

	if msg, bad := outOfRange(spans, totalPages); bad {
		return nil, &ValidationError{Message: msg}
	}

	size := 0
	for _, s := range spans {
		size += s.last - s.first + 1
	}
	return expand(spans, size), nil
}

// disallowed reports runes outside digits, commas, hyphens and whitespace.
// Whitespace is whatever strings.TrimSpace strips.
func disallowed(r rune) bool {
	return !(r >= '0' && r <= '9' || r == ',' || r == '-' || unicode.IsSpace(r))
}

// outOfRange builds the message naming the pages of spans outside
// 1..totalPages, working from the span bounds so huge ranges are never
// expanded.
func outOfRange(spans []pageSpan, totalPages int) (string, bool) {
	var listed []string
	var count uint64

	add := func(lo, hi int) {
		if lo > hi {
			return
		}
		count += uint64(hi-lo) + 1
		for page := lo; len(listed) < MaxListedPages; page++ {
			listed = append(listed, strconv.Itoa(page))
			if page == hi {
				break
			}
		}
	}

	for _, s := range spans {
		add(s.first, min(s.last, 0))
		add(max(s.first, totalPages+1), s.last)
	}
	if count == 0 {
		return "", false
	}

	total := pluralPages(totalPages)
	if count == 1 {
		return fmt.Sprintf(msgPageOutOfRange, listed[0], total), true
	}
	pages := strings.Join(listed, ", ")
	if rest := count - uint64(len(listed)); rest > 0 {
		pages += fmt.Sprintf(" and %d more", rest)
	}
	return fmt.Sprintf(msgPagesOutOfRange, pages, total), true
}

func pluralPages(n int) string {
	if n == 1 {
		return "1 page"
	}
	return fmt.Sprintf("%d pages", n)
}
