package pdf

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func TestParsePageRange(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  PageSelection
		ok    bool
	}{
		{"single", "4", PageSelection{4}, true},
		{"list", "1,3", PageSelection{1, 3}, true},
		{"range", "3-5", PageSelection{3, 4, 5}, true},
		{"mixed", "1, 3-5, 10", PageSelection{1, 3, 4, 5, 10}, true},
		{"unordered with duplicates", "3,1,3,2", PageSelection{1, 2, 3}, true},
		{"spaces around hyphen", " 2 - 4 ", PageSelection{2, 3, 4}, true},
		{"overlapping ranges union", "1-5, 3-8", PageSelection{1, 2, 3, 4, 5, 6, 7, 8}, true},
		{"degenerate range", "7-7", PageSelection{7}, true},
		{"zero is parsed", "0", PageSelection{0}, true},
		{"backwards range", "5-3", nil, false},
		{"non numeric start", "a-5", nil, false},
		{"non numeric single", "x", nil, false},
		{"signed number", "+5", nil, false},
		{"three part range", "1-2-3", nil, false},
		{"open range", "3-", nil, false},
		{"empty token", "1,,2", nil, false},
		{"empty", "", nil, false},
		{"large literal", "100001", PageSelection{100001}, true},
		{"range beyond selection size", "1-999999999", nil, false},
		{"ranges summing beyond selection size", "1-60000, 70001-130000", nil, false},
		{"overflowing literal", "99999999999999999999", nil, false},
		{"non breaking space", "1,\u00a02", PageSelection{1, 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePageRange(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParsePageRange(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if tt.ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePageRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParsePageRangeCanonicalRoundTrip(t *testing.T) {
	inputs := []string{"3,1,3,2", "10, 2-4, 3", "1-5, 3-8", "42"}

	for _, input := range inputs {
		first, ok := ParsePageRange(input)
		if !ok {
			t.Fatalf("ParsePageRange(%q) failed", input)
		}
		second, ok := ParsePageRange(first.String())
		if !ok {
			t.Fatalf("ParsePageRange(%q) failed on canonical form", first.String())
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("round trip of %q: %v != %v", input, first, second)
		}
	}
}

func TestParsePageRangeAscendingUnique(t *testing.T) {
	got, ok := ParsePageRange("9, 2-4, 4, 1, 3-6, 2")
	if !ok {
		t.Fatal("expected valid parse")
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("selection %v is not strictly ascending at %d", got, i)
		}
	}
}

func TestValidatePageRange(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		totalPages int
		want       string
	}{
		{"empty", "", 10, MsgEmptyInput},
		{"empty with zero pages", "", 0, MsgEmptyInput},
		{"whitespace only", "   \t", 3, MsgEmptyInput},
		{"letters", "1, a", 10, MsgInvalidChars},
		{"semicolon", "1;2", 10, MsgInvalidChars},
		{"double hyphen", "1--5", 10, MsgExtraPunct},
		{"double comma", "1,,5", 10, MsgExtraPunct},
		{"spaced double comma", "1, ,5", 10, MsgExtraPunct},
		{"leading comma", ",1", 10, MsgExtraPunct},
		{"trailing comma", "1, 2,", 10, MsgExtraPunct},
		{"leading hyphen", "-3", 10, MsgExtraPunct},
		{"trailing hyphen", " 3- ", 10, MsgExtraPunct},
		{"backwards range", "5-3", 10, MsgInvalidFormat},
		{"three part range", "1-2-3", 10, MsgInvalidFormat},
		{"one out of range", "1-3,7", 5, "Page 7 is out of range. This document has 5 pages."},
		{"many out of range", "1-3,7,9", 5, "Pages 7, 9 are out of range. This document has 5 pages."},
		{"zero out of range", "0", 5, "Page 0 is out of range. This document has 5 pages."},
		{"single page document", "2", 1, "Page 2 is out of range. This document has 1 page."},
		{"large single literal", "100001", 5, "Page 100001 is out of range. This document has 5 pages."},
		{"large range", "4-999999999", 5, "Pages " + joinPages(6, 25) + " and 999999974 more are out of range. This document has 5 pages."},
		{"twenty out of range", "1-25", 5, "Pages " + joinPages(6, 25) + " are out of range. This document has 5 pages."},
		{"zero and beyond", "0-7", 5, "Pages 0, 6, 7 are out of range. This document has 5 pages."},
		{"overflowing literal", "99999999999999999999", 5, MsgInvalidFormat},
		{"non breaking space only", "\u00a0", 5, MsgEmptyInput},
		{"non breaking space between commas", "1,\u00a0,2", 5, MsgExtraPunct},
		{"valid", "1, 3-5", 5, ""},
		{"valid with non breaking space", "1,\u00a02", 2, ""},
		{"valid with duplicates", "2,2,2", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePageRange(tt.input, tt.totalPages)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("ValidatePageRange(%q, %d) = %v, want nil", tt.input, tt.totalPages, err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("ValidatePageRange(%q, %d) = %v, want *ValidationError", tt.input, tt.totalPages, err)
			}
			if verr.Message != tt.want {
				t.Errorf("message = %q, want %q", verr.Message, tt.want)
			}
		})
	}
}

// joinPages lists first..last the way validation messages do
func joinPages(first, last int) string {
	var parts []string
	for p := first; p <= last; p++ {
		parts = append(parts, strconv.Itoa(p))
	}
	return strings.Join(parts, ", ")
}

func TestSelectPages(t *testing.T) {
	got, err := SelectPages("7, 2, 5-7", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := PageSelection{2, 5, 6, 7}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SelectPages = %v, want %v", got, want)
	}

	got, err = SelectPages("100000, 99999-100000", 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, PageSelection{99999, 100000}) {
		t.Errorf("SelectPages = %v", got)
	}
}

func TestPageSelectionStrings(t *testing.T) {
	sel := PageSelection{1, 4, 12}
	if got := sel.String(); got != "1,4,12" {
		t.Errorf("String() = %q", got)
	}
	if got := sel.Strings(); !reflect.DeepEqual(got, []string{"1", "4", "12"}) {
		t.Errorf("Strings() = %v", got)
	}
}
