package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultFallbackYear is used when the input carries no year at all.
const DefaultFallbackYear = "2024"

// ParsedDateTime is the result of resolving a free-text date/time fragment.
// Month and day come from the input; year, hour and minute fall back to
// defaults; second is always "00" (sub-minute precision is not supported).
type ParsedDateTime struct {
	Year   string // 4 digits
	Month  string // 2 digits
	Day    string // 2 digits
	Hour   int    // 0..23
	Minute string // 2 digits
	Second string // always "00"
}

// Canonical renders the timestamp in the exact-match key format used by the
// prediction datasets.
func (p ParsedDateTime) Canonical() string {
	return fmt.Sprintf("%s-%s-%s %02d:%s:%s", p.Year, p.Month, p.Day, p.Hour, p.Minute, p.Second)
}

// Year patterns, tried in order; the first that matches wins.
// 四位年份+年, 两位年份+年 (prefixed with "20"), or four digits followed by a
// date separator.
var yearPatterns = []struct {
	re     *regexp.Regexp
	prefix string
}{
	{regexp.MustCompile(`(\d{4})年`), ""},
	{regexp.MustCompile(`20(\d{2})年`), "20"},
	{regexp.MustCompile(`(\d{4})[.\-]`), ""},
}

// Month/day: 1-2 digits, a month marker or date separator, 1-2 digits, and an
// optional day marker. The leading boundary keeps a longer run of digits (such
// as the year in a canonical timestamp) from bleeding into the month field, so
// re-parsing a canonical rendering yields the same fields.
var dateRe = regexp.MustCompile(`(?:^|[^0-9])(\d{1,2})[月.\-](\d{1,2})日?`)

// Clock time: CJK notation first, colon notation second.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})点(\d{1,2})分?`),
	regexp.MustCompile(`(\d{1,2}):(\d{1,2})`),
}

// DateTimeResolver reconciles partially-specified, mixed-notation date/time
// expressions into one canonical value. Each field is extracted from the whole
// input independently; fields never consume each other's matches. All values
// are naive local wall-clock text, with no timezone awareness.
type DateTimeResolver struct {
	// FallbackYear substitutes for an absent year. Empty means
	// DefaultFallbackYear.
	FallbackYear string
}

// Resolve parses text into a ParsedDateTime. The second return value is false
// when no month/day pair could be extracted; year, hour and minute defaults
// never block resolution on their own.
func (r DateTimeResolver) Resolve(text string) (ParsedDateTime, bool) {
	parsed := ParsedDateTime{
		Minute: "00",
		Second: "00",
	}

	parsed.Year = r.FallbackYear
	if parsed.Year == "" {
		parsed.Year = DefaultFallbackYear
	}
	for _, p := range yearPatterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			parsed.Year = p.prefix + m[1]
			break
		}
	}

	dm := dateRe.FindStringSubmatch(text)
	if dm == nil {
		return ParsedDateTime{}, false
	}
	parsed.Month = pad2(dm[1])
	parsed.Day = pad2(dm[2])

	// 下午 forces PM, 上午 forces AM. Both appearing at once is malformed
	// input; the later check wins and nothing panics.
	pm := false
	if strings.Contains(text, "下午") {
		pm = true
	}
	if strings.Contains(text, "上午") {
		pm = false
	}

	for _, re := range timePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			hour, _ := strconv.Atoi(m[1])
			if pm && hour < 12 {
				hour += 12
			}
			parsed.Hour = hour
			parsed.Minute = pad2(m[2])
			break
		}
	}

	return parsed, true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
