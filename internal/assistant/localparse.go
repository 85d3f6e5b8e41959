package assistant

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendora/assistant/internal/model"
)

// ParsedTransaction is one structured candidate produced by the local parser.
type ParsedTransaction struct {
	Title        string                `json:"title"`
	Amount       decimal.Decimal       `json:"amount"`
	Type         model.TransactionType `json:"type"`
	CategoryName string                `json:"category_name"`
	Date         string                `json:"date"` // ISO day
}

// ParseResult is the local parser's always-structured output. RequiresAI
// means at least part of the input needs the model; fully parsed segments are
// still returned so the caller can prefill a form.
type ParseResult struct {
	Items            []ParsedTransaction `json:"items"`
	UnparsedSegments []string            `json:"unparsed_segments,omitempty"`
	RequiresAI       bool                `json:"requires_ai"`
}

// segmentSplitter matches the hard segment delimiters.
const segmentDelims = ",;\n&+"

// ParseLocally converts short, simple utterances ("Coffee 50", "такси 300 и
// кофе 150 вчера") directly into transaction candidates without a model
// call. Pure function: no I/O, never panics, deterministic for a fixed now.
func ParseLocally(input string, now time.Time) ParseResult {
	var result ParseResult

	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		result.RequiresAI = true
		return result
	}
	lower := strings.ToLower(trimmed)

	// Free-form narration and non-allowlisted date words defeat the simple
	// grammar; hand the whole input to the model.
	for _, verb := range complexVerbKeywords {
		if containsWord(lower, verb) {
			result.RequiresAI = true
			return result
		}
	}
	for _, kw := range dateKeywords {
		if containsWord(lower, kw) {
			result.RequiresAI = true
			return result
		}
	}

	segments := splitSegments(trimmed)

	// A trailing single-word date token applies to every segment that lacks
	// its own.
	globalOffset, hasGlobal := 0, false
	if len(segments) > 0 {
		last := segments[len(segments)-1]
		if rest, offset, ok := popTrailingDate(last); ok {
			segments[len(segments)-1] = rest
			globalOffset, hasGlobal = offset, true
			if strings.TrimSpace(rest) == "" {
				segments = segments[:len(segments)-1]
			}
		}
	}

	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		offset, hasOwn := 0, false
		if rest, o, ok := popTrailingDate(seg); ok {
			seg, offset, hasOwn = strings.TrimSpace(rest), o, true
		}

		item, ok := parseSegment(seg)
		if !ok {
			result.UnparsedSegments = append(result.UnparsedSegments, seg)
			result.RequiresAI = true
			continue
		}

		day := now
		switch {
		case hasOwn:
			day = now.AddDate(0, 0, offset)
		case hasGlobal:
			day = now.AddDate(0, 0, globalOffset)
		}
		item.Date = day.Format("2006-01-02")
		result.Items = append(result.Items, item)
	}

	if len(result.Items) == 0 && len(result.UnparsedSegments) == 0 {
		result.RequiresAI = true
	}
	return result
}

// parseSegment requires exactly one numeric token and at least one title
// token.
func parseSegment(seg string) (ParsedTransaction, bool) {
	var amountTok string
	var titleToks []string

	for _, tok := range strings.Fields(seg) {
		if isAmountToken(tok) {
			if amountTok != "" {
				return ParsedTransaction{}, false
			}
			amountTok = tok
			continue
		}
		titleToks = append(titleToks, tok)
	}
	if amountTok == "" || len(titleToks) == 0 {
		return ParsedTransaction{}, false
	}

	amount, ok := parseAmount(amountTok)
	if !ok {
		return ParsedTransaction{}, false
	}

	title := capitalizeTitle(strings.Join(titleToks, " "))
	return ParsedTransaction{
		Title:        title,
		Amount:       amount,
		Type:         model.TransactionTypeExpense,
		CategoryName: categorizeTitle(title),
	}, true
}

// splitSegments cuts the input on delimiter characters and on standalone
// conjunction words.
func splitSegments(input string) []string {
	parts := strings.FieldsFunc(input, func(r rune) bool {
		return strings.ContainsRune(segmentDelims, r)
	})

	var segments []string
	for _, part := range parts {
		current := []string{}
		for _, tok := range strings.Fields(part) {
			if isConjunction(tok) {
				if len(current) > 0 {
					segments = append(segments, strings.Join(current, " "))
					current = current[:0]
				}
				continue
			}
			current = append(current, tok)
		}
		if len(current) > 0 {
			segments = append(segments, strings.Join(current, " "))
		}
	}
	return segments
}

func isConjunction(tok string) bool {
	lower := strings.ToLower(tok)
	for _, c := range conjunctionWords {
		if lower == c {
			return true
		}
	}
	return false
}

// popTrailingDate strips a trailing allowlisted date token, returning the
// remaining text and the day offset.
func popTrailingDate(seg string) (rest string, offset int, ok bool) {
	fields := strings.Fields(seg)
	if len(fields) == 0 {
		return seg, 0, false
	}
	last := strings.ToLower(fields[len(fields)-1])
	if o, found := relativeDayKeywords[last]; found {
		return strings.Join(fields[:len(fields)-1], " "), o, true
	}
	return seg, 0, false
}

// categorizeTitle looks the title up in the fixed keyword table.
func categorizeTitle(title string) string {
	lower := strings.ToLower(title)
	for _, entry := range categoryKeywords {
		for _, w := range entry.Words {
			if strings.Contains(lower, w) {
				return entry.Category
			}
		}
	}
	return defaultCategory
}

// containsWord reports whether lower contains kw as a whole word when kw is
// short, or as a substring for stems.
func containsWord(lower, kw string) bool {
	idx := strings.Index(lower, kw)
	if idx < 0 {
		return false
	}
	// Word-boundary check on the left avoids "today" matching "uptoday"-like
	// tokens; the right side is left open so Russian stems match inflections.
	if idx > 0 {
		prev := lower[idx-1]
		if prev != ' ' && prev != ',' && prev != ';' && prev != '\n' && prev != '(' {
			return false
		}
	}
	return true
}
