package format

import (
	"strings"
	"unicode"
)

// Rule names the detection step that decided a Tag.
type Rule string

const (
	// RuleBrackets matches text wrapped in {} or [].
	RuleBrackets Rule = "brackets"
	// RuleMarkup matches text that starts like a tag or an XML declaration.
	RuleMarkup Rule = "markup"
	// RuleParsedJSON matches text that parses as JSON, such as a bare scalar.
	RuleParsedJSON Rule = "parsed-json"
	// RuleFallback is used when nothing else matched and the text is not JSON.
	RuleFallback Rule = "fallback"
)

// Detection is the outcome of Classify.
type Detection struct {
	Tag  Tag
	Rule Rule
}

// Classify guesses the format of text. It always commits to a Tag; whether the
// text is actually valid is left to the formatter.
//
// Text that matches neither the bracket nor the markup shape and fails to parse
// as JSON is classified as XML. Empty input therefore becomes XML.
func (f *Formatter) Classify(text string) Detection {
	trimmed := strings.TrimFunc(text, isSpace)

	switch {
	case strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}"),
		strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		return Detection{Tag: JSON, Rule: RuleBrackets}
	case strings.HasPrefix(trimmed, "<?xml"),
		strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed[1:], ">"):
		return Detection{Tag: XML, Rule: RuleMarkup}
	}

	if _, err := f.JSON.Parse(trimmed); err == nil {
		return Detection{Tag: JSON, Rule: RuleParsedJSON}
	}

	return Detection{Tag: XML, Rule: RuleFallback}
}

// Detect returns the Tag chosen by Classify.
func (f *Formatter) Detect(text string) Tag {
	return f.Classify(text).Tag
}

// isSpace matches what String.prototype.trim removes, including the BOM.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\ufeff'
}
