// Package extract recovers voter records from raw OCR text.
//
// Electoral roll pages carry repeated blocks of the form
//
//	নাম : <voter name>
//	পিতার নাম : <father's name>   (or স্বামীর নাম : <husband's name>)
//
// The extractor anchors on the name label, then looks for a guardian label
// within a bounded window after it. Both the narrow colon ":" and the
// full-width colon "：" are accepted after every label, since OCR yields
// either glyph.
//
// Every quantifier in the patterns is bounded, and Go's regexp engine is
// RE2, so matching is linear in the input regardless of how adversarial the
// recognized text is.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"rollscan/model"
)

// Guardian role labels recognized after a name label.
const (
	labelName    = "নাম"
	labelFather  = "পিতার নাম"
	labelHusband = "স্বামীর নাম"
)

const (
	// maxValueRunes bounds an accepted label value; longer runs are
	// treated as extraction misses, not truncated.
	maxValueRunes = 200

	// lookaheadWindow bounds, in bytes, how far past a name label a
	// guardian label may appear and still belong to the same record.
	lookaheadWindow = 600
)

// labelRE matches any record label followed by a colon (narrow or
// full-width) and the remainder of the line. Guardian labels are listed
// before the bare name label so that alternation never matches the "নাম"
// suffix of "পিতার নাম". The value capture is bounded well above
// maxValueRunes so oversized values are seen, and rejected, rather than
// silently clipped.
var labelRE = regexp.MustCompile(`(পিতার নাম|স্বামীর নাম|নাম)\s{0,20}[:：][ \t]{0,20}([^\n]{0,800})`)

// Result carries the records recovered from one page of OCR text together
// with the number of extraction misses (labels that had no parseable value).
type Result struct {
	Records []model.VoterInfo
	Misses  int
}

// Records parses the raw OCR text of one page and returns the voter records
// found, in the order their name labels appear. sourceFile and pageNumber
// are stamped onto every record.
//
// A name label with no usable value drops the pending record and counts as
// a miss. A guardian label with no usable value counts as a miss and leaves
// the record's guardian empty. A name label with no guardian label in its
// window yields a record with an empty guardian. When both guardian roles
// appear in one window, the first occurrence wins.
func Records(text, sourceFile string, pageNumber int) Result {
	var res Result

	matches := labelRE.FindAllStringSubmatchIndex(text, -1)

	// Index of the pending record in res.Records, or -1. guardianSet
	// tracks whether that record already took its guardian label.
	pending := -1
	pendingEnd := 0
	guardianSet := false

	for _, m := range matches {
		label := text[m[2]:m[3]]
		value, ok := cleanValue(text[m[4]:m[5]])

		if label == labelName {
			if !ok {
				res.Misses++
				pending = -1
				continue
			}
			res.Records = append(res.Records, model.VoterInfo{
				Name:       value,
				PageNumber: pageNumber,
				SourceFile: sourceFile,
			})
			pending = len(res.Records) - 1
			pendingEnd = m[1]
			guardianSet = false
			continue
		}

		// Guardian label. Attach to the pending record when one exists,
		// is still within the lookahead window, and has no guardian yet.
		if pending < 0 || guardianSet || m[0]-pendingEnd > lookaheadWindow {
			continue
		}
		if !ok {
			res.Misses++
			continue
		}
		res.Records[pending].GuardianName = value
		guardianSet = true
	}

	return res
}

// cleanValue trims a captured label value and reports whether it is usable:
// non-empty and within the bounded length.
func cleanValue(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" || utf8.RuneCountInString(v) > maxValueRunes {
		return "", false
	}
	return v, true
}
