// Package morse maps between characters and dot-dash codes and rebuilds text
// from classified signal runs.
package morse

import (
	"strings"
	"unicode"

	"github.com/PandasDrive/M2T/pkg/internal/types"
)

// Unknown is the placeholder for element sequences that match no table entry.
const Unknown = '?'

// CodeOf returns the dot-dash code for a character. Letters are looked up
// case-insensitively.
func CodeOf(r rune) (string, bool) {
	code, ok := codeByChar[unicode.ToUpper(r)]
	return code, ok
}

// CharOf returns the character for a dot-dash code.
func CharOf(code string) (rune, bool) {
	char, ok := charByCode[code]
	return char, ok
}

// DecodeRuns converts classified runs into text and per-character events.
//
// Runs before the first element and after the last are lead-in and tail
// padding and carry no information. A character closed by an
// inter-character gap extends to that gap's end. A character closed by a
// word gap ends where the gap starts, and the space event spans the gap
// itself, so events never overlap. The final character extends to the end
// of its last element. Sequences missing from the table become Unknown but
// keep their raw element string, and decoding continues.
func DecodeRuns(classified []types.ClassifiedRun) (string, []types.DecodedEvent) {
	events := make([]types.DecodedEvent, 0, 16)
	var text strings.Builder

	first, last := -1, -1
	for i, c := range classified {
		if c.On {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return "", events
	}

	var code strings.Builder
	var charStart, charEnd float64

	resolve := func(end float64) {
		if code.Len() == 0 {
			return
		}
		accumulated := code.String()
		char, ok := CharOf(accumulated)
		if !ok {
			char = Unknown
		}
		events = append(events, types.DecodedEvent{
			Character: string(char),
			MorseCode: accumulated,
			StartTime: charStart,
			EndTime:   end,
		})
		text.WriteRune(char)
		code.Reset()
	}

	for i := first; i <= last; i++ {
		run := classified[i]
		switch run.Class {
		case types.ClassDot, types.ClassDash:
			if code.Len() == 0 {
				charStart = run.StartTime
			}
			if run.Class == types.ClassDot {
				code.WriteByte('.')
			} else {
				code.WriteByte('-')
			}
			charEnd = run.EndTime
		case types.ClassIntraGap:
			// Pause between elements of one character.
		case types.ClassCharGap:
			resolve(run.EndTime)
		case types.ClassWordGap:
			resolve(run.StartTime)
			events = append(events, types.DecodedEvent{
				Character: " ",
				StartTime: run.StartTime,
				EndTime:   run.EndTime,
			})
			text.WriteByte(' ')
		}
	}
	resolve(charEnd)

	return text.String(), events
}
