package tokenizer

import (
	"encoding/json"
	"fmt"
)

// Span is a half-open byte range [Start, End) into the source text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// MarshalJSON implements custom JSON marshaling for Span.
func (s Span) MarshalJSON() ([]byte, error) {
	arr := [2]int{s.Start, s.End}
	return json.Marshal(arr)
}

// UnmarshalJSON implements custom JSON unmarshaling for Span.
func (s *Span) UnmarshalJSON(data []byte) error {
	var arr [2]int
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if arr[1] < arr[0] {
		return fmt.Errorf("span end %d precedes start %d", arr[1], arr[0])
	}
	s.Start = arr[0]
	s.End = arr[1]
	return nil
}

// Token is a classified span of the source.
//
// Text is a substring of the source the token was scanned from and shares its
// backing memory; holding a Token keeps the whole source alive.
type Token[L any] struct {
	Label L      `json:"label"`
	Span  Span   `json:"span"`
	Text  string `json:"text"`
}

func (t Token[L]) String() string {
	return fmt.Sprintf("%v@%s%q", t.Label, t.Span, t.Text)
}
