// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package page locates and decodes the JSON state payload that the
// marketplace embeds in its page markup. It is not an HTML parser: the
// payload is found by scanning for a fixed marker string and taking the
// first balanced JSON object after it.
package page

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StateMarker precedes the embedded state payload in listing and product
// pages. Pages can contain unrelated marker-like occurrences (other state
// blocks, inline scripts), so extraction keeps scanning past occurrences
// that do not yield a valid payload.
const StateMarker = "__PRELOADED_STATE__"

// ExtractionError reports that no usable state payload could be extracted
// from a page body.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "extracting page state: " + e.Reason
}

// ExtractBlock scans raw markup for marker occurrences and returns the
// first balanced JSON object whose candidate bytes valid accepts. Returns
// nil when no occurrence qualifies.
func ExtractBlock(raw, marker string, valid func(block []byte) bool) []byte {
	for from := 0; ; {
		i := strings.Index(raw[from:], marker)
		if i < 0 {
			return nil
		}
		at := from + i
		// Continue past this occurrence next round regardless of outcome.
		from = at + len(marker)

		block, ok := balancedObject(raw, at+len(marker))
		if !ok {
			continue
		}
		if valid([]byte(block)) {
			return []byte(block)
		}
	}
}

// balancedObject scans s from start for the first '{' and returns the
// substring up to the position where brace nesting returns to zero. The
// scan is a plain depth count; it relies on the upstream contract that the
// marker is followed by syntactically valid JSON with sound brace nesting.
func balancedObject(s string, start int) (string, bool) {
	open := strings.IndexByte(s[start:], '{')
	if open < 0 {
		return "", false
	}
	begin := start + open
	depth := 0
	for i := begin; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[begin : i+1], true
			}
		}
	}
	return "", false
}

// ExtractState extracts the listing state payload from raw markup. A
// candidate block qualifies only when it decodes and carries a non-empty
// results array; anything else (parse failure, missing or empty results)
// sends the scan on to the next marker occurrence. Returns the decoded
// state plus the raw block, or an ExtractionError when the page holds no
// valid payload.
func ExtractState(raw string) (*State, json.RawMessage, error) {
	var state *State
	block := ExtractBlock(raw, StateMarker, func(b []byte) bool {
		var s State
		if err := json.Unmarshal(b, &s); err != nil {
			return false
		}
		if len(s.Results) == 0 {
			return false
		}
		state = &s
		return true
	})
	if block == nil {
		return nil, nil, &ExtractionError{Reason: fmt.Sprintf("no %s block with results found", StateMarker)}
	}
	return state, json.RawMessage(block), nil
}

// ExtractDetail extracts the product detail payload from raw markup. Detail
// pages embed the same marker but a different shape: a components object
// instead of a results array.
func ExtractDetail(raw string) (*Detail, error) {
	var detail *Detail
	block := ExtractBlock(raw, StateMarker, func(b []byte) bool {
		var d Detail
		if err := json.Unmarshal(b, &d); err != nil {
			return false
		}
		if !d.Components.hasAny() {
			return false
		}
		detail = &d
		return true
	})
	if block == nil {
		return nil, &ExtractionError{Reason: fmt.Sprintf("no %s block with components found", StateMarker)}
	}
	return detail, nil
}
