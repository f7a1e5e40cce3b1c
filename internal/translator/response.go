package translator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
)

var (
	// ErrDecode is returned when the response does not have the expected shape.
	ErrDecode = errors.New("could not decode translation response")
	// ErrInvalidFormat is returned when the segment list is missing.
	ErrInvalidFormat = fmt.Errorf("%w: invalid response format", ErrDecode)
	// ErrUndetectedLanguage is returned when the detected language is missing.
	ErrUndetectedLanguage = fmt.Errorf("%w: could not detect language", ErrDecode)
)

const (
	segmentsIndex = 0
	languageIndex = 2
)

// Result is the outcome of a single translate request.
type Result struct {
	DetectedLanguage string
	Segments         []string
}

// Text joins the segments into the full translation.
func (r *Result) Text() string {
	return strings.Join(r.Segments, "")
}

// decodeResponse extracts the segments and detected language from the
// endpoint's positional array, e.g. [[["你好","hello",null,null,1]],null,"en"].
// Only indices 0 and 2 are read. A missing language wins over a bad segment
// list, so [null,null,null] reports an undetected language.
func decodeResponse(body []byte) (*Result, error) {
	var payload []any
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	// The detected language is checked before the segment list
	if len(payload) <= languageIndex {
		return nil, ErrUndetectedLanguage
	}
	detected, ok := payload[languageIndex].(string)
	if !ok {
		return nil, ErrUndetectedLanguage
	}

	entries, ok := payload[segmentsIndex].([]any)
	if !ok {
		return nil, ErrInvalidFormat
	}

	// Keep only entries whose first element is the translated text
	segments := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts, ok := entry.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if text, ok := parts[0].(string); ok {
			segments = append(segments, text)
		}
	}

	return &Result{
		DetectedLanguage: detected,
		Segments:         segments,
	}, nil
}
