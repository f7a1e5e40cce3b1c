package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		body         string
		wantErr      error
		wantLanguage string
		wantSegments []string
	}{
		{
			name:         "single segment",
			body:         `[[["你好","hello",null,null,1]],null,"en"]`,
			wantLanguage: "en",
			wantSegments: []string{"你好"},
		},
		{
			name:         "segments keep order",
			body:         `[[["one ","uno"],["two ","dos"],["three","tres"]],null,"es"]`,
			wantLanguage: "es",
			wantSegments: []string{"one ", "two ", "three"},
		},
		{
			name:         "entries without text are skipped",
			body:         `[[["kept","a"],[null,"b"],[],"not an array",[42],["also kept"]],null,"en"]`,
			wantLanguage: "en",
			wantSegments: []string{"kept", "also kept"},
		},
		{
			name:         "empty segment list",
			body:         `[[],null,"en"]`,
			wantLanguage: "en",
			wantSegments: []string{},
		},
		{
			name:         "unexpected shapes elsewhere are ignored",
			body:         `[[["hi","salut"]],{"odd":true},"fr",7,"x",[[[]]]]`,
			wantLanguage: "fr",
			wantSegments: []string{"hi"},
		},
		{
			name:    "segment list null",
			body:    `[null,null,"en"]`,
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "segment list wrong type",
			body:    `["text",null,"en"]`,
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "empty array",
			body:    `[]`,
			wantErr: ErrUndetectedLanguage,
		},
		{
			name:    "everything null",
			body:    `[null,null,null]`,
			wantErr: ErrUndetectedLanguage,
		},
		{
			name:    "segment list null with language",
			body:    `[null,null,"fr"]`,
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "top level object",
			body:    `{"error":"blocked"}`,
			wantErr: ErrInvalidFormat,
		},
		{
			name:    "json null",
			body:    `null`,
			wantErr: ErrUndetectedLanguage,
		},
		{
			name:    "language missing",
			body:    `[[["hi","salut"]]]`,
			wantErr: ErrUndetectedLanguage,
		},
		{
			name:    "language null",
			body:    `[[["hi","salut"]],null,null]`,
			wantErr: ErrUndetectedLanguage,
		},
		{
			name:    "language wrong type",
			body:    `[[["hi","salut"]],null,["fr"]]`,
			wantErr: ErrUndetectedLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := decodeResponse([]byte(tt.body))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.ErrorIs(t, err, ErrDecode)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLanguage, result.DetectedLanguage)
			assert.Equal(t, tt.wantSegments, result.Segments)
		})
	}
}

func TestResultText(t *testing.T) {
	t.Parallel()
	result := &Result{Segments: []string{"Hello. ", "How are you?"}}
	assert.Equal(t, "Hello. How are you?", result.Text())
	assert.Empty(t, (&Result{}).Text())
}
