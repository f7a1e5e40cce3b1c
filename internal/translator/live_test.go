package translator

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests call the real endpoint and only run with TRANSLATE_LIVE=1.
func skipUnlessLive(t *testing.T) {
	t.Helper()
	if os.Getenv("TRANSLATE_LIVE") != "1" {
		t.Skip("set TRANSLATE_LIVE=1 to run tests against the live endpoint")
	}
}

func TestLiveEnglishToChinese(t *testing.T) {
	skipUnlessLive(t)

	result, err := New("zh-CN").Translate(t.Context(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "en", result.DetectedLanguage)
	require.NotEmpty(t, result.Segments)
	assert.Contains(t, result.Segments[0], "你好")
}

func TestLiveChineseToEnglish(t *testing.T) {
	skipUnlessLive(t)

	result, err := New("en").Translate(t.Context(), "你好")
	require.NoError(t, err)

	assert.Equal(t, "zh-CN", result.DetectedLanguage)
	require.NotEmpty(t, result.Segments)
	assert.Contains(t, strings.ToLower(result.Segments[0]), "hello")
}
