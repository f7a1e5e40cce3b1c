// Package language holds the static table of language codes accepted by the
// translate endpoint and helpers for validating and comparing them.
package language

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
)

// Auto lets the endpoint or the command pick the language.
const Auto = "auto"

// ErrUnsupported is returned when a language code is not in the table.
var ErrUnsupported = errors.New("unsupported language")

// Language pairs a language code with its display name.
type Language struct {
	Code string
	Name string
}

// Languages lists every supported code in display order.
var Languages = []Language{
	{"af", "Afrikaans"},
	{"sq", "Albanian"},
	{"am", "Amharic"},
	{"ar", "Arabic"},
	{"hy", "Armenian"},
	{"az", "Azerbaijani"},
	{"eu", "Basque"},
	{"be", "Belarusian"},
	{"bn", "Bengali"},
	{"bs", "Bosnian"},
	{"bg", "Bulgarian"},
	{"ca", "Catalan"},
	{"ceb", "Cebuano"},
	{"zh-CN", "Chinese (Simplified)"},
	{"zh-TW", "Chinese (Traditional)"},
	{"co", "Corsican"},
	{"hr", "Croatian"},
	{"cs", "Czech"},
	{"da", "Danish"},
	{"nl", "Dutch"},
	{"en", "English"},
	{"eo", "Esperanto"},
	{"et", "Estonian"},
	{"fi", "Finnish"},
	{"fr", "French"},
	{"fy", "Frisian"},
	{"gl", "Galician"},
	{"ka", "Georgian"},
	{"de", "German"},
	{"el", "Greek"},
	{"gu", "Gujarati"},
	{"ht", "Haitian Creole"},
	{"ha", "Hausa"},
	{"haw", "Hawaiian"},
	{"he", "Hebrew"},
	{"hi", "Hindi"},
	{"hmn", "Hmong"},
	{"hu", "Hungarian"},
	{"is", "Icelandic"},
	{"ig", "Igbo"},
	{"id", "Indonesian"},
	{"ga", "Irish"},
	{"it", "Italian"},
	{"ja", "Japanese"},
	{"jv", "Javanese"},
	{"kn", "Kannada"},
	{"kk", "Kazakh"},
	{"km", "Khmer"},
	{"ko", "Korean"},
	{"ku", "Kurdish"},
	{"ky", "Kyrgyz"},
	{"lo", "Lao"},
	{"la", "Latin"},
	{"lv", "Latvian"},
	{"lt", "Lithuanian"},
	{"lb", "Luxembourgish"},
	{"mk", "Macedonian"},
	{"mg", "Malagasy"},
	{"ms", "Malay"},
	{"ml", "Malayalam"},
	{"mt", "Maltese"},
	{"mi", "Maori"},
	{"mr", "Marathi"},
	{"mn", "Mongolian"},
	{"my", "Myanmar (Burmese)"},
	{"ne", "Nepali"},
	{"no", "Norwegian"},
	{"ny", "Nyanja (Chichewa)"},
	{"or", "Odia (Oriya)"},
	{"ps", "Pashto"},
	{"fa", "Persian"},
	{"pl", "Polish"},
	{"pt", "Portuguese"},
	{"pa", "Punjabi"},
	{"ro", "Romanian"},
	{"ru", "Russian"},
	{"sm", "Samoan"},
	{"gd", "Scots Gaelic"},
	{"sr", "Serbian"},
	{"st", "Sesotho"},
	{"sn", "Shona"},
	{"sd", "Sindhi"},
	{"si", "Sinhala (Sinhalese)"},
	{"sk", "Slovak"},
	{"sl", "Slovenian"},
	{"so", "Somali"},
	{"es", "Spanish"},
	{"su", "Sundanese"},
	{"sw", "Swahili"},
	{"sv", "Swedish"},
	{"tl", "Tagalog (Filipino)"},
	{"tg", "Tajik"},
	{"ta", "Tamil"},
	{"tt", "Tatar"},
	{"te", "Telugu"},
	{"th", "Thai"},
	{"tr", "Turkish"},
	{"tk", "Turkmen"},
	{"uk", "Ukrainian"},
	{"ur", "Urdu"},
	{"ug", "Uyghur"},
	{"uz", "Uzbek"},
	{"vi", "Vietnamese"},
	{"cy", "Welsh"},
	{"xh", "Xhosa"},
	{"yi", "Yiddish"},
	{"yo", "Yoruba"},
	{"zu", "Zulu"},
}

var names = func() map[string]string {
	m := make(map[string]string, len(Languages))
	for _, l := range Languages {
		m[l.Code] = l.Name
	}
	return m
}()

// IsSupported reports whether code is in the table. Matching is exact.
func IsSupported(code string) bool {
	_, ok := names[code]
	return ok
}

// Name returns the display name for code.
func Name(code string) (string, bool) {
	name, ok := names[code]
	return name, ok
}

// Validate checks a user supplied code. Auto is always accepted.
// The role ("target", "source") is used in the error message.
func Validate(code, role string) error {
	if code == Auto || IsSupported(code) {
		return nil
	}
	return fmt.Errorf("%w: %s %q", ErrUnsupported, role, code)
}

// Same reports whether two codes name the same language. Codes are compared
// as canonical BCP 47 tags so "zh-cn" matches "zh-CN" and a legacy code such
// as "iw" matches its replacement "he".
func Same(a, b string) bool {
	if strings.EqualFold(a, b) {
		return true
	}

	tagA, errA := language.Parse(a)
	tagB, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	return tagA == tagB
}

// WriteTable writes the supported languages, one "code - name" line each.
func WriteTable(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Supported languages:"); err != nil {
		return err
	}
	for _, l := range Languages {
		if _, err := fmt.Fprintf(w, "  %s - %s\n", l.Code, l.Name); err != nil {
			return err
		}
	}
	return nil
}
