package whisper

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Status tags for Result.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Result is the fixed-shape output of one transcription. A successful
// Result is persisted verbatim as the artifact JSON document.
type Result struct {
	ID                 string  `json:"id"`
	Filename           string  `json:"filename"`
	AudioDuration      float64 `json:"audio_duration"`
	DetectedLanguage   string  `json:"detected_language"`
	LanguageCode       string  `json:"language_code"`
	LanguageConfidence float64 `json:"language_confidence"`
	Translation        string  `json:"translation"`
	TranslationTime    float64 `json:"translation_time"`
	ModelName          string  `json:"model_name"`
	Timestamp          string  `json:"timestamp"`
	Status             string  `json:"status"`
	Error              string  `json:"error,omitempty"`
	WordCount          int     `json:"word_count,omitempty"`
}

// Success reports whether the transcription completed with usable output.
func (r Result) Success() bool {
	return r.Status == StatusSuccess
}

// DeduplicateText removes consecutive duplicate sentences, a common
// artifact of whisper decoding on low-signal audio.
func DeduplicateText(text string) string {
	if text == "" {
		return text
	}

	raw := strings.Split(text, ".")
	sentences := make([]string, 0, len(raw))
	for _, sentence := range raw {
		if trimmed := strings.TrimSpace(sentence); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	if len(sentences) == 0 {
		return text
	}

	deduplicated := sentences[:1]
	for _, sentence := range sentences[1:] {
		if sentence != deduplicated[len(deduplicated)-1] {
			deduplicated = append(deduplicated, sentence)
		}
	}

	out := strings.Join(deduplicated, ". ")
	if strings.HasSuffix(strings.TrimRight(text, " \t\n"), ".") {
		out += "."
	}
	return out
}

// LanguageName resolves a detected ISO language code to its English
// display name. Unknown codes are returned uppercased.
func LanguageName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "unknown"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(code)
}
