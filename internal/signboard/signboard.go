// Package signboard reads the text on a shop sign and translates it for the viewer.
package signboard

import (
	"context"
	"log"
	"strings"
	"unicode"

	"mandi-mitra/internal/services/translate"
)

// NoTextMessage is reported when the image has no readable text.
const NoTextMessage = "No text detected in image"

// LineDetector extracts text lines from an image, top to bottom.
type LineDetector interface {
	DetectLines(ctx context.Context, image []byte, filename string) ([]string, error)
}

// Result is the outcome for one image.
type Result struct {
	OriginalText     string `json:"originalText"`
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage string `json:"detectedLanguage"`
	TextDetections   int    `json:"textDetections"`
	Error            string `json:"error,omitempty"`
}

var scripts = []struct {
	lo, hi rune
	lang   string
}{
	{0x0900, 0x097F, "hi"},
	{0x0C00, 0x0C7F, "te"},
	{0x0B80, 0x0BFF, "ta"},
	{0x0C80, 0x0CFF, "kn"},
	{0x0D00, 0x0D7F, "ml"},
}

// DetectScript guesses the language from the first Indic script that appears in text.
// Scripts are checked in a fixed order, so mixed Hindi and Tamil text is Hindi.
func DetectScript(text string) string {
	for _, s := range scripts {
		for _, r := range text {
			if r >= s.lo && r <= s.hi {
				return s.lang
			}
		}
	}
	return "en"
}

// Reader runs OCR and translation.
type Reader struct {
	detector   LineDetector
	translator translate.Translator
}

func NewReader(detector LineDetector, translator translate.Translator) *Reader {
	return &Reader{detector: detector, translator: translator}
}

// Read extracts and translates the sign. OCR failures are returned; translation
// failures fall back to the original text.
func (r *Reader) Read(ctx context.Context, image []byte, filename, target string) (Result, error) {
	lines, err := r.detector.DetectLines(ctx, image, filename)
	if err != nil {
		return Result{}, err
	}

	original := strings.Join(lines, "\n")
	if strings.TrimFunc(original, unicode.IsSpace) == "" {
		return Result{Error: NoTextMessage}, nil
	}

	target = translate.Normalize(target)
	if target == "" {
		target = "en"
	}
	detected := DetectScript(original)
	log.Printf("signboard: %d lines, detected %s, target %s", len(lines), detected, target)

	res := Result{
		OriginalText:     original,
		TranslatedText:   original,
		DetectedLanguage: detected,
		TextDetections:   len(lines),
	}
	if detected == target {
		return res, nil
	}

	translated, err := r.translator.Translate(ctx, original, detected, target)
	if err != nil {
		log.Printf("signboard translation %s->%s failed, retrying with auto-detect: %v", detected, target, err)
		translated, err = r.translator.Translate(ctx, original, translate.AutoDetect, target)
	}
	if err != nil {
		log.Printf("signboard auto translation failed: %v", err)
		return res, nil
	}
	res.TranslatedText = translated
	return res, nil
}
