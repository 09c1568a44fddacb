package signboard

import (
	"context"
	"errors"
	"testing"
)

type fakeDetector struct {
	lines []string
	err   error
}

func (f fakeDetector) DetectLines(context.Context, []byte, string) ([]string, error) {
	return f.lines, f.err
}

type call struct{ source, target string }

type fakeTranslator struct {
	calls []call
	fail  map[string]bool
}

func (f *fakeTranslator) Translate(_ context.Context, text, source, target string) (string, error) {
	f.calls = append(f.calls, call{source, target})
	if f.fail[source] {
		return "", errors.New("unsupported")
	}
	return "[" + target + "] " + text, nil
}

func TestDetectScript(t *testing.T) {
	tests := []struct{ text, want string }{
		{"राम भंडार", "hi"},
		{"తాజా కూరగాయలు", "te"},
		{"காய்கறி", "ta"},
		{"ತರಕಾರಿ", "kn"},
		{"പച്ചക്കറി", "ml"},
		{"FRESH FRUITS", "en"},
		{"", "en"},
		{"காய் राम", "hi"},
	}
	for _, tt := range tests {
		if got := DetectScript(tt.text); got != tt.want {
			t.Errorf("DetectScript(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestReadTranslates(t *testing.T) {
	tr := &fakeTranslator{}
	r := NewReader(fakeDetector{lines: []string{"राम भंडार", "ताज़ा सब्ज़ी"}}, tr)

	res, err := r.Read(context.Background(), []byte("img"), "a.jpg", "en-IN")
	if err != nil {
		t.Fatal(err)
	}
	if res.DetectedLanguage != "hi" || res.TextDetections != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.TranslatedText != "[en] राम भंडार\nताज़ा सब्ज़ी" {
		t.Fatalf("translated %q", res.TranslatedText)
	}
	if len(tr.calls) != 1 || tr.calls[0] != (call{"hi", "en"}) {
		t.Fatalf("calls %v", tr.calls)
	}
}

func TestReadRetriesWithAutoThenFallsBack(t *testing.T) {
	tr := &fakeTranslator{fail: map[string]bool{"te": true}}
	res, err := NewReader(fakeDetector{lines: []string{"తాజా"}}, tr).Read(context.Background(), nil, "", "hi")
	if err != nil {
		t.Fatal(err)
	}
	if res.TranslatedText != "[hi] తాజా" || len(tr.calls) != 2 || tr.calls[1].source != "auto" {
		t.Fatalf("unexpected %+v calls %v", res, tr.calls)
	}

	tr = &fakeTranslator{fail: map[string]bool{"te": true, "auto": true}}
	res, err = NewReader(fakeDetector{lines: []string{"తాజా"}}, tr).Read(context.Background(), nil, "", "hi")
	if err != nil {
		t.Fatal(err)
	}
	if res.TranslatedText != "తాజా" {
		t.Fatalf("expected original text, got %q", res.TranslatedText)
	}
}

func TestReadSameLanguage(t *testing.T) {
	tr := &fakeTranslator{}
	res, _ := NewReader(fakeDetector{lines: []string{"FRESH"}}, tr).Read(context.Background(), nil, "", "")
	if res.TranslatedText != "FRESH" || len(tr.calls) != 0 {
		t.Fatalf("unexpected %+v calls %v", res, tr.calls)
	}
}

func TestReadNoText(t *testing.T) {
	res, err := NewReader(fakeDetector{lines: []string{" "}}, &fakeTranslator{}).Read(context.Background(), nil, "", "en")
	if err != nil {
		t.Fatal(err)
	}
	if res.Error != NoTextMessage || res.OriginalText != "" || res.DetectedLanguage != "" {
		t.Fatalf("unexpected %+v", res)
	}
}

func TestReadOCRError(t *testing.T) {
	want := errors.New("ocr down")
	if _, err := NewReader(fakeDetector{err: want}, &fakeTranslator{}).Read(context.Background(), nil, "", "en"); !errors.Is(err, want) {
		t.Fatalf("got %v", err)
	}
}
