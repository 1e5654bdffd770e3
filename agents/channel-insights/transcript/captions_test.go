package transcript

import "testing"

func TestParseTimedText(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="utf-8" ?>
<transcript>
	<text start="0.0" dur="2.5">hello there</text>
	<text start="2.5" dur="1.5">it&#39;s a test</text>
	<text start="4.0" dur="2.0">  with whitespace  </text>
</transcript>`)

	got, err := parseTimedText(body)
	if err != nil {
		t.Fatalf("parseTimedText() error: %v", err)
	}

	want := "hello there it's a test with whitespace"
	if got != want {
		t.Errorf("parseTimedText() = %q, want %q", got, want)
	}
}

func TestParseTimedTextEmpty(t *testing.T) {
	if _, err := parseTimedText([]byte(`<transcript></transcript>`)); err == nil {
		t.Error("expected error for empty transcript")
	}

	if _, err := parseTimedText([]byte(`not xml at all <<<`)); err == nil {
		t.Error("expected error for malformed XML")
	}
}

func TestPickTrack(t *testing.T) {
	langs := []string{"en", "en-US", "en-GB"}

	tests := []struct {
		name    string
		tracks  []captionTrack
		wantURL string
		wantOK  bool
	}{
		{
			name: "Manual preferred over auto-generated",
			tracks: []captionTrack{
				{BaseURL: "auto-en", LanguageCode: "en", Kind: "asr"},
				{BaseURL: "manual-en", LanguageCode: "en"},
			},
			wantURL: "manual-en",
			wantOK:  true,
		},
		{
			name: "Language priority order",
			tracks: []captionTrack{
				{BaseURL: "gb", LanguageCode: "en-GB"},
				{BaseURL: "us", LanguageCode: "en-US"},
			},
			wantURL: "us",
			wantOK:  true,
		},
		{
			name: "Auto-generated when no manual track",
			tracks: []captionTrack{
				{BaseURL: "auto-en", LanguageCode: "en", Kind: "asr"},
				{BaseURL: "manual-fr", LanguageCode: "fr"},
			},
			wantURL: "auto-en",
			wantOK:  true,
		},
		{
			name: "Any English variant as fallback",
			tracks: []captionTrack{
				{BaseURL: "fr", LanguageCode: "fr"},
				{BaseURL: "en-in", LanguageCode: "en-IN"},
			},
			wantURL: "en-in",
			wantOK:  true,
		},
		{
			name: "No English track fails so speech-to-text runs",
			tracks: []captionTrack{
				{BaseURL: "de", LanguageCode: "de"},
				{BaseURL: "fr", LanguageCode: "fr"},
			},
			wantOK: false,
		},
		{
			name: "Single non-English track fails",
			tracks: []captionTrack{
				{BaseURL: "fr", LanguageCode: "fr"},
			},
			wantOK: false,
		},
		{
			name:   "No tracks",
			tracks: nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, ok := pickTrack(tt.tracks, langs)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && track.BaseURL != tt.wantURL {
				t.Errorf("track = %s, want %s", track.BaseURL, tt.wantURL)
			}
		})
	}
}
