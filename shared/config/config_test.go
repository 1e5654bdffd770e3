package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("YOUTUBE_API_KEY", "test-key")
	t.Setenv("YOUTUBE_CHANNEL_URL", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("HF_TOKEN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.ChannelURL != "https://www.youtube.com/@MrBeast" {
		t.Errorf("ChannelURL default = %s", cfg.ChannelURL)
	}
	if cfg.MaxVideos != 3 {
		t.Errorf("MaxVideos default = %d, want 3", cfg.MaxVideos)
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("AI.Model default = %s", cfg.AI.Model)
	}
	if cfg.Transcribe.YtDlpBinary != "yt-dlp" {
		t.Errorf("YtDlpBinary default = %s", cfg.Transcribe.YtDlpBinary)
	}
	if cfg.Entities.Endpoint == "" {
		t.Error("Entities.Endpoint default not set")
	}
}

func TestLoadRequiresYouTubeCredentials(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("GOOGLE_CLIENT_ID", "")
	t.Setenv("GOOGLE_CLIENT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded without any YouTube credentials")
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
youtube:
  api_key: "from-file"
channel_url: "https://www.youtube.com/@GoogleDevelopers"
max_videos: 5
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("CONFIG_FILE", configPath)
	t.Setenv("YOUTUBE_CHANNEL_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if cfg.YouTube.APIKey != "from-file" {
		t.Errorf("APIKey = %s, want from-file", cfg.YouTube.APIKey)
	}
	if cfg.ChannelURL != "https://www.youtube.com/@GoogleDevelopers" {
		t.Errorf("ChannelURL = %s", cfg.ChannelURL)
	}
	if cfg.MaxVideos != 5 {
		t.Errorf("MaxVideos = %d, want 5", cfg.MaxVideos)
	}
}

func TestEmailConfigured(t *testing.T) {
	cfg := &Config{}
	if cfg.EmailConfigured() {
		t.Error("empty email config reported as configured")
	}

	cfg.Email = EmailConfig{
		SMTPServer: "smtp.test.com",
		Username:   "u",
		Password:   "p",
		ToEmail:    "to@test.com",
	}
	if !cfg.EmailConfigured() {
		t.Error("complete email config reported as not configured")
	}
}
