package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"insight-stack/internal/models"
	"insight-stack/shared/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

type Client struct {
	service *youtube.Service
	config  *config.YouTubeConfig
}

// NewClient creates a YouTube Data API client. An API key is preferred when
// configured; otherwise the OAuth2 device flow is used with a persisted,
// auto-refreshing token file.
func NewClient(cfg *config.YouTubeConfig) (*Client, error) {
	ctx := context.Background()

	if cfg.APIKey != "" {
		service, err := youtube.NewService(ctx, option.WithAPIKey(cfg.APIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create YouTube service: %w", err)
		}
		return &Client{service: service, config: cfg}, nil
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.readonly"},
		Endpoint:     google.Endpoint,
	}

	token, err := getToken(oauthConfig, cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth token: %w", err)
	}

	tokenSource := &tokenSaver{
		config:    oauthConfig,
		token:     token,
		tokenFile: cfg.TokenFile,
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)

	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service, config: cfg}, nil
}

// channelRef is a parsed channel URL: which lookup the Data API needs and
// the value to look up with.
type channelRef struct {
	kind  string // "handle", "id", "username", "custom"
	value string
}

// parseChannelURL recognizes the URL forms YouTube uses for channels:
// /@handle, /channel/UC…, /user/name and legacy /c/name.
func parseChannelURL(raw string) (channelRef, error) {
	trimmed := strings.TrimSpace(raw)
	for _, prefix := range []string{"https://", "http://"} {
		trimmed = strings.TrimPrefix(trimmed, prefix)
	}
	for _, host := range []string{"www.youtube.com/", "youtube.com/", "m.youtube.com/"} {
		if strings.HasPrefix(trimmed, host) {
			trimmed = strings.TrimPrefix(trimmed, host)
			break
		}
	}
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return channelRef{}, fmt.Errorf("empty channel URL")
	}

	// Trailing path segments like /videos or /about are ignored
	segments := strings.Split(trimmed, "/")
	first := segments[0]

	switch {
	case strings.HasPrefix(first, "@"):
		return channelRef{kind: "handle", value: first}, nil
	case first == "channel" && len(segments) > 1:
		return channelRef{kind: "id", value: segments[1]}, nil
	case first == "user" && len(segments) > 1:
		return channelRef{kind: "username", value: segments[1]}, nil
	case first == "c" && len(segments) > 1:
		return channelRef{kind: "custom", value: segments[1]}, nil
	case len(segments) == 1:
		// Bare handle or channel id without a URL around it
		if strings.HasPrefix(first, "UC") && len(first) == 24 {
			return channelRef{kind: "id", value: first}, nil
		}
		return channelRef{kind: "handle", value: "@" + first}, nil
	}
	return channelRef{}, fmt.Errorf("unrecognized channel URL: %s", raw)
}

// resolveUploadsPlaylist finds the channel's uploads playlist ID.
func (c *Client) resolveUploadsPlaylist(ctx context.Context, ref channelRef) (string, string, error) {
	call := c.service.Channels.List([]string{"contentDetails", "snippet"}).Context(ctx)

	switch ref.kind {
	case "handle":
		call = call.ForHandle(ref.value)
	case "id":
		call = call.Id(ref.value)
	case "username":
		call = call.ForUsername(ref.value)
	case "custom":
		// Legacy /c/ URLs have no direct lookup; resolve via channel search
		id, err := c.searchChannelID(ctx, ref.value)
		if err != nil {
			return "", "", err
		}
		call = call.Id(id)
	default:
		return "", "", fmt.Errorf("unknown channel reference kind: %s", ref.kind)
	}

	resp, err := call.Do()
	if err != nil {
		return "", "", fmt.Errorf("failed to look up channel: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", "", fmt.Errorf("channel not found: %s", ref.value)
	}

	channel := resp.Items[0]
	if channel.ContentDetails == nil || channel.ContentDetails.RelatedPlaylists == nil ||
		channel.ContentDetails.RelatedPlaylists.Uploads == "" {
		return "", "", fmt.Errorf("channel %s has no uploads playlist", ref.value)
	}

	title := ""
	if channel.Snippet != nil {
		title = channel.Snippet.Title
	}
	return channel.ContentDetails.RelatedPlaylists.Uploads, title, nil
}

func (c *Client) searchChannelID(ctx context.Context, name string) (string, error) {
	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(name).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("channel search failed: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return "", fmt.Errorf("no channel found for %q", name)
	}
	return resp.Items[0].Snippet.ChannelId, nil
}

// ListChannelVideos returns the first max videos of the channel's uploads
// playlist, in playlist order.
func (c *Client) ListChannelVideos(ctx context.Context, channelURL string, max int64) ([]*models.Video, error) {
	ref, err := parseChannelURL(channelURL)
	if err != nil {
		return nil, err
	}

	playlistID, channelTitle, err := c.resolveUploadsPlaylist(ctx, ref)
	if err != nil {
		return nil, err
	}

	log.Printf("Resolved channel %s to uploads playlist %s", channelURL, playlistID)

	var videos []*models.Video
	pageToken := ""

	for int64(len(videos)) < max {
		pageSize := max - int64(len(videos))
		if pageSize > 50 {
			pageSize = 50
		}

		call := c.service.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(playlistID).
			MaxResults(pageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list playlist items: %w", err)
		}

		for _, item := range resp.Items {
			if item.Snippet == nil || item.Snippet.ResourceId == nil {
				continue
			}
			video := &models.Video{
				ID:           item.Snippet.ResourceId.VideoId,
				Title:        item.Snippet.Title,
				ChannelTitle: channelTitle,
				URL:          fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.Snippet.ResourceId.VideoId),
			}
			if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
				video.PublishedAt = publishedAt
			}
			videos = append(videos, video)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" || len(resp.Items) == 0 {
			break
		}
	}

	if int64(len(videos)) > max {
		videos = videos[:max]
	}

	log.Printf("Found %d videos for channel %s", len(videos), channelURL)
	return videos, nil
}

// tokenSaver wraps an oauth2.TokenSource to automatically save refreshed tokens.
// It intercepts token refresh operations and persists the new token to disk,
// ensuring that refreshed tokens survive application restarts.
type tokenSaver struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenFile string
	mu        sync.Mutex // Protects concurrent token refresh operations
}

// Token implements oauth2.TokenSource. It returns the current token,
// refreshing it if necessary and saving any refreshed token to disk.
func (ts *tokenSaver) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	tokenSource := ts.config.TokenSource(context.Background(), ts.token)

	newToken, err := tokenSource.Token()
	if err != nil {
		return nil, err
	}

	if newToken.AccessToken != ts.token.AccessToken {
		log.Println("Token refreshed, saving to file")
		ts.token = newToken
		if err := saveToken(ts.tokenFile, newToken); err != nil {
			log.Printf("Warning: Failed to save refreshed token: %v", err)
		}
	}

	return newToken, nil
}

// getToken retrieves an OAuth2 token from disk or initiates the device flow
// if needed. Existing tokens with refresh tokens are kept even when expired,
// as they can be refreshed automatically.
func getToken(config *oauth2.Config, tokenFile string) (*oauth2.Token, error) {
	tok, err := tokenFromFile(tokenFile)
	if err == nil {
		if tok.RefreshToken != "" {
			log.Printf("Loaded token from file (expires: %v)", tok.Expiry)
			return tok, nil
		}
		if tok.Valid() {
			return tok, nil
		}
	}

	log.Println("Getting new token from web...")
	tok, err = getTokenFromWeb(config)
	if err != nil {
		return nil, err
	}

	if err := saveToken(tokenFile, tok); err != nil {
		log.Printf("Warning: Failed to save token: %v", err)
	}
	return tok, nil
}

func getTokenFromWeb(config *oauth2.Config) (*oauth2.Token, error) {
	tok, err := getTokenWithDeviceFlow(config)
	if err == nil {
		return tok, nil
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		log.Printf("Device authorization response failed (%s): %s", retrieveErr.Response.Status, strings.TrimSpace(string(retrieveErr.Body)))
	} else {
		log.Printf("Device authorization flow failed: %v", err)
	}

	return nil, fmt.Errorf("device authorization failed: %w. Ensure your OAuth client is created as 'TVs and Limited Input devices' and that the YouTube Data API v3 is enabled.", err)
}

func getTokenWithDeviceFlow(config *oauth2.Config) (*oauth2.Token, error) {
	ctx := context.Background()

	resp, err := config.DeviceAuth(ctx, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("unable to start device authorization: %w", err)
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 80))
	fmt.Printf("YOUTUBE DEVICE AUTHORIZATION REQUIRED\n")
	fmt.Printf("%s\n", strings.Repeat("=", 80))
	fmt.Printf("1. Visit %s in your browser (any device works).\n", resp.VerificationURI)
	fmt.Printf("2. Enter this code when prompted: %s\n\n", resp.UserCode)
	fmt.Printf("Waiting for authorization to complete... (Ctrl+C to cancel)\n")
	fmt.Printf("%s\n", strings.Repeat("-", 80))

	tok, err := config.DeviceAccessToken(ctx, resp, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("device authorization did not complete: %w", err)
	}

	fmt.Printf("\nAuthorization successful! Token saved.\n")
	fmt.Printf("%s\n\n", strings.Repeat("=", 80))

	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("unable to create token directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode oauth token: %w", err)
	}
	return nil
}
