package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jasidev/trendpost/lib/logger"
)

const (
	userInfoURL = "https://api.linkedin.com/v2/userinfo"
	ugcPostsURL = "https://api.linkedin.com/v2/ugcPosts"
)

// ErrAuth marks missing or rejected credentials. The operator fixes
// these by re-running the one-time auth helper.
var ErrAuth = errors.New("linkedin authentication failed")

// Credentials is what a run needs to publish: a bearer token and the
// member URN to post as.
type Credentials struct {
	AccessToken string
	PersonURN   string
}

// tokenFile mirrors the JSON written by the one-time auth helper.
type tokenFile struct {
	AccessToken string `json:"access_token"`
	PersonURN   string `json:"person_urn"`
	UserName    string `json:"user_name"`
}

// LoadCredentials resolves the token and person URN: environment first,
// then the token file, and for the URN a userinfo call as last resort.
func LoadCredentials(ctx context.Context, token, tokenFilePath, personURN string) (*Credentials, error) {
	var stored tokenFile
	if data, err := os.ReadFile(tokenFilePath); err == nil {
		if err := json.Unmarshal(data, &stored); err != nil {
			return nil, fmt.Errorf("parsing token file %v: %w", tokenFilePath, err)
		}
	}

	if token == "" {
		token = stored.AccessToken
	}
	if token == "" {
		return nil, fmt.Errorf("%w: no access token in environment or %v", ErrAuth, tokenFilePath)
	}

	if personURN == "" {
		personURN = stored.PersonURN
	}
	if personURN == "" {
		urn, err := fetchPersonURN(ctx, token)
		if err != nil {
			return nil, err
		}
		personURN = urn
	}

	return &Credentials{AccessToken: token, PersonURN: personURN}, nil
}

type userInfo struct {
	Sub  string `json:"sub"`
	Name string `json:"name"`
}

func fetchPersonURN(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("%w: userinfo returned status %v (token expired?)", ErrAuth, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo returned status %v", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decoding userinfo: %w", err)
	}
	if info.Sub == "" {
		return "", fmt.Errorf("userinfo response has no sub field")
	}
	return "urn:li:person:" + info.Sub, nil
}

// Client publishes ugc shares for one member.
type Client struct {
	httpClient *http.Client
	creds      *Credentials
	log        *logger.Logger
	postURL    string
}

func NewClient(creds *Credentials, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		creds:      creds,
		log:        log,
		postURL:    ugcPostsURL,
	}
}

// buildSharePayload is the v2 ugcPosts body for a plain text share.
func buildSharePayload(authorURN, text string) ([]byte, error) {
	payload := map[string]interface{}{
		"author":         authorURN,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]interface{}{
			"com.linkedin.ugc.ShareContent": map[string]interface{}{
				"shareCommentary": map[string]string{
					"text": text,
				},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}
	return json.Marshal(payload)
}

// Publish creates the post and returns its URN.
func (c *Client) Publish(ctx context.Context, text string) (string, error) {
	body, err := buildSharePayload(c.creds.PersonURN, text)
	if err != nil {
		return "", fmt.Errorf("marshaling share payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.postURL, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.creds.AccessToken)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("posting share: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", fmt.Errorf("%w: ugcPosts returned status %v", ErrAuth, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("ugcPosts returned status %v: %s", resp.StatusCode, respBody)
	}

	postURN := resp.Header.Get("x-restli-id")
	if postURN == "" {
		var created struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err == nil {
			postURN = created.ID
		}
	}
	c.log.Info("published post %v", postURN)
	return postURN, nil
}
