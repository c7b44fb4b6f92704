package meeting

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"medibook/models"

	"go.uber.org/zap"
)

// Meeting parameters fixed by product: every consulting meeting is a
// scheduled 30-minute call.
const (
	meetingTopic    = "Consulting meeting"
	meetingAgenda   = "Customer Booking"
	meetingDuration = 30
	meetingTimezone = "Asia/Karachi"
	// scheduled meeting type in the Zoom API
	meetingTypeScheduled = 2
)

// Provisioner provisions a video meeting for a consulting booking.
type Provisioner interface {
	// CreateMeeting provisions a scheduled meeting at start. A zero start
	// falls back to one hour from now.
	CreateMeeting(ctx context.Context, start time.Time) (*models.Meeting, error)
}

// ZoomCredentials is process-wide configuration for the server-to-server
// OAuth app.
type ZoomCredentials struct {
	AccountID    string
	ClientID     string
	ClientSecret string
}

// ZoomProvisioner implements Provisioner against the Zoom REST API.
type ZoomProvisioner struct {
	creds    ZoomCredentials
	client   *http.Client
	logger   *zap.Logger
	tokenURL string
	apiURL   string
}

// NewZoomProvisioner creates a Zoom-backed meeting provisioner with an
// explicit timeout on all outbound calls.
func NewZoomProvisioner(creds ZoomCredentials, logger *zap.Logger) *ZoomProvisioner {
	return &ZoomProvisioner{
		creds:    creds,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
		tokenURL: "https://zoom.us/oauth/token",
		apiURL:   "https://api.zoom.us/v2",
	}
}

// getAccessToken exchanges the account credentials for a short-lived bearer
// token. Tokens are not cached; every meeting creation re-authenticates,
// which is acceptable at this call volume.
func (p *ZoomProvisioner) getAccessToken(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s?grant_type=account_credentials&account_id=%s",
		p.tokenURL, url.QueryEscape(p.creds.AccountID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	basic := base64.StdEncoding.EncodeToString([]byte(p.creds.ClientID + ":" + p.creds.ClientSecret))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("zoom authentication failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		p.logger.Error("zoom token exchange rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return "", fmt.Errorf("zoom authentication failed: status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode zoom token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("zoom authentication failed: empty access token")
	}
	return tokenResp.AccessToken, nil
}

// CreateMeeting provisions a scheduled meeting at start.
func (p *ZoomProvisioner) CreateMeeting(ctx context.Context, start time.Time) (*models.Meeting, error) {
	accessToken, err := p.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	if start.IsZero() {
		start = time.Now().Add(time.Hour)
	}

	payload := map[string]any{
		"topic":      meetingTopic,
		"type":       meetingTypeScheduled,
		"start_time": start.UTC().Format(time.RFC3339),
		"duration":   meetingDuration,
		"timezone":   meetingTimezone,
		"agenda":     meetingAgenda,
		"settings": map[string]any{
			"host_video":        true,
			"participant_video": true,
			"join_before_host":  false,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meeting payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.apiURL+"/users/me/meetings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build meeting request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zoom meeting creation failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		p.logger.Error("zoom meeting creation rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody))
		return nil, fmt.Errorf("zoom meeting creation failed: status %d", resp.StatusCode)
	}

	var meeting models.Meeting
	if err := json.NewDecoder(resp.Body).Decode(&meeting); err != nil {
		return nil, fmt.Errorf("failed to decode zoom meeting response: %w", err)
	}

	p.logger.Info("zoom meeting created",
		zap.Int64("meeting_id", meeting.ID),
		zap.String("start_time", meeting.StartTime))
	return &meeting, nil
}
