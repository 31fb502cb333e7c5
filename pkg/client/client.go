package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emberforge/lifequest/pkg/domain"
)

// Client is the LifeQuest API client. Paths are relative to the
// configured base URL plus /api. Each call is a single attempt; retry
// policy, if any, belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a new API client. token may be empty for anonymous calls.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken replaces the bearer token used on subsequent requests.
// Pass "" to drop authentication after logout.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// AuthResponse is the payload returned by the register and login endpoints.
type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Register creates a new account and returns its token and user record.
func (c *Client) Register(ctx context.Context, email, password, username string) (*AuthResponse, error) {
	var auth AuthResponse
	body := map[string]string{"email": email, "password": password, "username": username}
	if err := c.post(ctx, "/api/auth/register", body, &auth); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	return &auth, nil
}

// Login exchanges credentials for a token and user record.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var auth AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.post(ctx, "/api/auth/login", body, &auth); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return &auth, nil
}

// Profile returns the authenticated user's record.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if err := c.get(ctx, "/api/user/profile", &u); err != nil {
		return nil, fmt.Errorf("client.Profile: %w", err)
	}
	return &u, nil
}

// SetAvatar sets the user's avatar. The server accepts this once; the
// avatar is immutable from this client's perspective afterwards.
func (c *Client) SetAvatar(ctx context.Context, avatar domain.Avatar) error {
	if err := c.doRequest(ctx, http.MethodPut, "/api/user/avatar", avatar, nil); err != nil {
		return fmt.Errorf("client.SetAvatar: %w", err)
	}
	return nil
}

// Stats returns the authenticated user's derived stats snapshot.
func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var s domain.Stats
	if err := c.get(ctx, "/api/user/stats", &s); err != nil {
		return nil, fmt.Errorf("client.Stats: %w", err)
	}
	return &s, nil
}

// ActiveQuests returns the user's active quests.
func (c *Client) ActiveQuests(ctx context.Context) ([]domain.Quest, error) {
	var quests []domain.Quest
	if err := c.get(ctx, "/api/quests/active", &quests); err != nil {
		return nil, fmt.Errorf("client.ActiveQuests: %w", err)
	}
	return quests, nil
}

// CompletedQuests returns the user's completed quests, newest first.
func (c *Client) CompletedQuests(ctx context.Context) ([]domain.Quest, error) {
	var quests []domain.Quest
	if err := c.get(ctx, "/api/quests/completed", &quests); err != nil {
		return nil, fmt.Errorf("client.CompletedQuests: %w", err)
	}
	return quests, nil
}

// CreateQuestRequest is the payload for creating a quest from the form.
type CreateQuestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	QuestType   string `json:"quest_type"`
	Difficulty  string `json:"difficulty"`
	XPReward    int    `json:"xp_reward"`
	GoldReward  int    `json:"gold_reward"`
	Category    string `json:"category"`
}

// CreateQuest creates a new quest.
func (c *Client) CreateQuest(ctx context.Context, req CreateQuestRequest) (*domain.Quest, error) {
	var created domain.Quest
	if err := c.post(ctx, "/api/quests/create", req, &created); err != nil {
		return nil, fmt.Errorf("client.CreateQuest: %w", err)
	}
	return &created, nil
}

// GenerateQuest asks the server to generate a quest for the category.
func (c *Client) GenerateQuest(ctx context.Context, category string) (*domain.Quest, error) {
	params := url.Values{}
	params.Set("category", category)

	var quest domain.Quest
	if err := c.post(ctx, "/api/quests/generate?"+params.Encode(), nil, &quest); err != nil {
		return nil, fmt.Errorf("client.GenerateQuest: %w", err)
	}
	return &quest, nil
}

// CompleteQuest marks a quest completed and returns the earned rewards.
func (c *Client) CompleteQuest(ctx context.Context, questID string) (*domain.CompletionReward, error) {
	var reward domain.CompletionReward
	path := "/api/quests/" + url.PathEscape(questID) + "/complete"
	if err := c.post(ctx, path, nil, &reward); err != nil {
		return nil, fmt.Errorf("client.CompleteQuest: %w", err)
	}
	return &reward, nil
}

// UploadPhotoProof submits a photo as completion evidence for a quest.
func (c *Client) UploadPhotoProof(ctx context.Context, questID, filename string, photo []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("quest_id", questID); err != nil {
		return fmt.Errorf("client.UploadPhotoProof: write field: %w", err)
	}
	part, err := w.CreateFormFile("photo", filename)
	if err != nil {
		return fmt.Errorf("client.UploadPhotoProof: create part: %w", err)
	}
	if _, err := part.Write(photo); err != nil {
		return fmt.Errorf("client.UploadPhotoProof: write photo: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("client.UploadPhotoProof: close writer: %w", err)
	}

	if err := c.doRaw(ctx, http.MethodPost, "/api/verification/photo", &buf, w.FormDataContentType(), nil); err != nil {
		return fmt.Errorf("client.UploadPhotoProof: %w", err)
	}
	return nil
}

// GenerateQuiz submits study notes and returns the generated questions.
func (c *Client) GenerateQuiz(ctx context.Context, questID, notes string) ([]domain.QuizQuestion, error) {
	params := url.Values{}
	params.Set("quest_id", questID)
	params.Set("notes", notes)

	var resp struct {
		Questions []domain.QuizQuestion `json:"questions"`
	}
	if err := c.post(ctx, "/api/verification/quiz/generate?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("client.GenerateQuiz: %w", err)
	}
	return resp.Questions, nil
}

// SubmitQuiz posts the ordered answer sequence and returns the grade.
func (c *Client) SubmitQuiz(ctx context.Context, questID string, answers []string) (*domain.QuizResult, error) {
	var result domain.QuizResult
	body := map[string]any{"quest_id": questID, "answers": answers}
	if err := c.post(ctx, "/api/verification/quiz/submit", body, &result); err != nil {
		return nil, fmt.Errorf("client.SubmitQuiz: %w", err)
	}
	return &result, nil
}

// Leaderboard returns the global XP ranking. No auth required.
func (c *Client) Leaderboard(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	var entries []domain.LeaderboardEntry
	if err := c.get(ctx, "/api/leaderboard", &entries); err != nil {
		return nil, fmt.Errorf("client.Leaderboard: %w", err)
	}
	return entries, nil
}

// ShopItems returns the shop catalog. No auth required.
func (c *Client) ShopItems(ctx context.Context) ([]domain.ShopItem, error) {
	var items []domain.ShopItem
	if err := c.get(ctx, "/api/shop/items", &items); err != nil {
		return nil, fmt.Errorf("client.ShopItems: %w", err)
	}
	return items, nil
}

// AddFriend links another player to the current user by username.
func (c *Client) AddFriend(ctx context.Context, username string) error {
	body := map[string]string{"friend_username": username}
	if err := c.post(ctx, "/api/friends/add", body, nil); err != nil {
		return fmt.Errorf("client.AddFriend: %w", err)
	}
	return nil
}

// Friends returns the current user's friends.
func (c *Client) Friends(ctx context.Context) ([]domain.Friend, error) {
	var friends []domain.Friend
	if err := c.get(ctx, "/api/friends", &friends); err != nil {
		return nil, fmt.Errorf("client.Friends: %w", err)
	}
	return friends, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.doRaw(ctx, method, path, reqBody, contentType, out)
}

func (c *Client) doRaw(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB max error body
		if readErr != nil {
			return &APIError{StatusCode: resp.StatusCode}
		}
		var apiErr struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Detail != "" {
			return &APIError{StatusCode: resp.StatusCode, Detail: apiErr.Detail}
		}
		return &APIError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
