package lock

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"azhaboost/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Codes issued by GenerateCode stay valid this long until SetExpiration narrows them.
const provisionalValidity = 24 * time.Hour

// TuyaClient calls the Tuya cloud OpenAPI with HMAC-SHA256 request signing.
type TuyaClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	http         *http.Client
	now          func() time.Time
	log          *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewTuyaClient(cfg utils.LockConfig, client *http.Client, log *zap.Logger) *TuyaClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &TuyaClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		http:         client,
		now:          time.Now,
		log:          log.With(zap.String("integration", "tuya")),
	}
}

type tuyaEnvelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Msg     string          `json:"msg"`
	Result  json.RawMessage `json:"result"`
}

type tuyaToken struct {
	AccessToken string `json:"access_token"`
	ExpireTime  int64  `json:"expire_time"`
}

func (c *TuyaClient) GenerateCode(ctx context.Context, deviceID string) (string, error) {
	now := c.now()
	body := map[string]any{
		"type":           "multiple",
		"effective_time": now.Unix(),
		"invalid_time":   now.Add(provisionalValidity).Unix(),
	}

	var result struct {
		Password string `json:"offline_temp_password"`
	}
	path := "/v1.0/devices/" + deviceID + "/door-lock/offline-temp-password"
	if err := c.call(ctx, http.MethodPost, path, body, &result); err != nil {
		return "", fmt.Errorf("generate code for device %s: %w", deviceID, err)
	}
	if result.Password == "" {
		return "", fmt.Errorf("generate code for device %s: empty password", deviceID)
	}

	return result.Password, nil
}

func (c *TuyaClient) SetExpiration(ctx context.Context, deviceID, code string, expiresAt time.Time) error {
	body := map[string]any{
		"name":           "azhaboost guest",
		"password":       code,
		"effective_time": c.now().Unix(),
		"invalid_time":   expiresAt.Unix(),
	}

	path := "/v1.0/devices/" + deviceID + "/door-lock/temp-password"
	if err := c.call(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("set code expiration for device %s: %w", deviceID, err)
	}
	return nil
}

func (c *TuyaClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	var tok tuyaToken
	if err := c.do(ctx, http.MethodGet, "/v1.0/token?grant_type=1", nil, "", &tok); err != nil {
		return "", fmt.Errorf("get access token: %w", err)
	}

	c.accessToken = tok.AccessToken
	// refresh a minute early
	c.tokenExpiry = c.now().Add(time.Duration(tok.ExpireTime)*time.Second - time.Minute)
	return c.accessToken, nil
}

func (c *TuyaClient) call(ctx context.Context, method, path string, body, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, body, token, out)
}

func (c *TuyaClient) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	ts := strconv.FormatInt(c.now().UnixMilli(), 10)
	nonce := uuid.NewString()
	req.Header.Set("client_id", c.clientID)
	req.Header.Set("t", ts)
	req.Header.Set("nonce", nonce)
	req.Header.Set("sign_method", "HMAC-SHA256")
	req.Header.Set("sign", Sign(c.clientID, c.clientSecret, token, ts, nonce, method, path, payload))
	if token != "" {
		req.Header.Set("access_token", token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Tuya request failed", zap.Error(err), zap.String("path", path))
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env tuyaEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !env.Success {
		c.log.Error("Tuya rejected request",
			zap.String("path", path),
			zap.Int("code", env.Code),
			zap.String("msg", env.Msg),
		)
		return fmt.Errorf("tuya error %d: %s", env.Code, env.Msg)
	}

	if out != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}
	return nil
}

// Sign computes the Tuya OpenAPI request signature. token is empty for the token request itself.
func Sign(clientID, secret, token, ts, nonce, method, pathWithQuery string, body []byte) string {
	bodyHash := sha256.Sum256(body)
	stringToSign := strings.Join([]string{
		method,
		hex.EncodeToString(bodyHash[:]),
		"",
		pathWithQuery,
	}, "\n")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(clientID + token + ts + nonce + stringToSign))
	return strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
}
