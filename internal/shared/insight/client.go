package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// =============================================================================
// Client 외부 예측/인사이트/챗 서비스 기본 클라이언트
// 토큰 관리와 공통 HTTP 요청을 제공하고 예측, 인사이트, 챗 엔드포인트가 공유한다
// =============================================================================

type Client struct {
	baseURL     string
	apiKey      string
	tokenCache  string       // 캐시된 access_token
	tokenExpire time.Time    // 토큰 만료 시각
	mu          sync.RWMutex // 토큰 캐시 보호
	httpClient  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// getAccessToken API 키를 단기 access_token으로 교환한다.
// 더블 체크 락으로 토큰을 캐시하고 만료 60초 전에 미리 갱신한다.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.RLock()
	if c.tokenCache != "" && time.Now().Before(c.tokenExpire) {
		token := c.tokenCache
		c.mu.RUnlock()
		return token, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// 다른 goroutine이 이미 갱신했을 수 있다
	if c.tokenCache != "" && time.Now().Before(c.tokenExpire) {
		return c.tokenCache, nil
	}

	reqBody := map[string]string{"api_key": c.apiKey}
	bodyBytes, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, "POST",
		c.baseURL+"/v1/auth/token", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("토큰 요청 생성 실패: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("토큰 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Code        int    `json:"code"`
		Msg         string `json:"msg"`
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"` // 초 단위
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("토큰 응답 파싱 실패: %w", err)
	}
	if result.Code != 0 {
		return "", fmt.Errorf("인사이트 서비스 토큰 오류[%d]: %s", result.Code, result.Msg)
	}

	c.tokenCache = result.AccessToken
	c.tokenExpire = time.Now().Add(time.Duration(result.ExpiresIn-60) * time.Second)

	return result.AccessToken, nil
}

// doRequest 토큰을 붙여 API 요청을 실행하고 통일 에러 코드를 처리한다
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	token, err := c.getAccessToken(ctx)
	if err != nil {
		return fmt.Errorf("액세스 토큰 획득 실패: %w", err)
	}

	var reqBody *bytes.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("요청 직렬화 실패: %w", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("요청 생성 실패: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("인사이트 서비스 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Code int             `json:"code"`
		Msg  string          `json:"msg"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("응답 파싱 실패: %w", err)
	}
	if envelope.Code != 0 {
		return fmt.Errorf("인사이트 서비스 오류[%d]: %s", envelope.Code, envelope.Msg)
	}
	if result != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return fmt.Errorf("데이터 파싱 실패: %w", err)
		}
	}
	return nil
}
