package insight

import "context"

// ChatRequest 챗 Q&A 요청. Context에는 DB에서 뽑은 집계 요약을 담는다.
type ChatRequest struct {
	Question string `json:"question"`
	Context  string `json:"context,omitempty"`
}

// ChatAnswer 챗 응답
type ChatAnswer struct {
	Answer string `json:"answer"`
	Model  string `json:"model,omitempty"`
}

// Chat 질문과 집계 컨텍스트를 원격 챗 엔드포인트로 전달한다
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatAnswer, error) {
	var answer ChatAnswer
	if err := c.doRequest(ctx, "POST", "/v1/chat", req, &answer); err != nil {
		return nil, err
	}
	return &answer, nil
}

// PredictRequest 원격 예측 요청 (로컬 계단식 예측과 별개의 모델 기반 예측)
type PredictRequest struct {
	Gender        string `json:"gender"`
	Item          string `json:"item"`
	Manufacturing string `json:"manufacturing"`
	Material      string `json:"material,omitempty"`
	Fit           string `json:"fit,omitempty"`
	Length        string `json:"length,omitempty"`
}

// PredictResponse 원격 예측 응답
type PredictResponse struct {
	ExpectedQuantity float64 `json:"expected_quantity"`
	ExpectedRevenue  float64 `json:"expected_revenue"`
	Confidence       float64 `json:"confidence"`
	Reasoning        string  `json:"reasoning,omitempty"`
}

// Predict 원격 모델 예측을 호출한다
func (c *Client) Predict(ctx context.Context, req PredictRequest) (*PredictResponse, error) {
	var resp PredictResponse
	if err := c.doRequest(ctx, "POST", "/v1/predict", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InsightRequest 대시보드 인사이트 생성 요청
type InsightRequest struct {
	Summary string `json:"summary"`
}

// InsightResponse 생성된 인사이트 텍스트
type InsightResponse struct {
	Insight string `json:"insight"`
}

// GenerateInsight 집계 요약으로부터 서술형 인사이트를 생성한다
func (c *Client) GenerateInsight(ctx context.Context, req InsightRequest) (*InsightResponse, error) {
	var resp InsightResponse
	if err := c.doRequest(ctx, "POST", "/v1/insight", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
