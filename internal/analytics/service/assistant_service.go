package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/modaworks/vesti/internal/analytics/repository"
	"github.com/modaworks/vesti/internal/shared/insight"
)

// AssistantService 챗 Q&A. DB 집계 요약을 컨텍스트로 붙여
// 외부 챗 엔드포인트에 위임한다. 추론은 전부 외부 서비스 몫이다.
type AssistantService struct {
	stats         *repository.StatsRepository
	insightClient *insight.Client
}

func NewAssistantService(stats *repository.StatsRepository, insightClient *insight.Client) *AssistantService {
	return &AssistantService{stats: stats, insightClient: insightClient}
}

// buildContext 챗/인사이트 요청에 붙일 집계 요약 텍스트
func (s *AssistantService) buildContext(ctx context.Context) (string, error) {
	summary, err := s.stats.GetSalesSummary(ctx)
	if err != nil {
		return "", fmt.Errorf("집계 요약 생성 실패: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "총 누적판매수량: %d\n", summary.TotalQuantity)
	fmt.Fprintf(&b, "총 누적판매금액: %.0f\n", summary.TotalRevenue)
	fmt.Fprintf(&b, "평균 판매가: %.0f\n", summary.AvgPrice)
	fmt.Fprintf(&b, "SKU 수: %d\n", summary.SKUCount)

	materials, err := s.stats.ListMaterialStats(ctx)
	if err == nil && len(materials) > 0 {
		top := materials
		if len(top) > 5 {
			top = top[:5]
		}
		b.WriteString("소재별 판매 상위:\n")
		for _, m := range top {
			fmt.Fprintf(&b, "- %s: %d개\n", m.MaterialName, m.TotalQuantity)
		}
	}
	return b.String(), nil
}

// Ask 질문에 집계 컨텍스트를 붙여 외부 챗 서비스로 전달한다
func (s *AssistantService) Ask(ctx context.Context, question string) (*insight.ChatAnswer, error) {
	if s.insightClient == nil {
		return nil, fmt.Errorf("챗 서비스가 설정되지 않았습니다")
	}

	aggContext, err := s.buildContext(ctx)
	if err != nil {
		// 컨텍스트 생성 실패 시 질문만 전달
		aggContext = ""
	}

	return s.insightClient.Chat(ctx, insight.ChatRequest{
		Question: question,
		Context:  aggContext,
	})
}

// GenerateInsight 현재 집계 요약으로 서술형 인사이트를 생성한다
func (s *AssistantService) GenerateInsight(ctx context.Context) (*insight.InsightResponse, error) {
	if s.insightClient == nil {
		return nil, fmt.Errorf("인사이트 서비스가 설정되지 않았습니다")
	}

	summary, err := s.buildContext(ctx)
	if err != nil {
		return nil, err
	}

	return s.insightClient.GenerateInsight(ctx, insight.InsightRequest{Summary: summary})
}
