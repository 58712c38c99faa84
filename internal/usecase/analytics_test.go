package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/visionchain/screening-api/internal/repository"
)

func TestTodayStatsComputesHighRiskPercent(t *testing.T) {
	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)
	store := &stubScreeningStore{facts: []repository.ScreeningFact{
		{RiskScoreLabel: "Severe", CreatedAt: now},
		{RiskScoreLabel: "No DR", CreatedAt: now},
		{RiskScoreLabel: "Mild", CreatedAt: now},
		{RiskScoreLabel: "Proliferative", CreatedAt: now},
		{RiskScoreLabel: "Severe", CreatedAt: yesterday},
	}}
	uc := NewScreeningUseCase(store, newStubCache(), &stubClassifier{}, zap.NewNop())

	stats, err := uc.TodayStats(context.Background(), "op-1")
	if err != nil {
		t.Fatalf("today stats failed: %v", err)
	}
	if stats.CountToday != 4 {
		t.Fatalf("expected 4 screenings today, got %d", stats.CountToday)
	}
	if stats.HighRiskPercent != 50 {
		t.Fatalf("expected 50%% high risk, got %v", stats.HighRiskPercent)
	}
}

func TestTodayStatsServesFromCache(t *testing.T) {
	cache := newStubCache()
	cached, _ := json.Marshal(&TodayStats{CountToday: 9, HighRiskPercent: 33.33})
	cache.values["stats:today:op-1"] = string(cached)

	store := &stubScreeningStore{facts: []repository.ScreeningFact{
		{RiskScoreLabel: "Severe", CreatedAt: time.Now().UTC()},
	}}
	uc := NewScreeningUseCase(store, cache, &stubClassifier{}, zap.NewNop())

	stats, err := uc.TodayStats(context.Background(), "op-1")
	if err != nil {
		t.Fatalf("today stats failed: %v", err)
	}
	if stats.CountToday != 9 {
		t.Fatalf("expected cached value, got %+v", stats)
	}
}

func TestTodayStatsWithoutStore(t *testing.T) {
	uc := NewScreeningUseCase(nil, newStubCache(), &stubClassifier{}, zap.NewNop())
	stats, err := uc.TodayStats(context.Background(), "op-1")
	if err != nil {
		t.Fatalf("today stats failed: %v", err)
	}
	if stats.CountToday != 0 || stats.HighRiskPercent != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

func TestRecentScreeningsDefaultLimit(t *testing.T) {
	now := time.Now().UTC()
	rows := make([]*repository.Screening, 0, 8)
	for i := 0; i < 8; i++ {
		rows = append(rows, &repository.Screening{
			PatientID:      "PATIENT-1",
			RiskScoreLabel: "Mild",
			CreatedAt:      now.Add(-time.Duration(i) * time.Minute),
		})
	}
	store := &stubScreeningStore{recent: rows}
	uc := NewScreeningUseCase(store, newStubCache(), &stubClassifier{}, zap.NewNop())

	recent, err := uc.RecentScreenings(context.Background(), "op-1", 0)
	if err != nil {
		t.Fatalf("recent screenings failed: %v", err)
	}
	if len(recent) != 5 {
		t.Fatalf("expected default limit of 5, got %d", len(recent))
	}
	if recent[0].RiskLabel != "Mild" {
		t.Fatalf("unexpected row: %+v", recent[0])
	}
}

func TestAnalyticsSummary(t *testing.T) {
	now := time.Now().UTC()
	store := &stubScreeningStore{facts: []repository.ScreeningFact{
		{RiskScoreLabel: "No DR", CreatedAt: now},
		{RiskScoreLabel: "No DR", CreatedAt: now},
		{RiskScoreLabel: "Severe", CreatedAt: now},
		{RiskScoreLabel: "Moderate", CreatedAt: now.AddDate(0, 0, -2)},
		{RiskScoreLabel: "Proliferative", CreatedAt: now.AddDate(0, 0, -30)},
	}}
	uc := NewScreeningUseCase(store, newStubCache(), &stubClassifier{}, zap.NewNop())

	summary, err := uc.Analytics(context.Background(), "op-1")
	if err != nil {
		t.Fatalf("analytics failed: %v", err)
	}

	if summary.RiskDistribution["no_dr"] != 2 {
		t.Fatalf("expected 2 no_dr, got %d", summary.RiskDistribution["no_dr"])
	}
	if summary.RiskDistribution["severe"] != 1 || summary.RiskDistribution["proliferative"] != 1 {
		t.Fatalf("unexpected distribution: %v", summary.RiskDistribution)
	}

	if len(summary.DailyTrend) != 7 {
		t.Fatalf("expected a 7-day trend, got %d days", len(summary.DailyTrend))
	}
	todayKey := now.Truncate(24 * time.Hour).Format("2006-01-02")
	last := summary.DailyTrend[len(summary.DailyTrend)-1]
	if last.Date != todayKey || last.Count != 3 {
		t.Fatalf("expected 3 screenings today, got %+v", last)
	}

	// 5 screenings at 0.04 ADA each.
	if summary.Reward.TotalAda != 0.2 {
		t.Fatalf("expected total reward 0.2, got %v", summary.Reward.TotalAda)
	}
	if summary.Reward.PerScreeningAda != 0.04 {
		t.Fatalf("unexpected per-screening reward: %v", summary.Reward.PerScreeningAda)
	}
	if summary.Reward.Daily[len(summary.Reward.Daily)-1].TotalAda != 0.12 {
		t.Fatalf("expected today's reward 0.12, got %v", summary.Reward.Daily[len(summary.Reward.Daily)-1].TotalAda)
	}
}

func TestAnalyticsWithoutOperator(t *testing.T) {
	uc := NewScreeningUseCase(&stubScreeningStore{}, newStubCache(), &stubClassifier{}, zap.NewNop())
	summary, err := uc.Analytics(context.Background(), "")
	if err != nil {
		t.Fatalf("analytics failed: %v", err)
	}
	if len(summary.DailyTrend) != 0 {
		t.Fatalf("expected empty trend for anonymous operator, got %v", summary.DailyTrend)
	}
}
