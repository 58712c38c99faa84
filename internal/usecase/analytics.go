package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/visionchain/screening-api/internal/logging"
)

const rewardPerScreeningAda = 0.04

var highRiskLabels = map[string]bool{
	"High":          true,
	"Severe":        true,
	"Proliferative": true,
}

// TodayStats summarizes the operator's screenings since midnight UTC.
type TodayStats struct {
	CountToday      int     `json:"countToday"`
	HighRiskPercent float64 `json:"highRiskPercent"`
}

// RecentScreening is one row of the operator's recent-activity feed.
type RecentScreening struct {
	PatientID string    `json:"patientId"`
	RiskLabel string    `json:"riskLabel"`
	CreatedAt time.Time `json:"createdAt"`
}

// DailyCount is one day of the 7-day trend.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DailyReward is one day of accrued demo rewards.
type DailyReward struct {
	Date     string  `json:"date"`
	TotalAda float64 `json:"totalAda"`
}

// RewardInfo aggregates the demo reward accrual.
type RewardInfo struct {
	PerScreeningAda float64       `json:"perScreeningAda"`
	TotalAda        float64       `json:"totalAda"`
	Daily           []DailyReward `json:"daily"`
}

// AnalyticsSummary is the dashboard aggregate for one operator.
type AnalyticsSummary struct {
	RiskDistribution map[string]int `json:"riskDistribution"`
	DailyTrend       []DailyCount   `json:"dailyTrend"`
	Reward           RewardInfo     `json:"reward"`
}

// TodayStats computes today's screening statistics for an operator,
// serving from the cache when a fresh copy exists.
func (uc *ScreeningUseCase) TodayStats(ctx context.Context, operatorID string) (*TodayStats, error) {
	if uc.store == nil || operatorID == "" {
		return &TodayStats{}, nil
	}

	cacheKey := fmt.Sprintf("stats:today:%s", operatorID)
	if cached, err := uc.cache.Get(ctx, cacheKey); err == nil {
		var stats TodayStats
		if err := json.Unmarshal([]byte(cached), &stats); err == nil {
			return &stats, nil
		}
		logging.WithOperation(uc.logger, "usecase.today_stats", "").Warn("failed to decode cached stats")
	} else if !errors.Is(err, redis.Nil) {
		logging.WithOperation(uc.logger, "usecase.today_stats", "").Warn("failed to read stats cache", zap.Error(err))
	}

	facts, err := uc.store.FactsByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	todayStart := time.Now().UTC().Truncate(24 * time.Hour)
	var total, highRisk int
	for _, f := range facts {
		if f.CreatedAt.Before(todayStart) {
			continue
		}
		total++
		if highRiskLabels[f.RiskScoreLabel] {
			highRisk++
		}
	}

	stats := &TodayStats{CountToday: total}
	if total > 0 {
		stats.HighRiskPercent = math.Round(float64(highRisk)/float64(total)*100*100) / 100
	}

	if serialized, err := json.Marshal(stats); err == nil {
		if err := uc.cache.Set(ctx, cacheKey, string(serialized), 30*time.Second); err != nil {
			logging.WithOperation(uc.logger, "usecase.today_stats", "").Warn("failed to cache stats", zap.Error(err))
		}
	}
	return stats, nil
}

// RecentScreenings returns the operator's latest screenings.
func (uc *ScreeningUseCase) RecentScreenings(ctx context.Context, operatorID string, limit int) ([]RecentScreening, error) {
	if uc.store == nil || operatorID == "" {
		return []RecentScreening{}, nil
	}
	if limit <= 0 {
		limit = 5
	}

	rows, err := uc.store.RecentByOperator(ctx, operatorID, limit)
	if err != nil {
		return nil, err
	}
	recent := make([]RecentScreening, 0, len(rows))
	for _, s := range rows {
		recent = append(recent, RecentScreening{
			PatientID: s.PatientID,
			RiskLabel: s.RiskScoreLabel,
			CreatedAt: s.CreatedAt,
		})
	}
	return recent, nil
}

// Analytics builds the dashboard summary for an operator: severity
// distribution, 7-day volume trend, and demo reward accrual.
func (uc *ScreeningUseCase) Analytics(ctx context.Context, operatorID string) (*AnalyticsSummary, error) {
	summary := &AnalyticsSummary{
		RiskDistribution: map[string]int{
			"low": 0, "medium": 0, "high": 0,
			"no_dr": 0, "mild": 0, "moderate": 0, "severe": 0, "proliferative": 0,
		},
		DailyTrend: []DailyCount{},
		Reward:     RewardInfo{PerScreeningAda: rewardPerScreeningAda, Daily: []DailyReward{}},
	}
	if uc.store == nil || operatorID == "" {
		return summary, nil
	}

	facts, err := uc.store.FactsByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	for _, f := range facts {
		key := strings.ReplaceAll(strings.ToLower(f.RiskScoreLabel), " ", "_")
		if _, ok := summary.RiskDistribution[key]; ok {
			summary.RiskDistribution[key]++
		}
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	counts := make(map[string]int, 7)
	order := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		counts[date] = 0
		order = append(order, date)
	}
	for _, f := range facts {
		date := f.CreatedAt.UTC().Format("2006-01-02")
		if _, ok := counts[date]; ok {
			counts[date]++
		}
	}

	for _, date := range order {
		summary.DailyTrend = append(summary.DailyTrend, DailyCount{Date: date, Count: counts[date]})
		summary.Reward.Daily = append(summary.Reward.Daily, DailyReward{
			Date:     date,
			TotalAda: roundAda(float64(counts[date]) * rewardPerScreeningAda),
		})
	}
	summary.Reward.TotalAda = roundAda(float64(len(facts)) * rewardPerScreeningAda)

	return summary, nil
}

func roundAda(v float64) float64 {
	return math.Round(v*100) / 100
}
