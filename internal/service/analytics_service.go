package service

import (
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
)

const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

const maxFocusDomains = 3

type AnalyticsService struct {
	Submissions SubmissionStore
	Now         func() time.Time
}

func NewAnalyticsService(submissions SubmissionStore) *AnalyticsService {
	return &AnalyticsService{Submissions: submissions, Now: time.Now}
}

type DomainShare struct {
	Domain     string  `json:"domain"`
	Cases      int     `json:"cases"`
	Percentage float64 `json:"percentage"`
}

type WeeklyProgress struct {
	Week         string  `json:"week"`
	Cases        int     `json:"cases"`
	AverageScore float64 `json:"score"`
}

type AnalyticsOverview struct {
	Period              string           `json:"period"`
	TotalCases          int              `json:"total_cases"`
	AverageScore        float64          `json:"average_score"`
	ImprovementRate     float64          `json:"improvement_rate"`
	TimeSpentHours      float64          `json:"time_spent_hours"`
	DomainBreakdown     []DomainShare    `json:"domain_breakdown"`
	WeeklyProgress      []WeeklyProgress `json:"weekly_progress"`
	Strengths           []string         `json:"strengths"`
	AreasForImprovement []string         `json:"areas_for_improvement"`
}

// PeriodStart 统计区间的起点
func PeriodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case PeriodWeek:
		return now.AddDate(0, 0, -7), nil
	case PeriodMonth:
		return now.AddDate(0, -1, 0), nil
	case PeriodYear:
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, util.ErrInvalidPeriod
	}
}

// Overview 由区间内的提交记录计算分析数据；只有已评分的提交参与平均分
func (s *AnalyticsService) Overview(ctx context.Context, userID, period string) (*AnalyticsOverview, error) {
	if period == "" {
		period = PeriodMonth
	}
	start, err := PeriodStart(period, s.Now())
	if err != nil {
		return nil, err
	}

	subs, err := s.Submissions.FindByUserSince(ctx, userID, start)
	if err != nil {
		logger.Log.Warn("Failed to load submissions for analytics",
			zap.String("user_id", userID), zap.String("period", period), zap.Error(err))
		subs = nil
	}
	return Summarize(period, start, subs), nil
}

type scoreAcc struct {
	cases  int
	scored int
	total  float64
}

func (a scoreAcc) average() float64 {
	if a.scored == 0 {
		return 0
	}
	return round1(a.total / float64(a.scored))
}

func (a *scoreAcc) add(sub *model.Submission) {
	a.cases++
	if sub.Score != nil {
		a.scored++
		a.total += *sub.Score
	}
}

// Summarize 纯计算，便于测试
func Summarize(period string, start time.Time, subs []model.SubmissionWithCase) *AnalyticsOverview {
	out := &AnalyticsOverview{
		Period:              period,
		DomainBreakdown:     []DomainShare{},
		WeeklyProgress:      []WeeklyProgress{},
		Strengths:           []string{},
		AreasForImprovement: []string{},
	}
	if len(subs) == 0 {
		return out
	}

	var (
		overall  scoreAcc
		seconds  int
		domains  = make(map[string]*scoreAcc)
		weeks    = make(map[int]*scoreAcc)
		weekKeys []int
	)
	for i := range subs {
		sub := &subs[i]
		overall.add(&sub.Submission)
		seconds += sub.TimeSpent

		d := domains[sub.Case.Domain]
		if d == nil {
			d = &scoreAcc{}
			domains[sub.Case.Domain] = d
		}
		d.add(&sub.Submission)

		idx := int(sub.SubmittedAt.Sub(start) / (7 * 24 * time.Hour))
		w := weeks[idx]
		if w == nil {
			w = &scoreAcc{}
			weeks[idx] = w
			weekKeys = append(weekKeys, idx)
		}
		w.add(&sub.Submission)
	}

	out.TotalCases = overall.cases
	out.AverageScore = overall.average()
	out.TimeSpentHours = round1(float64(seconds) / 3600)

	for name, acc := range domains {
		out.DomainBreakdown = append(out.DomainBreakdown, DomainShare{
			Domain:     name,
			Cases:      acc.cases,
			Percentage: round1(float64(acc.cases) / float64(overall.cases) * 100),
		})
	}
	sort.Slice(out.DomainBreakdown, func(i, j int) bool {
		a, b := out.DomainBreakdown[i], out.DomainBreakdown[j]
		if a.Cases != b.Cases {
			return a.Cases > b.Cases
		}
		return a.Domain < b.Domain
	})

	sort.Ints(weekKeys)
	for _, k := range weekKeys {
		out.WeeklyProgress = append(out.WeeklyProgress, WeeklyProgress{
			Week:         fmt.Sprintf("Week %d", k+1),
			Cases:        weeks[k].cases,
			AverageScore: weeks[k].average(),
		})
	}
	out.ImprovementRate = improvement(weeks, weekKeys)
	out.Strengths, out.AreasForImprovement = focusDomains(domains)
	return out
}

// improvement 首个和最后一个有评分的周之间平均分的变化百分比
func improvement(weeks map[int]*scoreAcc, keys []int) float64 {
	var scored []*scoreAcc
	for _, k := range keys {
		if weeks[k].scored > 0 {
			scored = append(scored, weeks[k])
		}
	}
	if len(scored) < 2 {
		return 0
	}
	first, last := scored[0].average(), scored[len(scored)-1].average()
	if first == 0 {
		return 0
	}
	return round1((last - first) / first * 100)
}

// focusDomains 按领域平均分划分强项与待提高项，两组不重叠
func focusDomains(domains map[string]*scoreAcc) ([]string, []string) {
	type ranked struct {
		domain string
		avg    float64
	}
	var list []ranked
	for name, acc := range domains {
		if acc.scored > 0 {
			list = append(list, ranked{domain: name, avg: acc.average()})
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].avg != list[j].avg {
			return list[i].avg > list[j].avg
		}
		return list[i].domain < list[j].domain
	})

	strengths := []string{}
	weaknesses := []string{}
	n := min(maxFocusDomains, (len(list)+1)/2)
	for i := 0; i < n; i++ {
		strengths = append(strengths, list[i].domain)
	}
	for i := len(list) - 1; i >= n && len(weaknesses) < maxFocusDomains; i-- {
		weaknesses = append(weaknesses, list[i].domain)
	}
	return strengths, weaknesses
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
