package service

import (
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/repository"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"caseforge_backend/pkg/monitoring"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	caseCacheSize = 256
	// caseCacheTTL 库外修改（停用、编辑）最多延迟这么久可见
	caseCacheTTL = 5 * time.Minute
)

type cachedCase struct {
	c       model.Case
	expires time.Time
}

type CaseService struct {
	Cases   CaseStore
	Storage *StorageService
	Now     func() time.Time
	cache   *lru.Cache
}

func NewCaseService(cases CaseStore, storage *StorageService) *CaseService {
	cache, err := lru.New(caseCacheSize)
	if err != nil {
		logger.Log.Warn("Case cache disabled", zap.Error(err))
	}
	return &CaseService{Cases: cases, Storage: storage, Now: time.Now, cache: cache}
}

// CaseQuery 案例列表的筛选条件，零值表示不限制
type CaseQuery struct {
	Domain     string
	Difficulty int
	Tags       []string
	Search     string
}

// ListCases 按条件筛选启用的案例，失败时返回空列表
func (s *CaseService) ListCases(ctx context.Context, q CaseQuery) []model.Case {
	cases, err := s.Cases.List(ctx, repository.CaseFilter{Domain: q.Domain, Difficulty: q.Difficulty})
	if err != nil {
		logger.Log.Warn("Failed to list cases",
			zap.String("domain", q.Domain),
			zap.Int("difficulty", q.Difficulty),
			zap.Error(err))
		return []model.Case{}
	}

	cases = FilterByTags(cases, q.Tags)
	return SearchCases(cases, q.Search)
}

// FilterByTags 保留至少包含一个指定标签的案例
func FilterByTags(cases []model.Case, tags []string) []model.Case {
	if len(tags) == 0 {
		return cases
	}

	out := make([]model.Case, 0, len(cases))
	for _, c := range cases {
		for _, t := range c.Tags {
			if slices.ContainsFunc(tags, func(want string) bool { return strings.EqualFold(want, t) }) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// SearchCases 对标题、领域、标签做不区分大小写的子串匹配，空查询原样返回
func SearchCases(cases []model.Case, query string) []model.Case {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cases
	}

	out := make([]model.Case, 0, len(cases))
	for _, c := range cases {
		if matchesCase(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func matchesCase(c model.Case, q string) bool {
	if strings.Contains(strings.ToLower(c.Title), q) || strings.Contains(strings.ToLower(c.Domain), q) {
		return true
	}
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func (s *CaseService) Domains(ctx context.Context) []string {
	domains, err := s.Cases.Domains(ctx)
	if err != nil {
		logger.Log.Warn("Failed to load case domains", zap.Error(err))
		return []string{}
	}
	return domains
}

// GetCase 按 ID 或 slug 查询案例，结果在进程内 LRU 中缓存 caseCacheTTL
func (s *CaseService) GetCase(ctx context.Context, idOrSlug string) (*model.Case, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get(idOrSlug); ok {
			entry := v.(cachedCase)
			if s.Now().Before(entry.expires) {
				monitoring.CacheLookups.WithLabelValues("case", "hit").Inc()
				c := entry.c
				return &c, nil
			}
			s.cache.Remove(idOrSlug)
		}
		monitoring.CacheLookups.WithLabelValues("case", "miss").Inc()
	}

	var (
		c   *model.Case
		err error
	)
	if _, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		c, err = s.Cases.FindByID(ctx, idOrSlug)
	} else {
		c, err = s.Cases.FindBySlug(ctx, idOrSlug)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}

	s.remember(*c)
	return c, nil
}

func (s *CaseService) remember(c model.Case) {
	if s.cache == nil {
		return
	}
	entry := cachedCase{c: c, expires: s.Now().Add(caseCacheTTL)}
	s.cache.Add(c.ID, entry)
	if c.Slug != "" {
		s.cache.Add(c.Slug, entry)
	}
}

// CreateCaseRequest 管理员上传案例的表单
type CreateCaseRequest struct {
	Title              string   `json:"title" form:"title"`
	Domain             string   `json:"domain" form:"domain"`
	Brief              string   `json:"brief" form:"brief"`
	EvaluationCriteria string   `json:"evaluation_criteria" form:"evaluation_criteria"`
	Difficulty         int      `json:"difficulty" form:"difficulty"`
	EstimatedTime      *int     `json:"estimated_time" form:"estimated_time"`
	Tags               []string `json:"tags" form:"tags"`
}

// Validate 必填字段缺失或难度不在 1..3 时拒绝，不做任何写入
func (r *CreateCaseRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Domain) == "" ||
		strings.TrimSpace(r.Brief) == "" || strings.TrimSpace(r.EvaluationCriteria) == "" ||
		r.Difficulty == 0 {
		return util.ErrMissingCaseFields
	}
	if !model.ValidDifficulty(r.Difficulty) {
		return util.ErrInvalidDifficulty
	}
	return nil
}

// CreateCase 创建案例，可选附件先上传到存储
func (s *CaseService) CreateCase(ctx context.Context, req *CreateCaseRequest, exhibit *FileUpload) (*model.Case, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	caseSlug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	c := &model.Case{
		Slug:               caseSlug,
		Title:              strings.TrimSpace(req.Title),
		Domain:             strings.TrimSpace(req.Domain),
		Brief:              strings.TrimSpace(req.Brief),
		EvaluationCriteria: strings.TrimSpace(req.EvaluationCriteria),
		Difficulty:         req.Difficulty,
		EstimatedTime:      req.EstimatedTime,
		Tags:               normalizeTags(req.Tags),
		IsActive:           true,
	}

	if exhibit != nil && s.Storage != nil {
		url, err := s.Storage.Store(ctx, "cases/"+caseSlug, exhibit, util.AllowedExhibitExtensions)
		if err != nil {
			return nil, err
		}
		c.ExhibitURL = url
	}

	if err := s.Cases.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create case: %w", err)
	}

	logger.Log.Info("Case created",
		zap.String("case_id", c.ID),
		zap.String("slug", c.Slug),
		zap.Int("difficulty", c.Difficulty))
	s.remember(*c)
	return c, nil
}

func (s *CaseService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "case"
	}

	candidate := base
	for i := 0; i < 5; i++ {
		exists, err := s.Cases.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = base + "-" + uuid.New().String()[:8]
	}
	return candidate, nil
}

// normalizeTags 去掉空白与重复，兼容逗号分隔的单个表单字段
func normalizeTags(raw []string) []string {
	var tags []string
	for _, r := range raw {
		for _, t := range strings.Split(r, ",") {
			t = strings.TrimSpace(t)
			if t != "" && !slices.Contains(tags, t) {
				tags = append(tags, t)
			}
		}
	}
	return tags
}
