package usecase

import (
	"context"
	"encoding/json"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/domain/model"
	"account-pool-service/internal/domain/ports/repository"
	"account-pool-service/internal/infra/logging"

	"github.com/rs/zerolog"
)

const articlePageSize = 10

// ArticleSummary is the public article shape.
type ArticleSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ArticlePage is one page of active articles, newest first.
type ArticlePage struct {
	Articles []ArticleSummary `json:"articles"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// BugReportInput is the client-submitted report. All fields except
// screenshots are required.
type BugReportInput struct {
	APIKey         string   `json:"api_key"`
	AppVersion     string   `json:"app_version"`
	OSVersion      string   `json:"os_version"`
	DeviceModel    string   `json:"device_model"`
	ClientVersion  string   `json:"cursor_version"`
	BugDescription string   `json:"bug_description"`
	OccurrenceTime string   `json:"occurrence_time"`
	ScreenshotURLs []string `json:"screenshot_urls"`
	Severity       string   `json:"severity"`
}

// Compile-time check
var _ SystemUseCase = (*systemUC)(nil)

// SystemUseCase serves the ungated auxiliary content.
type SystemUseCase interface {
	PublicInfo(ctx context.Context) (*model.Announcement, error)
	Articles(ctx context.Context, page int) (*ArticlePage, error)
	ReportBug(ctx context.Context, in BugReportInput) error
	Version() string
}

type systemUC struct {
	info     repository.PublicInfoRepository
	articles repository.ArticleRepository
	reports  repository.BugReportRepository
	version  string
	log      *zerolog.Logger
}

func NewSystemUseCase(
	info repository.PublicInfoRepository,
	articles repository.ArticleRepository,
	reports repository.BugReportRepository,
	version string,
	logger *zerolog.Logger,
) *systemUC {
	return &systemUC{info: info, articles: articles, reports: reports, version: version, log: logger}
}

// PublicInfo returns the stored announcement, or a default welcome payload
// when none is published.
func (s *systemUC) PublicInfo(ctx context.Context) (*model.Announcement, error) {
	defer logging.TraceDuration(s.log, "SystemUC.PublicInfo")()

	value, err := s.info.GetValue(ctx, repository.NoTX, "announcement")
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	if err == nil && value != "" {
		var ann model.Announcement
		if jsonErr := json.Unmarshal([]byte(value), &ann); jsonErr == nil {
			return &ann, nil
		}
		s.log.Warn().Str("key", "announcement").Msg("stored announcement is not valid JSON")
	}

	return &model.Announcement{
		Type:      "info",
		Closeable: true,
		Props: model.AnnouncementProps{
			Title:       "Welcome",
			Description: "No announcements at this time.",
		},
		Actions: []model.AnnouncementAction{},
	}, nil
}

func (s *systemUC) Articles(ctx context.Context, page int) (*ArticlePage, error) {
	defer logging.TraceDuration(s.log, "SystemUC.Articles")()

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * articlePageSize

	articles, err := s.articles.ListActive(ctx, repository.NoTX, offset, articlePageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.articles.CountActive(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}

	out := make([]ArticleSummary, 0, len(articles))
	for _, a := range articles {
		out = append(out, ArticleSummary{ID: a.ID, Title: a.Title, Content: a.Content})
	}
	return &ArticlePage{Articles: out, Total: total, Page: page, PageSize: articlePageSize}, nil
}

func (s *systemUC) ReportBug(ctx context.Context, in BugReportInput) error {
	defer logging.TraceDuration(s.log, "SystemUC.ReportBug")()

	if in.AppVersion == "" || in.OSVersion == "" || in.DeviceModel == "" ||
		in.ClientVersion == "" || in.BugDescription == "" ||
		in.OccurrenceTime == "" || in.Severity == "" {
		return domain.ErrInvalidArgument
	}
	if in.ScreenshotURLs == nil {
		in.ScreenshotURLs = []string{}
	}

	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return s.reports.Save(ctx, repository.NoTX, model.NewBugReport(string(raw)))
}

func (s *systemUC) Version() string { return s.version }
