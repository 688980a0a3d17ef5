package repository

import (
	"context"

	"account-pool-service/internal/domain/model"
)

// PublicInfoRepository reads keyed JSON documents from the public_info table.
type PublicInfoRepository interface {
	GetValue(ctx context.Context, tx Tx, key string) (string, error)
}

type ArticleRepository interface {
	ListActive(ctx context.Context, tx Tx, offset, limit int) ([]*model.Article, error)
	CountActive(ctx context.Context, tx Tx) (int, error)
}

type BugReportRepository interface {
	Save(ctx context.Context, tx Tx, r *model.BugReport) error
}
