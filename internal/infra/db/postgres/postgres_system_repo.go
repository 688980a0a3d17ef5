package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/domain/model"
	"account-pool-service/internal/domain/ports/repository"
)

var (
	_ repository.PublicInfoRepository = (*publicInfoRepo)(nil)
	_ repository.ArticleRepository    = (*articleRepo)(nil)
	_ repository.BugReportRepository  = (*bugReportRepo)(nil)
)

type publicInfoRepo struct {
	pool *pgxpool.Pool
}

func NewPublicInfoRepo(pool *pgxpool.Pool) repository.PublicInfoRepository {
	return &publicInfoRepo{pool: pool}
}

func (r *publicInfoRepo) GetValue(ctx context.Context, tx repository.Tx, key string) (string, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return "", err
	}
	var value string
	err = ex.QueryRow(ctx,
		`SELECT value FROM public_info WHERE key=$1 AND status=1;`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get public info: %w", err)
	}
	return value, nil
}

type articleRepo struct {
	pool *pgxpool.Pool
}

func NewArticleRepo(pool *pgxpool.Pool) repository.ArticleRepository {
	return &articleRepo{pool: pool}
}

func (r *articleRepo) ListActive(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.Article, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `
SELECT id, title, content, status, created_at
  FROM articles
 WHERE status=1
 ORDER BY created_at DESC
 LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()
	var out []*model.Article
	for rows.Next() {
		var a model.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *articleRepo) CountActive(ctx context.Context, tx repository.Tx) (int, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return 0, err
	}
	var n int
	if err := ex.QueryRow(ctx, `SELECT COUNT(*) FROM articles WHERE status=1;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return n, nil
}

type bugReportRepo struct {
	pool *pgxpool.Pool
}

func NewBugReportRepo(pool *pgxpool.Pool) repository.BugReportRepository {
	return &bugReportRepo{pool: pool}
}

func (r *bugReportRepo) Save(ctx context.Context, tx repository.Tx, b *model.BugReport) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx,
		`INSERT INTO bug_reports (id, description, status, created_at) VALUES ($1,$2,$3,$4);`,
		b.ID, b.Description, b.Status, b.CreatedAt)
	return err
}
