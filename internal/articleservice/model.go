package articleservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bmwadforth/articlehub/internal/common"
)

func newArticleModel(db *sql.DB) *ArticleModel {
	return &ArticleModel{db: db}
}

const articleColumns = `id, title, description, thumbnail_id, content_id, created_at, updated_at, version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*Article, error) {
	var (
		a         Article
		thumbnail sql.NullString
		content   sql.NullString
	)

	err := row.Scan(&a.ID, &a.Title, &a.Description, &thumbnail, &content, &a.CreatedAt, &a.UpdatedAt, &a.Version)
	if err != nil {
		return nil, err
	}

	if thumbnail.Valid {
		a.ThumbnailID = &thumbnail.String
	}
	if content.Valid {
		a.ContentID = &content.String
	}

	return &a, nil
}

func (m *ArticleModel) insert(ctx context.Context, a *Article) error {
	query := `
		INSERT INTO articles (title, description, thumbnail_id, content_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at, version`

	args := []any{a.Title, a.Description, a.ThumbnailID, a.ContentID}

	return m.db.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt, &a.Version)
}

func (m *ArticleModel) getArticleById(ctx context.Context, id int) (*Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		WHERE id = $1`

	a, err := scanArticle(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return a, nil
}

// getArticles returns every article, newest first.
func (m *ArticleModel) getArticles(ctx context.Context) ([]Article, error) {
	query := `
		SELECT ` + articleColumns + `
		FROM articles
		ORDER BY created_at DESC, id DESC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

// updateArticle overwrites every mutable column. There is no version check: the last writer wins.
func (m *ArticleModel) updateArticle(ctx context.Context, a *Article) error {
	query := `
		UPDATE articles
		SET title = $1, description = $2, thumbnail_id = $3, content_id = $4, updated_at = NOW(), version = version + 1
		WHERE id = $5
		RETURNING created_at, updated_at, version`

	err := m.db.QueryRowContext(ctx, query, a.Title, a.Description, a.ThumbnailID, a.ContentID, a.ID).Scan(&a.CreatedAt, &a.UpdatedAt, &a.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *ArticleModel) setReference(ctx context.Context, id int, ref reference, blobID string) error {
	query := fmt.Sprintf(`
		UPDATE articles
		SET %s = $1, updated_at = NOW(), version = version + 1
		WHERE id = $2`, ref.column())

	res, err := m.db.ExecContext(ctx, query, blobID, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return common.ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
