package articleservice

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bmwadforth/articlehub/internal/blobstore"
	"github.com/bmwadforth/articlehub/internal/common"
)

var (
	ErrNoContent   = fmt.Errorf("article has no content: %w", common.ErrRecordNotFound)
	ErrNoThumbnail = fmt.Errorf("article has no thumbnail: %w", common.ErrRecordNotFound)
)

var tracer = otel.Tracer("github.com/bmwadforth/articlehub/internal/articleservice")

func NewArticleService(db *sql.DB, blobs blobstore.BlobStore, cache *common.Cache) *ArticleService {
	return &ArticleService{m: newArticleModel(db), blobs: blobs, c: cache}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetArticle returns an article by its ID.
func (s *ArticleService) GetArticle(ctx context.Context, id int) (a *Article, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.GetArticle", trace.WithAttributes(attribute.Int("article.id", id)))
	defer func() { endSpan(span, err) }()

	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyArticle(id)); ok {
		article := cached.(Article).clone()
		return &article, nil
	}

	a, err = s.m.getArticleById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyArticle(id), a.clone())
	return a, nil
}

// GetArticles returns all articles, newest first.
func (s *ArticleService) GetArticles(ctx context.Context) (articles []Article, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.GetArticles")
	defer func() { endSpan(span, err) }()

	if cached, ok := s.c.Get(common.CacheKeyArticles()); ok {
		return cloneArticles(cached.([]Article)), nil
	}

	articles, err = s.m.getArticles(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyArticles(), cloneArticles(articles))
	span.SetAttributes(attribute.Int("article.count", len(articles)))
	return articles, nil
}

// NewArticle persists a new article and returns its assigned ID. Any ID on the input is ignored.
func (s *ArticleService) NewArticle(ctx context.Context, a *Article) (id int, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.NewArticle")
	defer func() { endSpan(span, err) }()

	v := common.NewValidator()
	validateTitle(v, a.Title)
	validateBlobID(v, a.ThumbnailID, "thumbnail_id")
	validateBlobID(v, a.ContentID, "content_id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	if err := s.m.insert(ctx, a); err != nil {
		return 0, err
	}

	s.c.Invalidate(common.CacheKeyArticles())
	span.SetAttributes(attribute.Int("article.id", a.ID))
	return a.ID, nil
}

// UpdateArticle overwrites the whole record identified by a.ID.
func (s *ArticleService) UpdateArticle(ctx context.Context, a *Article) (err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.UpdateArticle", trace.WithAttributes(attribute.Int("article.id", a.ID)))
	defer func() { endSpan(span, err) }()

	v := common.NewValidator()
	validateInt(v, a.ID, "id")
	validateTitle(v, a.Title)
	validateBlobID(v, a.ThumbnailID, "thumbnail_id")
	validateBlobID(v, a.ContentID, "content_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.m.updateArticle(ctx, a); err != nil {
		return err
	}

	s.c.Invalidate(common.CacheKeyArticle(a.ID), common.CacheKeyArticles())
	return nil
}

// GetArticleContent opens the content blob of an article along with its content type.
func (s *ArticleService) GetArticleContent(ctx context.Context, id int) (io.ReadCloser, string, error) {
	return s.getBlob(ctx, id, referenceContent)
}

// GetArticleThumbnail opens the thumbnail blob of an article along with its content type.
func (s *ArticleService) GetArticleThumbnail(ctx context.Context, id int) (io.ReadCloser, string, error) {
	return s.getBlob(ctx, id, referenceThumbnail)
}

// NewArticleContent stores body as the article's content and returns the new blob id.
func (s *ArticleService) NewArticleContent(ctx context.Context, id int, contentType string, body io.Reader) (string, error) {
	return s.putBlob(ctx, id, referenceContent, contentType, body)
}

// NewArticleThumbnail stores body as the article's thumbnail and returns the new blob id.
func (s *ArticleService) NewArticleThumbnail(ctx context.Context, id int, contentType string, body io.Reader) (string, error) {
	return s.putBlob(ctx, id, referenceThumbnail, contentType, body)
}

func (s *ArticleService) getBlob(ctx context.Context, id int, ref reference) (rc io.ReadCloser, contentType string, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.getBlob", trace.WithAttributes(
		attribute.Int("article.id", id),
		attribute.String("article.reference", ref.column()),
	))
	defer func() { endSpan(span, err) }()

	a, err := s.GetArticle(ctx, id)
	if err != nil {
		return nil, "", err
	}

	blobID := ref.of(a)
	if blobID == nil {
		if ref == referenceThumbnail {
			return nil, "", ErrNoThumbnail
		}
		return nil, "", ErrNoContent
	}

	return s.blobs.Get(ctx, *blobID)
}

// putBlob writes the blob before recording the reference. A failure in between leaves an orphaned blob,
// which is tolerated.
func (s *ArticleService) putBlob(ctx context.Context, id int, ref reference, contentType string, body io.Reader) (blobID string, err error) {
	ctx, span := tracer.Start(ctx, "ArticleService.putBlob", trace.WithAttributes(
		attribute.Int("article.id", id),
		attribute.String("article.reference", ref.column()),
		attribute.String("blob.content_type", contentType),
	))
	defer func() { endSpan(span, err) }()

	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return "", v.ValidationError()
	}

	if _, err := s.m.getArticleById(ctx, id); err != nil {
		return "", err
	}

	blobID, err = s.blobs.Put(ctx, contentType, body)
	if err != nil {
		return "", err
	}

	if err := s.m.setReference(ctx, id, ref, blobID); err != nil {
		return "", err
	}

	s.c.Invalidate(common.CacheKeyArticle(id), common.CacheKeyArticles())
	span.SetAttributes(attribute.String("blob.id", blobID))
	return blobID, nil
}
