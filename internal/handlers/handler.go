package handlers

import (
	"context"

	"github.com/bmwadforth/articlehub/internal/articleservice"
	"github.com/bmwadforth/articlehub/internal/authservice"
)

func New(articles ArticleRepository, auth Authenticator) *Handlers {
	return &Handlers{articles: articles, auth: auth}
}

func (h *Handlers) GetArticles(ctx context.Context, _ GetArticlesRequest) (Response[[]articleservice.Article], error) {
	articles, err := h.articles.GetArticles(ctx)
	if err != nil {
		return fail[[]articleservice.Article](err)
	}
	return success(articles), nil
}

func (h *Handlers) GetArticle(ctx context.Context, req GetArticleRequest) (Response[*articleservice.Article], error) {
	a, err := h.articles.GetArticle(ctx, req.ArticleID)
	if err != nil {
		return fail[*articleservice.Article](err)
	}
	return success(a), nil
}

func (h *Handlers) CreateArticle(ctx context.Context, req CreateArticleRequest) (Response[CreatedID], error) {
	id, err := h.articles.NewArticle(ctx, &articleservice.Article{
		Title:       req.Title,
		Description: req.Description,
		ThumbnailID: req.ThumbnailID,
		ContentID:   req.ContentID,
	})
	if err != nil {
		return fail[CreatedID](err)
	}
	return success(CreatedID{ID: id}), nil
}

func (h *Handlers) UpdateArticle(ctx context.Context, req UpdateArticleRequest) (Response[*articleservice.Article], error) {
	a := &articleservice.Article{
		ID:          req.ArticleID,
		Title:       req.Title,
		Description: req.Description,
		ThumbnailID: req.ThumbnailID,
		ContentID:   req.ContentID,
	}
	if err := h.articles.UpdateArticle(ctx, a); err != nil {
		return fail[*articleservice.Article](err)
	}
	return success(a), nil
}

func (h *Handlers) GetArticleContent(ctx context.Context, req GetArticleContentRequest) (Response[Blob], error) {
	body, contentType, err := h.articles.GetArticleContent(ctx, req.ArticleID)
	if err != nil {
		return fail[Blob](err)
	}
	return success(Blob{Body: body, ContentType: contentType}), nil
}

func (h *Handlers) CreateArticleContent(ctx context.Context, req CreateArticleContentRequest) (Response[CreatedBlob], error) {
	id, err := h.articles.NewArticleContent(ctx, req.ArticleID, req.ContentType, req.Body)
	if err != nil {
		return fail[CreatedBlob](err)
	}
	return success(CreatedBlob{BlobID: id}), nil
}

func (h *Handlers) GetArticleThumbnail(ctx context.Context, req GetArticleThumbnailRequest) (Response[Blob], error) {
	body, contentType, err := h.articles.GetArticleThumbnail(ctx, req.ArticleID)
	if err != nil {
		return fail[Blob](err)
	}
	return success(Blob{Body: body, ContentType: contentType}), nil
}

func (h *Handlers) CreateArticleThumbnail(ctx context.Context, req CreateArticleThumbnailRequest) (Response[CreatedBlob], error) {
	id, err := h.articles.NewArticleThumbnail(ctx, req.ArticleID, req.ContentType, req.Body)
	if err != nil {
		return fail[CreatedBlob](err)
	}
	return success(CreatedBlob{BlobID: id}), nil
}

func (h *Handlers) RegisterUser(ctx context.Context, req RegisterUserRequest) (Response[*authservice.User], error) {
	u, err := h.auth.RegisterUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return fail[*authservice.User](err)
	}
	return success(u), nil
}

func (h *Handlers) IssueToken(ctx context.Context, req IssueTokenRequest) (Response[*authservice.Token], error) {
	tkn, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail[*authservice.Token](err)
	}
	return success(tkn), nil
}
