package handlers

import (
	"context"
	"io"

	"github.com/bmwadforth/articlehub/internal/articleservice"
	"github.com/bmwadforth/articlehub/internal/authservice"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the envelope every endpoint answers with.
type Response[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
	Error  any    `json:"error"`
}

func success[T any](data T) Response[T] {
	return Response[T]{Status: StatusSuccess, Data: data}
}

func fail[T any](err error) (Response[T], error) {
	return Response[T]{Status: StatusError, Error: err.Error()}, err
}

// ArticleRepository is the slice of articleservice.ArticleService the handlers use.
type ArticleRepository interface {
	GetArticle(ctx context.Context, id int) (*articleservice.Article, error)
	GetArticles(ctx context.Context) ([]articleservice.Article, error)
	NewArticle(ctx context.Context, a *articleservice.Article) (int, error)
	UpdateArticle(ctx context.Context, a *articleservice.Article) error
	GetArticleContent(ctx context.Context, id int) (io.ReadCloser, string, error)
	NewArticleContent(ctx context.Context, id int, contentType string, body io.Reader) (string, error)
	GetArticleThumbnail(ctx context.Context, id int) (io.ReadCloser, string, error)
	NewArticleThumbnail(ctx context.Context, id int, contentType string, body io.Reader) (string, error)
}

type Authenticator interface {
	RegisterUser(ctx context.Context, username, email, password string) (*authservice.User, error)
	Login(ctx context.Context, username, password string) (*authservice.Token, error)
}

type Handlers struct {
	articles ArticleRepository
	auth     Authenticator
}

type GetArticlesRequest struct{}

type GetArticleRequest struct {
	ArticleID int
}

type CreateArticleRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ThumbnailID *string `json:"thumbnail_id"`
	ContentID   *string `json:"content_id"`
}

type UpdateArticleRequest struct {
	ArticleID   int     `json:"-"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	ThumbnailID *string `json:"thumbnail_id"`
	ContentID   *string `json:"content_id"`
}

type GetArticleContentRequest struct {
	ArticleID int
}

type CreateArticleContentRequest struct {
	ArticleID   int
	ContentType string
	Body        io.Reader
}

type GetArticleThumbnailRequest struct {
	ArticleID int
}

type CreateArticleThumbnailRequest struct {
	ArticleID   int
	ContentType string
	Body        io.Reader
}

type RegisterUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type IssueTokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Blob is an open blob stream; the caller closes Body.
type Blob struct {
	Body        io.ReadCloser `json:"-"`
	ContentType string        `json:"content_type"`
}

type CreatedID struct {
	ID int `json:"id"`
}

type CreatedBlob struct {
	BlobID string `json:"blob_id"`
}
