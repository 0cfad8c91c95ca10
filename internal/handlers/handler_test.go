package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bmwadforth/articlehub/internal/articleservice"
	"github.com/bmwadforth/articlehub/internal/authservice"
	"github.com/bmwadforth/articlehub/internal/common"
)

type mockArticles struct {
	mock.Mock
}

func (m *mockArticles) GetArticle(ctx context.Context, id int) (*articleservice.Article, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*articleservice.Article)
	return a, args.Error(1)
}

func (m *mockArticles) GetArticles(ctx context.Context) ([]articleservice.Article, error) {
	args := m.Called(ctx)
	a, _ := args.Get(0).([]articleservice.Article)
	return a, args.Error(1)
}

func (m *mockArticles) NewArticle(ctx context.Context, a *articleservice.Article) (int, error) {
	args := m.Called(ctx, a)
	return args.Int(0), args.Error(1)
}

func (m *mockArticles) UpdateArticle(ctx context.Context, a *articleservice.Article) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockArticles) GetArticleContent(ctx context.Context, id int) (io.ReadCloser, string, error) {
	args := m.Called(ctx, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.String(1), args.Error(2)
}

func (m *mockArticles) NewArticleContent(ctx context.Context, id int, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, id, contentType, body)
	return args.String(0), args.Error(1)
}

func (m *mockArticles) GetArticleThumbnail(ctx context.Context, id int) (io.ReadCloser, string, error) {
	args := m.Called(ctx, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.String(1), args.Error(2)
}

func (m *mockArticles) NewArticleThumbnail(ctx context.Context, id int, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, id, contentType, body)
	return args.String(0), args.Error(1)
}

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) RegisterUser(ctx context.Context, username, email, password string) (*authservice.User, error) {
	args := m.Called(ctx, username, email, password)
	u, _ := args.Get(0).(*authservice.User)
	return u, args.Error(1)
}

func (m *mockAuth) Login(ctx context.Context, username, password string) (*authservice.Token, error) {
	args := m.Called(ctx, username, password)
	t, _ := args.Get(0).(*authservice.Token)
	return t, args.Error(1)
}

func TestGetArticle(t *testing.T) {
	testCases := []struct {
		name        string
		article     *articleservice.Article
		err         error
		wantStatus  string
		expectedErr error
	}{
		{
			name:       "found",
			article:    &articleservice.Article{ID: 3, Title: "Hello"},
			wantStatus: StatusSuccess,
		},
		{
			name:        "not found",
			err:         common.ErrRecordNotFound,
			wantStatus:  StatusError,
			expectedErr: common.ErrRecordNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			articles := new(mockArticles)
			articles.On("GetArticle", mock.Anything, 3).Return(tc.article, tc.err).Once()

			resp, err := New(articles, nil).GetArticle(context.Background(), GetArticleRequest{ArticleID: 3})
			assert.Equal(t, tc.expectedErr, err)
			assert.Equal(t, tc.wantStatus, resp.Status)
			assert.Equal(t, tc.article, resp.Data)
			if err != nil {
				assert.Equal(t, err.Error(), resp.Error)
			} else {
				assert.Nil(t, resp.Error)
			}
			articles.AssertExpectations(t)
		})
	}
}

func TestGetArticles(t *testing.T) {
	articles := new(mockArticles)
	list := []articleservice.Article{{ID: 2}, {ID: 1}}
	articles.On("GetArticles", mock.Anything).Return(list, nil).Once()

	resp, err := New(articles, nil).GetArticles(context.Background(), GetArticlesRequest{})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, list, resp.Data)
}

func TestCreateArticle(t *testing.T) {
	articles := new(mockArticles)
	thumb := "0b6f6b1e-8a57-4f3c-9d0e-2f7a1c1d9e44"
	articles.On("NewArticle", mock.Anything, &articleservice.Article{Title: "T", Description: "D", ThumbnailID: &thumb}).Return(11, nil).Once()

	resp, err := New(articles, nil).CreateArticle(context.Background(), CreateArticleRequest{Title: "T", Description: "D", ThumbnailID: &thumb})
	require.NoError(t, err)
	assert.Equal(t, CreatedID{ID: 11}, resp.Data)
	articles.AssertExpectations(t)
}

func TestUpdateArticle(t *testing.T) {
	articles := new(mockArticles)
	articles.On("UpdateArticle", mock.Anything, mock.MatchedBy(func(a *articleservice.Article) bool {
		return a.ID == 4 && a.Title == "New title"
	})).Return(nil).Once()

	resp, err := New(articles, nil).UpdateArticle(context.Background(), UpdateArticleRequest{ArticleID: 4, Title: "New title", Description: "D"})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Data.ID)
	articles.AssertExpectations(t)
}

func TestArticleBlobs(t *testing.T) {
	articles := new(mockArticles)
	body := strings.NewReader("payload")
	articles.On("NewArticleContent", mock.Anything, 5, "text/plain", body).Return("blob-1", nil).Once()
	articles.On("NewArticleThumbnail", mock.Anything, 5, "image/png", body).Return("blob-2", nil).Once()
	articles.On("GetArticleContent", mock.Anything, 5).Return(io.NopCloser(bytes.NewReader([]byte("payload"))), "text/plain", nil).Once()
	articles.On("GetArticleThumbnail", mock.Anything, 5).Return(nil, "", articleservice.ErrNoThumbnail).Once()

	h := New(articles, nil)
	ctx := context.Background()

	created, err := h.CreateArticleContent(ctx, CreateArticleContentRequest{ArticleID: 5, ContentType: "text/plain", Body: body})
	require.NoError(t, err)
	assert.Equal(t, "blob-1", created.Data.BlobID)

	created, err = h.CreateArticleThumbnail(ctx, CreateArticleThumbnailRequest{ArticleID: 5, ContentType: "image/png", Body: body})
	require.NoError(t, err)
	assert.Equal(t, "blob-2", created.Data.BlobID)

	blob, err := h.GetArticleContent(ctx, GetArticleContentRequest{ArticleID: 5})
	require.NoError(t, err)
	defer blob.Data.Body.Close()
	got, err := io.ReadAll(blob.Data.Body)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
	assert.Equal(t, "text/plain", blob.Data.ContentType)

	blob, err = h.GetArticleThumbnail(ctx, GetArticleThumbnailRequest{ArticleID: 5})
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
	assert.Equal(t, StatusError, blob.Status)

	articles.AssertExpectations(t)
}

func TestAuthHandlers(t *testing.T) {
	auth := new(mockAuth)
	auth.On("RegisterUser", mock.Anything, "alice", "alice@example.com", "Password123!").Return(&authservice.User{ID: 1, Username: "alice"}, nil).Once()
	auth.On("Login", mock.Anything, "alice", "wrong").Return(nil, authservice.ErrAuthenticationFailure).Once()

	h := New(nil, auth)
	ctx := context.Background()

	reg, err := h.RegisterUser(ctx, RegisterUserRequest{Username: "alice", Email: "alice@example.com", Password: "Password123!"})
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Data.ID)

	tkn, err := h.IssueToken(ctx, IssueTokenRequest{Username: "alice", Password: "wrong"})
	assert.True(t, errors.Is(err, authservice.ErrAuthenticationFailure))
	assert.Nil(t, tkn.Data)
	assert.Equal(t, StatusError, tkn.Status)

	auth.AssertExpectations(t)
}
