package articleservice

import (
	"database/sql"
	"time"

	"github.com/bmwadforth/articlehub/internal/blobstore"
	"github.com/bmwadforth/articlehub/internal/common"
)

type Article struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// ThumbnailID and ContentID are blob ids; nil until something is uploaded.
	ThumbnailID *string   `json:"thumbnail_id"`
	ContentID   *string   `json:"content_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// clone copies a including the blob id pointers so cached values are never shared.
func (a Article) clone() Article {
	if a.ThumbnailID != nil {
		id := *a.ThumbnailID
		a.ThumbnailID = &id
	}
	if a.ContentID != nil {
		id := *a.ContentID
		a.ContentID = &id
	}
	return a
}

// cloneArticles never returns nil, so an empty list always encodes as [].
func cloneArticles(articles []Article) []Article {
	out := make([]Article, len(articles))
	for i, a := range articles {
		out[i] = a.clone()
	}
	return out
}

type ArticleModel struct {
	db *sql.DB
}

type ArticleService struct {
	m     *ArticleModel
	blobs blobstore.BlobStore
	c     *common.Cache
}

// reference names one of the blob columns on an article.
type reference int

const (
	referenceContent reference = iota
	referenceThumbnail
)

func (r reference) column() string {
	if r == referenceThumbnail {
		return "thumbnail_id"
	}
	return "content_id"
}

func (r reference) of(a *Article) *string {
	if r == referenceThumbnail {
		return a.ThumbnailID
	}
	return a.ContentID
}
