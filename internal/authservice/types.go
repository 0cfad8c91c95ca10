package authservice

import (
	"database/sql"
	"time"

	"github.com/bmwadforth/articlehub/internal/common"
)

// TokenLifetime is how long an issued token stays valid.
const TokenLifetime = 3 * time.Hour

type AuthService struct {
	m      *DBModel
	tokens *TokenManager
	mb     common.MessageProducer
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// Claims are the identity facts carried inside a token.
type Claims struct {
	UserID   int
	Username string
}

type Token struct {
	Token  string    `json:"token"`
	Expiry time.Time `json:"expiry"`
}
