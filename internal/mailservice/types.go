package mailservice

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/bmwadforth/articlehub/internal/common"
)

const (
	welcomeTemplate = "welcome_email.tmpl"

	defaultMaxAttempts = 5
	defaultBaseDelay   = 500 * time.Millisecond
)

type MailService struct {
	mb      common.MessageConsumer
	m       Mailer
	logger  MailLogger
	appName string

	maxAttempts int
	baseDelay   time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	// AppName is shown to the recipient in the welcome email.
	AppName string
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Template struct{}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

// welcomeData feeds welcome_email.tmpl.
type welcomeData struct {
	Username string
	AppName  string
}
