package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/exp/rand"

	"github.com/bmwadforth/articlehub/internal/common"
)

func NewMailService(mb common.MessageConsumer, cfg Config, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:          mb,
		m:           NewMailer(cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Sender, NewTemplate()),
		logger:      logger,
		appName:     cfg.AppName,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// SendWelcomeEmail starts consuming user.created events in the background and mails each new user.
func (s *MailService) SendWelcomeEmail() error {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue)
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handle(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping welcome email consumer")
				return
			}
		}
	}()

	return nil
}

func (s *MailService) handle(msg amqp.Delivery) {
	var evt common.UserCreatedEvent
	if err := json.Unmarshal(msg.Body, &evt); err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	data := welcomeData{Username: evt.Username, AppName: s.appName}
	if err := s.deliver(evt.Email, data); err != nil {
		s.logger.Error("could not send welcome email", slog.String("email", evt.Email), slog.String("error", err.Error()))
	} else {
		s.logger.Info("welcome email sent", slog.String("email", evt.Email))
	}

	// acked either way; a lost welcome email is not worth redelivery
	_ = msg.Ack(false)
}

// deliver retries with exponential backoff and full jitter until an attempt succeeds, attempts run out
// or the service is closed.
func (s *MailService) deliver(recipient string, data any) error {
	var err error
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if err = s.m.send(recipient, data, welcomeTemplate); err == nil {
			return nil
		}

		if attempt == s.maxAttempts-1 {
			break
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying welcome email", slog.String("email", recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return s.ctx.Err()
		}
	}

	return err
}

// Close stops the consumer and waits for the in-flight message to finish.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
