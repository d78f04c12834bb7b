// Package mailer 負責寄送通知信件。
package mailer

import (
	"context"
	"fmt"
	"time"

	"volunteer-hub/internal/worker"

	"go.uber.org/zap"
)

// Message 一封純文字信件
type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// Notifier 非同步送出信件，失敗只記錄不回傳
type Notifier interface {
	Notify(m Message)
}

// NotificationMessage 新通知的信件內容
func NotificationMessage(to, text string) Message {
	return Message{
		To:      to,
		Subject: "New Notification",
		Body:    fmt.Sprintf("Hello, you have a new notification:\n\n%s", text),
	}
}

// LogMailer 未設定 Gmail 時使用，只把信件寫進 log
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, m Message) error {
	zap.L().Info("mail not sent, no mail transport configured",
		zap.String("to", m.To),
		zap.String("subject", m.Subject),
	)
	return nil
}

// Dispatcher 把寄信工作交給 worker pool
type Dispatcher struct {
	mailer  Mailer
	pool    worker.Pool
	timeout time.Duration
}

func NewDispatcher(m Mailer, p worker.Pool, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Dispatcher{mailer: m, pool: p, timeout: timeout}
}

func (d *Dispatcher) Notify(m Message) {
	err := d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.mailer.Send(ctx, m); err != nil {
			zap.L().Error("send mail failed", zap.String("to", m.To), zap.Error(err))
			return
		}
		zap.L().Debug("mail sent", zap.String("to", m.To))
	})
	if err != nil {
		zap.L().Warn("mail dropped", zap.String("to", m.To), zap.Error(err))
	}
}
