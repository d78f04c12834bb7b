package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// sendInterval Gmail API 兩封信之間的最小間隔
const sendInterval = time.Second

// GmailMailer 透過 Gmail API 以已授權帳號寄信
type GmailMailer struct {
	from string
	send func(ctx context.Context, msg *gmail.Message) error

	mu       sync.Mutex
	lastSend time.Time
}

// NewGmailMailer 讀取 OAuth client 憑證與已授權的 token 檔建立 Gmail client
func NewGmailMailer(ctx context.Context, credentialsFile, tokenFile, from string) (*GmailMailer, error) {
	creds, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read gmail credentials: %w", err)
	}
	cfg, err := google.ConfigFromJSON(creds, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gmail credentials: %w", err)
	}

	raw, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read gmail token: %w", err)
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(raw, tok); err != nil {
		return nil, fmt.Errorf("failed to parse gmail token: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &GmailMailer{
		from: from,
		send: func(ctx context.Context, msg *gmail.Message) error {
			_, err := svc.Users.Messages.Send("me", msg).Context(ctx).Do()
			return err
		},
	}, nil
}

func (g *GmailMailer) Send(ctx context.Context, m Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.lastSend.IsZero() {
		if wait := sendInterval - time.Since(g.lastSend); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	msg := &gmail.Message{Raw: encodeMessage(g.from, m)}
	if err := g.send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	g.lastSend = time.Now()
	return nil
}

// encodeMessage 組成 RFC 822 純文字信件並以 base64url 編碼
func encodeMessage(from string, m Message) string {
	var b strings.Builder
	if from != "" {
		fmt.Fprintf(&b, "From: %s\r\n", from)
	}
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(m.Body)
	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
