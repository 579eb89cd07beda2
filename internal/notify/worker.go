package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/3ddruckrorbas/Druck/config"
)

// Message is one outbound admin notification.
type Message struct {
	Subject string
	Body    string
}

// Sender delivers a single message on the external channel.
type Sender interface {
	Send(msg Message) error
}

// WebPushSender delivers messages as Web Push notifications to the
// fixed admin subscription from the configuration.
type WebPushSender struct {
	options webpush.Options
	sub     webpush.Subscription
}

// NewWebPushSender builds a sender from the push configuration.
func NewWebPushSender(cfg *config.PushConfig) *WebPushSender {
	return &WebPushSender{
		options: webpush.Options{
			VAPIDPublicKey:  cfg.PublicKey,
			VAPIDPrivateKey: cfg.PrivateKey,
			Subscriber:      cfg.Subject,
			TTL:             cfg.TTL,
		},
		sub: webpush.Subscription{
			Endpoint: cfg.Admin.Endpoint,
			Keys: webpush.Keys{
				P256dh: cfg.Admin.P256DH,
				Auth:   cfg.Admin.Auth,
			},
		},
	}
}

// Send posts the message as a JSON payload to the admin subscription.
func (s *WebPushSender) Send(msg Message) error {
	payload, err := json.Marshal(map[string]string{
		"title": msg.Subject,
		"body":  msg.Body,
	})
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	resp, err := webpush.SendNotification(payload, &s.sub, &s.options)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}

// WorkerPool delivers notifications in the background. Dispatch never
// blocks the caller and delivery failures are logged and swallowed; the
// channel is strictly best-effort.
type WorkerPool struct {
	size   int
	jobs   chan Message
	sender Sender
}

// NewWorkerPool creates a pool of size workers delivering via sender.
func NewWorkerPool(size int, sender Sender) *WorkerPool {
	return &WorkerPool{
		size:   size,
		jobs:   make(chan Message, size*4),
		sender: sender,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("notify worker %d started", id)
	for {
		select {
		case msg := <-wp.jobs:
			if err := wp.sender.Send(msg); err != nil {
				log.Printf("notify worker %d: sending %q: %v", id, msg.Subject, err)
			}
		case <-ctx.Done():
			log.Printf("notify worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a message for delivery. A full queue drops the
// message rather than blocking the request path.
func (wp *WorkerPool) Dispatch(subject, body string) {
	select {
	case wp.jobs <- Message{Subject: subject, Body: body}:
	default:
		log.Printf("notify: queue full, dropping %q", subject)
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Message {
	return wp.jobs
}
