// Package messaging provides a NATS client wrapper for pub/sub messaging
// across the marketplace services. It handles connection lifecycle,
// subject-based subscriptions, and convenience methods for wishlist
// lifecycle events and user notifications.
package messaging

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// NATS subject patterns used across the marketplace services.
const (
	SubjectWishlistCreated = "wishlist.created"
	SubjectWishlistUpdated = "wishlist.updated"
	SubjectWishlistRematch = "wishlist.rematch"
	SubjectUserNotify      = "notify.user" // + .<user_id>
)

// Client wraps the NATS connection with helper methods for pub/sub.
type Client struct {
	conn *nats.Conn
	mu   sync.Mutex
	subs map[string]*nats.Subscription
}

// Config holds NATS connection settings.
type Config struct {
	URL           string        // nats://localhost:4222
	Name          string        // client name for identification
	ReconnectWait time.Duration // time between reconnect attempts
	MaxReconnects int           // max reconnect attempts (-1 for infinite)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:           "nats://localhost:4222",
		Name:          "marketplace",
		ReconnectWait: 2 * time.Second,
		MaxReconnects: -1, // infinite reconnects
	}
}

// NewClient connects to NATS with the given config and returns a ready client.
// It returns an error if the initial connection fails.
func NewClient(config Config) (*Client, error) {
	opts := []nats.Option{
		nats.Name(config.Name),
		nats.ReconnectWait(config.ReconnectWait),
		nats.MaxReconnects(config.MaxReconnects),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("[nats] disconnected: %v", err)
			} else {
				log.Printf("[nats] disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("[nats] reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Printf("[nats] connection closed")
		}),
	}

	nc, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	log.Printf("[nats] connected to %s", nc.ConnectedUrl())

	return &Client{
		conn: nc,
		subs: make(map[string]*nats.Subscription),
	}, nil
}

// Publish sends data to the given NATS subject.
func (c *Client) Publish(subject string, data []byte) error {
	return c.conn.Publish(subject, data)
}

// Subscribe registers a handler for the given subject and stores the
// subscription internally for later cleanup.
func (c *Client) Subscribe(subject string, handler func(msg *nats.Msg)) error {
	sub, err := c.conn.Subscribe(subject, handler)
	if err != nil {
		return fmt.Errorf("nats subscribe %s: %w", subject, err)
	}

	c.mu.Lock()
	c.subs[subject] = sub
	c.mu.Unlock()

	return nil
}

// SubscribeWishlistCreated subscribes to wishlist creation events.
func (c *Client) SubscribeWishlistCreated(handler func(data []byte)) error {
	return c.Subscribe(SubjectWishlistCreated, func(msg *nats.Msg) {
		handler(msg.Data)
	})
}

// SubscribeWishlistUpdated subscribes to wishlist update events.
func (c *Client) SubscribeWishlistUpdated(handler func(data []byte)) error {
	return c.Subscribe(SubjectWishlistUpdated, func(msg *nats.Msg) {
		handler(msg.Data)
	})
}

// SubscribeWishlistRematch subscribes to explicit rematch requests.
func (c *Client) SubscribeWishlistRematch(handler func(data []byte)) error {
	return c.Subscribe(SubjectWishlistRematch, func(msg *nats.Msg) {
		handler(msg.Data)
	})
}

// PublishWishlistCreated publishes a wishlist creation event.
func (c *Client) PublishWishlistCreated(data []byte) error {
	return c.Publish(SubjectWishlistCreated, data)
}

// PublishWishlistUpdated publishes a wishlist update event.
func (c *Client) PublishWishlistUpdated(data []byte) error {
	return c.Publish(SubjectWishlistUpdated, data)
}

// PublishWishlistRematch publishes an explicit rematch request.
func (c *Client) PublishWishlistRematch(data []byte) error {
	return c.Publish(SubjectWishlistRematch, data)
}

// PublishUserNotification publishes a notification payload to the
// notify.user.<userID> subject. Delivery is fire-and-forget.
func (c *Client) PublishUserNotification(userID int64, data []byte) error {
	return c.Publish(SubjectUserNotify+"."+strconv.FormatInt(userID, 10), data)
}

// SubscribeUserNotifications subscribes to notifications for a single user.
func (c *Client) SubscribeUserNotifications(userID int64, handler func(data []byte)) error {
	subject := SubjectUserNotify + "." + strconv.FormatInt(userID, 10)
	return c.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
}

// Close drains all active subscriptions and closes the NATS connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for subject, sub := range c.subs {
		if err := sub.Drain(); err != nil {
			log.Printf("[nats] drain %s: %v", subject, err)
		}
	}
	c.subs = make(map[string]*nats.Subscription)

	if err := c.conn.Drain(); err != nil {
		log.Printf("[nats] connection drain: %v", err)
	}

	log.Printf("[nats] client closed")
}
