// Package notify publishes user-facing notifications over NATS. The matching
// engine only ever emits one kind: "your wishlist matched N listings". The
// notification service owning persistence and delivery lives elsewhere; this
// side is fire-and-forget.
package notify

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/OpenProtects/willing-old-sell/internal/messaging"
)

// TypeMatch is the notification type for wishlist match results.
const TypeMatch = "match"

// Notification is the payload published on notify.user.<user_id>.
type Notification struct {
	ID        string `json:"id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	RelatedID int64  `json:"related_id"`
}

// Notifier publishes notifications via NATS.
type Notifier struct {
	nats *messaging.Client
}

// NewNotifier creates a notifier using the given NATS client.
func NewNotifier(nats *messaging.Client) *Notifier {
	return &Notifier{nats: nats}
}

// MatchFound publishes a single match notification to the wishlist owner,
// naming the wishlist and the number of matches.
func (n *Notifier) MatchFound(userID, wishlistID int64, wishlistName string, count int) error {
	msg := Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     "心愿单匹配成功",
		Content:   fmt.Sprintf("您的愿望“%s”已匹配到%d个相关物品，快去看看吧！", wishlistName, count),
		Type:      TypeMatch,
		RelatedID: wishlistID,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify: marshal match notification: %w", err)
	}
	if err := n.nats.PublishUserNotification(userID, data); err != nil {
		return fmt.Errorf("notify: publish match notification for user %d: %w", userID, err)
	}

	log.Printf("[notify] match notification published: user=%d wishlist=%d count=%d",
		userID, wishlistID, count)
	return nil
}
