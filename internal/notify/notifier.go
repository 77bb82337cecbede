package notify

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

const storeTimeout = 2 * time.Second

// Notifier delivers level-up and mission status notifications. Delivery is
// fire-and-forget: failures are logged, never returned or retried.
type Notifier struct {
	store Store
	now   func() time.Time
}

func NewNotifier(store Store) *Notifier {
	return &Notifier{
		store: store,
		now:   time.Now,
	}
}

func (n *Notifier) NotifyLevelUp(ctx context.Context, userID int, level int) {
	notification := levelUp(userID, level, n.now())
	log.Infof("user %d: %s", userID, notification.Text)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()
	if err := n.store.Push(ctx, notification); err != nil {
		log.Errorf("store level up notification: %s", err)
	}
}

func (n *Notifier) UpdateMissionBadge(ctx context.Context, dailyLeft int, weeklyLeft int) {
	notification := missionStatus(dailyLeft, weeklyLeft, n.now())
	log.Debug(notification.Text)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
	defer cancel()
	if err := n.store.SetBadge(ctx, notification); err != nil {
		log.Errorf("store mission status: %s", err)
	}
}
