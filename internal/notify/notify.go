// Package notify provides desktop notifications via D-Bus.
package notify

import "sync"

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (nopNotifier) Close(uint32) error                  { return nil }

const toastTimeout = 5000

// Toaster keeps a single "now playing" notification on screen, replacing
// it on every new track.
type Toaster struct {
	mu     sync.Mutex
	n      Notifier
	lastID uint32
}

// NewToaster wraps n.
func NewToaster(n Notifier) *Toaster {
	return &Toaster{n: n}
}

// Show displays title and body, replacing the previous toast.
func (t *Toaster) Show(title, body, icon string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, err := t.n.Notify(Notification{
		Title:      title,
		Body:       body,
		Icon:       icon,
		Timeout:    toastTimeout,
		ReplacesID: t.lastID,
		Urgency:    UrgencyLow,
	})
	if err != nil {
		return err
	}
	t.lastID = id
	return nil
}

// Dismiss closes the current toast, if any.
func (t *Toaster) Dismiss() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.lastID == 0 {
		return nil
	}
	id := t.lastID
	t.lastID = 0
	return t.n.Close(id)
}
