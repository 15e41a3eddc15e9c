package directory

import (
	"sync"
	"time"
)

// NotificationTTL は通知が自動で消えるまでの時間です。
const NotificationTTL = 3000 * time.Millisecond

// Kind は通知の種別です。
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification は一時的に表示されるメッセージです。
type Notification struct {
	Message   string
	Kind      Kind
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Notifier は同時に一件だけ有効な通知と、その失効タイマーを管理します。
type Notifier struct {
	mu       sync.Mutex
	clock    Clock
	ttl      time.Duration
	current  *Notification
	timer    Timer
	seq      uint64
	stopped  bool
	onChange func()
}

// NewNotifier は Notifier を生成します。onChange は状態が変わるたびにロック外で呼ばれます。
func NewNotifier(clock Clock, onChange func()) *Notifier {
	if clock == nil {
		clock = SystemClock()
	}
	return &Notifier{clock: clock, ttl: NotificationTTL, onChange: onChange}
}

// Notify は通知を差し替え、失効タイマーを再設定します。
// Stop 後は通知を記録するだけでタイマーは張りません。
func (n *Notifier) Notify(message string, kind Kind) Notification {
	n.mu.Lock()
	n.stopTimerLocked()
	n.seq++
	seq := n.seq
	now := n.clock.Now()
	current := Notification{
		Message:   message,
		Kind:      kind,
		IssuedAt:  now,
		ExpiresAt: now.Add(n.ttl),
	}
	n.current = &current
	if !n.stopped {
		n.timer = n.clock.AfterFunc(n.ttl, func() { n.expire(seq) })
	}
	n.mu.Unlock()

	n.changed()
	return current
}

// Clear は通知を即座に消します。
func (n *Notifier) Clear() {
	n.mu.Lock()
	had := n.current != nil
	n.stopTimerLocked()
	n.seq++
	n.current = nil
	n.mu.Unlock()

	if had {
		n.changed()
	}
}

// Current は表示中の通知を返します。
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Stop は保留中のタイマーを停止し、以降の Notify でタイマーを張らないようにします。通知自体は残ります。
func (n *Notifier) Stop() {
	n.mu.Lock()
	n.stopped = true
	n.stopTimerLocked()
	n.seq++
	n.mu.Unlock()
}

func (n *Notifier) expire(seq uint64) {
	n.mu.Lock()
	// 置き換え後に発火した古いタイマーは新しい通知を消さない。
	if seq != n.seq || n.current == nil {
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.timer = nil
	n.mu.Unlock()

	n.changed()
}

func (n *Notifier) stopTimerLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

func (n *Notifier) changed() {
	if n.onChange != nil {
		n.onChange()
	}
}
