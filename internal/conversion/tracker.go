package conversion

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	EventLeadGenerated = "lead_generated"
	EventAdsConversion = "ads_conversion"
)

type Event struct {
	Name          string    `json:"name"`
	SessionID     string    `json:"session_id"`
	LeadID        string    `json:"lead_id,omitempty"`
	Path          string    `json:"path,omitempty"`
	FormSource    string    `json:"form_source,omitempty"`
	SendTo        string    `json:"send_to,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

type Config struct {
	AdsConversionID    string
	AdsConversionLabel string
}

// AdsConfigured requires both the destination and the label.
func (c Config) AdsConfigured() bool {
	return strings.TrimSpace(c.AdsConversionID) != "" && strings.TrimSpace(c.AdsConversionLabel) != ""
}

type Tracker struct {
	store   SessionStore
	emitter Emitter
	cfg     Config
	log     *zap.Logger
	now     func() time.Time

	// OnEmitted, when set, is called with the name of every event emitted.
	OnEmitted func(event string)
}

func NewTracker(store SessionStore, emitter Emitter, cfg Config, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{
		store:   store,
		emitter: emitter,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
	}
}

// MaybeFire emits the lead conversion at most once per dedupe key per session.
// It reports whether events were fired.
func (t *Tracker) MaybeFire(ctx context.Context, sessionID, leadID, path, formSource string) (bool, error) {
	key := DedupeKey(leadID, path, formSource)

	previous, err := t.store.Swap(ctx, sessionID, key)
	if err != nil {
		return false, err
	}
	if previous == key {
		return false, nil
	}

	now := t.now()
	base := Event{
		SessionID:  sessionID,
		LeadID:     strings.TrimSpace(leadID),
		Path:       path,
		FormSource: formSource,
		OccurredAt: now,
	}

	generated := base
	generated.Name = EventLeadGenerated
	t.emit(ctx, generated)

	if t.cfg.AdsConfigured() {
		ads := base
		ads.Name = EventAdsConversion
		ads.SendTo = t.cfg.AdsConversionID + "/" + t.cfg.AdsConversionLabel
		ads.TransactionID = TransactionID(leadID, now)
		t.emit(ctx, ads)
	}

	return true, nil
}

// Analytics is best-effort: the key is already recorded, a failed emit is only logged.
func (t *Tracker) emit(ctx context.Context, event Event) {
	if err := t.emitter.Emit(ctx, event); err != nil {
		t.log.Warn("conversion event not emitted",
			zap.String("event", event.Name),
			zap.String("lead_id", event.LeadID),
			zap.Error(err),
		)
		return
	}
	if t.OnEmitted != nil {
		t.OnEmitted(event.Name)
	}
}

// LogEmitter is used when no broker is configured.
type LogEmitter struct {
	Log *zap.Logger
}

func (e LogEmitter) Emit(_ context.Context, event Event) error {
	e.Log.Info("conversion event",
		zap.String("event", event.Name),
		zap.String("session_id", event.SessionID),
		zap.String("lead_id", event.LeadID),
		zap.String("send_to", event.SendTo),
		zap.String("transaction_id", event.TransactionID),
	)
	return nil
}
