package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

const defaultChannelTimeout = 10 * time.Second

type EmailSender interface {
	SendLeadNotification(ctx context.Context, to []string, lead *entity.Lead) error
	SendCustomerConfirmation(ctx context.Context, to string, lead *entity.Lead) error
}

type WhatsAppSender interface {
	SendText(ctx context.Context, to, body string) error
}

// Recorder receives one call per channel outcome (metrics).
type Recorder func(channel Channel, status OutcomeStatus)

type Options struct {
	Recipients                  []string
	CustomerConfirmationEnabled bool
	WhatsAppEnabled             bool
	WhatsAppTo                  string
	Timeout                     time.Duration
}

type Dispatcher struct {
	email    EmailSender
	whatsapp WhatsAppSender
	opts     Options
	log      *zap.Logger
	record   Recorder
}

func NewDispatcher(email EmailSender, whatsapp WhatsAppSender, opts Options, log *zap.Logger, record Recorder) *Dispatcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultChannelTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	if record == nil {
		record = func(Channel, OutcomeStatus) {}
	}
	return &Dispatcher{
		email:    email,
		whatsapp: whatsapp,
		opts:     opts,
		log:      log,
		record:   record,
	}
}

// Dispatch tries both channels concurrently and waits for both to settle. It
// never returns an error: every failure ends up in the Result.
func (d *Dispatcher) Dispatch(ctx context.Context, lead *entity.Lead) Result {
	var (
		result Result
		g      errgroup.Group
	)

	g.Go(func() error {
		result.Email = d.attempt(ctx, ChannelEmail, lead, d.sendEmail)
		return nil
	})
	g.Go(func() error {
		result.WhatsApp = d.attempt(ctx, ChannelWhatsApp, lead, d.sendWhatsApp)
		return nil
	})
	_ = g.Wait()

	return result
}

type channelFunc func(ctx context.Context, lead *entity.Lead) (Outcome, error)

func (d *Dispatcher) attempt(ctx context.Context, channel Channel, lead *entity.Lead, send channelFunc) (out Outcome) {
	ctx, cancel := context.WithTimeout(ctx, d.opts.Timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			out = Outcome{Channel: channel, LeadID: lead.ID, Status: OutcomeFailed, Reason: fmt.Sprintf("panic: %v", r)}
		}
		d.report(out)
	}()

	out, err := send(ctx, lead)
	if err != nil {
		out = Outcome{Channel: channel, LeadID: lead.ID, Status: OutcomeFailed, Reason: err.Error()}
		var de *ChannelDeliveryError
		if errors.As(err, &de) {
			out.Recipient = de.Recipient
		}
	}
	return out
}

func (d *Dispatcher) report(out Outcome) {
	d.record(out.Channel, out.Status)

	fields := []zap.Field{
		zap.String("channel", string(out.Channel)),
		zap.String("lead_id", out.LeadID),
		zap.String("outcome", string(out.Status)),
		zap.String("recipient", out.Recipient),
	}
	switch out.Status {
	case OutcomeFailed:
		d.log.Warn("lead notification failed", append(fields, zap.String("reason", out.Reason))...)
	case OutcomeSkipped:
		d.log.Info("lead notification skipped", append(fields, zap.String("reason", out.Reason))...)
	default:
		d.log.Info("lead notification sent", fields...)
	}
}

func (d *Dispatcher) sendEmail(ctx context.Context, lead *entity.Lead) (Outcome, error) {
	if d.email == nil {
		return Outcome{Channel: ChannelEmail, LeadID: lead.ID, Status: OutcomeSkipped, Reason: "email channel not configured"}, nil
	}

	recipients := strings.Join(d.opts.Recipients, ",")
	if err := d.email.SendLeadNotification(ctx, d.opts.Recipients, lead); err != nil {
		return Outcome{}, &ChannelDeliveryError{Channel: ChannelEmail, Recipient: recipients, Err: err}
	}

	// A confirmação para o cliente é extra: falha aqui não muda o outcome do canal.
	if customer := strings.TrimSpace(lead.Field("email")); d.opts.CustomerConfirmationEnabled && customer != "" {
		if err := d.email.SendCustomerConfirmation(ctx, customer, lead); err != nil {
			d.log.Warn("customer confirmation failed",
				zap.String("lead_id", lead.ID),
				zap.String("recipient", customer),
				zap.Error(err),
			)
		}
	}

	return Outcome{Channel: ChannelEmail, LeadID: lead.ID, Status: OutcomeSent, Recipient: recipients}, nil
}

func (d *Dispatcher) sendWhatsApp(ctx context.Context, lead *entity.Lead) (Outcome, error) {
	if !d.opts.WhatsAppEnabled {
		return Outcome{Channel: ChannelWhatsApp, LeadID: lead.ID, Status: OutcomeSkipped, Reason: "whatsapp provider disabled"}, nil
	}
	if d.whatsapp == nil || d.opts.WhatsAppTo == "" {
		return Outcome{}, &ChannelDeliveryError{Channel: ChannelWhatsApp, Recipient: d.opts.WhatsAppTo, Err: errors.New("whatsapp enabled but not configured")}
	}

	if err := d.whatsapp.SendText(ctx, d.opts.WhatsAppTo, LeadSummary(lead)); err != nil {
		return Outcome{}, &ChannelDeliveryError{Channel: ChannelWhatsApp, Recipient: d.opts.WhatsAppTo, Err: err}
	}

	return Outcome{Channel: ChannelWhatsApp, LeadID: lead.ID, Status: OutcomeSent, Recipient: d.opts.WhatsAppTo}, nil
}

var summaryFields = []struct{ key, label string }{
	{"name", "Nome"},
	{"company", "Empresa"},
	{"phone", "Telefone"},
	{"email", "Email"},
	{"brand", "Marca"},
	{"requirement", "Necessidade"},
	{"quantity", "Quantidade"},
	{"city", "Cidade"},
	{"timeline", "Prazo"},
	{"message", "Mensagem"},
}

// LeadSummary is the plain-text body used by the WhatsApp channel.
func LeadSummary(lead *entity.Lead) string {
	var b strings.Builder
	b.WriteString("Novo lead RFQ\n")
	for _, f := range summaryFields {
		if v := strings.TrimSpace(lead.Field(f.key)); v != "" {
			fmt.Fprintf(&b, "%s: %s\n", f.label, v)
		}
	}
	fmt.Fprintf(&b, "ID: %s", lead.ID)
	return b.String()
}
