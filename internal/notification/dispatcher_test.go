package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendLeadNotification(ctx context.Context, to []string, lead *entity.Lead) error {
	args := m.Called(ctx, to, lead)
	return args.Error(0)
}

func (m *MockEmailSender) SendCustomerConfirmation(ctx context.Context, to string, lead *entity.Lead) error {
	args := m.Called(ctx, to, lead)
	return args.Error(0)
}

type MockWhatsAppSender struct {
	mock.Mock
}

func (m *MockWhatsAppSender) SendText(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

type recorded struct {
	mu   sync.Mutex
	seen map[Channel]OutcomeStatus
}

func (r *recorded) record(c Channel, s OutcomeStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen[c] = s
}

func newLead() *entity.Lead {
	return entity.NewLead(entity.ContactFields{
		"name":  "Maria",
		"email": "maria@cliente.com",
		"brand": "Schneider",
	}, time.Now())
}

func enabledOptions() Options {
	return Options{
		Recipients:                  []string{"vendas@x.com"},
		CustomerConfirmationEnabled: true,
		WhatsAppEnabled:             true,
		WhatsAppTo:                  "5511999999999",
		Timeout:                     time.Second,
	}
}

func TestDispatchBothChannelsSent(t *testing.T) {
	lead := newLead()
	email := new(MockEmailSender)
	wa := new(MockWhatsAppSender)
	email.On("SendLeadNotification", mock.Anything, []string{"vendas@x.com"}, lead).Return(nil)
	email.On("SendCustomerConfirmation", mock.Anything, "maria@cliente.com", lead).Return(nil)
	wa.On("SendText", mock.Anything, "5511999999999", mock.AnythingOfType("string")).Return(nil)

	rec := &recorded{seen: map[Channel]OutcomeStatus{}}
	d := NewDispatcher(email, wa, enabledOptions(), nil, rec.record)

	result := d.Dispatch(context.Background(), lead)

	assert.Equal(t, OutcomeSent, result.Email.Status)
	assert.Equal(t, OutcomeSent, result.WhatsApp.Status)
	assert.Equal(t, lead.ID, result.Email.LeadID)
	assert.Equal(t, "vendas@x.com", result.Email.Recipient)
	assert.Equal(t, OutcomeSent, rec.seen[ChannelEmail])
	assert.Equal(t, OutcomeSent, rec.seen[ChannelWhatsApp])
	email.AssertExpectations(t)
	wa.AssertExpectations(t)
}

func TestDispatchEmailFailureDoesNotAffectWhatsApp(t *testing.T) {
	lead := newLead()
	email := new(MockEmailSender)
	wa := new(MockWhatsAppSender)
	email.On("SendLeadNotification", mock.Anything, mock.Anything, lead).Return(errors.New("smtp: 554 rejected"))
	wa.On("SendText", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	d := NewDispatcher(email, wa, enabledOptions(), nil, nil)
	result := d.Dispatch(context.Background(), lead)

	assert.Equal(t, OutcomeFailed, result.Email.Status)
	assert.Contains(t, result.Email.Reason, "smtp: 554 rejected")
	assert.Equal(t, OutcomeSent, result.WhatsApp.Status)
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	email.AssertNotCalled(t, "SendCustomerConfirmation", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchWhatsAppFailureDoesNotAffectEmail(t *testing.T) {
	lead := newLead()
	email := new(MockEmailSender)
	wa := new(MockWhatsAppSender)
	email.On("SendLeadNotification", mock.Anything, mock.Anything, lead).Return(nil)
	email.On("SendCustomerConfirmation", mock.Anything, mock.Anything, lead).Return(nil)
	wa.On("SendText", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("whatsapp api error: 401"))

	d := NewDispatcher(email, wa, enabledOptions(), nil, nil)
	result := d.Dispatch(context.Background(), lead)

	assert.Equal(t, OutcomeSent, result.Email.Status)
	assert.Equal(t, OutcomeFailed, result.WhatsApp.Status)
	assert.Contains(t, result.WhatsApp.Reason, "whatsapp api error: 401")
	assert.Equal(t, "5511999999999", result.WhatsApp.Recipient)
}

func TestDispatchWhatsAppDisabledSkipsWithoutIO(t *testing.T) {
	lead := newLead()
	email := new(MockEmailSender)
	wa := new(MockWhatsAppSender)
	email.On("SendLeadNotification", mock.Anything, mock.Anything, lead).Return(nil)
	email.On("SendCustomerConfirmation", mock.Anything, mock.Anything, lead).Return(nil)

	opts := enabledOptions()
	opts.WhatsAppEnabled = false
	d := NewDispatcher(email, wa, opts, nil, nil)

	result := d.Dispatch(context.Background(), lead)

	assert.Equal(t, OutcomeSkipped, result.WhatsApp.Status)
	wa.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchConfirmationFailureKeepsEmailSent(t *testing.T) {
	lead := newLead()
	email := new(MockEmailSender)
	email.On("SendLeadNotification", mock.Anything, mock.Anything, lead).Return(nil)
	email.On("SendCustomerConfirmation", mock.Anything, mock.Anything, lead).Return(errors.New("mailbox full"))

	opts := enabledOptions()
	opts.WhatsAppEnabled = false
	result := NewDispatcher(email, nil, opts, nil, nil).Dispatch(context.Background(), lead)

	assert.Equal(t, OutcomeSent, result.Email.Status)
}

func TestDispatchConfirmationDisabled(t *testing.T) {
	lead := newLead()
	email := new(MockEmailSender)
	email.On("SendLeadNotification", mock.Anything, mock.Anything, lead).Return(nil)

	opts := enabledOptions()
	opts.WhatsAppEnabled = false
	opts.CustomerConfirmationEnabled = false
	NewDispatcher(email, nil, opts, nil, nil).Dispatch(context.Background(), lead)

	email.AssertNotCalled(t, "SendCustomerConfirmation", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatchChannelTimeout(t *testing.T) {
	lead := newLead()
	email := new(MockEmailSender)
	email.On("SendLeadNotification", mock.Anything, mock.Anything, lead).
		Return(context.DeadlineExceeded).
		WaitUntil(time.After(50 * time.Millisecond))

	opts := enabledOptions()
	opts.WhatsAppEnabled = false
	opts.Timeout = 10 * time.Millisecond

	result := NewDispatcher(email, nil, opts, nil, nil).Dispatch(context.Background(), lead)

	assert.Equal(t, OutcomeFailed, result.Email.Status)
}

func TestDispatchRecoversFromPanickingChannel(t *testing.T) {
	lead := newLead()
	email := new(MockEmailSender)
	email.On("SendLeadNotification", mock.Anything, mock.Anything, lead).Panic("boom")

	opts := enabledOptions()
	opts.WhatsAppEnabled = false
	result := NewDispatcher(email, nil, opts, nil, nil).Dispatch(context.Background(), lead)

	assert.Equal(t, OutcomeFailed, result.Email.Status)
	assert.Contains(t, result.Email.Reason, "boom")
	assert.Equal(t, OutcomeSkipped, result.WhatsApp.Status)
}

func TestDispatchNilEmailSenderIsSkipped(t *testing.T) {
	opts := enabledOptions()
	opts.WhatsAppEnabled = false
	result := NewDispatcher(nil, nil, opts, nil, nil).Dispatch(context.Background(), newLead())

	assert.Equal(t, OutcomeSkipped, result.Email.Status)
}

func TestLeadSummary(t *testing.T) {
	lead := newLead()
	summary := LeadSummary(lead)

	assert.Contains(t, summary, "Nome: Maria")
	assert.Contains(t, summary, "Marca: Schneider")
	assert.Contains(t, summary, "ID: "+lead.ID)
	assert.NotContains(t, summary, "Cidade")
}
