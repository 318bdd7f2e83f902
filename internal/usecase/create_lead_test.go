package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/notification"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func validInput() usecase.CreateLeadInput {
	return usecase.CreateLeadInput{
		Name:        "Maria Souza",
		Email:       "maria@cliente.com",
		Phone:       "(11) 99999-0000",
		Brand:       "Schneider",
		Requirement: "Disjuntor 3P 100A",
		Quantity:    "20",
		City:        "Campinas",
		FormSource:  "hero",
		Path:        "/marcas/schneider",
	}
}

// TestCreateLeadSuccess - persiste com status new e dispara notificação depois
func TestCreateLeadSuccess(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockDispatcher)

	var saved *entity.Lead
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*entity.Lead) }).
		Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.AnythingOfType("*entity.Lead")).
		Return(notification.Result{})

	created := 0
	uc := usecase.NewCreateLeadUseCase(repo, dispatcher, nil, nil)
	uc.OnCreated = func() { created++ }

	out, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.NoError(t, uc.Wait(context.Background()))

	assert.True(t, out.OK)
	assert.Equal(t, saved.ID, out.LeadID)
	assert.Equal(t, entity.LeadStatusNew, saved.Status)
	assert.Equal(t, "Schneider", saved.Field("brand"))
	assert.Equal(t, "(11) 99999-0000", saved.Field("phone"))
	assert.NotContains(t, saved.ContactFields, "company")
	assert.Equal(t, 1, created)
	repo.AssertExpectations(t)
	dispatcher.AssertCalled(t, "Dispatch", mock.Anything, saved)
}

// TestCreateLeadDoesNotWaitForDispatch - a resposta sai antes das notificações
func TestCreateLeadDoesNotWaitForDispatch(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockDispatcher)
	release := make(chan time.Time)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).
		WaitUntil(release).
		Return(notification.Result{})

	uc := usecase.NewCreateLeadUseCase(repo, dispatcher, nil, nil)

	done := make(chan struct{})
	go func() {
		_, err := uc.Execute(context.Background(), validInput())
		assert.NoError(t, err)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Execute blocked on dispatch")
	}

	close(release)
	require.NoError(t, uc.Wait(context.Background()))
}

// TestCreateLeadDispatchUsesFreshContext - cancelar a request não cancela o envio
func TestCreateLeadDispatchUsesFreshContext(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockDispatcher)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(notification.Result{})

	ctx, cancel := context.WithCancel(context.Background())
	uc := usecase.NewCreateLeadUseCase(repo, dispatcher, nil, nil)
	_, err := uc.Execute(ctx, validInput())
	cancel()

	require.NoError(t, err)
	require.NoError(t, uc.Wait(context.Background()))
	dispatcher.AssertExpectations(t)
}

// TestCreateLeadValidation - primeira violação vira VALIDATION_ERROR
func TestCreateLeadValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *usecase.CreateLeadInput)
		message string
	}{
		{
			name: "no contact",
			mutate: func(in *usecase.CreateLeadInput) {
				in.Name, in.Email, in.Phone = "  ", "", ""
			},
			message: "name, email or phone is required",
		},
		{
			name:    "bad email",
			mutate:  func(in *usecase.CreateLeadInput) { in.Email = "maria@" },
			message: "email is invalid",
		},
		{
			name: "message too long",
			mutate: func(in *usecase.CreateLeadInput) {
				b := make([]byte, 5001)
				for i := range b {
					b[i] = 'a'
				}
				in.Message = string(b)
			},
			message: "message must not exceed 5000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockLeadRepository)
			in := validInput()
			tt.mutate(&in)

			_, err := usecase.NewCreateLeadUseCase(repo, nil, nil, nil).Execute(context.Background(), in)

			var de *usecase.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, usecase.CodeValidation, de.Code)
			assert.Equal(t, tt.message, de.Message)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

// TestCreateLeadPhoneOnly - telefone sozinho basta como contato
func TestCreateLeadPhoneOnly(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	out, err := usecase.NewCreateLeadUseCase(repo, nil, nil, nil).
		Execute(context.Background(), usecase.CreateLeadInput{Phone: "11999990000"})

	require.NoError(t, err)
	assert.NotEmpty(t, out.LeadID)
}

// TestCreateLeadRepositoryError - falha no banco não dispara notificação
func TestCreateLeadRepositoryError(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockDispatcher)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	uc := usecase.NewCreateLeadUseCase(repo, dispatcher, nil, nil)
	out, err := uc.Execute(context.Background(), validInput())

	assert.Nil(t, out)
	assert.True(t, usecase.IsTechnicalError(err))
	require.NoError(t, uc.Wait(context.Background()))
	dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
}

func TestWaitHonoursContext(t *testing.T) {
	repo := new(MockLeadRepository)
	dispatcher := new(MockDispatcher)
	release := make(chan time.Time)
	defer close(release)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).WaitUntil(release).Return(notification.Result{})

	uc := usecase.NewCreateLeadUseCase(repo, dispatcher, nil, nil)
	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, uc.Wait(ctx), context.DeadlineExceeded)
}
