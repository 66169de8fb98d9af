package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"matmarket/internal/crypto"
	"matmarket/internal/domain"
	"matmarket/internal/services/account"
)

type mockCredentialStore struct {
	mock.Mock
}

func newMockCredentialStore(t *testing.T) *mockCredentialStore {
	m := &mockCredentialStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *mockCredentialStore) LoadCredentials() (domain.Credentials, error) {
	args := m.Called()
	creds, _ := args.Get(0).(domain.Credentials)
	return creds, args.Error(1)
}

func (m *mockCredentialStore) SaveCredentials(creds domain.Credentials) error {
	return m.Called(creds).Error(0)
}

func (m *mockCredentialStore) AddCredential(email, stored string) (bool, error) {
	args := m.Called(email, stored)
	return args.Bool(0), args.Error(1)
}

func TestRegister_LostRaceReportsEmailTaken(t *testing.T) {
	cs := newMockCredentialStore(t)
	cs.On("LoadCredentials").Return(domain.Credentials{}, nil).Once()
	cs.On("AddCredential", "a@b.com", "pw").Return(false, nil).Once()

	err := account.New(cs, crypto.Plaintext{}, nil).Register(context.Background(), reg("a@b.com", "pw", "pw", true))
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegister_StoreErrorsPropagate(t *testing.T) {
	boom := errors.New("disk gone")

	cs := newMockCredentialStore(t)
	cs.On("LoadCredentials").Return(nil, boom).Once()
	err := account.New(cs, crypto.Plaintext{}, nil).Register(context.Background(), reg("a@b.com", "pw", "pw", true))
	assert.ErrorIs(t, err, boom)
	assert.False(t, domain.IsValidation(err))

	cs = newMockCredentialStore(t)
	cs.On("LoadCredentials").Return(domain.Credentials{}, nil).Once()
	cs.On("AddCredential", "a@b.com", "pw").Return(false, domain.ErrUnwritable).Once()
	err = account.New(cs, crypto.Plaintext{}, nil).Register(context.Background(), reg("a@b.com", "pw", "pw", true))
	assert.ErrorIs(t, err, domain.ErrUnwritable)
}

func TestRegister_InvalidInputNeverTouchesStore(t *testing.T) {
	cs := newMockCredentialStore(t)
	err := account.New(cs, crypto.Plaintext{}, nil).Register(context.Background(), reg("a@b.com", "pw", "px", true))
	require.ErrorIs(t, err, domain.ErrPasswordMismatch)
	cs.AssertNotCalled(t, "LoadCredentials")
}

func TestAuthenticate_UsesHasher(t *testing.T) {
	cs := newMockCredentialStore(t)
	cs.On("LoadCredentials").Return(domain.Credentials{"a@b.com": "stored"}, nil).Twice()

	svc := account.New(cs, fixedHasher{}, nil)
	assert.NoError(t, svc.Authenticate(context.Background(), "a@b.com", "right"))
	assert.ErrorIs(t, svc.Authenticate(context.Background(), "a@b.com", "wrong"), domain.ErrWrongPassword)
}

type fixedHasher struct{}

func (fixedHasher) Hash(string) (string, error) { return "stored", nil }

func (fixedHasher) Verify(stored, candidate string) bool {
	return stored == "stored" && candidate == "right"
}
