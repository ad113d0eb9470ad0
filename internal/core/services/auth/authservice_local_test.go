package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"gitlab.com/algojudge.net/internal/config"
	"gitlab.com/algojudge.net/internal/domain"
	"gitlab.com/algojudge.net/internal/static/errs"
)

type fakeUserPort struct {
	users map[uuid.UUID]*domain.Users
}

func newFakeUserPort() *fakeUserPort {
	return &fakeUserPort{users: make(map[uuid.UUID]*domain.Users)}
}

func (f *fakeUserPort) Create(_ context.Context, user *domain.Users) error {
	if _, exists := f.users[user.ID]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint: %s", user.ID)
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserPort) Get(_ context.Context, id uuid.UUID) (*domain.Users, error) {
	return f.users[id], nil
}

func (f *fakeUserPort) GetByUserName(_ context.Context, userName string) (*domain.Users, error) {
	for _, u := range f.users {
		if u.UserName == userName {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserPort) GetByGoogleID(_ context.Context, googleID string) (*domain.Users, error) {
	for _, u := range f.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return u, nil
		}
	}
	return nil, nil
}

// fakeJWT hashes by prefixing and records the last issued claim set.
type fakeJWT struct {
	lastClaims map[string]interface{}
}

func (f *fakeJWT) GenerateTokenHMAC(_ context.Context, _ string, claims map[string]interface{}) (string, error) {
	f.lastClaims = claims
	return "token", nil
}

func (f *fakeJWT) VerifyTokenHMAC(_ context.Context, token string, _ string) (bool, error) {
	return token != "", nil
}

func (f *fakeJWT) DecodeTokenPayload(_ context.Context, _ string) (domain.AuthPayload, error) {
	return domain.AuthPayload{}, errors.New("not implemented")
}

func (f *fakeJWT) EncryptPassword(_ context.Context, password string) (string, error) {
	return "hashed:" + password, nil
}

func (f *fakeJWT) VerifyPassword(_ context.Context, hash string, pwd string) (bool, error) {
	return hash == "hashed:"+pwd, nil
}

func TestRegisterAssignsUniqueIDs(t *testing.T) {
	port := newFakeUserPort()
	svc := NewLocalAuthService(port, &fakeJWT{})

	alice, err := svc.Register(context.Background(), "alice", "pw1", nil)
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	bob, err := svc.Register(context.Background(), "bob", "pw2", nil)
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	if alice.ID == uuid.Nil {
		t.Error("alice.ID is the nil UUID")
	}
	if bob.ID == uuid.Nil {
		t.Error("bob.ID is the nil UUID")
	}
	if alice.ID == bob.ID {
		t.Errorf("alice and bob share ID %s", alice.ID)
	}
	if alice.Role != domain.RoleUser {
		t.Errorf("role = %q, want %q", alice.Role, domain.RoleUser)
	}
	if alice.PasswordHash == nil || *alice.PasswordHash != "hashed:pw1" {
		t.Error("password stored unhashed")
	}

	stored := port.users[alice.ID]
	if stored == nil || stored.UserName != "alice" {
		t.Fatalf("alice not persisted under her own ID")
	}
}

func TestRegisterRejectsTakenUserName(t *testing.T) {
	svc := NewLocalAuthService(newFakeUserPort(), &fakeJWT{})

	if _, err := svc.Register(context.Background(), "alice", "pw1", nil); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "pw2", nil); !errors.Is(err, errs.UserNameTaken) {
		t.Fatalf("err = %v, want %v", err, errs.UserNameTaken)
	}
}

func TestLoginTokenCarriesUserID(t *testing.T) {
	port := newFakeUserPort()
	jwtProvider := &fakeJWT{}
	svc := NewLocalAuthService(port, jwtProvider)

	user, err := svc.Register(context.Background(), "alice", "pw1", nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pw := "pw1"
	resp, err := svc.Login(context.Background(), &domain.Users{UserName: "alice", PasswordHash: &pw})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if resp.ID != user.ID.String() {
		t.Errorf("response ID = %s, want %s", resp.ID, user.ID)
	}
	if jwtProvider.lastClaims["userId"] != user.ID.String() {
		t.Errorf("token userId claim = %v, want %s", jwtProvider.lastClaims["userId"], user.ID)
	}
}

func TestGoogleFirstLoginAssignsID(t *testing.T) {
	port := newFakeUserPort()
	svc := NewGoogleAuthService(port, &fakeJWT{}, &config.GGAuthConfig{})

	email := "alice@example.com"
	googleID := "g-123"
	resp, err := svc.Login(context.Background(), &domain.Users{
		Email:        &email,
		GoogleID:     &googleID,
		AuthProvider: string(domain.ProviderGoogle),
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if resp.ID == uuid.Nil.String() {
		t.Error("issued login carries the nil UUID")
	}
	stored, _ := port.GetByGoogleID(context.Background(), googleID)
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.ID == uuid.Nil {
		t.Error("persisted user has the nil UUID")
	}
}
