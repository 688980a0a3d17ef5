package usecase

import (
	"context"
	"errors"
	"testing"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/domain/model"
	"account-pool-service/internal/domain/ports/repository"
	"account-pool-service/internal/infra/security"
)

type authFixture struct {
	users        *memUserRepo
	codes        *memVerificationCodeRepo
	mailer       *mockMailer
	hasher       *security.PasswordHasher
	verification VerificationUseCase
	uc           AuthUseCase
}

func newAuthFixture() *authFixture {
	users := newMemUserRepo()
	codes := newMemVerificationCodeRepo()
	mailer := &mockMailer{}
	hasher := security.NewPasswordHasher()
	verification := NewVerificationUseCase(codes, users, mailer, testLogger())
	uc := NewAuthUseCase(users, verification, hasher, &stubTokenIssuer{}, testLogger())
	return &authFixture{
		users:        users,
		codes:        codes,
		mailer:       mailer,
		hasher:       hasher,
		verification: verification,
		uc:           uc,
	}
}

func (f *authFixture) seedUser(t *testing.T, email, username, password string) *model.User {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, err := model.NewUser(email, username, hash)
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	if err := f.users.Save(context.Background(), repository.NoTX, u); err != nil {
		t.Fatalf("save user: %v", err)
	}
	return u
}

func (f *authFixture) seedCode(t *testing.T, email, code, codeType string) {
	t.Helper()
	vc := model.NewVerificationCode(email, code, codeType)
	if err := f.codes.Save(context.Background(), repository.NoTX, vc); err != nil {
		t.Fatalf("save code: %v", err)
	}
}

func TestAuthUC_CheckUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newAuthFixture()
	f.seedUser(t, "known@example.com", "known", "secret123")

	exists, err := f.uc.CheckUser(ctx, "known@example.com")
	if err != nil || !exists {
		t.Errorf("CheckUser(known) = %v, %v; want true, nil", exists, err)
	}
	exists, err = f.uc.CheckUser(ctx, "ghost@example.com")
	if err != nil || exists {
		t.Errorf("CheckUser(ghost) = %v, %v; want false, nil", exists, err)
	}
	if _, err := f.uc.CheckUser(ctx, ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("CheckUser(empty) error = %v, want ErrInvalidArgument", err)
	}
}

func TestAuthUC_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success returns token and summary", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture()
		f.seedCode(t, "new@example.com", "123456", model.CodeTypeRegister)

		res, err := f.uc.Register(ctx, "new@example.com", "newbie", "secret123", "123456")
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if res.Token == "" {
			t.Error("empty token")
		}
		if res.User.Level != model.LevelFree || res.User.Tier != "Free" {
			t.Errorf("summary level/tier = %d/%q, want 0/Free", res.User.Level, res.User.Tier)
		}
		if !res.User.IsExpired {
			t.Error("fresh account should start expired")
		}

		saved, err := f.users.FindByEmail(ctx, repository.NoTX, "new@example.com")
		if err != nil {
			t.Fatalf("user not persisted: %v", err)
		}
		if saved.TotalCount != 0 || saved.UsedCount != 0 {
			t.Errorf("counts = %d/%d, want 0/0", saved.UsedCount, saved.TotalCount)
		}
		if !f.hasher.Compare(saved.PasswordHash, "secret123") {
			t.Error("stored hash does not verify the password")
		}
	})

	t.Run("taken email conflicts", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture()
		f.seedUser(t, "dup@example.com", "dup", "secret123")
		f.seedCode(t, "dup@example.com", "123456", model.CodeTypeRegister)

		_, err := f.uc.Register(ctx, "dup@example.com", "other", "secret123", "123456")
		if !errors.Is(err, domain.ErrAlreadyExists) {
			t.Errorf("Register() error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("taken username conflicts", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture()
		f.seedUser(t, "a@example.com", "dupname", "secret123")
		f.seedCode(t, "b@example.com", "123456", model.CodeTypeRegister)

		_, err := f.uc.Register(ctx, "b@example.com", "dupname", "secret123", "123456")
		if !errors.Is(err, domain.ErrAlreadyExists) {
			t.Errorf("Register() error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("bad verification code propagates", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture()

		_, err := f.uc.Register(ctx, "new@example.com", "newbie", "secret123", "000000")
		if !errors.Is(err, domain.ErrVerificationInvalid) {
			t.Errorf("Register() error = %v, want ErrVerificationInvalid", err)
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture()
		f.seedCode(t, "new@example.com", "123456", model.CodeTypeRegister)

		_, err := f.uc.Register(ctx, "new@example.com", "newbie", "short", "123456")
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("Register() error = %v, want ErrInvalidArgument", err)
		}
	})
}

func TestAuthUC_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture()
		u := f.seedUser(t, "login@example.com", "login", "secret123")

		res, err := f.uc.Login(ctx, "login@example.com", "secret123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if res.Token != "token-"+u.ID {
			t.Errorf("token = %q", res.Token)
		}
		if res.User.Tier != "Free" || !res.User.IsExpired {
			t.Errorf("summary = %+v, want Free tier, expired", res.User)
		}
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture()
		f.seedUser(t, "login@example.com", "login", "secret123")

		_, errUnknown := f.uc.Login(ctx, "ghost@example.com", "secret123")
		_, errWrong := f.uc.Login(ctx, "login@example.com", "wrongpass")

		if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
			t.Errorf("unknown email error = %v, want ErrInvalidCredentials", errUnknown)
		}
		if !errors.Is(errWrong, domain.ErrInvalidCredentials) {
			t.Errorf("wrong password error = %v, want ErrInvalidCredentials", errWrong)
		}
		if errUnknown.Error() != errWrong.Error() {
			t.Error("failure messages differ; they must not leak which field was wrong")
		}
	})
}

func TestAuthUC_ResetPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("success rehashes", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture()
		u := f.seedUser(t, "reset@example.com", "reset", "oldsecret")
		f.seedCode(t, "reset@example.com", "654321", model.CodeTypeReset)

		if err := f.uc.ResetPassword(ctx, "reset@example.com", "654321", "newsecret"); err != nil {
			t.Fatalf("ResetPassword() error = %v", err)
		}

		saved, _ := f.users.FindByID(ctx, repository.NoTX, u.ID)
		if !f.hasher.Compare(saved.PasswordHash, "newsecret") {
			t.Error("new password does not verify")
		}
		if f.hasher.Compare(saved.PasswordHash, "oldsecret") {
			t.Error("old password still verifies")
		}
	})

	t.Run("unknown email not found", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture()
		err := f.uc.ResetPassword(ctx, "ghost@example.com", "654321", "newsecret")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("ResetPassword() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("short password rejected before any lookup", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture()
		err := f.uc.ResetPassword(ctx, "reset@example.com", "654321", "abc")
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("ResetPassword() error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("bad code leaves password unchanged", func(t *testing.T) {
		t.Parallel()
		f := newAuthFixture()
		u := f.seedUser(t, "reset@example.com", "reset", "oldsecret")

		err := f.uc.ResetPassword(ctx, "reset@example.com", "000000", "newsecret")
		if !errors.Is(err, domain.ErrVerificationInvalid) {
			t.Fatalf("ResetPassword() error = %v, want ErrVerificationInvalid", err)
		}
		saved, _ := f.users.FindByID(ctx, repository.NoTX, u.ID)
		if !f.hasher.Compare(saved.PasswordHash, "oldsecret") {
			t.Error("password changed despite invalid code")
		}
	})
}
