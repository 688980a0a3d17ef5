package web

import (
	"context"
	"time"

	"account-pool-service/internal/domain/model"
	"account-pool-service/internal/usecase"
)

// Handler tests stub the usecase layer; behavior under test is routing,
// auth gating and envelope mapping only.

type mockAuthUC struct {
	checkUserFn     func(ctx context.Context, email string) (bool, error)
	sendEmailCodeFn func(ctx context.Context, email, codeType string) error
	registerFn      func(ctx context.Context, email, username, password, code string) (*usecase.AuthResult, error)
	loginFn         func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	resetPasswordFn func(ctx context.Context, email, code, newPassword string) error
}

func (m *mockAuthUC) CheckUser(ctx context.Context, email string) (bool, error) {
	return m.checkUserFn(ctx, email)
}

func (m *mockAuthUC) SendEmailCode(ctx context.Context, email, codeType string) error {
	return m.sendEmailCodeFn(ctx, email, codeType)
}

func (m *mockAuthUC) Register(ctx context.Context, email, username, password, code string) (*usecase.AuthResult, error) {
	return m.registerFn(ctx, email, username, password, code)
}

func (m *mockAuthUC) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthUC) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	return m.resetPasswordFn(ctx, email, code, newPassword)
}

type mockUserUC struct {
	infoFn           func(ctx context.Context, userID string) (*usecase.UserInfo, error)
	updatePasswordFn func(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error
}

func (m *mockUserUC) Info(ctx context.Context, userID string) (*usecase.UserInfo, error) {
	return m.infoFn(ctx, userID)
}

func (m *mockUserUC) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error {
	return m.updatePasswordFn(ctx, userID, oldPassword, newPassword, confirmPassword)
}

type mockActivationUC struct {
	activateFn func(ctx context.Context, userID, code string) error
}

func (m *mockActivationUC) Activate(ctx context.Context, userID, code string) error {
	return m.activateFn(ctx, userID, code)
}

type mockPoolUC struct {
	getAccountFn func(ctx context.Context, userID, requestedAccount string) (*usecase.AccountInfo, error)
}

func (m *mockPoolUC) GetAccount(ctx context.Context, userID, requestedAccount string) (*usecase.AccountInfo, error) {
	return m.getAccountFn(ctx, userID, requestedAccount)
}

type mockAdminUC struct {
	createAccountFn func(ctx context.Context, account, password, token, notes string) (*model.PoolAccount, error)
	createCodeFn    func(ctx context.Context, in usecase.CreateActivationCodeInput) (*model.ActivationCode, error)
}

func (m *mockAdminUC) CreateAccount(ctx context.Context, account, password, token, notes string) (*model.PoolAccount, error) {
	return m.createAccountFn(ctx, account, password, token, notes)
}

func (m *mockAdminUC) CreateActivationCode(ctx context.Context, in usecase.CreateActivationCodeInput) (*model.ActivationCode, error) {
	return m.createCodeFn(ctx, in)
}

type mockSystemUC struct {
	publicInfoFn func(ctx context.Context) (*model.Announcement, error)
	articlesFn   func(ctx context.Context, page int) (*usecase.ArticlePage, error)
	reportBugFn  func(ctx context.Context, in usecase.BugReportInput) error
	version      string
}

func (m *mockSystemUC) PublicInfo(ctx context.Context) (*model.Announcement, error) {
	return m.publicInfoFn(ctx)
}

func (m *mockSystemUC) Articles(ctx context.Context, page int) (*usecase.ArticlePage, error) {
	return m.articlesFn(ctx, page)
}

func (m *mockSystemUC) ReportBug(ctx context.Context, in usecase.BugReportInput) error {
	return m.reportBugFn(ctx, in)
}

func (m *mockSystemUC) Version() string { return m.version }

// fakeRedisClient backs the rate limiter in handler tests.
type fakeRedisClient struct {
	counts  map[string]int64
	incrErr error
}

func newFakeRedisClient() *fakeRedisClient {
	return &fakeRedisClient{counts: make(map[string]int64)}
}

func (f *fakeRedisClient) Ping(ctx context.Context) error { return nil }

func (f *fakeRedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (f *fakeRedisClient) Get(ctx context.Context, key string) (string, error) { return "", nil }

func (f *fakeRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeRedisClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}

func (f *fakeRedisClient) Del(ctx context.Context, keys ...string) error { return nil }

func (f *fakeRedisClient) Close() error { return nil }
