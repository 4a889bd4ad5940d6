package service

// Hand-written fakes shared by the service tests. Each fake records the calls
// the tests assert on and nothing more.

import (
	"context"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// --- session store ---

type fakeSessionStore struct {
	sessions       map[string]*domain.Session
	saveAuthCalls  int
	clearAuthCalls int
	saveUserCalls  int
	saveAuthErr    error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*domain.Session{}}
}

func (f *fakeSessionStore) Create(context.Context) (*domain.Session, error) {
	sess := &domain.Session{ID: "sess_1"}
	f.sessions[sess.ID] = sess
	return sess, nil
}

func (f *fakeSessionStore) Get(_ context.Context, sid string) (*domain.Session, error) {
	sess, ok := f.sessions[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (f *fakeSessionStore) SaveAuth(_ context.Context, sid string, user *domain.User, token, refreshToken string) error {
	if f.saveAuthErr != nil {
		return f.saveAuthErr
	}
	f.saveAuthCalls++
	f.sessions[sid] = &domain.Session{ID: sid, User: user, Token: token, RefreshToken: refreshToken}
	return nil
}

func (f *fakeSessionStore) SaveUser(_ context.Context, sid string, user *domain.User) error {
	f.saveUserCalls++
	if sess, ok := f.sessions[sid]; ok {
		sess.User = user
	}
	return nil
}

func (f *fakeSessionStore) SaveToken(_ context.Context, sid, token string) error {
	if sess, ok := f.sessions[sid]; ok {
		sess.Token = token
	}
	return nil
}

func (f *fakeSessionStore) ClearAuth(_ context.Context, sid string) error {
	f.clearAuthCalls++
	if sess, ok := f.sessions[sid]; ok {
		sess.User = nil
		sess.Token = ""
		sess.RefreshToken = ""
	}
	return nil
}

// --- notifier ---

type fakeNotifier struct {
	notifications []domain.Notification
}

func (f *fakeNotifier) Notify(n domain.Notification) {
	f.notifications = append(f.notifications, n)
}

func (f *fakeNotifier) lastLevel() domain.NotificationLevel {
	if len(f.notifications) == 0 {
		return ""
	}
	return f.notifications[len(f.notifications)-1].Level
}

// --- cart cache ---

type fakeCartCache struct {
	carts        map[string]*domain.Cart
	replaceCalls int
	clearCalls   int
}

func newFakeCartCache() *fakeCartCache {
	return &fakeCartCache{carts: map[string]*domain.Cart{}}
}

func (f *fakeCartCache) Get(_ context.Context, sid string) (*domain.Cart, error) {
	cart, ok := f.carts[sid]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return cart, nil
}

func (f *fakeCartCache) Replace(_ context.Context, sid string, cart *domain.Cart) error {
	f.replaceCalls++
	f.carts[sid] = cart
	return nil
}

func (f *fakeCartCache) Clear(_ context.Context, sid string) error {
	f.clearCalls++
	delete(f.carts, sid)
	return nil
}

// --- upstream cart API ---

type fakeCartAPI struct {
	cart    *domain.Cart
	err     error
	lastOp  string
	getOps  int
	addOps  int
	clrOps  int
	updOps  int
	remOps  int
}

func (f *fakeCartAPI) Get(_ context.Context, _ *domain.Session, _ string) (*domain.Cart, error) {
	f.lastOp = "get"
	f.getOps++
	return f.cart, f.err
}

func (f *fakeCartAPI) Add(_ context.Context, _ *domain.Session, _, _ string, _ int) (*domain.Cart, error) {
	f.lastOp = "add"
	f.addOps++
	return f.cart, f.err
}

func (f *fakeCartAPI) Update(_ context.Context, _ *domain.Session, _, _ string, _ int) (*domain.Cart, error) {
	f.lastOp = "update"
	f.updOps++
	return f.cart, f.err
}

func (f *fakeCartAPI) Remove(_ context.Context, _ *domain.Session, _, _ string) (*domain.Cart, error) {
	f.lastOp = "remove"
	f.remOps++
	return f.cart, f.err
}

func (f *fakeCartAPI) Clear(_ context.Context, _ *domain.Session, _ string) error {
	f.lastOp = "clear"
	f.clrOps++
	return f.err
}

// --- upstream auth API ---

type fakeAuthAPI struct {
	loginRes    *ports.AuthResult
	loginErr    error
	registerRes *ports.AuthResult
	registerErr error
	currentUser *domain.User
	currentErr  error
	logoutErr   error
	logoutCalls int
}

func (f *fakeAuthAPI) Login(context.Context, string, string) (*ports.AuthResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeAuthAPI) Register(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
	return f.registerRes, f.registerErr
}

func (f *fakeAuthAPI) Logout(context.Context, *domain.Session) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuthAPI) CurrentUser(context.Context, *domain.Session) (*domain.User, error) {
	return f.currentUser, f.currentErr
}

func (f *fakeAuthAPI) ForgotPassword(context.Context, string) error { return nil }

func (f *fakeAuthAPI) ResetPassword(context.Context, string, string) error { return nil }

func (f *fakeAuthAPI) UpdateProfile(context.Context, *domain.Session, string, ports.ProfileUpdate) (*domain.User, error) {
	return f.currentUser, f.currentErr
}

func (f *fakeAuthAPI) ChangePassword(context.Context, *domain.Session, string, string, string) error {
	return nil
}

// --- cart sync hook ---

type fakeCartSync struct {
	refreshed []string
	cleared   []string
}

func (f *fakeCartSync) RefreshFor(_ context.Context, sess *domain.Session) {
	f.refreshed = append(f.refreshed, sess.ID)
}

func (f *fakeCartSync) ClearFor(_ context.Context, sid string) {
	f.cleared = append(f.cleared, sid)
}

// --- wizard store ---

type fakeWizardStore struct {
	states map[string]*domain.WizardState
}

func newFakeWizardStore() *fakeWizardStore {
	return &fakeWizardStore{states: map[string]*domain.WizardState{}}
}

func (f *fakeWizardStore) Get(_ context.Context, sid string) (*domain.WizardState, error) {
	state, ok := f.states[sid]
	if !ok {
		return nil, domain.ErrWizardNotFound
	}
	cp := *state
	return &cp, nil
}

func (f *fakeWizardStore) Save(_ context.Context, sid string, state *domain.WizardState) error {
	cp := *state
	f.states[sid] = &cp
	return nil
}

func (f *fakeWizardStore) Delete(_ context.Context, sid string) error {
	delete(f.states, sid)
	return nil
}

// --- upstream booking API ---

type fakeBookingAPI struct {
	booking          *domain.Booking
	createErr        error
	createGuestErr   error
	linkErr          error
	createCalls      int
	createGuestCalls int
	linkCalls        int
	slots            []string
	lastRequest      ports.BookingRequest
}

func (f *fakeBookingAPI) Create(_ context.Context, _ *domain.Session, req ports.BookingRequest) (*domain.Booking, error) {
	f.createCalls++
	f.lastRequest = req
	return f.booking, f.createErr
}

func (f *fakeBookingAPI) CreateGuest(_ context.Context, req ports.BookingRequest) (*domain.Booking, error) {
	f.createGuestCalls++
	f.lastRequest = req
	return f.booking, f.createGuestErr
}

func (f *fakeBookingAPI) LinkAll(context.Context, string, string) error {
	f.linkCalls++
	return f.linkErr
}

func (f *fakeBookingAPI) AvailableSlots(context.Context, string, string) ([]string, error) {
	return f.slots, nil
}

func (f *fakeBookingAPI) ForUser(context.Context, *domain.Session, string) ([]*domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingAPI) Get(context.Context, *domain.Session, string) (*domain.Booking, error) {
	return f.booking, nil
}

func (f *fakeBookingAPI) List(context.Context, *domain.Session) ([]*domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingAPI) Update(context.Context, *domain.Session, string, ports.BookingRequest) (*domain.Booking, error) {
	return f.booking, nil
}

func (f *fakeBookingAPI) Cancel(context.Context, *domain.Session, string) (*domain.Booking, error) {
	return f.booking, nil
}

// --- link job ledger ---

type fakeLinkJobs struct {
	enqueued   []*domain.LinkJob
	enqueueErr error
}

func (f *fakeLinkJobs) Enqueue(_ context.Context, job *domain.LinkJob) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.enqueued = append(f.enqueued, job)
	return nil
}

func (f *fakeLinkJobs) Pending(context.Context, int) ([]*domain.LinkJob, error) {
	return f.enqueued, nil
}

func (f *fakeLinkJobs) MarkDone(context.Context, string) error { return nil }

func (f *fakeLinkJobs) MarkAttempt(context.Context, string, int, string, bool) error { return nil }

// --- auth service (for the booking service's guest conversion) ---

type fakeAuthService struct {
	ports.AuthService
	registerFn func(ctx context.Context, sess *domain.Session, in ports.RegisterInput) (*domain.Session, error)
}

func (f *fakeAuthService) Register(ctx context.Context, sess *domain.Session, in ports.RegisterInput) (*domain.Session, error) {
	return f.registerFn(ctx, sess, in)
}
