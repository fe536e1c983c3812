package cli

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
)

// fakeSession is an in-memory SessionStore. Login and SetTokenFromCallback
// sign in as user unless the matching error is set.
type fakeSession struct {
	mu    sync.Mutex
	token string
	user  *models.User
	subs  []func(services.Snapshot)

	signInAs *models.User

	loginEmail string
	loginPass  []byte
	loginErr   error

	regEmail, regUser string
	regPass           []byte
	regErr            error

	callbackToken string
	callbackErr   error

	users    []models.User
	usersErr error

	fetchCalls int
	fetchFails bool
	listCalls  int
}

var _ services.SessionStore = (*fakeSession)(nil)

func (f *fakeSession) signIn(token string) {
	f.mu.Lock()
	f.token = token
	f.user = f.signInAs.Clone()
	f.mu.Unlock()
	f.notify()
}

func (f *fakeSession) signOut() {
	f.mu.Lock()
	f.token, f.user = "", nil
	f.mu.Unlock()
	f.notify()
}

func (f *fakeSession) notify() {
	snap := f.Snapshot()
	for _, fn := range f.subs {
		fn(snap)
	}
}

func (f *fakeSession) Login(_ context.Context, email string, password []byte) error {
	f.loginEmail, f.loginPass = email, append([]byte(nil), password...)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.signIn("login-token")
	return nil
}

func (f *fakeSession) Register(_ context.Context, email, username string, password []byte) error {
	f.regEmail, f.regUser, f.regPass = email, username, append([]byte(nil), password...)
	return f.regErr
}

func (f *fakeSession) SetTokenFromCallback(_ context.Context, token string) error {
	f.callbackToken = token
	if f.callbackErr != nil {
		return f.callbackErr
	}
	f.signIn(token)
	return nil
}

func (f *fakeSession) FetchMe(context.Context) {
	f.fetchCalls++
	if f.fetchFails {
		f.signOut()
	}
}

func (f *fakeSession) Logout(context.Context) { f.signOut() }

func (f *fakeSession) ListUsers(context.Context) ([]models.User, error) {
	f.listCalls++
	return f.users, f.usersErr
}

func (f *fakeSession) IsAuthenticated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token != "" && f.user != nil
}

func (f *fakeSession) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSession) User() *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user.Clone()
}

func (f *fakeSession) Snapshot() services.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return services.Snapshot{Token: f.token, User: f.user.Clone(), Authenticated: f.token != "" && f.user != nil}
}

func (f *fakeSession) Subscribe(fn func(services.Snapshot)) func() {
	f.subs = append(f.subs, fn)
	return func() { f.subs = nil }
}

func (f *fakeSession) Ready() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
