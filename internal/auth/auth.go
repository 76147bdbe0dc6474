package auth

import "crypto/subtle"

// Gate verifies admin credentials. Admin-originated operations (bill
// clearing, the active-tables view) pass through it; table and kitchen
// traffic does not.
type Gate interface {
	Verify(token string) bool
	Login(username, password string) (token string, ok bool)
}

// StaticGate checks against a single configured credential set.
type StaticGate struct {
	username string
	password string
	token    string
}

func NewStaticGate(username, password, token string) *StaticGate {
	return &StaticGate{username: username, password: password, token: token}
}

func (g *StaticGate) Verify(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(g.token)) == 1
}

func (g *StaticGate) Login(username, password string) (string, bool) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	if userOK && passOK {
		return g.token, true
	}
	return "", false
}
