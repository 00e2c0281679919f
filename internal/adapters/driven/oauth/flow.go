package oauth

import (
	"context"
	"fmt"
	"math"
	"time"
)

// State is a step of the two-legged flow.
type State int

const (
	// StateUnauthenticated is where every run starts.
	StateUnauthenticated State = iota
	// StateAssertionBuilt means a signed assertion exists.
	StateAssertionBuilt
	// StateTokenAcquired is terminal success.
	StateTokenAcquired
	// StateFailed is terminal failure.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAssertionBuilt:
		return "assertion_built"
	case StateTokenAcquired:
		return "token_acquired"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// FlowError records the state the flow was in when a transition failed.
type FlowError struct {
	From State
	Err  error
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("two-legged oauth failed after %s: %v", e.From, e.Err)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// Token is the outcome of a successful flow.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
	IssuedAt    time.Time
}

// TwoLeggedFlow mints access tokens for one service account and scope.
// It holds no token state; each Token call starts from StateUnauthenticated.
type TwoLeggedFlow struct {
	key       *ServiceAccountKey
	scope     string
	signer    Signer
	exchanger *Exchanger
	now       func() time.Time
}

// FlowOption configures a TwoLeggedFlow.
type FlowOption func(*TwoLeggedFlow)

// WithSigner replaces the RS256 signer built from the key's private key.
func WithSigner(s Signer) FlowOption {
	return func(f *TwoLeggedFlow) {
		f.signer = s
	}
}

// WithExchanger sets the exchanger used for the token request.
func WithExchanger(e *Exchanger) FlowOption {
	return func(f *TwoLeggedFlow) {
		f.exchanger = e
	}
}

// WithClock sets the wall clock used for issued-at.
func WithClock(now func() time.Time) FlowOption {
	return func(f *TwoLeggedFlow) {
		f.now = now
	}
}

// NewTwoLeggedFlow creates a flow for the given key and scope.
func NewTwoLeggedFlow(key *ServiceAccountKey, scope string, opts ...FlowOption) *TwoLeggedFlow {
	f := &TwoLeggedFlow{
		key:   key,
		scope: scope,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.exchanger == nil {
		f.exchanger = NewExchanger(0)
	}
	return f
}

// Scope returns the scope requested by this flow.
func (f *TwoLeggedFlow) Scope() string {
	return f.scope
}

// Issuer returns the service account email.
func (f *TwoLeggedFlow) Issuer() string {
	return f.key.ClientEmail
}

// SignedAssertion builds and signs a fresh assertion.
func (f *TwoLeggedFlow) SignedAssertion() (string, error) {
	return f.signedAssertion(f.now())
}

func (f *TwoLeggedFlow) signedAssertion(now time.Time) (string, error) {
	signer := f.signer
	if signer == nil {
		s, err := NewRS256Signer(f.key.PrivateKey)
		if err != nil {
			return "", err
		}
		signer = s
	}
	return Assertion(NewClaimSet(f.key, f.scope, now), signer)
}

// Token runs Unauthenticated → AssertionBuilt → TokenAcquired.
// Any failure is returned as a *FlowError wrapping one of the package errors.
func (f *TwoLeggedFlow) Token(ctx context.Context) (*Token, error) {
	issuedAt := f.now()

	assertion, err := f.signedAssertion(issuedAt)
	if err != nil {
		return nil, &FlowError{From: StateUnauthenticated, Err: err}
	}

	resp, err := f.exchanger.Exchange(ctx, f.key.TokenURI, assertion)
	if err != nil {
		return nil, &FlowError{From: StateAssertionBuilt, Err: err}
	}

	return &Token{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   lifetime(resp.ExpiresIn),
		IssuedAt:    issuedAt,
	}, nil
}

// maxLifetimeSeconds is the largest expires_in a time.Duration can hold.
const maxLifetimeSeconds = uint64(math.MaxInt64 / int64(time.Second))

// lifetime converts expires_in seconds, saturating instead of overflowing.
func lifetime(seconds uint64) time.Duration {
	if seconds > maxLifetimeSeconds {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(seconds) * time.Second
}
