package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type capturedRequest struct {
	path           string
	auth           string
	idempotencyKey string
	amount         string
	currency       string
	methodType     string
}

func newTestStripe(t *testing.T) (*StripeProcessor, func() []capturedRequest) {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []capturedRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		mu.Lock()
		seen = append(seen, capturedRequest{
			path:           r.URL.Path,
			auth:           r.Header.Get("Authorization"),
			idempotencyKey: r.Header.Get("Idempotency-Key"),
			amount:         r.PostForm.Get("amount"),
			currency:       r.PostForm.Get("currency"),
			methodType:     r.PostForm.Get("payment_method_types[0]"),
		})
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","object":"payment_intent","amount":1234,"currency":"usd","client_secret":"pi_123_secret_abc"}`))
	}))
	t.Cleanup(srv.Close)

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	proc := newStripeProcessor("sk_test_123", &stripe.Backends{API: backend, Connect: backend, Uploads: backend})

	return proc, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedRequest(nil), seen...)
	}
}

func TestStripeProcessor_CreateIntent(t *testing.T) {
	proc, requests := newTestStripe(t)

	secret, err := proc.CreateIntent(context.Background(), 1234, "usd")
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_abc", secret)

	reqs := requests()
	require.Len(t, reqs, 1)
	got := reqs[0]
	assert.Equal(t, "/v1/payment_intents", got.path)
	assert.Equal(t, "Bearer sk_test_123", got.auth)
	assert.Equal(t, "1234", got.amount)
	assert.Equal(t, "usd", got.currency)
	assert.Equal(t, "card", got.methodType)
	_, err = uuid.Parse(got.idempotencyKey)
	assert.NoError(t, err, "idempotency key %q", got.idempotencyKey)
}

func TestStripeProcessor_FreshIdempotencyKeyPerCall(t *testing.T) {
	proc, requests := newTestStripe(t)

	for i := 0; i < 2; i++ {
		_, err := proc.CreateIntent(context.Background(), 500, "usd")
		require.NoError(t, err)
	}

	reqs := requests()
	require.Len(t, reqs, 2)
	assert.NotEqual(t, reqs[0].idempotencyKey, reqs[1].idempotencyKey)
}

func TestDisabled(t *testing.T) {
	secret, err := Disabled{}.CreateIntent(context.Background(), 100, "usd")
	assert.Empty(t, secret)
	assert.ErrorIs(t, err, ErrProcessorUnavailable)
}
