// Package host provides a reference execution harness for charm contracts.
// It implements the caller side of the validator contract: every distinct
// application identity present in a transaction is validated exactly once,
// and the transaction is accepted only if all of them validate. The runtime
// holds no entity storage, tracks no chain state and performs no I/O beyond
// logging and metrics.
package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"liquidnation/charm"
)

// Contract is a state-transition validator for one application binary,
// identified by its verification key. A nil error accepts the operation.
type Contract func(app charm.App, tx *charm.Transaction, x, w charm.Data) error

// Inputs carries the per-identity public input and private witness supplied
// alongside a transaction. Zero-value Data fields mean absent, which
// contracts interpret as the plain transfer path.
type Inputs struct {
	Public  charm.Data
	Witness charm.Data
}

// ErrUnknownContract rejects identities whose verification key has no
// registered contract; with no rules to prove, the transaction cannot be
// accepted.
var ErrUnknownContract = errors.New("host: no contract registered for verification key")

// Runtime dispatches transactions to registered contracts. It is safe for
// concurrent use after registration is complete; validation itself is pure.
type Runtime struct {
	contracts map[string]Contract
	log       *slog.Logger
	metrics   *Metrics
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger decisions are reported to.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runtime) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMetrics enables Prometheus counters for validation outcomes.
func WithMetrics(m *Metrics) Option {
	return func(r *Runtime) { r.metrics = m }
}

// NewRuntime builds an empty runtime. Contracts are registered per
// verification key before any transaction is verified.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		contracts: make(map[string]Contract),
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register binds a contract to a verification key. Later registrations for
// the same key replace earlier ones.
func (r *Runtime) Register(vk []byte, contract Contract) {
	r.contracts[string(vk)] = contract
}

// VerifyTransaction validates every distinct application identity attached in
// the transaction and accepts only if all of them validate. Identities are
// visited in deterministic order and the first rejection is returned; a
// rejected transaction has no partial effects because validation reads but
// never writes.
func (r *Runtime) VerifyTransaction(ctx context.Context, tx *charm.Transaction, inputs map[charm.AppKey]Inputs) error {
	for _, key := range tx.AppKeys() {
		if err := ctx.Err(); err != nil {
			return err
		}
		app := key.App()
		contract, ok := r.contracts[key.VK]
		if !ok {
			r.observe(app, "unknown", 0)
			return fmt.Errorf("%w: app %s", ErrUnknownContract, app)
		}
		in := inputs[key]
		start := time.Now()
		err := contract(app, tx, in.Public, in.Witness)
		elapsed := time.Since(start)
		if err != nil {
			r.observe(app, "rejected", elapsed)
			r.log.Info("transaction rejected",
				"app", app.String(),
				"tag", string(rune(app.Tag)),
				"reason", err.Error(),
			)
			return fmt.Errorf("host: app %s rejected: %w", app, err)
		}
		r.observe(app, "accepted", elapsed)
		r.log.Debug("app validated", "app", app.String())
	}
	return nil
}

func (r *Runtime) observe(app charm.App, outcome string, elapsed time.Duration) {
	if r.metrics == nil {
		return
	}
	r.metrics.Observe(app.Tag, outcome, elapsed)
}
