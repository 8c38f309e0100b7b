package translate

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/penman/pkg/cache"
	"github.com/matzehuels/penman/pkg/errors"
	"github.com/matzehuels/penman/pkg/httputil"
	"github.com/matzehuels/penman/pkg/observability"
	"github.com/matzehuels/penman/pkg/styles"
)

// DefaultCacheTTL is how long successful translations are cached.
const DefaultCacheTTL = 24 * time.Hour

// RelayOptions configures a [Relay]. The zero value is usable: no cache,
// the default retry policy and a discarding logger.
type RelayOptions struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	CacheTTL time.Duration
	Policy   httputil.Policy
	Logger   *log.Logger
	NoCache  bool // skip cache reads; successful results are still stored
}

// Relay forwards requests to a Provider with caching and retries.
// It is safe for concurrent use.
type Relay struct {
	provider Provider
	cache    cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	policy   httputil.Policy
	logger   *log.Logger
	noCache  bool
}

// NewRelay creates a Relay for p.
func NewRelay(p Provider, opts RelayOptions) *Relay {
	r := &Relay{
		provider: p,
		cache:    opts.Cache,
		keyer:    opts.Keyer,
		ttl:      opts.CacheTTL,
		policy:   opts.Policy,
		logger:   opts.Logger,
		noCache:  opts.NoCache,
	}
	if r.cache == nil {
		r.cache = cache.NewNullCache()
	}
	if r.keyer == nil {
		r.keyer = cache.NewDefaultKeyer()
	}
	if r.ttl == 0 {
		r.ttl = DefaultCacheTTL
	}
	if r.policy.Attempts == 0 {
		sleep := r.policy.Sleep
		r.policy = httputil.DefaultPolicy()
		r.policy.Sleep = sleep
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r
}

// Provider returns the underlying provider.
func (r *Relay) Provider() Provider { return r.provider }

// Translate validates req, serves it from cache when possible, and
// otherwise calls the provider, retrying timeouts and rate limits.
func (r *Relay) Translate(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := r.provider.Name()
	hooks := observability.Translation()
	start := time.Now()
	family := styles.Resolve(req.Style).FontFamily
	key := r.keyer.TranslationKey(name, req.SourceLang, req.TargetLang, req.Text)

	if !r.noCache {
		if text, ok := r.lookup(ctx, key); ok {
			hooks.OnComplete(ctx, name, 0, true, time.Since(start), nil)
			return &Result{TranslatedText: text, FontFamily: family, Cached: true}, nil
		}
	}

	var (
		text    string
		lastErr error
		attempt int
	)
	policy := r.policy
	base := policy.Sleep
	if base == nil {
		base = httputil.Sleep
	}
	policy.Sleep = func(ctx context.Context, d time.Duration) error {
		hooks.OnRetry(ctx, name, attempt, d, lastErr)
		r.logger.Debug("retrying translation", "provider", name, "attempt", attempt, "wait", d, "err", lastErr)
		return base(ctx, d)
	}

	err := policy.Do(ctx, func(n int) error {
		attempt = n
		hooks.OnAttempt(ctx, name, n)
		out, err := r.provider.Translate(ctx, req.Text, req.SourceLang, req.TargetLang)
		if err != nil {
			lastErr = err
			if pe, ok := errors.AsProviderError(err); ok && pe.Transient() {
				return httputil.Retryable(err)
			}
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		err = unwrapRetryable(err)
		hooks.OnComplete(ctx, name, attempt, false, time.Since(start), err)
		r.logger.Warn("translation failed", "provider", name, "attempts", attempt, "err", err)
		return nil, err
	}

	r.store(ctx, key, text)
	hooks.OnComplete(ctx, name, attempt, false, time.Since(start), nil)
	return &Result{TranslatedText: text, FontFamily: family, Attempts: attempt}, nil
}

func (r *Relay) lookup(ctx context.Context, key string) (string, bool) {
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("translation cache read failed", "err", err)
		return "", false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, "translation")
		return "", false
	}
	observability.Cache().OnCacheHit(ctx, "translation")
	return string(data), true
}

func (r *Relay) store(ctx context.Context, key, text string) {
	if err := r.cache.Set(ctx, key, []byte(text), r.ttl); err != nil {
		r.logger.Warn("translation cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "translation", len(text))
}

func unwrapRetryable(err error) error {
	var re *httputil.RetryableError
	if stderrors.As(err, &re) {
		return re.Err
	}
	return err
}
