package insights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/angelmondragon/yahipe-backend/pkg/logger"
	"github.com/angelmondragon/yahipe-backend/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// FallbackMessage replaces the suggestions whenever generation fails.
const FallbackMessage = "We're sorry, but we couldn't generate suggestions at this moment. Please check your connection or try again later."

// ErrNotConfigured is reported when no text generator was wired.
var ErrNotConfigured = errors.New("insights generator not configured")

// Generator sends one prompt to a text-generation backend.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result carries either the generated text or the failure cause.
type Result struct {
	Text string
	Err  error
}

// Fallback reports whether the caller should render FallbackMessage.
func (r Result) Fallback() bool {
	return r.Err != nil
}

// Display returns the text to show the shopkeeper.
func (r Result) Display() string {
	if r.Err != nil {
		return FallbackMessage
	}
	return r.Text
}

// Service generates suggestions, allowing one upstream call per distinct shop value at a time.
type Service struct {
	generator Generator
	metrics   *metrics.Marketplace
	logg      *logger.Logger

	group    singleflight.Group
	mu       sync.Mutex
	inFlight map[string]int
}

// NewService builds an insights service. A nil generator yields fallback results.
func NewService(generator Generator, m *metrics.Marketplace, logg *logger.Logger) *Service {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		generator: generator,
		metrics:   m,
		logg:      logg,
		inFlight:  map[string]int{},
	}
}

// Generate requests suggestions for shop. Concurrent calls for the same shop
// value share one upstream request; workspaces whose data differs get their
// own. The upstream call outlives any single caller's cancellation. It never
// returns an error; the failure is carried in Result.Err.
func (s *Service) Generate(ctx context.Context, shop catalog.Shop) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("insights generation panicked: %v", r)}
			s.logg.Error(ctx, "insights.generate.panic", res.Err)
			s.metrics.ObserveInsights(metrics.OutcomeFailure, 0)
		}
	}()

	if s.generator == nil {
		s.logg.Warn(ctx, "insights.generate.unconfigured")
		s.metrics.ObserveInsights(metrics.OutcomeFailure, 0)
		return Result{Err: ErrNotConfigured}
	}

	prompt := BuildPrompt(shop)
	key := flightKey(shop.ID, prompt)
	upstream := context.WithoutCancel(ctx)
	start := time.Now()
	ch := s.group.DoChan(key, func() (v any, err error) {
		// DoChan runs this on its own goroutine, out of reach of the recover above.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("insights generation panicked: %v", r)
			}
		}()
		s.track(key, 1)
		defer s.track(key, -1)
		return s.generator.Generate(upstream, prompt)
	})

	var flight singleflight.Result
	select {
	case flight = <-ch:
	case <-ctx.Done():
		flight = singleflight.Result{Err: ctx.Err()}
	}
	elapsed := time.Since(start)

	if flight.Err != nil {
		ctx = s.logg.WithShopID(ctx, shop.ID)
		s.logg.Error(ctx, "insights.generate.failed", flight.Err)
		s.metrics.ObserveInsights(metrics.OutcomeFailure, elapsed)
		return Result{Err: flight.Err}
	}
	outcome := metrics.OutcomeSuccess
	if flight.Shared {
		outcome = metrics.OutcomeShared
	}
	s.metrics.ObserveInsights(outcome, elapsed)
	text, _ := flight.Val.(string)
	return Result{Text: text}
}

// InFlight reports whether a generation for this shop value is running.
func (s *Service) InFlight(shop catalog.Shop) bool {
	key := flightKey(shop.ID, BuildPrompt(shop))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight[key] > 0
}

func (s *Service) track(key string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight[key] += delta
	if s.inFlight[key] <= 0 {
		delete(s.inFlight, key)
	}
}

func flightKey(shopID, prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return shopID + ":" + hex.EncodeToString(sum[:8])
}
