package deals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dealhawk/backend/internal/negotiation"
	"dealhawk/backend/internal/pricing"
	"dealhawk/backend/internal/scoring"
)

// Service orchestrates deal scoring, pricing estimates, negotiation briefs,
// and score history.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new deals service
func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ScoreDeal scores a listing, preferring cached invoice data over the
// estimation tables, and records the run in history. A history write failure
// does not fail the scoring request.
func (s *Service) ScoreDeal(ctx context.Context, req *ScoreRequest) scoring.Result {
	cached := s.lookupCachedInvoice(ctx, req.Year, req.Make, req.Model, req.Trim)

	result := scoring.ScoreDeal(req.Listing(), time.Time{}, cached.Pricing())

	record := &ScoreRecord{
		ID:          uuid.New(),
		VehicleYear: req.Year,
		VehicleMake: req.Make,
		Model:       req.Model,
		Trim:        req.Trim,
		AskingPrice: req.AskingPrice,
		MSRP:        req.MSRP,
		DaysOnLot:   req.DaysOnLot,
		Score:       result.Score,
		Grade:       result.Grade,
		TrueCost:    result.Pricing.TrueDealerCost,
		LikelyOffer: result.Offers.Likely,
		ScoredAt:    time.Now().UTC(),
	}
	if err := s.repo.SaveScore(ctx, record); err != nil {
		s.logger.Warn("Failed to save score record",
			zap.Error(err),
			zap.String("make", req.Make),
			zap.String("model", req.Model))
	}

	return result
}

// Estimate resolves dealer cost for a vehicle without scoring it.
func (s *Service) Estimate(ctx context.Context, req *EstimateRequest) pricing.Result {
	cached := s.lookupCachedInvoice(ctx, req.Year, req.Make, req.Model, req.Trim)

	return pricing.Estimate(pricing.Request{
		Year:       req.Year,
		Make:       req.Make,
		Model:      req.Model,
		Trim:       req.Trim,
		MSRP:       req.MSRP,
		DealerCash: req.DealerCash,
		Cached:     cached.Pricing(),
	})
}

// Brief builds a negotiation brief for a listing, resolving dealer cost
// first so the brief works from the same numbers as the scorer.
func (s *Service) Brief(ctx context.Context, req *BriefRequest) (negotiation.Input, *negotiation.Brief) {
	cached := s.lookupCachedInvoice(ctx, req.Year, req.Make, req.Model, req.Trim)

	est := pricing.Estimate(pricing.Request{
		Year:       req.Year,
		Make:       req.Make,
		Model:      req.Model,
		Trim:       req.Trim,
		MSRP:       req.MSRP,
		DealerCash: req.DealerCash,
		Cached:     cached.Pricing(),
	})

	in := negotiation.Input{
		AskingPrice:      req.AskingPrice,
		MSRP:             req.MSRP,
		InvoicePrice:     est.InvoicePrice,
		Holdback:         est.Holdback,
		TrueDealerCost:   est.TrueDealerCost,
		DaysOnLot:        req.DaysOnLot,
		RebatesAvailable: req.RebatesAvailable,
		Make:             req.Make,
		Model:            req.Model,
		Year:             req.Year,
	}

	return in, negotiation.GenerateBrief(in)
}

// History returns persisted scoring runs, newest first.
func (s *Service) History(ctx context.Context, filters *HistoryFilters) ([]*ScoreRecord, int, error) {
	return s.repo.ListScores(ctx, filters)
}

// lookupCachedInvoice fetches cached invoice data, treating a repository
// failure as a cache miss so scoring degrades to table estimates.
func (s *Service) lookupCachedInvoice(ctx context.Context, year int, make, model, trim string) *CachedInvoice {
	cached, err := s.repo.GetCachedInvoice(ctx, year, make, model, trim)
	if err != nil {
		s.logger.Warn("Cached invoice lookup failed, falling back to estimates",
			zap.Error(err),
			zap.String("make", make),
			zap.String("model", model))
		return nil
	}
	return cached
}
