package deals

import (
	"time"

	"github.com/google/uuid"

	"dealhawk/backend/internal/pricing"
	"dealhawk/backend/internal/scoring"
)

// ScoreRequest is the payload for scoring a listing.
type ScoreRequest struct {
	AskingPrice      float64 `json:"asking_price" binding:"required,gt=0"`
	MSRP             float64 `json:"msrp" binding:"required,gt=0"`
	Make             string  `json:"make" binding:"required"`
	Model            string  `json:"model" binding:"required"`
	Year             int     `json:"year"`
	Trim             string  `json:"trim"`
	DaysOnLot        int     `json:"days_on_lot"`
	DealerCash       float64 `json:"dealer_cash"`
	RebatesAvailable float64 `json:"rebates_available"`
}

// Listing converts the request into scorer input.
func (r ScoreRequest) Listing() scoring.ListingFacts {
	return scoring.ListingFacts{
		AskingPrice:      r.AskingPrice,
		MSRP:             r.MSRP,
		Make:             r.Make,
		Model:            r.Model,
		Year:             r.Year,
		Trim:             r.Trim,
		DaysOnLot:        r.DaysOnLot,
		DealerCash:       r.DealerCash,
		RebatesAvailable: r.RebatesAvailable,
	}
}

// EstimateRequest is the payload for a standalone pricing estimate.
type EstimateRequest struct {
	Year       int     `json:"year"`
	Make       string  `json:"make" binding:"required"`
	Model      string  `json:"model" binding:"required"`
	Trim       string  `json:"trim"`
	MSRP       float64 `json:"msrp" binding:"required,gt=0"`
	DealerCash float64 `json:"dealer_cash"`
}

// BriefRequest is the payload for generating a negotiation brief. Pricing is
// resolved from the reference tables before the brief is built.
type BriefRequest struct {
	AskingPrice      float64 `json:"asking_price" binding:"required,gt=0"`
	MSRP             float64 `json:"msrp" binding:"required,gt=0"`
	Make             string  `json:"make" binding:"required"`
	Model            string  `json:"model" binding:"required"`
	Year             int     `json:"year"`
	Trim             string  `json:"trim"`
	DaysOnLot        int     `json:"days_on_lot"`
	DealerCash       float64 `json:"dealer_cash"`
	RebatesAvailable float64 `json:"rebates_available"`
}

// ScoreRecord is a persisted scoring run, kept for history and export.
type ScoreRecord struct {
	ID          uuid.UUID `db:"id" json:"id"`
	VehicleYear int       `db:"vehicle_year" json:"vehicle_year"`
	VehicleMake string    `db:"vehicle_make" json:"vehicle_make"`
	Model       string    `db:"model" json:"model"`
	Trim        string    `db:"trim" json:"trim"`
	AskingPrice float64   `db:"asking_price" json:"asking_price"`
	MSRP        float64   `db:"msrp" json:"msrp"`
	DaysOnLot   int       `db:"days_on_lot" json:"days_on_lot"`
	Score       int       `db:"score" json:"score"`
	Grade       string    `db:"grade" json:"grade"`
	TrueCost    float64   `db:"true_cost" json:"true_cost"`
	LikelyOffer float64   `db:"likely_offer" json:"likely_offer"`
	ScoredAt    time.Time `db:"scored_at" json:"scored_at"`
}

// CachedInvoice is a dealer-invoice record sourced from a paid data feed,
// preferred over the estimation tables when present.
type CachedInvoice struct {
	VehicleYear  int       `db:"vehicle_year"`
	VehicleMake  string    `db:"vehicle_make"`
	Model        string    `db:"model"`
	Trim         string    `db:"trim"`
	InvoicePrice float64   `db:"invoice_price"`
	Holdback     float64   `db:"holdback"`
	FetchedAt    time.Time `db:"fetched_at"`
}

// Pricing converts the row into estimator input.
func (c *CachedInvoice) Pricing() *pricing.CachedInvoice {
	if c == nil {
		return nil
	}
	return &pricing.CachedInvoice{
		InvoicePrice: c.InvoicePrice,
		Holdback:     c.Holdback,
	}
}

// HistoryFilters narrows the score history listing.
type HistoryFilters struct {
	Make     *string
	MinScore *int
	Page     int
	PageSize int
}
