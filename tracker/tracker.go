// Package tracker runs the "add company" workflow: extract, persist, save the logo.
package tracker

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"companyintel/model"
	"companyintel/store"
)

// NoCompanyMessage is reported when a page was fetched but no name was found.
const NoCompanyMessage = "Could not find company information"

// Extractor produces a company record for a URL.
type Extractor interface {
	ScrapeCompany(ctx context.Context, rawURL string) model.CompanyRecord
}

// LogoSaver stores a logo and returns its local path, or "" on failure.
type LogoSaver interface {
	Save(ctx context.Context, key, logoURL string) string
}

// Outcome is the result of tracking one URL.
type Outcome struct {
	Key      string              `json:"key,omitempty"`
	Record   model.CompanyRecord `json:"record"`
	LogoPath string              `json:"logo_path,omitempty"`
	// Message explains why the record was not stored; empty on success.
	Message string `json:"message,omitempty"`
}

// Stored reports whether the record was persisted.
func (o Outcome) Stored() bool {
	return o.Key != ""
}

// Tracker extracts company records and keeps the successful ones.
type Tracker struct {
	extractor Extractor
	store     store.Store
	logos     LogoSaver
	logger    *zap.Logger
}

// New creates a Tracker. logos may be nil to skip logo downloads.
func New(extractor Extractor, st store.Store, logos LogoSaver, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		extractor: extractor,
		store:     st,
		logos:     logos,
		logger:    logger,
	}
}

// Track extracts rawURL and stores the record under its company key. Records
// with an error or without a name are returned but not stored. The only error
// returned is a failure to persist.
func (t *Tracker) Track(ctx context.Context, rawURL string) (Outcome, error) {
	rec := t.extractor.ScrapeCompany(ctx, rawURL)
	out := Outcome{Record: rec}

	switch {
	case rec.Error != nil:
		out.Message = *rec.Error
		return out, nil
	case rec.Name == nil:
		out.Message = NoCompanyMessage
		return out, nil
	}

	key := store.Key(*rec.Name)
	if err := t.store.Put(ctx, key, rec); err != nil {
		return out, eris.Wrapf(err, "tracker: persist %s", key)
	}
	out.Key = key
	t.logger.Info("tracker: company stored",
		zap.String("key", key),
		zap.String("url", rawURL),
	)

	if t.logos != nil && rec.LogoURL != nil {
		out.LogoPath = t.logos.Save(ctx, key, *rec.LogoURL)
	}
	return out, nil
}

// Companies lists the tracked companies.
func (t *Tracker) Companies(ctx context.Context) ([]store.Entry, error) {
	return t.store.List(ctx)
}

// Company returns the tracked record for key.
func (t *Tracker) Company(ctx context.Context, key string) (model.CompanyRecord, error) {
	return t.store.Get(ctx, key)
}
