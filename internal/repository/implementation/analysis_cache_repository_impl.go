package implementation

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ai-assistant-be/internal/model"
	"ai-assistant-be/internal/repository/contract"
	"ai-assistant-be/pkg/vision"
)

type analysisCacheRepository struct {
	db *gorm.DB
}

// NewAnalysisCacheRepository creates the postgres-backed analysis cache store.
func NewAnalysisCacheRepository(db *gorm.DB) contract.IAnalysisCacheRepository {
	return &analysisCacheRepository{db: db}
}

func (r *analysisCacheRepository) Get(ctx context.Context, fingerprint string) (*vision.Result, bool, error) {
	var m model.AnalysisCacheEntry
	if err := r.db.WithContext(ctx).Where("fingerprint = ?", fingerprint).First(&m).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var observations []string
	if len(m.Observations) > 0 {
		if err := json.Unmarshal(m.Observations, &observations); err != nil {
			return nil, false, fmt.Errorf("decode observations for %s: %w", fingerprint, err)
		}
	}

	return &vision.Result{
		Stage:        m.Stage,
		Observations: observations,
		Confidence:   m.Confidence,
		RawResponse:  m.RawResponse,
		Markdown:     m.Markdown,
	}, true, nil
}

func (r *analysisCacheRepository) Put(ctx context.Context, fingerprint string, result *vision.Result) error {
	observations, err := json.Marshal(result.Observations)
	if err != nil {
		return fmt.Errorf("encode observations for %s: %w", fingerprint, err)
	}

	entry := model.AnalysisCacheEntry{
		Fingerprint:  fingerprint,
		Stage:        result.Stage,
		Observations: datatypes.JSON(observations),
		Confidence:   result.Confidence,
		RawResponse:  result.RawResponse,
		Markdown:     result.Markdown,
	}

	// Entries are immutable; a concurrent writer computing the same
	// fingerprint wrote the same value, so conflicts are ignored.
	return r.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		FirstOrCreate(&entry).Error
}
