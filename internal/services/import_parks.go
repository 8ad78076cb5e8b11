package services

import (
	"context"
	"errors"
	"fmt"
	"trailblazer-service/internal/domain"
	"trailblazer-service/internal/platform/logging"
	"trailblazer-service/internal/platform/metrics"
	"trailblazer-service/internal/ports"
)

// ImportByRegion pulls every directory record for regionCode and reconciles
// it against storage, one record at a time.
//
// Each insert or update commits on its own, so a failure part way through
// keeps everything already written. The returned error is then an
// *domain.ImportError whose Summary holds the counts committed so far.
// Running the import again over unchanged data inserts and updates nothing.
func ImportByRegion(
	ctx context.Context,
	regionCode string,
	dir ports.ParkDirectory,
	repo ports.ParkRepository,
) (domain.ImportSummary, error) {
	var summary domain.ImportSummary

	region := domain.NormalizeRegion(regionCode)
	if !domain.ValidRegion(region) {
		return summary, &domain.ValidationError{
			Field:  "region",
			Reason: fmt.Sprintf("%q is not a two-letter region code", regionCode),
		}
	}

	log := logging.L().With().Str("region", region).Logger()

	for rec, err := range dir.FetchByRegion(ctx, region) {
		if err != nil {
			log.Error().Err(err).Interface("summary", summary).Msg("directory fetch failed, aborting import")
			return summary, &domain.ImportError{Region: region, Summary: summary, Err: err}
		}

		park, ok := NormalizeRecord(rec, region)
		if !ok {
			summary.Record(domain.OutcomeDiscarded)
			metrics.ImportRecordsTotal.WithLabelValues(string(domain.OutcomeDiscarded)).Inc()
			log.Debug().Msg("discarded directory record without park code or name")
			continue
		}

		outcome, err := reconcilePark(ctx, repo, park)
		if err != nil {
			log.Error().Err(err).Str("external_code", park.ExternalCode).Msg("reconcile failed, aborting import")
			return summary, &domain.ImportError{
				Region:  region,
				Summary: summary,
				Err:     fmt.Errorf("reconcile park external_code=%q: %w", park.ExternalCode, err),
			}
		}

		summary.Record(outcome)
		metrics.ImportRecordsTotal.WithLabelValues(string(outcome)).Inc()
		log.Debug().
			Str("external_code", park.ExternalCode).
			Str("outcome", string(outcome)).
			Msg("park reconciled")
	}

	log.Info().
		Int("inserted", summary.Inserted).
		Int("updated", summary.Updated).
		Int("unchanged", summary.Unchanged()).
		Int("discarded", summary.Discarded).
		Int("total", summary.Total).
		Msg("import finished")

	return summary, nil
}

// reconcilePark inserts park or brings the stored row with the same external
// code up to date. Losing an insert race to another writer falls back to the
// update path once; a second conflict is returned.
func reconcilePark(ctx context.Context, repo ports.ParkRepository, park *domain.Park) (domain.ImportOutcome, error) {
	existing, err := repo.FindByExternalCode(ctx, park.ExternalCode)
	if err == nil {
		return updateIfChanged(ctx, repo, existing, park)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("find by external code: %w", err)
	}

	id, err := repo.Insert(ctx, park)
	if err == nil {
		park.ID = id
		return domain.OutcomeInserted, nil
	}
	if !errors.Is(err, domain.ErrStoreConflict) {
		return "", fmt.Errorf("insert: %w", err)
	}

	logging.L().Debug().Str("external_code", park.ExternalCode).Msg("insert lost a race, retrying as update")

	existing, err = repo.FindByExternalCode(ctx, park.ExternalCode)
	if errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("row vanished after insert conflict: %w", domain.ErrStoreConflict)
	}
	if err != nil {
		return "", fmt.Errorf("find after insert conflict: %w", err)
	}
	return updateIfChanged(ctx, repo, existing, park)
}

func updateIfChanged(
	ctx context.Context,
	repo ports.ParkRepository,
	existing *domain.Park,
	park *domain.Park,
) (domain.ImportOutcome, error) {
	park.ID = existing.ID

	changed := existing.ChangedFields(park)
	if len(changed) == 0 {
		return domain.OutcomeUnchanged, nil
	}

	if err := repo.Update(ctx, park); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("update park_id=%d: row vanished: %w", park.ID, domain.ErrStoreConflict)
		}
		return "", fmt.Errorf("update park_id=%d: %w", park.ID, err)
	}

	logging.L().Debug().
		Int64("park_id", park.ID).
		Strs("changed", changed).
		Msg("park updated")
	return domain.OutcomeUpdated, nil
}
