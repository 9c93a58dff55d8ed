package repository

import (
	"dirmirror/internal/model"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Save stores the cycle and one History row per file it handled.
func (r *HistoryRepository) Save(summary model.CycleSummary) (model.Cycle, error) {
	cycle := model.Cycle{
		StartedAt:  summary.StartedAt,
		FinishedAt: summary.FinishedAt,
		Copied:     summary.Copied(),
		Failed:     summary.Failed(),
		Aborted:    summary.Aborted,
	}
	if summary.Err != nil {
		cycle.ErrMsg = summary.Err.Error()
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cycle).Error; err != nil {
			return err
		}

		if len(summary.Results) == 0 {
			return nil
		}

		histories := make([]model.History, 0, len(summary.Results))
		for _, result := range summary.Results {
			status := model.SyncSuccess
			errMsg := ""
			if result.Err != nil {
				status = model.SyncFailed
				errMsg = result.Err.Error()
			}

			histories = append(histories, model.History{
				CycleID:  cycle.ID,
				Status:   status,
				Action:   result.Action,
				SrcPath:  result.SrcPath,
				DstPath:  result.DstPath,
				ErrMsg:   errMsg,
				SyncedAt: summary.FinishedAt,
			})
		}

		return tx.Create(&histories).Error
	})

	return cycle, err
}

type Stats struct {
	Cycles  int64 `json:"cycles"`
	Total   int64 `json:"total"`
	Success int64 `json:"success"`
	Failed  int64 `json:"failed"`
}

func (r *HistoryRepository) GetStats() (Stats, error) {
	var stats Stats
	if err := r.db.Model(&model.Cycle{}).Count(&stats.Cycles).Error; err != nil {
		return stats, err
	}

	if err := r.db.Model(&model.History{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}

	if err := r.db.Model(&model.History{}).
		Where("status = ?", model.SyncSuccess).
		Count(&stats.Success).Error; err != nil {
		return stats, err
	}

	stats.Failed = stats.Total - stats.Success
	return stats, nil
}

func (r *HistoryRepository) GetRecent(limit int) ([]model.History, error) {
	var histories []model.History
	result := r.db.
		Order("id desc").
		Limit(limit).
		Find(&histories)

	return histories, result.Error
}

func (r *HistoryRepository) GetFailed(limit int) ([]model.History, error) {
	var histories []model.History
	result := r.db.
		Where("status = ?", model.SyncFailed).
		Order("id desc").
		Limit(limit).
		Find(&histories)

	return histories, result.Error
}
