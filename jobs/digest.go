package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"TIMEGATE/recorder"
	"TIMEGATE/utils"
)

// StartDailyDigest schedules a job shortly after midnight that logs the
// previous day's punch count per location. Read-only; punch rows are never
// touched.
func StartDailyDigest(db *gorm.DB) *gocron.Scheduler {
	rec := recorder.New(db)

	s := gocron.NewScheduler(time.Local)
	_, err := s.Every(1).Day().At("00:05").Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		day := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
		counts, err := rec.CountForDay(ctx, day)
		if err != nil {
			utils.Logger.Error("daily digest failed", zap.String("day", day), zap.Error(err))
			return
		}

		total := int64(0)
		for _, n := range counts {
			total += n
		}
		utils.Logger.Info("daily punch digest",
			zap.String("day", day),
			zap.Int("locations", len(counts)),
			zap.Int64("punches", total))
	})
	if err != nil {
		utils.Logger.Error("failed to schedule daily digest", zap.Error(err))
	}

	s.StartAsync()
	return s
}
