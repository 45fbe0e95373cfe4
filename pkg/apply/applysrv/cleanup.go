package applysrv

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/luminahr/portal/pkg/apply"
	"github.com/luminahr/portal/pkg/config"
	"github.com/luminahr/portal/pkg/fsx"
	"github.com/luminahr/portal/pkg/logx"
)

// RetentionSweeper elimina periódicamente los borradores abandonados.
// Un borrador sin guardados dentro de la ventana de retención se purga
// junto con sus archivos asociados.
type RetentionSweeper struct {
	drafts   apply.DraftRepository
	files    fsx.FileSystem
	interval time.Duration
	maxAge   time.Duration
	cron     *cron.Cron
}

// NewRetentionSweeper crea el barrido de retención de borradores
func NewRetentionSweeper(drafts apply.DraftRepository, files fsx.FileSystem, cfg *config.DraftConfig) *RetentionSweeper {
	return &RetentionSweeper{
		drafts:   drafts,
		files:    files,
		interval: cfg.SweepInterval,
		maxAge:   cfg.Retention,
		cron:     cron.New(),
	}
}

// Start agenda el barrido en segundo plano
func (s *RetentionSweeper) Start() error {
	_, err := s.cron.AddFunc("@every "+s.interval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.Sweep(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	logx.Infof("draft retention sweep scheduled every %s (max age %s)", s.interval, s.maxAge)
	return nil
}

// Stop detiene el scheduler y espera los barridos en curso
func (s *RetentionSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep ejecuta una pasada de limpieza
func (s *RetentionSweeper) Sweep(ctx context.Context) {
	cutoff := time.Now().Add(-s.maxAge)
	ids, err := s.drafts.StaleDraftIDs(ctx, cutoff)
	if err != nil {
		logx.Warnf("draft retention sweep failed: %v", err)
		return
	}

	cleared := 0
	for _, id := range ids {
		if draft, err := s.drafts.Restore(ctx, id); err == nil {
			purgeStoredFiles(ctx, s.files, id, draft.CV.Name)
		}
		if err := s.drafts.Clear(ctx, id); err != nil {
			logx.Warnf("failed to clear stale draft %s: %v", id.String(), err)
			continue
		}
		cleared++
	}

	if cleared > 0 {
		logx.WithFields(logx.Fields{"cleared": cleared}).Info("stale drafts purged")
	}
}
