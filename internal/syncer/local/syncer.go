package local

import (
	"context"
	"dirmirror/internal/logger"
	"dirmirror/internal/model"
	"dirmirror/internal/pipeline"
	"dirmirror/internal/syncer"
	"dirmirror/internal/util"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

type Syncer struct {
	fs         afero.Fs
	src        string
	dst        string
	audit      syncer.AuditLog
	ignoreList []string
}

type Option func(*Syncer)

func WithIgnoreList(patterns []string) Option {
	return func(s *Syncer) {
		s.ignoreList = patterns
	}
}

func NewSyncer(fs afero.Fs, src, dst string, audit syncer.AuditLog, opts ...Option) (*Syncer, error) {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return nil, fmt.Errorf("invalid src path: %w", err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return nil, fmt.Errorf("invalid dst path: %w", err)
	}

	if err := fs.MkdirAll(absDst, 0755); err != nil {
		return nil, fmt.Errorf("failed to create dst dir: %w", err)
	}

	s := &Syncer{
		fs:    fs,
		src:   absSrc,
		dst:   absDst,
		audit: audit,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Syncer) Src() string { return s.src }

func (s *Syncer) Dst() string { return s.dst }

// Run mirrors every file of the source root into the destination root.
// A failing file is recorded and the pass moves on to the next one;
// cancelling ctx stops the pass between files.
func (s *Syncer) Run(ctx context.Context) model.CycleSummary {
	summary := model.CycleSummary{StartedAt: time.Now()}

	logger.Log.Info("synchronization process started",
		zap.Time("at", summary.StartedAt),
		zap.String("src", s.src),
		zap.String("dst", s.dst))

	defer func() {
		logger.Log.Info("synchronization process finished",
			zap.Time("at", summary.FinishedAt),
			zap.Int("copied", summary.Copied()),
			zap.Int("failed", summary.Failed()),
			zap.Bool("aborted", summary.Aborted))
	}()

	entries, err := ListSource(s.fs, s.src)
	if err != nil {
		logger.Log.Error("cycle failed",
			zap.String("src", s.src),
			zap.Error(err))
		summary.Err = err
		summary.FinishedAt = time.Now()
		return summary
	}

	for _, action := range Plan(pipeline.Filter(entries, s.ignoreList), s.dst) {
		if ctx.Err() != nil {
			summary.Aborted = true
			break
		}

		summary.Results = append(summary.Results, s.handle(action))
	}

	summary.FinishedAt = time.Now()
	return summary
}

func (s *Syncer) handle(action model.PlannedAction) model.FileResult {
	result := model.FileResult{
		Entry:   action.Entry,
		SrcPath: action.Entry.Path,
		DstPath: action.DstPath,
	}

	result.Action, result.Err = Decide(s.fs, action.DstPath)
	if result.Err == nil && result.Action == model.ActionOverwrite {
		s.audit.Append(fmt.Sprintf("Deleted file at path: %s to avoid conflicts while synchronizing.", action.DstPath))
		result.Err = util.RemoveIfExists(s.fs, action.DstPath)
	}

	if result.Err == nil {
		result.Err = s.copyFile(action.Entry.Path, action.DstPath)
	}

	if result.Err != nil {
		s.audit.Append(fmt.Sprintf("Failed to synchronize %s to directory: %s: %v", action.Entry.Name, s.dst, result.Err))
		logger.Log.Error("sync failed",
			zap.String("action", string(result.Action)),
			zap.String("path", result.SrcPath),
			zap.Error(result.Err))
		return result
	}

	s.audit.Append(fmt.Sprintf("Copied %s to directory: %s", action.Entry.Name, s.dst))
	logger.Log.Debug("synced",
		zap.String("action", string(result.Action)),
		zap.String("src", result.SrcPath),
		zap.String("dst", result.DstPath))

	return result
}

func (s *Syncer) copyFile(src, dst string) error {
	f, err := s.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open src: %w", err)
	}

	defer func(f afero.File) {
		_ = f.Close()
	}(f)

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat src: %w", err)
	}

	return util.AtomicWrite(s.fs, dst, f, info.Mode().Perm())
}
