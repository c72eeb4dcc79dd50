package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/hashicorp/go-hclog"

	"audiomark/internal/modules/share/domain"
	"audiomark/internal/modules/share/dto"
	shareout "audiomark/internal/modules/share/port/out"
	"audiomark/internal/platform/clock"
	apperrors "audiomark/internal/platform/errors"
	"audiomark/internal/platform/id"
)

type ShareService struct {
	targets map[string]shareout.Target
	chooser shareout.Chooser
	store   shareout.ManifestStore
	host    shareout.PluginHost
	log     shareout.ExportLog
	clock   clock.Clock
	idGen   id.Generator
	logger  hclog.Logger
}

func NewShareService(
	targets []shareout.Target,
	chooser shareout.Chooser,
	store shareout.ManifestStore,
	host shareout.PluginHost,
	log shareout.ExportLog,
	clk clock.Clock,
	idGen id.Generator,
	logger hclog.Logger,
) *ShareService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	byName := make(map[string]shareout.Target, len(targets))
	for _, t := range targets {
		byName[t.Name()] = t
	}
	return &ShareService{
		targets: byName,
		chooser: chooser,
		store:   store,
		host:    host,
		log:     log,
		clock:   clk,
		idGen:   idGen,
		logger:  logger.Named("share"),
	}
}

// Handoff tries the preferred target once, then the chooser once.
func (s *ShareService) Handoff(ctx context.Context, note domain.Note, preferred string) (domain.Record, domain.Receipt, error) {
	if err := note.Validate(); err != nil {
		return domain.Record{}, domain.Receipt{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	route, target := domain.RoutePreferred, preferred
	receipt, preferredErr := s.sharePreferred(ctx, note, preferred)
	if preferredErr != nil {
		s.logger.Warn("preferred target failed", "target", preferred, "error", preferredErr)
		route, target = domain.RouteChooser, domain.TargetChooser
		var chooserErr error
		if s.chooser == nil {
			chooserErr = fmt.Errorf("%w: no chooser configured", apperrors.ErrTargetUnavailable)
		} else {
			receipt, chooserErr = s.chooser.Choose(ctx, note)
		}
		if chooserErr != nil {
			s.logger.Error("chooser failed", "error", chooserErr)
			return domain.Record{}, domain.Receipt{}, fmt.Errorf("%w: %v", apperrors.ErrNoShareTargetAvailable, errors.Join(preferredErr, chooserErr))
		}
	}
	record := domain.Record{
		ID:          s.idGen.New(),
		DocumentRef: note.DocumentRef,
		Subject:     note.Subject,
		Count:       note.Count,
		Route:       route,
		Target:      target,
		ExportedAt:  s.clock.Now(),
	}
	if s.log != nil {
		if err := s.log.Append(ctx, record); err != nil {
			s.logger.Error("append export history", "error", err)
		}
	}
	s.logger.Info("note handed off", "route", route, "target", target, "location", receipt.Location)
	return record, receipt, nil
}

func (s *ShareService) sharePreferred(ctx context.Context, note domain.Note, preferred string) (domain.Receipt, error) {
	if preferred == "" || preferred == domain.TargetChooser {
		return domain.Receipt{}, fmt.Errorf("%w: no preferred target", apperrors.ErrTargetUnavailable)
	}
	if name, ok := domain.PluginName(preferred); ok {
		manifest, err := s.runnableManifest(ctx, name)
		if err != nil {
			return domain.Receipt{}, err
		}
		if s.host == nil {
			return domain.Receipt{}, fmt.Errorf("%w: plugin host not configured", apperrors.ErrTargetUnavailable)
		}
		return s.host.Share(ctx, manifest, note)
	}
	target, ok := s.targets[preferred]
	if !ok {
		return domain.Receipt{}, fmt.Errorf("%w: unknown target %s", apperrors.ErrNotFound, preferred)
	}
	if err := target.Available(ctx); err != nil {
		return domain.Receipt{}, err
	}
	return target.Share(ctx, note)
}

func (s *ShareService) runnableManifest(ctx context.Context, name string) (domain.Manifest, error) {
	manifests, err := s.loadManifests(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	for _, m := range manifests {
		if m.Name != name {
			continue
		}
		if err := m.Validate(); err != nil {
			return domain.Manifest{}, err
		}
		if !m.Enabled {
			return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, name)
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			return domain.Manifest{}, err
		}
		return m, nil
	}
	return domain.Manifest{}, fmt.Errorf("%w: plugin %s", apperrors.ErrNotFound, name)
}

func (s *ShareService) loadManifests(ctx context.Context) ([]domain.Manifest, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.Load(ctx)
}

func (s *ShareService) ListTargets(ctx context.Context) []dto.TargetInfo {
	names := make([]string, 0, len(s.targets))
	for name := range s.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]dto.TargetInfo, 0, len(names)+1)
	for _, name := range names {
		info := dto.TargetInfo{Name: name, Kind: string(domain.KindBuiltin), Available: true}
		if err := s.targets[name].Available(ctx); err != nil {
			info.Available = false
			info.Detail = err.Error()
		}
		out = append(out, info)
	}
	manifests, err := s.loadManifests(ctx)
	if err != nil {
		s.logger.Warn("plugin manifests unreadable", "error", err)
		return out
	}
	for _, m := range manifests {
		info := dto.TargetInfo{Name: m.TargetName(), Kind: string(domain.KindPlugin), Available: m.Enabled, Detail: m.Label}
		if err := m.Validate(); err != nil {
			info.Available = false
			info.Detail = err.Error()
		} else if !m.Enabled {
			info.Detail = domain.ErrPluginDisabled.Error()
		}
		out = append(out, info)
	}
	return out
}

func (s *ShareService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.loadManifests(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *ShareService) History(ctx context.Context, limit int) ([]domain.Record, error) {
	if s.log == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	return s.log.Recent(ctx, limit)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func checksumMatches(path, expected string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open plugin binary: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("hash plugin binary: %w", err)
	}
	if hex.EncodeToString(h.Sum(nil)) != expected {
		return domain.ErrChecksumMismatch
	}
	return nil
}
