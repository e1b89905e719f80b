package export

import (
	"fmt"
	"time"

	"github.com/julianstephens/flowplanr/internal/analysis"
	"github.com/julianstephens/flowplanr/internal/models"
	"github.com/julianstephens/flowplanr/internal/stats"
	"github.com/julianstephens/flowplanr/internal/storage"
	"github.com/julianstephens/flowplanr/internal/utils"
)

// Bundle is everything a report needs for one user.
type Bundle struct {
	Stats    models.UserStats
	Analysis models.AnalysisData
	// Entries are newest first, the order excerpts read them in.
	Entries []models.JournalEntry
	Now     time.Time
}

type Service struct {
	store storage.Provider
	clock func() time.Time
}

func NewService(store storage.Provider) *Service {
	return &Service{store: store, clock: time.Now}
}

// Load gathers userID's entries and derives stats and analysis. Analysis
// sees entries oldest first so the trend compares recent against older days.
func (s *Service) Load(userID string) (Bundle, error) {
	entries, err := s.store.GetEntries(userID)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to load entries: %w", err)
	}

	now, err := s.now()
	if err != nil {
		return Bundle{}, err
	}

	chronological := stats.SortedByDate(entries)
	return Bundle{
		Stats:    stats.ComputeAt(chronological, now),
		Analysis: analysis.Compute(chronological),
		Entries:  stats.NewestFirst(entries),
		Now:      now,
	}, nil
}

func (s *Service) now() (time.Time, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return utils.InTimezone(s.clock(), settings.Timezone)
}

// Artifact is one generated report. Now is the generation time and dates
// the file name when the report is saved.
type Artifact struct {
	Kind models.ReportKind
	Text string
	Now  time.Time
}

// Render generates kind for userID once, so the same text can be saved,
// printed and copied.
func (s *Service) Render(userID string, kind models.ReportKind) (Artifact, error) {
	b, err := s.Load(userID)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Kind: kind,
		Text: GenerateReport(kind, b.Stats, b.Analysis, b.Entries),
		Now:  b.Now,
	}, nil
}

func (s *Service) Report(userID string, kind models.ReportKind) (string, error) {
	a, err := s.Render(userID, kind)
	if err != nil {
		return "", err
	}
	return a.Text, nil
}

func (s *Service) Reports(userID string) (map[models.ReportKind]string, error) {
	b, err := s.Load(userID)
	if err != nil {
		return nil, err
	}
	return GenerateReports(b.Stats, b.Analysis, b.Entries), nil
}

func (s *Service) Prompts(userID string) (map[models.ReportKind]string, error) {
	b, err := s.Load(userID)
	if err != nil {
		return nil, err
	}
	return GeneratePrompts(b.Stats, b.Analysis), nil
}

// Download renders kind and writes it to dir, or to the configured export
// directory when dir is empty.
func (s *Service) Download(userID string, kind models.ReportKind, dir string) (string, error) {
	a, err := s.Render(userID, kind)
	if err != nil {
		return "", err
	}
	return s.Save(a, dir)
}

// Save writes a rendered report to dir, or to the configured export
// directory when dir is empty.
func (s *Service) Save(a Artifact, dir string) (string, error) {
	if dir == "" {
		settings, err := s.store.GetSettings()
		if err != nil {
			return "", fmt.Errorf("failed to load settings: %w", err)
		}
		models.ApplyDefaultSettings(&settings)
		dir = settings.ExportDir
	}
	return Write(dir, a.Kind, a.Text, a.Now)
}
