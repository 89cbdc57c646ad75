package service

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/doughtobread/server/internal/apperror"
	"github.com/doughtobread/server/internal/model"
)

//go:embed scriptures.json
var scripturesJSON []byte

// dailyBreadStart anchors the devotional rotation. Day zero of the cycle is
// this date; the list repeats from the top once exhausted.
var dailyBreadStart = time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC)

// DailyBreadService surfaces one devotional entry per calendar day, cycling
// through the embedded scripture list.
type DailyBreadService struct {
	scriptures []model.DailyBread
	start      time.Time
	logger     *slog.Logger
}

func NewDailyBreadService(logger *slog.Logger) (*DailyBreadService, error) {
	var scriptures []model.DailyBread
	if err := json.Unmarshal(scripturesJSON, &scriptures); err != nil {
		return nil, fmt.Errorf("decoding embedded scriptures: %w", err)
	}

	return &DailyBreadService{
		scriptures: scriptures,
		start:      dailyBreadStart,
		logger:     logger,
	}, nil
}

// Today returns the devotional entry for the current date.
func (s *DailyBreadService) Today() (*model.DailyBread, error) {
	return s.VerseFor(time.Now().UTC())
}

// VerseFor returns the devotional entry for the given date. The entry is a
// pure function of the calendar date: (days since the rotation start) modulo
// the list length.
func (s *DailyBreadService) VerseFor(date time.Time) (*model.DailyBread, error) {
	if len(s.scriptures) == 0 {
		return nil, apperror.NotFound("daily bread", "today")
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	days := int(day.Sub(s.start).Hours() / 24)

	idx := days % len(s.scriptures)
	if idx < 0 {
		idx += len(s.scriptures)
	}

	entry := s.scriptures[idx]
	return &entry, nil
}
