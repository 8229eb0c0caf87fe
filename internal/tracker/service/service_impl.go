package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/solarishq/solaris/internal/tracker/domain"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &Service{
		log:   log.Named("tracker.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *Service) AddEntry(ctx context.Context, userID snowflake.ID, req domain.EntryRequest) (*domain.EnergyLog, error) {
	if req.AmountKwh <= 0 {
		return nil, domain.ErrInvalidEntry
	}
	if req.RevenueINR != nil && *req.RevenueINR < 0 {
		return nil, domain.ErrInvalidEntry
	}

	entryType := strings.ToLower(strings.TrimSpace(req.EntryType))
	switch entryType {
	case domain.EntryGeneration, domain.EntryConsumption, domain.EntryExport, domain.EntryOther:
	case "":
		entryType = domain.EntryOther
	default:
		return nil, domain.ErrInvalidEntry
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}
	date = date.Truncate(24 * time.Hour)

	entry := &domain.EnergyLog{
		ID:         s.genID.Generate(),
		UserID:     userID,
		Date:       date,
		EntryType:  entryType,
		AmountKwh:  req.AmountKwh,
		RevenueINR: req.RevenueINR,
		Notes:      strings.TrimSpace(req.Notes),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) BuildContext(ctx context.Context, userID snowflake.ID) (*domain.Context, error) {
	logs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*domain.DaySummary)
	totals := domain.Totals{Entries: len(logs)}

	for _, entry := range logs {
		key := entry.Date.Format(dateLayout)
		day, ok := byDay[key]
		if !ok {
			day = &domain.DaySummary{Date: key}
			byDay[key] = day
		}

		switch entry.EntryType {
		case domain.EntryGeneration:
			day.GenerationKwh += entry.AmountKwh
			totals.GenerationKwh += entry.AmountKwh
		case domain.EntryExport:
			day.ExportKwh += entry.AmountKwh
			totals.ExportKwh += entry.AmountKwh
		default:
			// consumption and untyped entries both count as consumption
			day.ConsumptionKwh += entry.AmountKwh
			totals.ConsumptionKwh += entry.AmountKwh
		}
		if entry.RevenueINR != nil {
			day.RevenueINR += *entry.RevenueINR
			totals.RevenueINR += *entry.RevenueINR
		}
	}

	days := make([]domain.DaySummary, 0, len(byDay))
	for _, day := range byDay {
		day.GenerationKwh = round2(day.GenerationKwh)
		day.ConsumptionKwh = round2(day.ConsumptionKwh)
		day.ExportKwh = round2(day.ExportKwh)
		day.RevenueINR = round2(day.RevenueINR)
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	totals.GenerationKwh = round2(totals.GenerationKwh)
	totals.ConsumptionKwh = round2(totals.ConsumptionKwh)
	totals.ExportKwh = round2(totals.ExportKwh)
	totals.RevenueINR = round2(totals.RevenueINR)
	totals.Days = len(days)

	recent := logs
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}
	// newest first for display
	reversed := make([]domain.EnergyLog, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		reversed = append(reversed, recent[i])
	}

	return &domain.Context{
		Days:     days,
		Totals:   totals,
		Insights: insights(days, totals),
		Recent:   reversed,
	}, nil
}

func insights(days []domain.DaySummary, totals domain.Totals) []string {
	if len(days) == 0 {
		return []string{"No readings yet. Log your first entry to start tracking."}
	}

	var out []string

	avgGen := totals.GenerationKwh / float64(len(days))
	out = append(out, fmt.Sprintf("Average daily generation is %.1f kWh across %d days.", avgGen, len(days)))

	latest := days[len(days)-1]
	out = append(out, fmt.Sprintf("Latest reading on %s: %.1f kWh generated.", latest.Date, latest.GenerationKwh))

	if totals.GenerationKwh > 0 && totals.ExportKwh > 0 {
		ratio := totals.ExportKwh / totals.GenerationKwh * 100
		out = append(out, fmt.Sprintf("You export %.0f%% of what you generate.", ratio))
	}

	peak := days[0]
	for _, d := range days[1:] {
		if d.GenerationKwh > peak.GenerationKwh {
			peak = d
		}
	}
	if peak.GenerationKwh > 0 {
		out = append(out, fmt.Sprintf("Peak day so far: %s with %.1f kWh.", peak.Date, peak.GenerationKwh))
	}

	if len(days) >= 14 {
		var lastWeek, prevWeek float64
		for _, d := range days[len(days)-7:] {
			lastWeek += d.GenerationKwh
		}
		for _, d := range days[len(days)-14 : len(days)-7] {
			prevWeek += d.GenerationKwh
		}
		if prevWeek > 0 {
			change := (lastWeek - prevWeek) / prevWeek * 100
			direction := "up"
			if change < 0 {
				direction = "down"
			}
			out = append(out, fmt.Sprintf("Generation is %s %.0f%% week over week.", direction, math.Abs(change)))
		}
	}

	if totals.RevenueINR > 0 {
		out = append(out, fmt.Sprintf("Export revenue averages ₹%.0f per day.", totals.RevenueINR/float64(len(days))))
	}

	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
