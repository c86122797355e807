// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

// Package recommend turns a user's skill profile into ranked,
// time-boxed training recommendations and sequenced training plans.
//
// The engine consumes the profiler's output only; it never re-reads raw
// sessions. It is a pure, deterministic transformation: no randomness,
// no I/O, safe for concurrent use across users.
package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackwise/stackwise/internal/models"
	"github.com/stackwise/stackwise/internal/profiler"
)

// ErrInvalidContext is returned when the request context fails
// validation (e.g. a non-positive time budget). Callers should reject
// such requests at the boundary before reaching the engine; this is the
// backstop.
var ErrInvalidContext = errors.New("invalid recommendation context")

// Engine generates training recommendations from skill profiles.
type Engine struct {
	cfg     *Config
	catalog *Catalog
	logger  zerolog.Logger

	// Now is injectable for deterministic plan timestamps in tests.
	Now func() time.Time
}

// NewEngine creates an Engine. A nil cfg or catalog selects the
// built-in defaults.
func NewEngine(cfg *Config, catalog *Catalog, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &Engine{
		cfg:     cfg,
		catalog: catalog,
		logger:  logger.With().Str("component", "recommend").Logger(),
		Now:     time.Now,
	}, nil
}

// GenerateRecommendations runs the full candidate pipeline and returns
// up to count recommendations in descending priority order. An empty
// result after filtering is a valid outcome, not an error.
func (e *Engine) GenerateRecommendations(profile *profiler.UserSkillProfile, rctx models.RecommendationContext, count int) ([]TrainingRecommendation, error) {
	if rctx.TimeAvailable <= 0 {
		return nil, fmt.Errorf("%w: time available must be positive, got %d",
			ErrInvalidContext, rctx.TimeAvailable)
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidContext, count)
	}

	candidates := e.weaknessCandidates(profile)
	candidates = append(candidates, e.skillDevelopmentCandidates(profile)...)
	candidates = dedupeByScenario(candidates)

	e.applyStyleFilter(profile, candidates)
	candidates = e.filterByContext(candidates, rctx)
	e.finalizePriorities(profile, rctx, candidates)

	// Stable sort with a scenario-ID tie-break so equal priorities
	// order identically across calls.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Priority != candidates[j].Priority {
			return candidates[i].Priority > candidates[j].Priority
		}
		return candidates[i].ScenarioID < candidates[j].ScenarioID
	})

	if len(candidates) > count {
		candidates = candidates[:count]
	}

	e.logger.Debug().
		Str("user_id", profile.UserID).
		Int("returned", len(candidates)).
		Msg("recommendations generated")

	return candidates, nil
}

// weaknessCandidates maps the top weakness patterns to remediation
// scenarios.
func (e *Engine) weaknessCandidates(profile *profiler.UserSkillProfile) []TrainingRecommendation {
	wc := e.cfg.Weakness

	patterns := profile.WeaknessPatterns
	if len(patterns) > wc.TopPatterns {
		patterns = patterns[:wc.TopPatterns]
	}

	var out []TrainingRecommendation
	for _, pattern := range patterns {
		ids := e.catalog.WeaknessScenarios[pattern.Pattern]
		if len(ids) > wc.MaxScenarios {
			ids = ids[:wc.MaxScenarios]
		}
		for _, id := range ids {
			sc, ok := e.catalog.Scenarios[id]
			if !ok {
				continue
			}

			difficulty := clampDifficulty(math.Round(float64(sc.BaseDifficulty) - pattern.Severity + 1))
			estimatedTime := int(math.Round(float64(sc.BaseMinutes) + pattern.Severity*wc.TimePerSeverity))

			multiplier := e.skillMultiplier(profile, sc.SkillFocus)
			improvement := pattern.Severity * pattern.Frequency * wc.ImprovementScale * multiplier

			out = append(out, TrainingRecommendation{
				ID:                  "rec-weakness-" + sc.ID,
				ScenarioID:          sc.ID,
				Title:               sc.Title,
				Description:         sc.Description,
				Difficulty:          difficulty,
				EstimatedTime:       estimatedTime,
				ExpectedImprovement: improvement,
				Priority:            pattern.Frequency * pattern.Severity,
				Reasoning: fmt.Sprintf("Addresses your %q leak (%d occurrences, most often on the %s)",
					pattern.Pattern, pattern.Occurrences, pattern.Street),
				SkillFocus:    sc.SkillFocus,
				LearningStyle: sc.Styles,
			})
		}
	}
	return out
}

// skillMultiplier boosts improvement estimates for weaker players:
// clamp(min, max, numerator / mean relevant dimension rating).
func (e *Engine) skillMultiplier(profile *profiler.UserSkillProfile, focus []models.Dimension) float64 {
	wc := e.cfg.Weakness

	var total float64
	var n int
	for _, dim := range focus {
		if m, ok := profile.SkillDimensions[dim]; ok {
			total += m.Current
			n++
		}
	}
	if n == 0 || total == 0 {
		return wc.SkillMultiplierMax
	}
	return clamp(wc.SkillMultiplierNumerator/(total/float64(n)),
		wc.SkillMultiplierMin, wc.SkillMultiplierMax)
}

// skillDevelopmentCandidates targets dimensions lagging the overall
// rating or measured with low confidence, weakest first.
func (e *Engine) skillDevelopmentCandidates(profile *profiler.UserSkillProfile) []TrainingRecommendation {
	sd := e.cfg.SkillDevelopment

	type weakDim struct {
		dim    models.Dimension
		metric profiler.SkillMetric
	}
	var weak []weakDim
	for _, dim := range models.Dimensions() {
		m, ok := profile.SkillDimensions[dim]
		if !ok {
			continue
		}
		if m.Current < sd.WeakRatio*float64(profile.OverallRating) || m.Confidence < sd.LowConfidence {
			weak = append(weak, weakDim{dim: dim, metric: m})
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		return weak[i].metric.Current < weak[j].metric.Current
	})
	if len(weak) > sd.MaxDimensions {
		weak = weak[:sd.MaxDimensions]
	}

	var out []TrainingRecommendation
	for _, w := range weak {
		scenarios := e.catalog.ScenariosFor(w.dim)
		if len(scenarios) > sd.MaxScenarios {
			scenarios = scenarios[:sd.MaxScenarios]
		}

		normalized := (w.metric.Current - sd.ScoreFloor) / (sd.ScoreCeiling - sd.ScoreFloor)

		for _, sc := range scenarios {
			difficulty := sc.BaseDifficulty
			if normalized < sd.EasierBelow {
				difficulty--
			} else if normalized > sd.HarderAbove {
				difficulty++
			}

			improvement := math.Max(0, sd.ImprovementCeiling-w.metric.Current) *
				sd.ImprovementRate *
				math.Max(1.0, sd.ConfidenceBoostBase-w.metric.Confidence)

			out = append(out, TrainingRecommendation{
				ID:                  "rec-skill-" + sc.ID,
				ScenarioID:          sc.ID,
				Title:               sc.Title,
				Description:         sc.Description,
				Difficulty:          clampDifficulty(float64(difficulty)),
				EstimatedTime:       sc.BaseMinutes,
				ExpectedImprovement: improvement,
				Priority:            (1 - normalized) * (1 - w.metric.Confidence),
				Reasoning: fmt.Sprintf("Develops your %s game, currently your weakest area at %.0f",
					w.dim, w.metric.Current),
				SkillFocus:    sc.SkillFocus,
				LearningStyle: sc.Styles,
			})
		}
	}
	return out
}

// dedupeByScenario keeps the first candidate per scenario. Weakness
// candidates are generated first and take precedence over skill ones.
func dedupeByScenario(candidates []TrainingRecommendation) []TrainingRecommendation {
	seen := make(map[string]struct{}, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if _, ok := seen[c.ScenarioID]; ok {
			continue
		}
		seen[c.ScenarioID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// applyStyleFilter scales each candidate's priority by how well its
// recommended styles match the user's active styles. Scenarios with no
// style metadata are left untouched.
func (e *Engine) applyStyleFilter(profile *profiler.UserSkillProfile, candidates []TrainingRecommendation) {
	st := e.cfg.Style
	active := profile.LearningStyle.Active(st.Activation)

	activeSet := make(map[models.StyleName]struct{}, len(active))
	for _, s := range active {
		activeSet[s] = struct{}{}
	}

	for i := range candidates {
		styles := candidates[i].LearningStyle
		if len(styles) == 0 {
			continue
		}
		matched := 0
		for _, s := range styles {
			if _, ok := activeSet[s]; ok {
				matched++
			}
		}
		ratio := float64(matched) / float64(len(styles))
		candidates[i].Priority *= clamp(st.Base+st.Slope*ratio, st.Min, st.Max)
	}
}

// filterByContext strictly rejects candidates that violate the request
// constraints: over time budget, too far from the preferred difficulty,
// explicitly excluded, or outside the focus areas.
func (e *Engine) filterByContext(candidates []TrainingRecommendation, rctx models.RecommendationContext) []TrainingRecommendation {
	fc := e.cfg.Filter

	excluded := make(map[string]struct{}, len(rctx.ExcludeScenarios))
	for _, id := range rctx.ExcludeScenarios {
		excluded[id] = struct{}{}
	}

	out := candidates[:0]
	for _, c := range candidates {
		if float64(c.EstimatedTime) > fc.TimeOverrunRatio*float64(rctx.TimeAvailable) {
			continue
		}
		if rctx.PreferredDifficulty != 0 &&
			abs(c.Difficulty-rctx.PreferredDifficulty) > fc.DifficultyTolerance {
			continue
		}
		if _, ok := excluded[c.ScenarioID]; ok {
			continue
		}
		if len(rctx.FocusAreas) > 0 && !overlaps(c.SkillFocus, rctx.FocusAreas) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// finalizePriorities applies the velocity, time-fit, and improvement
// multipliers.
func (e *Engine) finalizePriorities(profile *profiler.UserSkillProfile, rctx models.RecommendationContext, candidates []TrainingRecommendation) {
	b := e.cfg.Bonus

	velocityBonus := b.SlowLearnerPenalty
	if profile.LearningVelocity.SkillGainRate > b.FastLearnerGainRate {
		velocityBonus = b.FastLearnerBonus
	}

	for i := range candidates {
		c := &candidates[i]
		c.Priority *= velocityBonus

		ratio := float64(c.EstimatedTime) / float64(rctx.TimeAvailable)
		if ratio >= b.TimeFitLow && ratio <= b.TimeFitHigh {
			c.Priority *= b.TimeFitBonus
		}

		if c.ExpectedImprovement > b.HighImprovementPoints {
			c.Priority *= b.HighImprovementBonus
		}
	}
}

func overlaps(a, b []models.Dimension) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func clampDifficulty(v float64) int {
	return int(clamp(v, 1, 5))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
