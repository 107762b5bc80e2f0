package service

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"stickermissions/internal/models"
)

// RewardNotConfigured is displayed when the parent has not set up any tiers
const RewardNotConfigured = "not configured"

// RewardFormatter renders currency rewards for a locale
type RewardFormatter struct {
	symbol  string
	printer *message.Printer
}

// NewRewardFormatter creates a formatter. An unparseable locale falls back to English.
func NewRewardFormatter(symbol, locale string) *RewardFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &RewardFormatter{symbol: symbol, printer: message.NewPrinter(tag)}
}

// FormatCurrency groups a numeric reward text and prefixes the currency symbol.
// Text that is not a number is returned unchanged.
func (f *RewardFormatter) FormatCurrency(text string) string {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return text
	}
	if value == math.Trunc(value) && math.Abs(value) < 1e15 {
		return f.printer.Sprintf("%s%d", f.symbol, int64(value))
	}
	return f.printer.Sprintf("%s%.2f", f.symbol, value)
}

// CurrentRewardStep picks the tier for totalStickers: the highest threshold not
// above the total, or the lowest tier as a floor when none qualifies.
func CurrentRewardStep(totalStickers int, config models.RewardConfig) (models.RewardStep, bool) {
	if len(config.Steps) == 0 {
		return models.RewardStep{}, false
	}

	steps := sortedStepsDesc(config.Steps)
	for _, step := range steps {
		if step.StickersThreshold <= totalStickers {
			return step, true
		}
	}
	return steps[len(steps)-1], true
}

// NextRewardStep returns the lowest tier strictly above totalStickers
func NextRewardStep(totalStickers int, config models.RewardConfig) (models.RewardStep, bool) {
	steps := sortedStepsDesc(config.Steps)
	for i := len(steps) - 1; i >= 0; i-- {
		if steps[i].StickersThreshold > totalStickers {
			return steps[i], true
		}
	}
	return models.RewardStep{}, false
}

// CurrentReward renders the reward text unlocked at totalStickers
func CurrentReward(totalStickers int, config models.RewardConfig, formatter *RewardFormatter) string {
	step, ok := CurrentRewardStep(totalStickers, config)
	if !ok {
		return RewardNotConfigured
	}
	if config.Type == models.RewardCurrency {
		if formatter == nil {
			formatter = NewRewardFormatter("$", "en")
		}
		return formatter.FormatCurrency(step.RewardText)
	}
	return step.RewardText
}

func sortedStepsDesc(steps []models.RewardStep) []models.RewardStep {
	sorted := make([]models.RewardStep, len(steps))
	copy(sorted, steps)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StickersThreshold > sorted[j].StickersThreshold
	})
	return sorted
}
