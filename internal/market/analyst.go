package market

import (
	"strings"

	"github.com/seenimoa/finassist/pkg/models"
	"github.com/seenimoa/finassist/pkg/utils"
)

const consensusNA = "N/A"

type bucket int

const (
	bucketNone bucket = iota
	bucketStrongBuy
	bucketBuy
	bucketHold
	bucketSell
	bucketStrongSell
)

// bucketRules are checked in order; the first matching keyword wins, so
// "strong buy" and "strong sell" must precede "buy" and "sell".
var bucketRules = []struct {
	keywords []string
	bucket   bucket
}{
	{[]string{"strong buy"}, bucketStrongBuy},
	{[]string{"buy", "outperform", "overweight"}, bucketBuy},
	{[]string{"hold", "neutral", "equal"}, bucketHold},
	{[]string{"strong sell", "underperform", "underweight"}, bucketStrongSell},
	{[]string{"sell"}, bucketSell},
}

var recommendationLabels = map[string]string{
	"strong_buy":   "Strong Buy",
	"buy":          "Buy",
	"hold":         "Hold",
	"underperform": "Underperform",
	"sell":         "Sell",
	"strong_sell":  "Strong Sell",
}

func classify(grade string) bucket {
	g := strings.ToLower(grade)
	for _, rule := range bucketRules {
		for _, kw := range rule.keywords {
			if strings.Contains(g, kw) {
				return rule.bucket
			}
		}
	}
	return bucketNone
}

// Aggregate turns raw broker ratings into the consensus view.
func Aggregate(id, source string, raw *models.AnalystRatings) *models.Analyst {
	a := &models.Analyst{Symbol: id, Consensus: consensusNA, Source: source}
	if raw == nil {
		return a
	}

	for _, r := range raw.Ratings {
		grade := r.Rating
		if grade == "" {
			grade = r.Action
		}
		switch classify(grade) {
		case bucketStrongBuy:
			a.StrongBuy++
		case bucketBuy:
			a.Buy++
		case bucketHold:
			a.Hold++
		case bucketSell:
			a.Sell++
		case bucketStrongSell:
			a.StrongSell++
		}
	}
	a.Total = a.StrongBuy + a.Buy + a.Hold + a.Sell + a.StrongSell
	a.Consensus = consensus(a)

	if label, ok := recommendationLabels[strings.ToLower(strings.TrimSpace(raw.RecommendationKey))]; ok {
		a.Consensus = label
	}

	if len(raw.Targets) > 0 {
		var sum float64
		high, low := raw.Targets[0], raw.Targets[0]
		for _, t := range raw.Targets {
			sum += t
			high = max(high, t)
			low = min(low, t)
		}
		a.TargetMean = utils.Float(utils.Round(sum/float64(len(raw.Targets)), 2))
		a.TargetHigh = utils.Float(high)
		a.TargetLow = utils.Float(low)
	} else {
		a.TargetMean = utils.RoundPtr(raw.TargetMean, 2)
		a.TargetHigh = raw.TargetHigh
		a.TargetLow = raw.TargetLow
	}

	a.AnalystCount = a.Total
	if raw.AnalystCount > 0 {
		a.AnalystCount = raw.AnalystCount
	}
	return a
}

func consensus(a *models.Analyst) string {
	if a.Total == 0 {
		return consensusNA
	}
	total := float64(a.Total)
	bull := float64(a.StrongBuy+a.Buy) / total
	bear := float64(a.Sell+a.StrongSell) / total
	switch {
	case bull >= 0.6:
		return "Strong Buy"
	case bull >= 0.4:
		return "Buy"
	case bear >= 0.4:
		return "Sell"
	default:
		return "Hold"
	}
}
