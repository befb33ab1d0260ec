package heatmap

import "github.com/jengzang/ghostquant-backend-go/internal/models"

// Display colors per risk level
const (
	ColorCritical = "#ff1744"
	ColorHigh     = "#ff9100"
	ColorModerate = "#ffea00"
	ColorLow      = "#00e676"
	ColorMinimal  = "#2979ff"
)

// Lower bounds of each bucket, inclusive
const (
	CriticalThreshold = 0.90
	HighThreshold     = 0.70
	ModerateThreshold = 0.40
	LowThreshold      = 0.15
)

// ClassifyRisk maps a score onto the risk ladder. NaN is MINIMAL.
func ClassifyRisk(score float64) models.RiskClass {
	switch {
	case score >= CriticalThreshold:
		return models.RiskClass{Level: models.RiskCritical, Color: ColorCritical}
	case score >= HighThreshold:
		return models.RiskClass{Level: models.RiskHigh, Color: ColorHigh}
	case score >= ModerateThreshold:
		return models.RiskClass{Level: models.RiskModerate, Color: ColorModerate}
	case score >= LowThreshold:
		return models.RiskClass{Level: models.RiskLow, Color: ColorLow}
	default:
		return models.RiskClass{Level: models.RiskMinimal, Color: ColorMinimal}
	}
}

// RiskColor returns only the display color for a score
func RiskColor(score float64) string {
	return ClassifyRisk(score).Color
}
