package query

import "strings"

// AttendanceBand classifies a student's overall attendance percentage.
type AttendanceBand string

const (
	AttendanceGood   AttendanceBand = "Good"
	AttendanceLow    AttendanceBand = "Low"
	AttendanceAtRisk AttendanceBand = "At Risk"
)

const (
	// AttendanceGoodThreshold is the lowest percentage still considered good.
	AttendanceGoodThreshold = 75
	// AttendanceRiskThreshold is the percentage below which a student is at risk.
	AttendanceRiskThreshold = 60
	// AttendanceExcellentThreshold marks the top analytics tier.
	AttendanceExcellentThreshold = 85
)

// AttendanceBands lists the bands in display order.
var AttendanceBands = []string{string(AttendanceGood), string(AttendanceLow), string(AttendanceAtRisk)}

// ClassifyAttendance maps a percentage onto its band.
func ClassifyAttendance(percent int) AttendanceBand {
	switch {
	case percent >= AttendanceGoodThreshold:
		return AttendanceGood
	case percent >= AttendanceRiskThreshold:
		return AttendanceLow
	default:
		return AttendanceAtRisk
	}
}

// ParseAttendanceBand resolves a filter value. The boolean is false for unknown
// values; the All sentinel resolves to an empty band with ok set.
func ParseAttendanceBand(raw string) (AttendanceBand, bool) {
	if IsAll(raw) {
		return "", true
	}
	normalized := strings.ToLower(strings.Join(strings.Fields(raw), " "))
	switch normalized {
	case "good":
		return AttendanceGood, true
	case "low":
		return AttendanceLow, true
	case "at risk", "at-risk", "at_risk", "atrisk":
		return AttendanceAtRisk, true
	default:
		return "", false
	}
}

// InAttendanceBand is the band predicate. An empty band accepts every value.
func InAttendanceBand(band AttendanceBand, percent int) bool {
	if band == "" {
		return true
	}
	return ClassifyAttendance(percent) == band
}

// AttendanceTier is the four-way split used by the analytics view.
type AttendanceTier string

const (
	TierExcellent AttendanceTier = "Excellent"
	TierGood      AttendanceTier = "Good"
	TierAverage   AttendanceTier = "Average"
	TierPoor      AttendanceTier = "Poor"
)

// AttendanceTiers lists the tiers in display order.
var AttendanceTiers = []string{string(TierExcellent), string(TierGood), string(TierAverage), string(TierPoor)}

// ClassifyAttendanceTier maps a percentage onto its analytics tier.
func ClassifyAttendanceTier(percent int) AttendanceTier {
	switch {
	case percent >= AttendanceExcellentThreshold:
		return TierExcellent
	case percent >= AttendanceGoodThreshold:
		return TierGood
	case percent >= AttendanceRiskThreshold:
		return TierAverage
	default:
		return TierPoor
	}
}

// CGPABand classifies a cumulative grade point average.
type CGPABand string

const (
	CGPAExcellent CGPABand = "Excellent"
	CGPAGood      CGPABand = "Good"
	CGPAAverage   CGPABand = "Average"
	CGPAPoor      CGPABand = "Poor"
)

// CGPABands lists the bands in display order.
var CGPABands = []string{string(CGPAExcellent), string(CGPAGood), string(CGPAAverage), string(CGPAPoor)}

// ClassifyCGPA maps a CGPA onto its band.
func ClassifyCGPA(cgpa float64) CGPABand {
	switch {
	case cgpa >= 8.5:
		return CGPAExcellent
	case cgpa >= 7.5:
		return CGPAGood
	case cgpa >= 6.5:
		return CGPAAverage
	default:
		return CGPAPoor
	}
}
