package riskdata

import "sort"

// Multiplier is one risk multiplier entry in the adjustment table.
type Multiplier struct {
	RiskMultiplier float64 `json:"risk_multiplier"`
}

// SelectivityTier is a multiplier keyed by maximum admission rate.
type SelectivityTier struct {
	AdmissionRateMax float64 `json:"admission_rate_max"`
	RiskMultiplier   float64 `json:"risk_multiplier"`
}

// InstitutionAdjustments maps institution characteristics to default
// probability multipliers. Loaded from a static table; immutable.
type InstitutionAdjustments struct {
	Carnegie         map[string]Multiplier      `json:"carnegie_classification"`
	SelectivityTiers map[string]SelectivityTier `json:"selectivity_tiers"`
	ControlType      map[string]Multiplier      `json:"institution_type"`
	CombinationRules CombinationRules           `json:"combination_rules"`
}

type CombinationRules struct {
	Caps MultiplierCaps `json:"caps"`
}

type MultiplierCaps struct {
	MinMultiplier float64 `json:"min_multiplier"`
	MaxMultiplier float64 `json:"max_multiplier"`
}

// Institution describes the school a pricing request is adjusted for.
// Every attribute is optional; unknown or absent attributes contribute a
// neutral 1.0 factor.
type Institution struct {
	Carnegie      string
	AdmissionRate *float64
	ControlType   string
}

// InstitutionFactors breaks the combined multiplier into its parts.
type InstitutionFactors struct {
	Carnegie    float64 `json:"carnegie"`
	Selectivity float64 `json:"selectivity"`
	ControlType float64 `json:"controlType"`
	Combined    float64 `json:"combined"`
}

// Multiplier combines the carnegie, selectivity, and control-type factors
// for inst and clamps the product to the table caps. Selectivity tiers
// are matched lowest admission-rate ceiling first.
func (a *InstitutionAdjustments) Multiplier(inst *Institution) InstitutionFactors {
	f := InstitutionFactors{Carnegie: 1.0, Selectivity: 1.0, ControlType: 1.0, Combined: 1.0}
	if a == nil || inst == nil {
		return f
	}

	if m, ok := a.Carnegie[inst.Carnegie]; ok {
		f.Carnegie = m.RiskMultiplier
	}
	if inst.AdmissionRate != nil {
		f.Selectivity = a.selectivityMultiplier(*inst.AdmissionRate)
	}
	if m, ok := a.ControlType[inst.ControlType]; ok {
		f.ControlType = m.RiskMultiplier
	}

	combined := f.Carnegie * f.Selectivity * f.ControlType

	minMult, maxMult := a.CombinationRules.Caps.MinMultiplier, a.CombinationRules.Caps.MaxMultiplier
	if minMult == 0 {
		minMult = 0.40
	}
	if maxMult == 0 {
		maxMult = 2.50
	}
	if combined < minMult {
		combined = minMult
	}
	if combined > maxMult {
		combined = maxMult
	}
	f.Combined = combined
	return f
}

func (a *InstitutionAdjustments) selectivityMultiplier(admissionRate float64) float64 {
	type tier struct {
		max  float64
		mult float64
	}
	tiers := make([]tier, 0, len(a.SelectivityTiers))
	for _, t := range a.SelectivityTiers {
		tiers = append(tiers, tier{max: t.AdmissionRateMax, mult: t.RiskMultiplier})
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].max < tiers[j].max })
	for _, t := range tiers {
		if admissionRate <= t.max {
			return t.mult
		}
	}
	return 1.0
}
