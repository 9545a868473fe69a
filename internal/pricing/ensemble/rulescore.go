package ensemble

// Deterministic rule-based risk score. This is a fixed stand-in for a
// trained default-prediction model: the bucket thresholds and increments
// below ARE the model. There is no inference and nothing to train;
// replacing it with a real model means swapping this function.

const ruleBaseline = 0.03

func ruleDefaultProbability(in Inputs) float64 {
	u := in.UnderemploymentRate
	earnings := in.MedianEarnings

	score := 0.0

	// High underemployment raises risk.
	switch {
	case u > 0.20:
		score += 0.12
	case u > 0.10:
		score += 0.08
	case u > 0.05:
		score += 0.05
	}

	// Low earnings raise risk.
	switch {
	case earnings < 30000:
		score += 0.10
	case earnings < 40000:
		score += 0.05
	}

	// Interaction: high underemployment together with low earnings.
	if u > 0.15 && earnings < 35000 {
		score += 0.08
	}

	// Small fields carry estimation uncertainty.
	if in.NumInstitutions > 0 && in.NumInstitutions < 50 {
		score += 0.03
	}

	// Boosted variant: slightly more conservative base score plus an
	// underemployment/earnings-rank interaction term.
	interaction := u * (1 - in.EarningsPercentile)
	boosted := score*0.9 + interaction*0.15

	prob := (score+boosted)/2 + ruleBaseline
	return clamp(prob, 0.03, 0.25)
}
