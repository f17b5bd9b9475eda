package card

// Hall of Fame scoring. Evaluated exactly once, when a card retires.
//
// The blend uses a single crowns-per-game term. Weights: career average
// rating 0.35, crown rate 0.30, award points 0.20, championship credit 0.15.
const (
	HOFGuaranteedThreshold = 85.0
	HOFBubbleThreshold     = 70.0

	hofWeightAvgOVR    = 0.35
	hofWeightCrownRate = 0.30
	hofWeightAwards    = 0.20
	hofWeightRings     = 0.15

	// A starter averaging one crown per game is an all-time great.
	hofCrownRateScale = 100.0
	hofAwardPointCap  = 100.0
	hofRingCredit     = 25.0
)

// HallOfFameScore computes the 0-100 retirement composite for a card.
func HallOfFameScore(c Card) float64 {
	avgOVR := float64(c.OVR)
	if len(c.Career.OVRBySeason) > 0 {
		sum := 0
		for _, ovr := range c.Career.OVRBySeason {
			sum += ovr
		}
		avgOVR = float64(sum) / float64(len(c.Career.OVRBySeason))
	}

	crownRate := 0.0
	if c.Career.GamesPlayed > 0 {
		crownRate = float64(c.Career.Crowns) / float64(c.Career.GamesPlayed)
	}
	crownScore := crownRate * hofCrownRateScale
	if crownScore > 100 {
		crownScore = 100
	}

	awardScore := float64(c.Career.AwardPoints)
	if awardScore > hofAwardPointCap {
		awardScore = hofAwardPointCap
	}

	ringScore := float64(c.Career.Rings) * hofRingCredit
	if ringScore > 100 {
		ringScore = 100
	}

	return hofWeightAvgOVR*avgOVR +
		hofWeightCrownRate*crownScore +
		hofWeightAwards*awardScore +
		hofWeightRings*ringScore
}

// BubbleInductionChance maps a bubble-range score to an induction probability.
// Scores below the bubble line never induct; guaranteed scores always do.
func BubbleInductionChance(score float64) float64 {
	if score >= HOFGuaranteedThreshold {
		return 1
	}
	if score < HOFBubbleThreshold {
		return 0
	}
	return 0.5 * (score - HOFBubbleThreshold) / (HOFGuaranteedThreshold - HOFBubbleThreshold)
}
