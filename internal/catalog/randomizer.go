package catalog

import "realorai-service/internal/domain"

// ShufflePairs returns a Fisher-Yates permutation of pairs. The input is left untouched.
func ShufflePairs(rnd Rand, pairs []domain.QuizPair) []domain.QuizPair {
	shuffled := make([]domain.QuizPair, len(pairs))
	copy(shuffled, pairs)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// RandomizePairOrder places the authentic item left or right with equal probability.
func RandomizePairOrder(rnd Rand, pair domain.QuizPair) domain.RandomizedPair {
	realIsLeft := rnd.Intn(2) == 0
	rp := domain.RandomizedPair{Pair: pair, RealIsLeft: realIsLeft}
	if realIsLeft {
		rp.Left, rp.Right = pair.Authentic, pair.Synthetic
	} else {
		rp.Left, rp.Right = pair.Synthetic, pair.Authentic
	}
	return rp
}
