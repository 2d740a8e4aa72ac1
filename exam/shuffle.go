package exam

// ShuffleAlternatives returns, for every question, a permutation of its
// option indices: order[q.ID][slot] is the original index of the option
// displayed in that slot.
//
// Each question is shuffled with its own generator seeded by
// Hash(seed + "-" + q.ID), so the same (seed, question id) always yields
// the same permutation regardless of the other questions in the row.
func ShuffleAlternatives(questions []Question, seed string) map[string][]int {
	order := make(map[string][]int, len(questions))
	for _, q := range questions {
		order[q.ID] = shuffleQuestion(len(q.Options), seed+"-"+q.ID)
	}
	return order
}

// shuffleQuestion runs a Fisher-Yates shuffle over the identity permutation.
func shuffleQuestion(n int, key string) []int {
	perm := identity(n)
	r := NewRand(Hash(key))
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

func identity(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}
