package vectorstore

import "math"

// cosine computes full-dimension cosine similarity. Either vector
// having a zero norm yields 0, never NaN.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// overlapCosine computes cosine similarity restricted to the
// intersection of the two vocabularies. Disjoint vocabularies score
// exactly 0; the norms are taken over the intersected dimensions only,
// not the full union.
func overlapCosine(v1 []float64, vocab1 []string, v2 []float64, vocab2 []string) float64 {
	index := make(map[string]int, len(vocab2))
	for i, term := range vocab2 {
		index[term] = i
	}
	var dot, n1, n2 float64
	for i, term := range vocab1 {
		j, ok := index[term]
		if !ok {
			continue
		}
		dot += v1[i] * v2[j]
		n1 += v1[i] * v1[i]
		n2 += v2[j] * v2[j]
	}
	if n1 == 0 || n2 == 0 {
		return 0
	}
	return dot / (math.Sqrt(n1) * math.Sqrt(n2))
}
