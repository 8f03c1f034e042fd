package matching

// HashSimilarity compares two perceptual image hashes by normalized Hamming
// similarity. The second return is false when either hash is missing or the
// lengths differ: "no signal" is not the same as zero similarity, and the
// caller decides how to fold that in. Image upload is optional, so absence
// is the common case.
func HashSimilarity(hashA, hashB string) (float64, bool) {
	if hashA == "" || hashB == "" || len(hashA) != len(hashB) {
		return 0, false
	}

	different := 0
	for i := 0; i < len(hashA); i++ {
		if hashA[i] != hashB[i] {
			different++
		}
	}

	similarity := 1 - float64(different)/float64(len(hashA))
	if similarity < 0 {
		similarity = 0
	}
	return similarity, true
}
