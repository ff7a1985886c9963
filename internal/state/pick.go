package state

// Rand is the random source used for picture selection. *rand.Rand
// satisfies it.
type Rand interface {
	Intn(n int) int
}

// PickPictureIndex returns a uniformly random index in [0, count). When
// exclude is a valid index and there is more than one picture, the result is
// uniform over the remaining indices. exclude < 0 disables the exclusion.
// It returns -1 when count is not positive.
func PickPictureIndex(r Rand, count, exclude int) int {
	if count <= 0 {
		return -1
	}
	if exclude < 0 || exclude >= count || count == 1 {
		return r.Intn(count)
	}
	i := r.Intn(count - 1)
	if i >= exclude {
		i++
	}
	return i
}
