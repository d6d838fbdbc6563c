package stats

const unrollBatch = 4

// sumSquaredDiff returns sum((a[i]-b[i])^2) processing four elements per iteration, with any
// remaining tail summed one at a time. a and b must have equal lengths.
func sumSquaredDiff(a, b []float64) float64 {
	n := len(a) - len(a)%unrollBatch

	var sum float64
	for i := 0; i < n; i += unrollBatch {
		aTmp := a[i : i+unrollBatch : i+unrollBatch]
		bTmp := b[i : i+unrollBatch : i+unrollBatch]
		r0 := aTmp[0] - bTmp[0]
		r1 := aTmp[1] - bTmp[1]
		r2 := aTmp[2] - bTmp[2]
		r3 := aTmp[3] - bTmp[3]
		sum += r0*r0 + r1*r1 + r2*r2 + r3*r3
	}
	for i := n; i < len(a); i++ {
		r := a[i] - b[i]
		sum += r * r
	}
	return sum
}
