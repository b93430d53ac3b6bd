package utils

// PartitionMap splits MaxIndex items, here gas cells, into ParallelDegree
// contiguous buckets with a maximum imbalance of one item
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for np := range pm.Partitions {
		pm.Partitions[np] = pm.Split1D(np)
	}
	return
}

// GetBucketRange returns the half open cell range [kMin, kMax) of a bucket
func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

// Split1D gives the first MaxIndex % ParallelDegree buckets one extra item
func (pm *PartitionMap) Split1D(np int) (bucket [2]int) {
	var (
		size      = pm.MaxIndex / pm.ParallelDegree
		remainder = pm.MaxIndex % pm.ParallelDegree
	)
	bucket[0] = np*size + min(np, remainder)
	bucket[1] = bucket[0] + size
	if np < remainder {
		bucket[1]++
	}
	return
}
