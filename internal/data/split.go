package data

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

type SplitConfig struct {
	TestRatio float64
	Seed      int64
	Stratify  bool
}

func DefaultSplitConfig() SplitConfig {
	return SplitConfig{TestRatio: 0.2, Seed: 42}
}

// TrainTestSplit partitions rows into train and test sets. The test partition holds
// ceil(TestRatio*n) rows. The same seed and input always give the same partition.
func TrainTestSplit(X Features, y Labels, cfg SplitConfig) (*Split, error) {
	n := X.Len()
	if n != len(y) {
		return nil, fmt.Errorf("%w: %d rows, %d labels", ErrLengthMismatch, n, len(y))
	}
	if cfg.TestRatio <= 0 || cfg.TestRatio >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRatio, cfg.TestRatio)
	}
	nTest := int(math.Ceil(cfg.TestRatio * float64(n)))
	if nTest < 1 || n-nTest < 1 {
		return nil, fmt.Errorf("%w: %d rows at test ratio %v", ErrTooFewRows, n, cfg.TestRatio)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	var trainIdx, testIdx []int
	if cfg.Stratify {
		var err error
		trainIdx, testIdx, err = stratifiedIndex(y, nTest, rng)
		if err != nil {
			return nil, err
		}
	} else {
		perm := rng.Perm(n)
		testIdx = perm[:nTest]
		trainIdx = perm[nTest:]
	}

	return &Split{
		XTrain:     X.Subset(trainIdx),
		XTest:      X.Subset(testIdx),
		YTrain:     y.Subset(trainIdx),
		YTest:      y.Subset(testIdx),
		TrainIndex: trainIdx,
		TestIndex:  testIdx,
	}, nil
}

func stratifiedIndex(y Labels, nTest int, rng *rand.Rand) ([]int, []int, error) {
	byClass := map[int][]int{}
	for i, c := range y {
		byClass[c] = append(byClass[c], i)
	}
	classes := make([]int, 0, len(byClass))
	for c, idx := range byClass {
		if len(idx) < 2 {
			return nil, nil, fmt.Errorf("%w: class %d has %d row(s), stratification needs 2", ErrTooFewRows, c, len(idx))
		}
		classes = append(classes, c)
	}
	sort.Ints(classes)
	if nTest < len(classes) || len(y)-nTest < len(classes) {
		return nil, nil, fmt.Errorf("%w: %d test rows cannot cover %d classes", ErrTooFewRows, nTest, len(classes))
	}

	// largest remainder allocation of the test rows
	n := float64(len(y))
	alloc := make(map[int]int, len(classes))
	type rem struct {
		class int
		frac  float64
	}
	rems := make([]rem, 0, len(classes))
	taken := 0
	for _, c := range classes {
		exact := float64(nTest) * float64(len(byClass[c])) / n
		k := int(math.Floor(exact))
		alloc[c] = k
		taken += k
		rems = append(rems, rem{c, exact - float64(k)})
	}
	sort.SliceStable(rems, func(i, j int) bool { return rems[i].frac > rems[j].frac })
	for i := 0; taken < nTest; i = (i + 1) % len(rems) {
		c := rems[i].class
		if alloc[c] < len(byClass[c])-1 {
			alloc[c]++
			taken++
		}
	}

	var trainIdx, testIdx []int
	for _, c := range classes {
		idx := byClass[c]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		testIdx = append(testIdx, idx[:alloc[c]]...)
		trainIdx = append(trainIdx, idx[alloc[c]:]...)
	}
	rng.Shuffle(len(trainIdx), func(i, j int) { trainIdx[i], trainIdx[j] = trainIdx[j], trainIdx[i] })
	rng.Shuffle(len(testIdx), func(i, j int) { testIdx[i], testIdx[j] = testIdx[j], testIdx[i] })
	return trainIdx, testIdx, nil
}
