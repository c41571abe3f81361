package modelselection

import (
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Splitter generates cross-validation folds.
type Splitter interface {
	Split(X, y mat.Matrix) []Fold
	NumSplits() int
}

// Fold is a single cross-validation fold.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold splits samples into k consecutive folds, optionally shuffled with a
// seed first. Earlier folds receive the remainder samples, so fold sizes
// differ by at most one.
type KFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed int
}

// NewKFold creates a k-fold splitter. Fewer than two splits falls back to the
// usual default of five.
func NewKFold(nSplits int, shuffle bool, randomSeed int) *KFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &KFold{NSplits: nSplits, Shuffle: shuffle, RandomSeed: randomSeed}
}

// NumSplits returns the number of folds.
func (kf *KFold) NumSplits() int { return kf.NSplits }

// Split generates train/test indices for each fold.
func (kf *KFold) Split(X, _ mat.Matrix) []Fold {
	nSamples, _ := X.Dims()

	indices := make([]int, nSamples)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		rng := rand.New(rand.NewPCG(uint64(kf.RandomSeed), uint64(kf.RandomSeed)))
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := nSamples / kf.NSplits
	remainder := nSamples % kf.NSplits

	offset := 0
	for i := 0; i < kf.NSplits; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		test := make([]int, testSize)
		copy(test, indices[offset:offset+testSize])

		train := make([]int, 0, nSamples-testSize)
		train = append(train, indices[:offset]...)
		train = append(train, indices[offset+testSize:]...)

		folds[i] = Fold{TrainIndices: train, TestIndices: test}
		offset += testSize
	}
	return folds
}

// StratifiedKFold is KFold preserving per-class proportions in every fold.
// y must hold integer class labels.
type StratifiedKFold struct {
	NSplits    int
	Shuffle    bool
	RandomSeed int
}

// NewStratifiedKFold creates a stratified k-fold splitter.
func NewStratifiedKFold(nSplits int, shuffle bool, randomSeed int) *StratifiedKFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &StratifiedKFold{NSplits: nSplits, Shuffle: shuffle, RandomSeed: randomSeed}
}

// NumSplits returns the number of folds.
func (skf *StratifiedKFold) NumSplits() int { return skf.NSplits }

// Split generates stratified train/test indices for each fold. Each class is
// distributed round-robin across folds, larger folds first.
func (skf *StratifiedKFold) Split(X, y mat.Matrix) []Fold {
	nSamples, _ := X.Dims()
	classIndices := groupByClass(y, nSamples)

	if skf.Shuffle {
		rng := rand.New(rand.NewPCG(uint64(skf.RandomSeed), uint64(skf.RandomSeed)))
		for _, label := range sortedClassLabels(classIndices) {
			idx := classIndices[label]
			rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		}
	}

	folds := make([]Fold, skf.NSplits)
	for _, label := range sortedClassLabels(classIndices) {
		idx := classIndices[label]
		nClass := len(idx)
		foldSize := nClass / skf.NSplits
		remainder := nClass % skf.NSplits

		offset := 0
		for i := 0; i < skf.NSplits; i++ {
			take := foldSize
			if i < remainder {
				take++
			}
			folds[i].TestIndices = append(folds[i].TestIndices, idx[offset:offset+take]...)
			offset += take
		}
	}

	for i := range folds {
		sort.Ints(folds[i].TestIndices)
		inTest := make(map[int]bool, len(folds[i].TestIndices))
		for _, idx := range folds[i].TestIndices {
			inTest[idx] = true
		}
		for j := 0; j < nSamples; j++ {
			if !inTest[j] {
				folds[i].TrainIndices = append(folds[i].TrainIndices, j)
			}
		}
	}
	return folds
}
