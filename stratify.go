// package stratify implements K-fold cross-validation splitting for datasets
// with a continuous target variable.
//
// A plain K-fold split leaves the per-fold target distributions to chance.
// StratifiedKFold instead quantizes the target into equal-width bins and
// deals each bin's members across the folds, so every fold receives the same
// share of every region of the target's range. The quality of a split can be
// judged with the ks subpackage, which compares two folds' empirical
// distributions.
package stratify

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/crossval/stratify/bin"
)

// Splitter maps a target vector to a fold id per sample.
type Splitter interface {
	// Assign returns a fold id in [0, K) for every sample. The returned
	// slice has one entry per target and the fold index sets form a
	// partition of the sample indices. On error the slice is nil.
	Assign(targets []float64) ([]int, error)
}

// KFold splits the sample indices into K contiguous blocks, ignoring the
// target values. Block i becomes fold i; the first len(targets) mod K blocks
// receive one extra sample. If Src is non-nil the indices are permuted with
// it before the blocks are cut; a Src is stateful, so reproducing a split
// requires a freshly seeded Src per call. With a nil Src the split is
// always deterministic.
type KFold struct {
	K   int
	Src rand.Source
}

// Assign partitions the indices of targets into K folds.
func (kf KFold) Assign(targets []float64) ([]int, error) {
	if err := checkTargets(targets, kf.K); err != nil {
		return nil, err
	}
	n := len(targets)
	order := indexOrder(n, kf.Src)

	assign := make([]int, n)
	per := n / kf.K
	rem := n % kf.K
	idx := 0
	for f := 0; f < kf.K; f++ {
		size := per
		if f < rem {
			size++
		}
		for j := 0; j < size; j++ {
			assign[order[idx]] = f
			idx++
		}
	}
	if idx != n {
		panic("stratify: bad block arithmetic")
	}
	return assign, nil
}

// StratifiedKFold splits so that every fold receives an equal share of every
// region of the target's range. The targets are quantized into Bins
// equal-width bins over [min, max] and each bin's members are dealt
// round-robin to the folds. Bins are walked in ascending order, samples
// within a bin in original order (shuffled within the bin when Src is set;
// as with KFold, reproducing a shuffled split requires a freshly seeded Src
// per call), and the dealing cursor persists across bins, so per-fold
// counts are balanced within ±1 both inside every bin and globally.
//
// A bin holding fewer samples than K cannot be represented in every fold.
// By default such a bin is merged into the rotation, feeding only as many
// folds as it has samples. Strict instead rejects the split with
// ErrDegenerateBinning.
type StratifiedKFold struct {
	K      int
	Bins   int
	Strict bool
	Src    rand.Source
}

// Assign partitions the indices of targets into K folds with matched
// per-fold target distributions.
func (sk StratifiedKFold) Assign(targets []float64) ([]int, error) {
	if err := checkTargets(targets, sk.K); err != nil {
		return nil, err
	}
	if sk.Bins < 2 {
		return nil, fmt.Errorf("stratify: need at least 2 bins, got %d: %w", sk.Bins, ErrInvalidArgument)
	}

	ids := bin.Assign(targets, sk.Bins)
	buckets := make([][]int, sk.Bins)
	for i, b := range ids {
		buckets[b] = append(buckets[b], i)
	}
	if sk.Strict {
		for b, idxs := range buckets {
			if len(idxs) > 0 && len(idxs) < sk.K {
				return nil, fmt.Errorf("stratify: bin %d holds %d samples, cannot stratify into %d folds: %w",
					b, len(idxs), sk.K, ErrDegenerateBinning)
			}
		}
	}

	var rnd *rand.Rand
	if sk.Src != nil {
		rnd = rand.New(sk.Src)
	}
	assign := make([]int, len(targets))
	fold := 0
	for _, idxs := range buckets {
		if rnd != nil {
			rnd.Shuffle(len(idxs), func(i, j int) { idxs[i], idxs[j] = idxs[j], idxs[i] })
		}
		for _, i := range idxs {
			assign[i] = fold
			fold = (fold + 1) % sk.K
		}
	}
	return assign, nil
}

// Fold is one train/test split of the sample indices. Test holds the indices
// assigned to the fold; Train holds everything else. Both are in ascending
// order.
type Fold struct {
	Train []int
	Test  []int
}

// Groups inverts a fold assignment into k index groups. Group f holds, in
// ascending order, every index i with assign[i] == f.
func Groups(assign []int, k int) [][]int {
	groups := make([][]int, k)
	for i, f := range assign {
		groups[f] = append(groups[f], i)
	}
	return groups
}

// TrainTestFolds expands a fold assignment into the k train/test splits a
// cross-validation loop consumes.
func TrainTestFolds(assign []int, k int) []Fold {
	groups := Groups(assign, k)
	folds := make([]Fold, k)
	for f := range folds {
		folds[f].Test = groups[f]
		train := make([]int, 0, len(assign)-len(groups[f]))
		for i, g := range assign {
			if g != f {
				train = append(train, i)
			}
		}
		folds[f].Train = train
	}
	return folds
}

// AssignColumn applies the splitter to column j of m, treating that column
// as the target variable.
func AssignColumn(s Splitter, m mat.Matrix, j int) ([]int, error) {
	r, _ := m.Dims()
	col := make([]float64, r)
	mat.Col(col, j, m)
	return s.Assign(col)
}

func checkTargets(targets []float64, k int) error {
	if k < 2 {
		return fmt.Errorf("stratify: need at least 2 folds, got %d: %w", k, ErrInvalidArgument)
	}
	if len(targets) == 0 {
		return fmt.Errorf("stratify: empty target slice: %w", ErrInvalidArgument)
	}
	for i, v := range targets {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("stratify: target %d is not finite: %w", i, ErrInvalidArgument)
		}
	}
	return nil
}

// indexOrder is the identity order, or a permutation drawn from src.
func indexOrder(n int, src rand.Source) []int {
	if src == nil {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return order
	}
	return rand.New(src).Perm(n)
}
