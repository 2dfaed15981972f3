package randtest

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"randcert-go/pkg/congruential"
)

// Hand classifies the repetition pattern of an element's digits. Hands are
// ordered from the rarest to the most common.
type Hand int

const (
	FiveOfAKind Hand = iota
	FourOfAKind
	FullHouse
	ThreeOfAKind
	TwoPair
	AllDistinct
	OnePair
	NumHands
)

var handNames = [NumHands]string{
	FiveOfAKind:  "five-of-a-kind",
	FourOfAKind:  "four-of-a-kind",
	FullHouse:    "full-house",
	ThreeOfAKind: "three-of-a-kind",
	TwoPair:      "two-pair",
	AllDistinct:  "all-distinct",
	OnePair:      "one-pair",
}

func (h Hand) String() string {
	if h < 0 || h >= NumHands {
		return fmt.Sprintf("Hand(%d)", int(h))
	}
	return handNames[h]
}

func (h Hand) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// handSize is the number of leading digits whose repetitions are counted.
// The last digit of an element only takes part as a match.
const handSize = 4

// shapes are the descending repetition counts of each hand. A count is the
// number of times a digit occurs from its own position to the end.
var shapes = [NumHands][handSize]int{
	FiveOfAKind:  {5, 4, 3, 2},
	FourOfAKind:  {4, 3, 2, 1},
	FullHouse:    {3, 2, 2, 1},
	ThreeOfAKind: {3, 2, 1, 1},
	TwoPair:      {2, 2, 1, 1},
	AllDistinct:  {1, 1, 1, 1},
	OnePair:      {2, 1, 1, 1},
}

// lookupOrder tries the likeliest hands first.
var lookupOrder = [NumHands]Hand{OnePair, AllDistinct, TwoPair, ThreeOfAKind, FullHouse, FourOfAKind, FiveOfAKind}

// probabilities of each hand among five uniformly random digits.
var probabilities = [NumHands]decimal.Decimal{
	FiveOfAKind:  decimal.RequireFromString("0.0001"),
	FourOfAKind:  decimal.RequireFromString("0.0045"),
	FullHouse:    decimal.RequireFromString("0.009"),
	ThreeOfAKind: decimal.RequireFromString("0.072"),
	TwoPair:      decimal.RequireFromString("0.108"),
	AllDistinct:  decimal.RequireFromString("0.3024"),
	OnePair:      decimal.RequireFromString("0.504"),
}

// pokerCritical is indexed by the number of categories left after merging;
// alpha = 0.1 with categories-1 degrees of freedom.
var pokerCritical = [NumHands + 1]decimal.Decimal{
	2: decimal.RequireFromString("2.7055"),
	3: decimal.RequireFromString("4.6052"),
	4: decimal.RequireFromString("6.2514"),
	5: decimal.RequireFromString("7.7794"),
	6: decimal.RequireFromString("9.2363"),
	7: decimal.RequireFromString("10.6446"),
}

var minExpected = decimal.NewFromInt(5)

// statisticPlaces bounds the scale of each chi-squared term.
const statisticPlaces = 28

// Classify returns the hand formed by digits.
func Classify(digits []uint8) (Hand, error) {
	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: no digits", ErrPokerClassification)
	}
	counts := make([]int, len(digits)-1)
	for n := range counts {
		for _, d := range digits[n:] {
			if d == digits[n] {
				counts[n]++
			}
		}
	}
	slices.SortFunc(counts, func(a, b int) int { return b - a })
	if len(counts) == handSize {
		pattern := [handSize]int(counts)
		for _, h := range lookupOrder {
			if pattern == shapes[h] {
				return h, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrPokerClassification, counts)
}

// Category is one or more hands tested together.
type Category struct {
	Hands    []Hand          `json:"hands"`
	Observed int             `json:"observed"`
	Expected decimal.Decimal `json:"expected"`
}

// mergeCategories folds the rarest category into its neighbour for as long as
// its expected count is below five and more than one category remains.
func mergeCategories(observed [NumHands]int, n int) []Category {
	size := decimal.NewFromInt(int64(n))
	cats := make([]Category, NumHands)
	for h := range cats {
		cats[h] = Category{
			Hands:    []Hand{Hand(h)},
			Observed: observed[h],
			Expected: probabilities[h].Mul(size),
		}
	}
	for len(cats) > 1 && cats[0].Expected.LessThan(minExpected) {
		rare, next := cats[0], &cats[1]
		next.Hands = slices.Concat(rare.Hands, next.Hands)
		next.Observed += rare.Observed
		next.Expected = next.Expected.Add(rare.Expected)
		cats = cats[1:]
	}
	return cats
}

// PokerResult holds the hand tallies, the categories that survived merging
// and the chi-squared statistic over them.
type PokerResult struct {
	Observed   [NumHands]int
	Categories []Category
	Statistic  decimal.Decimal
	Critical   decimal.Decimal
	Pass       bool
	Err        error
}

// EvaluatePoker classifies every element and runs a chi-squared test over
// the hand frequencies.
func EvaluatePoker(s *congruential.Sample) PokerResult {
	var r PokerResult
	if s.Len() == 0 {
		r.Err = ErrEmptySample
		return r
	}
	for i, e := range s.Elements {
		h, err := Classify(e.Digits)
		if err != nil {
			r.Err = fmt.Errorf("element %d: %w", i, err)
			return r
		}
		r.Observed[h]++
	}
	r.Categories = mergeCategories(r.Observed, s.Len())
	if len(r.Categories) < 2 {
		r.Err = ErrInsufficientCategories
		return r
	}
	r.Critical = pokerCritical[len(r.Categories)]
	for _, c := range r.Categories {
		d := decimal.NewFromInt(int64(c.Observed)).Sub(c.Expected)
		r.Statistic = r.Statistic.Add(d.Mul(d).DivRound(c.Expected, statisticPlaces))
	}
	r.Pass = r.Statistic.LessThan(r.Critical)
	return r
}

// Poker reports whether s passes the poker test.
func Poker(s *congruential.Sample) bool {
	return EvaluatePoker(s).Pass
}

func (r PokerResult) Outcome() Outcome {
	return newOutcome("poker", r.Pass, r.Statistic.InexactFloat64(), r.Critical.InexactFloat64(), r.Err)
}

type PokerTest struct{}

func (PokerTest) Name() string { return "poker" }

func (PokerTest) Evaluate(s *congruential.Sample) Outcome {
	return EvaluatePoker(s).Outcome()
}
