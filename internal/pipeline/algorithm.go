package pipeline

import (
	"fmt"
	"strings"

	"bankloan/internal/models"
)

type Algorithm int

const (
	LogisticRegression Algorithm = iota + 1
	KNearestNeighbors
	RandomForest
	GradientBoostedTrees
)

var algorithmNames = map[Algorithm]string{
	LogisticRegression:   "logistic-regression",
	KNearestNeighbors:    "k-nearest-neighbors",
	RandomForest:         "random-forest",
	GradientBoostedTrees: "gradient-boosted-trees",
}

var aliases = map[string]Algorithm{
	"logistic_regression": LogisticRegression,
	"logreg":              LogisticRegression,
	"lr":                  LogisticRegression,
	"knn":                 KNearestNeighbors,
	"k_nearest_neighbors": KNearestNeighbors,
	"random_forest":       RandomForest,
	"rf":                  RandomForest,
	"xgboost":             GradientBoostedTrees,
	"gradient_boosting":   GradientBoostedTrees,
	"gbt":                 GradientBoostedTrees,
	"gb":                  GradientBoostedTrees,
}

func (a Algorithm) String() string {
	if s, ok := algorithmNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Algorithms lists every supported kind in declaration order.
func Algorithms() []Algorithm {
	return []Algorithm{LogisticRegression, KNearestNeighbors, RandomForest, GradientBoostedTrees}
}

// ParseAlgorithm resolves a canonical id or a legacy alias such as "xgboost".
func ParseAlgorithm(id string) (Algorithm, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	for a, name := range algorithmNames {
		if key == name {
			return a, nil
		}
	}
	if a, ok := aliases[key]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, id)
}

// Params are the hyperparameters shared by all builders; each builder reads
// the fields it needs.
type Params struct {
	Seed         int64   `yaml:"seed"`
	K            int     `yaml:"k" validate:"gte=1"`
	Epochs       int     `yaml:"epochs" validate:"gte=1"`
	LearningRate float64 `yaml:"learning_rate" validate:"gt=0"`
	L2           float64 `yaml:"l2" validate:"gte=0"`
	Estimators   int     `yaml:"estimators" validate:"gte=1"`
	MaxDepth     int     `yaml:"max_depth" validate:"gte=1"`
	MinSamples   int     `yaml:"min_samples" validate:"gte=1"`
}

func DefaultParams() Params {
	return Params{
		Seed:         42,
		K:            5,
		Epochs:       500,
		LearningRate: 0.1,
		L2:           1e-3,
		Estimators:   100,
		MaxDepth:     6,
		MinSamples:   2,
	}
}

type builder func(Params) (Transformer, models.Model)

var builders = map[Algorithm]builder{
	LogisticRegression: func(p Params) (Transformer, models.Model) {
		m := models.NewLogisticRegression()
		m.Epochs = p.Epochs
		m.LearningRate = p.LearningRate
		m.L2 = p.L2
		return &StandardScaler{}, m
	},
	KNearestNeighbors: func(p Params) (Transformer, models.Model) {
		return &StandardScaler{}, models.NewKNN(p.K)
	},
	RandomForest: func(p Params) (Transformer, models.Model) {
		rf := models.NewRandomForest()
		rf.NEstimators = p.Estimators
		rf.MaxDepth = p.MaxDepth
		rf.MinSamples = p.MinSamples
		rf.Seed = p.Seed
		return &Identity{}, rf
	},
	GradientBoostedTrees: func(p Params) (Transformer, models.Model) {
		gb := models.NewGradientBoosting()
		gb.NEstimators = p.Estimators
		gb.LearningRate = p.LearningRate
		gb.MaxDepth = p.MaxDepth
		return &Identity{}, gb
	},
}
