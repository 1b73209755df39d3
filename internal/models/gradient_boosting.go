package models

import (
	"math"
	"sort"
)

// RegressionNode is a node of a boosting tree; a node without children is a leaf.
type RegressionNode struct {
	Feature   int
	Threshold float64
	Left      *RegressionNode
	Right     *RegressionNode
	Value     float64
}

func (n *RegressionNode) eval(x []float64) float64 {
	for n.Left != nil {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// GradientBoosting fits second-order boosted trees on the logistic loss,
// starting from the prior log-odds.
type GradientBoosting struct {
	NEstimators  int
	LearningRate float64
	MaxDepth     int
	MinSamples   int
	Lambda       float64
	Init         float64
	Trees        []*RegressionNode
}

func NewGradientBoosting() *GradientBoosting {
	return &GradientBoosting{NEstimators: 100, LearningRate: 0.1, MaxDepth: 3, MinSamples: 1, Lambda: 1}
}

func (gb *GradientBoosting) Name() string { return "GradientBoosting" }

func (gb *GradientBoosting) Fit(X [][]float64, y []int) error {
	if err := checkTrainingSet(X, y); err != nil {
		return err
	}
	n := len(X)
	pos := 0
	for i := 0; i < n; i++ {
		if y[i] == 1 {
			pos++
		}
	}
	base := float64(pos) / float64(n)
	if base <= 1e-3 {
		base = 1e-3
	}
	if base >= 1-1e-3 {
		base = 1 - 1e-3
	}
	gb.Init = math.Log(base / (1.0 - base))
	gb.Trees = gb.Trees[:0]

	F := make([]float64, n)
	for i := range F {
		F[i] = gb.Init
	}
	g := make([]float64, n)
	h := make([]float64, n)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	for m := 0; m < gb.NEstimators; m++ {
		for i := 0; i < n; i++ {
			p := sigmoid(F[i])
			g[i] = float64(y[i]) - p
			h[i] = p * (1 - p)
		}
		tree := gb.build(X, g, h, idx, 0)
		if tree.Left == nil && math.Abs(tree.Value) < 1e-12 {
			break
		}
		gb.Trees = append(gb.Trees, tree)
		for i := 0; i < n; i++ {
			F[i] += gb.LearningRate * tree.eval(X[i])
		}
	}
	return nil
}

func (gb *GradientBoosting) leafValue(g, h []float64, idx []int) float64 {
	var G, H float64
	for _, i := range idx {
		G += g[i]
		H += h[i]
	}
	return G / (H + gb.Lambda)
}

func (gb *GradientBoosting) build(X [][]float64, g, h []float64, idx []int, depth int) *RegressionNode {
	node := &RegressionNode{Value: gb.leafValue(g, h, idx)}
	minLeaf := gb.MinSamples
	if minLeaf < 1 {
		minLeaf = 1
	}
	if depth >= gb.MaxDepth || len(idx) < 2*minLeaf {
		return node
	}

	var G, H float64
	for _, i := range idx {
		G += g[i]
		H += h[i]
	}
	parent := G * G / (H + gb.Lambda)

	bestGain := 1e-12
	bestFeature := -1
	bestThr := 0.0
	order := make([]int, len(idx))
	for f := 0; f < len(X[0]); f++ {
		copy(order, idx)
		sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })
		var gl, hl float64
		for k := 0; k < len(order)-1; k++ {
			i := order[k]
			gl += g[i]
			hl += h[i]
			cur, next := X[i][f], X[order[k+1]][f]
			if cur == next || k+1 < minLeaf || len(order)-k-1 < minLeaf {
				continue
			}
			gr, hr := G-gl, H-hl
			gain := gl*gl/(hl+gb.Lambda) + gr*gr/(hr+gb.Lambda) - parent
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThr = (cur + next) / 2
			}
		}
	}
	if bestFeature == -1 {
		return node
	}

	var left, right []int
	for _, i := range idx {
		if X[i][bestFeature] <= bestThr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	node.Feature = bestFeature
	node.Threshold = bestThr
	node.Left = gb.build(X, g, h, left, depth+1)
	node.Right = gb.build(X, g, h, right, depth+1)
	return node
}

func (gb *GradientBoosting) PredictProba(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i := range X {
		f := gb.Init
		for _, t := range gb.Trees {
			f += gb.LearningRate * t.eval(X[i])
		}
		out[i] = sigmoid(f)
	}
	return out
}

func (gb *GradientBoosting) Predict(X [][]float64) []int {
	return probaToPred(gb.PredictProba(X), 0.5)
}
