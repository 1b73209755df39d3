package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"bankloan/internal/data"
	"bankloan/internal/features"
)

type applicantReq struct {
	Age               int     `json:"age" binding:"gte=18,lte=100"`
	Experience        int     `json:"experience" binding:"gte=0"`
	Income            float64 `json:"income" binding:"gte=0"`
	ZIPCode           int     `json:"zip_code"`
	Family            int     `json:"family" binding:"gte=1"`
	CCAvg             float64 `json:"ccavg" binding:"gte=0"`
	Education         int     `json:"education" binding:"oneof=1 2 3"`
	Mortgage          float64 `json:"mortgage" binding:"gte=0"`
	SecuritiesAccount int     `json:"securities_account" binding:"oneof=0 1"`
	CDAccount         int     `json:"cd_account" binding:"oneof=0 1"`
	Online            int     `json:"online" binding:"oneof=0 1"`
	CreditCard        int     `json:"credit_card" binding:"oneof=0 1"`
}

func (r applicantReq) applicant() data.Applicant {
	return data.Applicant{
		Age:               r.Age,
		Experience:        r.Experience,
		Income:            r.Income,
		ZIPCode:           r.ZIPCode,
		Family:            r.Family,
		CCAvg:             r.CCAvg,
		Education:         r.Education,
		Mortgage:          r.Mortgage,
		SecuritiesAccount: r.SecuritiesAccount,
		CDAccount:         r.CDAccount,
		Online:            r.Online,
		CreditCard:        r.CreditCard,
	}
}

type prediction struct {
	Approved    bool    `json:"approved"`
	Probability float64 `json:"probability"`
	Band        string  `json:"band"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "model": s.pipe.Name()})
}

func (s *Server) handleModel(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"algorithm": s.pipe.Algorithm.String(),
		"id":        s.pipe.ID,
		"features":  s.pipe.Features,
		"classes":   s.pipe.Classes,
		"fitted_at": s.pipe.FittedAt,
		"threshold": s.threshold,
	})
}

func (s *Server) handlePredict(c *gin.Context) {
	var req applicantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := s.score([]applicantReq{req})
	if err != nil {
		s.logger.Error("predict", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"approved":    out[0].Approved,
		"probability": out[0].Probability,
		"band":        out[0].Band,
		"model":       s.pipe.Name(),
	})
}

func (s *Server) handleBatch(c *gin.Context) {
	var items []applicantReq
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(items) == 0 || len(items) > maxBatch {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("batch must hold 1 to %d applicants", maxBatch)})
		return
	}
	out, err := s.score(items)
	if err != nil {
		s.logger.Error("batch", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) score(reqs []applicantReq) ([]prediction, error) {
	as := make([]data.Applicant, len(reqs))
	for i, r := range reqs {
		as[i] = r.applicant()
	}
	X, err := features.VectorizeAll(as, s.pipe.Features)
	if err != nil {
		return nil, err
	}
	ps, err := s.pipe.PredictProba(X)
	if err != nil {
		return nil, err
	}
	out := make([]prediction, len(ps))
	for i, p := range ps {
		out[i] = prediction{Approved: p >= s.threshold, Probability: p, Band: s.band(p)}
	}
	return out, nil
}

// band buckets a probability relative to the approval threshold.
func (s *Server) band(p float64) string {
	switch {
	case p >= 0.95:
		return "high"
	case p >= s.threshold:
		return "medium"
	case p >= s.threshold/2:
		return "low"
	default:
		return "very_low"
	}
}
