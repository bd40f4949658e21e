package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rgehrsitz/rrspgo/internal/calculation"
	"github.com/rgehrsitz/rrspgo/internal/config"
	"github.com/shopspring/decimal"
)

// maxYears bounds projection and spread requests
const maxYears = 60

type errorResponse struct {
	Error string `json:"error"`
}

// TaxRequest asks for the tax owed on an income.
type TaxRequest struct {
	Income decimal.Decimal `json:"income"`
}

// TaxResponse is the federal, provincial and combined tax with the marginal rate.
type TaxResponse struct {
	Income       decimal.Decimal `json:"income"`
	Federal      decimal.Decimal `json:"federal"`
	Provincial   decimal.Decimal `json:"provincial"`
	Total        decimal.Decimal `json:"total"`
	MarginalRate decimal.Decimal `json:"marginal_rate"`
}

// DeductionRequest is an income and the RRSP deduction applied to it.
type DeductionRequest struct {
	Income    decimal.Decimal `json:"income"`
	Deduction decimal.Decimal `json:"deduction"`
}

// ProjectionRequest describes annual deposits over a horizon.
type ProjectionRequest struct {
	RRSP  decimal.Decimal `json:"rrsp"`
	TFSA  decimal.Decimal `json:"tfsa"`
	Years int             `json:"years"`
}

// SplitRequest describes a savings budget and the available rooms.
type SplitRequest struct {
	Income   decimal.Decimal `json:"income"`
	Budget   decimal.Decimal `json:"budget"`
	RRSPRoom decimal.Decimal `json:"rrsp_room"`
	TFSARoom decimal.Decimal `json:"tfsa_room"`
}

// SpreadRequest asks for a contribution deducted over several years.
type SpreadRequest struct {
	Income       decimal.Decimal `json:"income"`
	Contribution decimal.Decimal `json:"contribution"`
	Room         decimal.Decimal `json:"room"`
	Years        int             `json:"years"`
}

// BenefitsRequest feeds the child benefit and family allowance.
type BenefitsRequest struct {
	FamilyIncome   decimal.Decimal `json:"family_income"`
	Deduction      decimal.Decimal `json:"deduction"`
	ChildrenUnder6 int             `json:"children_under_6"`
	Children6To17  int             `json:"children_6_to_17"`
}

// CreditsRequest feeds the income-tested credits and in-work benefits.
type CreditsRequest struct {
	FamilyIncome decimal.Decimal `json:"family_income"`
	WorkIncome   decimal.Decimal `json:"work_income"`
	Deduction    decimal.Decimal `json:"deduction"`
	Couple       bool            `json:"couple"`
	Renter       bool            `json:"renter"`
	Children     int             `json:"children"`
}

// HealthCheck reports that the service is up.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bind decodes the JSON body or writes a 400 and returns false.
func (s *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.reject(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) reject(c *gin.Context, msg string) {
	s.Metrics.ValidationErrorsTotal.WithLabelValues(c.FullPath()).Inc()
	s.Logger.Warn("rejected request", "route", c.FullPath(), "error", msg)
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func nonNegative(values ...decimal.Decimal) bool {
	for _, v := range values {
		if v.IsNegative() {
			return false
		}
	}
	return true
}

// HandleTax returns the tax owed on an income. A negative income owes
// nothing.
func (s *Server) HandleTax(c *gin.Context) {
	var req TaxRequest
	if !s.bind(c, &req) {
		return
	}

	s.Metrics.CalculationsTotal.WithLabelValues("tax").Inc()
	c.JSON(http.StatusOK, TaxResponse{
		Income:       req.Income,
		Federal:      s.Engine.FederalTax(req.Income),
		Provincial:   s.Engine.ProvincialTax(req.Income),
		Total:        s.Engine.TotalTax(req.Income),
		MarginalRate: s.Engine.MarginalRate(req.Income),
	})
}

// HandleBrackets returns the combined bracket decomposition of a deduction.
func (s *Server) HandleBrackets(c *gin.Context) {
	var req DeductionRequest
	if !s.bind(c, &req) {
		return
	}
	if !nonNegative(req.Income, req.Deduction) {
		s.reject(c, "income and deduction cannot be negative")
		return
	}

	s.Metrics.CalculationsTotal.WithLabelValues("brackets").Inc()
	c.JSON(http.StatusOK, gin.H{
		"brackets":  s.Engine.BracketBreakdown(req.Income, req.Deduction),
		"tax_saved": s.Engine.TaxCalc.CalculateTaxSavings(req.Income, req.Deduction),
	})
}

// HandleProjection returns RRSP and TFSA balances year by year.
func (s *Server) HandleProjection(c *gin.Context) {
	var req ProjectionRequest
	if !s.bind(c, &req) {
		return
	}
	if req.Years < 0 || req.Years > maxYears {
		s.reject(c, "years must be between 0 and 60")
		return
	}

	s.Metrics.CalculationsTotal.WithLabelValues("projection").Inc()
	c.JSON(http.StatusOK, gin.H{"projection": s.Engine.Projection(req.RRSP, req.TFSA, req.Years)})
}

// HandleSplit returns the recommended RRSP/TFSA split of a budget.
func (s *Server) HandleSplit(c *gin.Context) {
	var req SplitRequest
	if !s.bind(c, &req) {
		return
	}

	s.Metrics.CalculationsTotal.WithLabelValues("split").Inc()
	c.JSON(http.StatusOK, s.Engine.OptimalSplit(req.Income, req.Budget, req.RRSPRoom, req.TFSARoom))
}

// HandleSpread compares deducting over several years with deducting at once.
func (s *Server) HandleSpread(c *gin.Context) {
	var req SpreadRequest
	if !s.bind(c, &req) {
		return
	}
	if req.Years < 0 || req.Years > maxYears {
		s.reject(c, "years must be between 0 and 60")
		return
	}

	s.Metrics.CalculationsTotal.WithLabelValues("spread").Inc()
	c.JSON(http.StatusOK, s.Engine.SpreadSavings(req.Income, req.Contribution, req.Room, req.Years))
}

// HandleBenefits returns the child benefit and family allowance impact of a deduction.
func (s *Server) HandleBenefits(c *gin.Context) {
	var req BenefitsRequest
	if !s.bind(c, &req) {
		return
	}

	s.Metrics.CalculationsTotal.WithLabelValues("benefits").Inc()
	c.JSON(http.StatusOK, s.Engine.FamilyAllowanceImpact(req.FamilyIncome, req.Deduction,
		req.ChildrenUnder6, req.Children6To17))
}

// HandleCredits returns the credits and in-work benefit impact of a deduction.
func (s *Server) HandleCredits(c *gin.Context) {
	var req CreditsRequest
	if !s.bind(c, &req) {
		return
	}

	s.Metrics.CalculationsTotal.WithLabelValues("credits").Inc()
	c.JSON(http.StatusOK, s.Engine.CreditsImpact(req.FamilyIncome, req.WorkIncome, req.Deduction,
		req.Couple, req.Renter, req.Children))
}

// HandleScenarios validates a full configuration and runs every scenario.
// Inline rules are applied over the defaults and replace the server's rules
// for the call.
func (s *Server) HandleScenarios(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		s.reject(c, "invalid request body: "+err.Error())
		return
	}

	cfg, err := config.NewInputParser().ParseJSON(body)
	if err != nil {
		s.reject(c, err.Error())
		return
	}

	engine := s.Engine
	if cfg.Rules != nil {
		engine = calculation.NewCalculationEngineWithRules(*cfg.Rules)
		engine.SetLogger(s.Engine.Logger)
	}

	results, err := engine.RunScenarios(c.Request.Context(), cfg)
	if err != nil {
		s.Logger.Error("scenario run failed", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	s.Metrics.CalculationsTotal.WithLabelValues("scenarios").Add(float64(len(results.Scenarios)))
	c.JSON(http.StatusOK, results)
}
