package handlers

import (
	"fmt"
	"net/http"

	"clap-go/internal/models"
	"clap-go/internal/repository"
	"clap-go/internal/scoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ResultsHandler serves the scored report for a completed attempt, both as
// JSON enriched with proficiency grades and as a rendered category chart.
type ResultsHandler struct {
	log      *zap.Logger
	attempts *repository.Attempts
}

func NewResultsHandler(log *zap.Logger, attempts *repository.Attempts) *ResultsHandler {
	return &ResultsHandler{log: log, attempts: attempts}
}

type gradedCategory struct {
	models.CategoryResult
	Grade       string `json:"grade"`
	Description string `json:"description"`
}

type gradedReport struct {
	AttemptID          string           `json:"attemptId"`
	Type               string           `json:"type"`
	TotalScore         int              `json:"totalScore"`
	TotalPossible      int              `json:"totalPossible"`
	OverallPercentage  float64          `json:"overallPercentage"`
	OverallGrade       string           `json:"overallGrade"`
	OverallDescription string           `json:"overallDescription"`
	Categories         []gradedCategory `json:"categories"`
}

// ShowReport returns the stored report with a grade and prose description
// attached to every category and to the overall score.
func (h *ResultsHandler) ShowReport(c *gin.Context) {
	report, ok := h.loadReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// ShowChart renders the category percentages as a bar chart page.
func (h *ResultsHandler) ShowChart(c *gin.Context) {
	report, ok := h.loadReport(c)
	if !ok {
		return
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Leadership Assessment Results",
			Subtitle: fmt.Sprintf("Overall: %.0f%% (%s)", report.OverallPercentage, report.OverallGrade),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Max:  100,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	names := make([]string, 0, len(report.Categories))
	items := make([]opts.BarData, 0, len(report.Categories))
	for _, cat := range report.Categories {
		names = append(names, cat.Category)
		items = append(items, opts.BarData{
			Value:   cat.Percentage,
			Tooltip: &opts.Tooltip{Show: opts.Bool(true)},
		})
	}

	bar.SetXAxis(names).AddSeries("Score (%)", items)

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := bar.Render(c.Writer); err != nil {
		h.log.Error("Failed to render results chart", zap.String("attemptID", report.AttemptID), zap.Error(err))
	}
}

func (h *ResultsHandler) loadReport(c *gin.Context) (*gradedReport, bool) {
	attempt, err := h.attempts.GetAttempt(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "attempt_not_found", "message": "assessment attempt not found"})
		return nil, false
	}
	if attempt.Status != models.AttemptCompleted || attempt.ReportData == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "report_not_ready", "message": "this attempt has not been completed yet"})
		return nil, false
	}

	result := attempt.ReportData
	report := &gradedReport{
		AttemptID:         attempt.ID,
		Type:              attempt.Type,
		TotalScore:        result.TotalScore,
		TotalPossible:     result.TotalPossible,
		OverallPercentage: result.OverallPercentage,
	}
	report.OverallGrade = scoring.Classify(result.TotalScore, scoring.ScaleOverall)
	report.OverallDescription = scoring.Describe(scoring.CategoryOverall, report.OverallGrade)

	for _, cat := range result.CategoryResults {
		grade := scoring.Classify(cat.Score, scoring.ScaleIndividual)
		report.Categories = append(report.Categories, gradedCategory{
			CategoryResult: cat,
			Grade:          grade,
			Description:    scoring.Describe(cat.Category, grade),
		})
	}
	return report, true
}
