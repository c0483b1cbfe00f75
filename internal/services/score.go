package services

import (
	"strconv"

	"github.com/wellform/wellform/internal/models"
)

// awardingAnswer maps each question number to the answer worth one point.
// Question 8 is reverse scored: the healthy answer there is no, every other
// question awards its point for yes. Keeping the rule as data makes the
// rubric auditable in one place.
var awardingAnswer = buildScoringRules()

func buildScoringRules() map[int]string {
	rules := make(map[int]string, questionCount)
	for i := 1; i <= questionCount; i++ {
		rules[i] = models.AnswerYes
	}
	rules[8] = models.AnswerNo
	return rules
}

// gradeThresholds is evaluated top-down; the first entry the score reaches
// wins.
var gradeThresholds = []struct {
	Min   int
	Grade string
}{
	{14, "A"},
	{11, "B"},
	{8, "C"},
	{5, "D"},
	{0, "E"},
}

// gradeDescriptions is fixed process-wide configuration, never mutated.
var gradeDescriptions = map[string]string{
	"A": "Excellent - You maintain outstanding health habits across all areas. Keep up the great work!",
	"B": "Good - You have solid health foundations with room for minor improvements.",
	"C": "Fair - Your health is adequate, but there are several areas where improvements could significantly benefit you.",
	"D": "Poor - Your health habits need attention. Consider focusing on key areas for improvement.",
	"E": "Critical - Your health requires immediate attention. Consider consulting healthcare professionals.",
}

// Score converts an answer set into its score, grade, and description.
// It is pure and total: identical input always yields identical output, and
// answers that match no rule simply earn nothing.
func Score(r models.Responses) models.ScoreResult {
	score := 0
	for q, award := range awardingAnswer {
		if ans, _ := r["q"+strconv.Itoa(q)].(string); ans == award {
			score++
		}
	}
	grade := "E"
	for _, t := range gradeThresholds {
		if score >= t.Min {
			grade = t.Grade
			break
		}
	}
	return models.ScoreResult{Score: score, Grade: grade, Description: gradeDescriptions[grade]}
}
