package render

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/khrees2412/resumatch/internal/status"
	"github.com/khrees2412/resumatch/pkg/models"
)

const (
	EmptyResultMessage = "Results will appear here"
	NoneMissingMessage = "✨ Incredible! No major keywords missing."
	highThreshold      = 70
	potentialThreshold = 40
	maxTagsLineWidth   = 72
)

// Band is the color-coded bucket a score falls into
type Band int

const (
	BandLow Band = iota
	BandPotential
	BandHigh
)

// BandFor buckets a 0-100 score: >= 70 high, >= 40 potential, else low
func BandFor(score float64) Band {
	switch {
	case score >= highThreshold:
		return BandHigh
	case score >= potentialThreshold:
		return BandPotential
	default:
		return BandLow
	}
}

// Label is the badge text for the band
func (b Band) Label() string {
	switch b {
	case BandHigh:
		return "High Match 🚀"
	case BandPotential:
		return "Potential Match ⚠️"
	default:
		return "Low Match ❌"
	}
}

func (b Band) color() lipgloss.AdaptiveColor {
	switch b {
	case BandHigh:
		return green
	case BandPotential:
		return yellow
	default:
		return red
	}
}

// Adaptive colors follow lipgloss's dark-background flag, which the theme
// controller sets.
var (
	green  = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}
	yellow = lipgloss.AdaptiveColor{Light: "#A16207", Dark: "#FACC15"}
	red    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	indigo = lipgloss.AdaptiveColor{Light: "#4338CA", Dark: "#818CF8"}
	purple = lipgloss.AdaptiveColor{Light: "#7E22CE", Dark: "#C084FC"}
	muted  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(muted)

	scoreStyle = lipgloss.NewStyle().
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	keywordsStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(indigo)

	meaningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(purple)

	captionStyle = lipgloss.NewStyle().
			Foreground(muted)

	tagStyle = lipgloss.NewStyle().
			Foreground(red).
			Padding(0, 1).
			MarginRight(1)

	successStyle = lipgloss.NewStyle().
			Foreground(green)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(muted).
				Italic(true)
)

// Percent formats a breakdown value to one decimal place. Ties on the exact
// binary value round away from zero, so 62.25 shows as 62.3 while 0.15
// (stored just below 0.15) shows as 0.1.
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 1, 64) + "%"
	}

	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}

	x := new(big.Float).SetPrec(256).SetFloat64(v)
	x.Mul(x, big.NewFloat(10))
	x.Add(x, big.NewFloat(0.5))
	tenths, _ := x.Int(nil)

	digits := tenths.String()
	if len(digits) < 2 {
		digits = "0" + digits
	}
	return sign + digits[:len(digits)-1] + "." + digits[len(digits)-1:] + "%"
}

// Score formats the overall score as the backend sent it
func Score(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// Result renders the score card, or the placeholder when r is nil
func Result(r *models.AnalysisResult) string {
	if r == nil {
		return placeholderStyle.Render(EmptyResultMessage)
	}

	band := BandFor(r.Score)
	var b strings.Builder

	b.WriteString(headingStyle.Render("OVERALL MATCH SCORE"))
	b.WriteString("\n")
	b.WriteString(scoreStyle.Foreground(band.color()).Render(Score(r.Score)))
	b.WriteString("  ")
	b.WriteString(badgeStyle.Foreground(band.color()).Render(band.Label()))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s  %s\n",
		headingStyle.Render("KEYWORDS"),
		keywordsStyle.Render(Percent(r.Breakdown.Lexical)),
		captionStyle.Render("Exact matches")))
	b.WriteString(fmt.Sprintf("%s  %s  %s\n\n",
		headingStyle.Render("MEANING"),
		meaningStyle.Render(Percent(r.Breakdown.Semantic)),
		captionStyle.Render("Context/Synonyms")))

	b.WriteString(headingStyle.Render("Missing Keywords"))
	b.WriteString("\n")
	b.WriteString(MissingKeywords(r.Missing))

	return b.String()
}

// MissingKeywords renders one tag per keyword in order, wrapping lines,
// or the success message for an empty list
func MissingKeywords(missing []string) string {
	if len(missing) == 0 {
		return successStyle.Render(NoneMissingMessage)
	}

	var lines []string
	var line []string
	width := 0
	for _, word := range missing {
		tag := tagStyle.Render(word)
		w := lipgloss.Width(tag)
		if width > 0 && width+w > maxTagsLineWidth {
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line, width = nil, 0
		}
		line = append(line, tag)
		width += w
	}
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	return strings.Join(lines, "\n")
}

// StatusBadge renders "Server: <status>" colored by liveness
func StatusBadge(s status.Status) string {
	text := "Server: " + s.String()
	switch s {
	case status.Online:
		return badgeStyle.Foreground(green).Render(text + " 🟢")
	case status.Offline:
		return badgeStyle.Foreground(red).Render(text + " 🔴")
	default:
		return badgeStyle.Foreground(muted).Render(text)
	}
}
