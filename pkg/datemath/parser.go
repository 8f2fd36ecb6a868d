package datemath

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ISODateLayout is the calendar date format accepted by ParseDate.
const ISODateLayout = "2006-01-02"

var (
	inDurationRe  = regexp.MustCompile(`^(?:in|dans) (\d+) (day|days|week|weeks|month|months|jour|jours|semaine|semaines|mois)$`)
	weekdayByName = map[string]time.Weekday{
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
		"sunday":    time.Sunday,
		"lundi":     time.Monday,
		"mardi":     time.Tuesday,
		"mercredi":  time.Wednesday,
		"jeudi":     time.Thursday,
		"vendredi":  time.Friday,
		"samedi":    time.Saturday,
		"dimanche":  time.Sunday,
	}
)

// Parser converts relative date strings to absolute time.Time values.
type Parser struct {
	location *time.Location
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Europe/Paris"
func NewParser(timezone string) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Parser{location: loc}, nil
}

// Location returns the parser's timezone.
func (p *Parser) Location() *time.Location {
	return p.location
}

// ParseDate accepts a YYYY-MM-DD date or a relative expression understood by
// Parse. Unlike Parse, unrecognised input is an error.
func (p *Parser) ParseDate(expr string, baseTime time.Time) (time.Time, error) {
	expr = strings.TrimSpace(expr)
	if t, err := time.ParseInLocation(ISODateLayout, expr, p.location); err == nil {
		return t, nil
	}
	if !p.recognised(expr) {
		return time.Time{}, fmt.Errorf("unrecognised date %q", expr)
	}
	return p.Parse(expr, baseTime)
}

// Parse converts a relative date string to an absolute time.Time.
// The baseTime is used as the reference point (usually time.Now()).
func (p *Parser) Parse(relative string, baseTime time.Time) (time.Time, error) {
	relative = normalize(relative)

	switch relative {
	case "today", "aujourd'hui":
		return p.startOfDay(baseTime), nil
	case "tomorrow", "demain":
		return p.startOfDay(baseTime.AddDate(0, 0, 1)), nil
	case "yesterday", "hier":
		return p.startOfDay(baseTime.AddDate(0, 0, -1)), nil
	}

	// "in X days/weeks/months", "dans X jours"
	if strings.HasPrefix(relative, "in ") || strings.HasPrefix(relative, "dans ") {
		return p.parseInDuration(relative, baseTime)
	}

	// "next <weekday>", "<jour> prochain"
	if day, ok := weekdayExpression(relative); ok {
		return p.parseNextWeekday(day, baseTime)
	}

	// Fallback: treat unknown as today
	return p.startOfDay(baseTime), nil
}

func (p *Parser) recognised(expr string) bool {
	expr = normalize(expr)
	switch expr {
	case "today", "aujourd'hui", "tomorrow", "demain", "yesterday", "hier":
		return true
	}
	if strings.HasPrefix(expr, "in ") || strings.HasPrefix(expr, "dans ") {
		return true
	}
	_, ok := weekdayExpression(expr)
	return ok
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.ReplaceAll(s, "’", "'")
}

func weekdayExpression(expr string) (string, bool) {
	if day, ok := strings.CutPrefix(expr, "next "); ok {
		return day, true
	}
	if day, ok := strings.CutSuffix(expr, " prochain"); ok {
		return day, true
	}
	return "", false
}

// parseInDuration handles patterns like "in 3 days", "in 2 weeks", "dans 1 mois".
func (p *Parser) parseInDuration(relative string, baseTime time.Time) (time.Time, error) {
	matches := inDurationRe.FindStringSubmatch(relative)
	if len(matches) != 3 {
		return baseTime, fmt.Errorf("invalid duration format: %q", relative)
	}

	amount, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch {
	case strings.HasPrefix(unit, "day"), strings.HasPrefix(unit, "jour"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount)), nil
	case strings.HasPrefix(unit, "week"), strings.HasPrefix(unit, "semaine"):
		return p.startOfDay(baseTime.AddDate(0, 0, amount*7)), nil
	case strings.HasPrefix(unit, "month"), unit == "mois":
		return p.startOfDay(baseTime.AddDate(0, amount, 0)), nil
	}

	return baseTime, fmt.Errorf("unknown time unit: %q", unit)
}

// parseNextWeekday returns the next occurrence of dayName strictly after baseTime.
func (p *Parser) parseNextWeekday(dayName string, baseTime time.Time) (time.Time, error) {
	targetWeekday, ok := weekdayByName[dayName]
	if !ok {
		return baseTime, fmt.Errorf("unknown weekday: %q", dayName)
	}

	currentWeekday := baseTime.In(p.location).Weekday()
	daysUntil := int(targetWeekday - currentWeekday)
	if daysUntil <= 0 {
		daysUntil += 7
	}

	return p.startOfDay(baseTime.AddDate(0, 0, daysUntil)), nil
}

// startOfDay returns midnight at the start of the given day in the parser's timezone.
func (p *Parser) startOfDay(t time.Time) time.Time {
	t = t.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, p.location)
}

// EndOfDay returns 23:59:59 at the end of the given start-of-day time.
func (p *Parser) EndOfDay(startOfDay time.Time) time.Time {
	return startOfDay.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
}

// DaysBetween counts calendar days from start to end, both included.
func (p *Parser) DaysBetween(start, end time.Time) int {
	s, e := p.startOfDay(start), p.startOfDay(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24+0.5) + 1
}
