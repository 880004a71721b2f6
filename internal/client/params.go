package client

import (
	"slices"
	"strings"
	"time"
)

// FirstSeason is the first season of college football on record
const FirstSeason = 1869

// Season types accepted by the API
const (
	SeasonRegular          = "regular"
	SeasonPostseason       = "postseason"
	SeasonBoth             = "both"
	SeasonAllStar          = "allstar"
	SeasonSpringRegular    = "spring_regular"
	SeasonSpringPostseason = "spring_postseason"
)

var allSeasonTypes = []string{
	SeasonRegular, SeasonPostseason, SeasonBoth,
	SeasonAllStar, SeasonSpringRegular, SeasonSpringPostseason,
}

// Classifications (NCAA divisions)
var classifications = []string{"fbs", "fcs", "ii", "iii"}

// now is replaced in tests
var now = time.Now

// checkSeason accepts 0 (unset) or a season between FirstSeason and next year
func checkSeason(param string, season int) error {
	return checkSeasonFrom(param, season, FirstSeason)
}

func checkSeasonFrom(param string, season, first int) error {
	if season == 0 {
		return nil
	}
	last := now().Year() + 1
	if season < first || season > last {
		return paramErr(param, "%d is outside %d-%d", season, first, last)
	}
	return nil
}

// checkRange validates two optional seasons and their order
func checkRange(minParam string, min int, maxParam string, max int) error {
	if err := checkSeason(minParam, min); err != nil {
		return err
	}
	if err := checkSeason(maxParam, max); err != nil {
		return err
	}
	if min != 0 && max != 0 && min > max {
		return paramErr(minParam, "%s (%d) cannot be greater than %s (%d)", minParam, min, maxParam, max)
	}
	return nil
}

func checkNonNegative(param string, v int) error {
	if v < 0 {
		return paramErr(param, "%d cannot be negative", v)
	}
	return nil
}

// checkWeeks validates optional start/end weeks; start must come before end
func checkWeeks(start, end int) error {
	if err := checkNonNegative("startWeek", start); err != nil {
		return err
	}
	if err := checkNonNegative("endWeek", end); err != nil {
		return err
	}
	if start != 0 && end != 0 {
		if start == end {
			return paramErr("startWeek", "startWeek and endWeek are both %d; use a single week filter instead", start)
		}
		if start > end {
			return paramErr("startWeek", "startWeek (%d) cannot be greater than endWeek (%d)", start, end)
		}
	}
	return nil
}

// checkOneOf accepts an empty value or one of allowed, ignoring case
func checkOneOf(param, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	if slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, value) }) {
		return nil
	}
	return paramErr(param, "%q is not one of %s", value, strings.Join(allowed, ", "))
}

func checkSeasonType(value string, allowed ...string) error {
	if len(allowed) == 0 {
		allowed = allSeasonTypes
	}
	return checkOneOf("seasonType", value, allowed)
}

func checkClassification(value string) error {
	return checkOneOf("classification", value, classifications)
}

func required(param string, set bool) error {
	if !set {
		return paramErr(param, "%s is required", param)
	}
	return nil
}

// requireOne fails unless at least one of the named parameters is set
func requireOne(names string, set ...bool) error {
	if slices.Contains(set, true) {
		return nil
	}
	return paramErr(names, "at least one of %s is required", names)
}

// firstErr returns the first non-nil error
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
