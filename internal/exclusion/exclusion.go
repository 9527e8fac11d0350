package exclusion

import (
	"strings"

	"go.uber.org/zap"
)

// newYorkAliases always trigger the New York exclusion regardless of the
// configured location list
var newYorkAliases = []string{"new york", "ny", "nyc", "manhattan", "brooklyn"}

// midwestStates trigger the Midwest exclusion
var midwestStates = []string{
	"Ohio", "Michigan", "Illinois", "Wisconsin", "Minnesota",
	"Indiana", "Iowa", "Missouri", "Kansas", "Nebraska",
	"South Dakota", "North Dakota",
}

// Checker decides whether a company's location excludes it from outreach.
// The check is a hard gate: a match skips all downstream work.
type Checker struct {
	locations []string
	logger    *zap.Logger
}

// NewChecker creates a new exclusion checker from the configured location list
func NewChecker(locations []string, logger *zap.Logger) *Checker {
	normalized := make([]string, len(locations))
	for i, loc := range locations {
		normalized[i] = strings.ToLower(strings.TrimSpace(loc))
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized location exclusion checker", zap.Strings("locations", normalized))
	}

	return &Checker{
		locations: normalized,
		logger:    logger,
	}
}

// Locations returns the configured exclusion list
func (c *Checker) Locations() []string {
	return c.locations
}

// Match reports whether a location string is excluded, and which rule
// matched. Matching is case-insensitive substring containment.
func (c *Checker) Match(location string) (string, bool) {
	if strings.TrimSpace(location) == "" {
		return "", false
	}
	loc := strings.ToLower(location)

	for _, alias := range newYorkAliases {
		if strings.Contains(loc, alias) {
			c.debugMatch(location, alias)
			return alias, true
		}
	}

	if strings.Contains(loc, "midwest") {
		c.debugMatch(location, "midwest")
		return "midwest", true
	}
	for _, state := range midwestStates {
		if strings.Contains(loc, strings.ToLower(state)) {
			c.debugMatch(location, state)
			return state, true
		}
	}

	for _, excluded := range c.locations {
		if strings.Contains(loc, excluded) {
			c.debugMatch(location, excluded)
			return excluded, true
		}
	}

	return "", false
}

func (c *Checker) debugMatch(location, rule string) {
	if c.logger != nil {
		c.logger.Debug("Location excluded",
			zap.String("location", location),
			zap.String("rule", rule))
	}
}
