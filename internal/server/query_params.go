package server

import (
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	productdomain "github.com/smallbiznis/shiftcount/internal/product/domain"
)

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseProductID(value string) (snowflake.ID, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || parsed == 0 {
		return 0, productdomain.ErrInvalidID
	}
	return parsed, nil
}

// confirmation turns the confirm query flag into the answer of the prompt.
// Anything other than an explicit true declines.
func confirmation(value string) productdomain.Confirmer {
	ok, err := parseOptionalBool(value)
	if err != nil || ok == nil || !*ok {
		return productdomain.Declined
	}
	return productdomain.Confirmed
}
