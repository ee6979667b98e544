package model

import "time"

const (
	PromoPercentage   = "percentage"
	PromoFixed        = "fixed"
	PromoFreeShipping = "free_shipping"

	PromoActive  = "active"
	PromoExpired = "expired"
)

// PromoCode is a named discount rule with eligibility constraints.
// Codes are stored uppercase; matching is case-insensitive.
// MinOrder and MaxUses are optional: zero means unset.
type PromoCode struct {
	Code       string     `json:"code"`
	Type       string     `json:"type"`
	Value      float64    `json:"value"`
	MinOrder   float64    `json:"minOrder,omitempty"`
	MaxUses    int        `json:"maxUses,omitempty"`
	UsedCount  int        `json:"usedCount"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

func ValidPromoType(t string) bool {
	return t == PromoPercentage || t == PromoFixed || t == PromoFreeShipping
}
