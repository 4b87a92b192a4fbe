package model

import "time"

// AcceptedItem is a category of goods a donation point takes in.
type AcceptedItem string

const (
	ItemFood     AcceptedItem = "FOOD"
	ItemClothing AcceptedItem = "CLOTHING"
	ItemHygiene  AcceptedItem = "HYGIENE"
	ItemCleaning AcceptedItem = "CLEANING"
	ItemMedicine AcceptedItem = "MEDICINE"
	ItemTools    AcceptedItem = "TOOLS"
	ItemOther    AcceptedItem = "OTHER"
)

// AcceptedItems lists every valid item category in display order.
var AcceptedItems = []AcceptedItem{
	ItemFood,
	ItemClothing,
	ItemHygiene,
	ItemCleaning,
	ItemMedicine,
	ItemTools,
	ItemOther,
}

// Valid reports whether i belongs to the fixed enumeration.
func (i AcceptedItem) Valid() bool {
	for _, v := range AcceptedItems {
		if v == i {
			return true
		}
	}
	return false
}

// DonationPoint is a physical location accepting donated goods.
// Optional fields are nil when absent; they are never stored as empty strings.
type DonationPoint struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Description         *string        `json:"description"`
	Address             string         `json:"address"`
	PostalCode          string         `json:"postalCode"`
	City                string         `json:"city"`
	Province            string         `json:"province"`
	AutonomousCommunity string         `json:"autonomousCommunity"`
	Latitude            float64        `json:"latitude"`
	Longitude           float64        `json:"longitude"`
	GoogleMapsURL       *string        `json:"googleMapsUrl"`
	Phone               *string        `json:"phone"`
	Email               *string        `json:"email"`
	Website             *string        `json:"website"`
	Schedule            *string        `json:"schedule"`
	AcceptedItems       []AcceptedItem `json:"acceptedItems"`
	IsActive            bool           `json:"isActive"`
	LastVerification    time.Time      `json:"lastVerification"`
	VerifiedAt          *time.Time     `json:"verifiedAt"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// ItemStrings returns the accepted items as plain strings, preserving order.
func (p *DonationPoint) ItemStrings() []string {
	out := make([]string, len(p.AcceptedItems))
	for i, it := range p.AcceptedItems {
		out[i] = string(it)
	}
	return out
}

// ListFilter narrows the public list. Zero-valued fields do not filter.
// All set fields must match; AcceptedItems matches when any item overlaps.
type ListFilter struct {
	AutonomousCommunity string         `json:"autonomousCommunity,omitempty"`
	Province            string         `json:"province,omitempty"`
	City                string         `json:"city,omitempty"`
	AcceptedItems       []AcceptedItem `json:"acceptedItems,omitempty"`
}

// Matches applies the filter to a single point, including the active-only rule.
func (f ListFilter) Matches(p *DonationPoint) bool {
	if !p.IsActive {
		return false
	}
	if f.AutonomousCommunity != "" && p.AutonomousCommunity != f.AutonomousCommunity {
		return false
	}
	if f.Province != "" && p.Province != f.Province {
		return false
	}
	if f.City != "" && p.City != f.City {
		return false
	}
	if len(f.AcceptedItems) == 0 {
		return true
	}
	for _, want := range f.AcceptedItems {
		for _, have := range p.AcceptedItems {
			if want == have {
				return true
			}
		}
	}
	return false
}
