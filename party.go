// Copyright 2026 The dadata Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package dadata

import "time"

// PartyType is the kind of a party.
type PartyType string

// Party types.
const (
	PartyLegal      PartyType = "LEGAL"
	PartyIndividual PartyType = "INDIVIDUAL"
)

// PartyStatus is the registration status of a party.
type PartyStatus string

// Party statuses.
const (
	StatusActive       PartyStatus = "ACTIVE"
	StatusLiquidating  PartyStatus = "LIQUIDATING"
	StatusLiquidated   PartyStatus = "LIQUIDATED"
	StatusBankrupt     PartyStatus = "BANKRUPT"
	StatusReorganizing PartyStatus = "REORGANIZING"
)

// Party describes a company or individual entrepreneur. The service
// may omit any field; an omitted field is nil.
type Party struct {
	INN        *string     `json:"inn,omitempty"`
	KPP        *string     `json:"kpp,omitempty"`
	OGRN       *string     `json:"ogrn,omitempty"`
	Type       *PartyType  `json:"type,omitempty"`
	Name       *Name       `json:"name,omitempty"`
	Management *Management `json:"management,omitempty"`
	Address    *Address    `json:"address,omitempty"`
	State      *State      `json:"state,omitempty"`
	OKVED      *string     `json:"okved,omitempty"`
	OKVEDType  *string     `json:"okved_type,omitempty"`
}

// Name holds the name variants of a party.
type Name struct {
	FullWithOPF  *string `json:"full_with_opf,omitempty"`
	ShortWithOPF *string `json:"short_with_opf,omitempty"`
	Latin        *string `json:"latin,omitempty"`
	Full         *string `json:"full,omitempty"`
	Short        *string `json:"short,omitempty"`
}

// Management is the head of a legal entity.
type Management struct {
	Name *string `json:"name,omitempty"`
	Post *string `json:"post,omitempty"`
}

// Address is the registered address of a party.
type Address struct {
	Value             *string      `json:"value,omitempty"`
	UnrestrictedValue *string      `json:"unrestricted_value,omitempty"`
	Data              *AddressData `json:"data,omitempty"`
}

// AddressData is the structured part of an Address.
type AddressData struct {
	PostalCode     *string `json:"postal_code,omitempty"`
	Country        *string `json:"country,omitempty"`
	RegionWithType *string `json:"region_with_type,omitempty"`
	CityWithType   *string `json:"city_with_type,omitempty"`
	StreetWithType *string `json:"street_with_type,omitempty"`
	House          *string `json:"house,omitempty"`
	Block          *string `json:"block,omitempty"`
	Flat           *string `json:"flat,omitempty"`
	FIASID         *string `json:"fias_id,omitempty"`
	KLADRID        *string `json:"kladr_id,omitempty"`
}

// State is the registration state of a party. Dates are Unix
// milliseconds.
type State struct {
	Status           *PartyStatus `json:"status,omitempty"`
	RegistrationDate *int64       `json:"registration_date,omitempty"`
	LiquidationDate  *int64       `json:"liquidation_date,omitempty"`
}

// Registered returns the registration date, if known.
func (s *State) Registered() (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	return millis(s.RegistrationDate)
}

// Liquidated returns the liquidation date, if known.
func (s *State) Liquidated() (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	return millis(s.LiquidationDate)
}

// IsActive reports whether the party's status is ACTIVE.
func (p *Party) IsActive() bool {
	return p != nil && p.State != nil && p.State.Status != nil && *p.State.Status == StatusActive
}

func millis(ms *int64) (time.Time, bool) {
	if ms == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*ms).UTC(), true
}
