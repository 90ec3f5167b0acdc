package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Card struct {
	ID     int64  `json:"id"`     // Primary key
	Nom    string `json:"nom"`    // Display name
	Photo  string `json:"photo"`  // Image URL
	Degats Stat   `json:"degats"` // Attack damage
	PV     Stat   `json:"pv"`     // Health points
}

// Stat is a card attribute that clients may send either as a JSON
// number or as a numeric string. It always marshals as a number.
type Stat int

func (s *Stat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid stat value %q", raw)
		}
		*s = Stat(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = Stat(n)
	return nil
}

// CardInput carries client-supplied card fields. Every field is
// optional so the same type serves both create and partial update.
type CardInput struct {
	Nom    *string `json:"nom"`
	Photo  *string `json:"photo"`
	Degats *Stat   `json:"degats"`
	PV     *Stat   `json:"pv"`
}

// Complete reports whether all four business fields are present and
// truthy. Empty strings and zero stats count as missing.
func (in CardInput) Complete() bool {
	if in.Nom == nil || *in.Nom == "" {
		return false
	}
	if in.Photo == nil || *in.Photo == "" {
		return false
	}
	if in.Degats == nil || *in.Degats == 0 {
		return false
	}
	if in.PV == nil || *in.PV == 0 {
		return false
	}
	return true
}

// MergeInto overwrites only the supplied fields on an existing card.
func (in CardInput) MergeInto(c *Card) {
	if in.Nom != nil {
		c.Nom = *in.Nom
	}
	if in.Photo != nil {
		c.Photo = *in.Photo
	}
	if in.Degats != nil {
		c.Degats = *in.Degats
	}
	if in.PV != nil {
		c.PV = *in.PV
	}
}
