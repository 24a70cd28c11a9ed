package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

type Location struct {
	ID        int64   `json:"id"`
	Street    string  `json:"street"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Zip       string  `json:"zip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Address struct {
	Street string `json:"street" validate:"required,max=100"`
	City   string `json:"city" validate:"required,max=50"`
	State  string `json:"state" validate:"required,max=50"`
	Zip    string `json:"zip" validate:"required,max=10"`
}

// String formats the address the way geocoders expect it.
func (a Address) String() string {
	return a.Street + ", " + a.City + ", " + a.State + " " + a.Zip
}

type NewLocation struct {
	Address
	Latitude  Coordinate `json:"latitude"`
	Longitude Coordinate `json:"longitude"`
}

var errNotNumber = errors.New("must be a finite number")

// Coordinate holds a latitude or longitude exactly as the client sent it,
// either a JSON number or a numeric string. Float does the checking.
type Coordinate string

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Coordinate(s)
		return nil
	}
	if string(b) == "null" {
		*c = ""
		return nil
	}
	*c = Coordinate(b)
	return nil
}

func (c Coordinate) Float() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(c)), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumber
	}
	return f, nil
}

type LocationFilter struct {
	Street string
	City   string
	State  string
	Zip    string
}
