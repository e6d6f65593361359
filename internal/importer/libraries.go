// libraries.go
//
// A study notes, topics and library locations web service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of studynotes.
// studynotes is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// studynotes is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with studynotes.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package importer normalizes heterogeneous library-location JSON files
// into canonical records and seeds them into the locations table.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/localnerve/studynotes/internal/config"
	"github.com/localnerve/studynotes/internal/models"
	"github.com/localnerve/studynotes/internal/types"
	"gorm.io/gorm"
)

// Record is the canonical shape of one imported library location.
// Lat/Lon are nil when the source had no parsable coordinate. The
// auxiliary fields are passed through as found; only the full-locations
// API serializes them.
type Record struct {
	Name                 string      `json:"name"`
	Address              string      `json:"address"`
	Lat                  *float64    `json:"lat"`
	Lon                  *float64    `json:"lon"`
	Hours                interface{} `json:"hours"`
	WheelchairAccessible interface{} `json:"wheelchair_accessible"`
	MeetingRooms         interface{} `json:"meeting_rooms"`
	Website              interface{} `json:"website"`
}

// Container keys checked, in order, when the document is an object
// rather than a flat list.
var containerKeys = []string{"records", "results", "data"}

// Resolve returns the first existing candidate path for the library
// data file: the configured path itself, then the same file name under
// a data/ directory next to it.
func Resolve(cfg *config.Config) (string, error) {
	candidates := []string{
		cfg.DataFile,
		filepath.Join(filepath.Dir(cfg.DataFile), "data", filepath.Base(cfg.DataFile)),
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("library data file not found (tried %s)", strings.Join(candidates, ", "))
}

// Fetch reads and normalizes the library JSON document at path.
// Accepted shapes: a flat list of records, or an object carrying the
// list under one of the recognized container keys, with each entry
// optionally wrapped in a "fields" sub-object. Records lacking a name
// or an address are dropped.
func Fetch(path string) ([]Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read library data file: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid library data JSON: %w", err)
	}

	var items []interface{}
	switch v := doc.(type) {
	case []interface{}:
		items = v
	case map[string]interface{}:
		for _, key := range containerKeys {
			if list, ok := v[key].([]interface{}); ok {
				items = list
				break
			}
		}
		if items == nil {
			return nil, fmt.Errorf("unrecognized library data document shape")
		}
	default:
		return nil, fmt.Errorf("unrecognized library data document shape")
	}

	var records []Record
	for _, item := range items {
		fields, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		// Some exports wrap the payload under a "fields" sub-object
		if inner, ok := fields["fields"].(map[string]interface{}); ok {
			fields = inner
		}

		rec, ok := normalize(fields)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// normalize extracts one canonical record; first matching key wins.
func normalize(fields map[string]interface{}) (Record, bool) {
	name := firstString(fields, "name", "library_name")
	address := firstString(fields, "address", "addr")
	if name == "" || address == "" {
		return Record{}, false
	}

	rec := Record{
		Name:                 name,
		Address:              address,
		Lat:                  coerceFirst(fields, "lat", "latitude"),
		Hours:                fields["hours"],
		WheelchairAccessible: fields["wheelchair_accessible"],
		MeetingRooms:         fields["meeting_rooms"],
		Website:              fields["website"],
	}

	// lng takes precedence when present; the common exports use it
	if _, ok := fields["lng"]; ok {
		rec.Lon = types.CoerceFloat(fields["lng"])
	}
	if rec.Lon == nil {
		rec.Lon = coerceFirst(fields, "lon", "longitude")
	}

	return rec, true
}

func firstString(fields map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := fields[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

func coerceFirst(fields map[string]interface{}, keys ...string) *float64 {
	for _, key := range keys {
		if v, ok := fields[key]; ok && v != nil {
			if f := types.CoerceFloat(v); f != nil {
				return f
			}
		}
	}
	return nil
}

// Seed upserts records into the locations table. Identity is the exact
// (name, address) pair: existing rows get only their null coordinates
// filled, new pairs are inserted. Re-running over the same file is a
// no-op beyond that, so the importer is safe on every startup.
func Seed(db *gorm.DB, records []Record) (int, error) {
	inserted := 0
	for _, rec := range records {
		var existing models.Location
		err := db.Where("name = ? AND address = ?", rec.Name, rec.Address).
			First(&existing).Error

		if err == nil {
			err = db.Exec(
				"UPDATE locations SET lat = COALESCE(lat, ?), lon = COALESCE(lon, ?) WHERE id = ?",
				rec.Lat, rec.Lon, existing.ID,
			).Error
			if err != nil {
				return inserted, fmt.Errorf("failed to update location %q: %w", rec.Name, err)
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return inserted, fmt.Errorf("failed to look up location %q: %w", rec.Name, err)
		}

		loc := models.Location{
			Name:    rec.Name,
			Address: rec.Address,
			Lat:     rec.Lat,
			Lon:     rec.Lon,
		}
		if err := db.Create(&loc).Error; err != nil {
			return inserted, fmt.Errorf("failed to insert location %q: %w", rec.Name, err)
		}
		inserted++
	}
	return inserted, nil
}
