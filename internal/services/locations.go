package services

import (
	"github.com/localnerve/studynotes/internal/config"
	"github.com/localnerve/studynotes/internal/importer"
	"github.com/localnerve/studynotes/internal/models"
	"gorm.io/gorm"
)

// ListLocations returns all location rows ordered by id.
func ListLocations(db *gorm.DB) ([]models.Location, error) {
	locations := make([]models.Location, 0)
	err := db.Order("id").Find(&locations).Error
	return locations, err
}

// FullLocations returns detailed location records for the map popups.
// The external JSON file is preferred: its records go through the
// importer's normalization and anything without both coordinates is
// dropped. When the file is absent or unreadable the database rows are
// returned with null auxiliary fields. The second return reports
// whether the degraded database fallback was used.
func FullLocations(db *gorm.DB, cfg *config.Config) ([]importer.Record, bool, error) {
	if path, err := importer.Resolve(cfg); err == nil {
		if records, err := importer.Fetch(path); err == nil {
			full := make([]importer.Record, 0, len(records))
			for _, rec := range records {
				if rec.Lat == nil || rec.Lon == nil {
					continue
				}
				full = append(full, rec)
			}
			return full, false, nil
		}
	}

	rows, err := ListLocations(db)
	if err != nil {
		return nil, true, err
	}
	records := make([]importer.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, importer.Record{
			Name:    row.Name,
			Address: row.Address,
			Lat:     row.Lat,
			Lon:     row.Lon,
		})
	}
	return records, true, nil
}
