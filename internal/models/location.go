package models

// Location is a library location row. Identity for import purposes is
// the (name, address) pair, not the id. Coordinates are nullable; the
// importer only ever fills a null coordinate, it never overwrites one.
type Location struct {
	ID      uint64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string   `gorm:"size:255;not null;index:idx_locations_name_address" json:"name"`
	Address string   `gorm:"size:255;not null;index:idx_locations_name_address" json:"address"`
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
}

// TableName overrides the table name for Location
func (Location) TableName() string {
	return "locations"
}
