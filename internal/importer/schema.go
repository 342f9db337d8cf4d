package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// SchemaVersion is written by Export and accepted by Load.
const SchemaVersion = 1

// CollectionSchema is the top-level JSON structure of a plant collection
// backup.
type CollectionSchema struct {
	Version int           `json:"version"`
	Rooms   []RoomImport  `json:"rooms,omitempty"`
	Plants  []PlantImport `json:"plants"`
}

// RoomImport defines a room in the import file. Ref links plants to the
// room within the file; it is not stored.
type RoomImport struct {
	Ref    string `json:"ref"`
	Name   string `json:"name"`
	Type   string `json:"type,omitempty"`
	Window *int   `json:"window,omitempty"`
}

// PlantImport defines a plant in the import file. Plants are appended to
// the manual order in file order.
type PlantImport struct {
	Species        string   `json:"species"`
	Name           string   `json:"name,omitempty"`
	RoomRef        *string  `json:"room_ref,omitempty"`
	Proximity      string   `json:"proximity,omitempty"`
	Pot            string   `json:"pot,omitempty"`
	Substrate      string   `json:"substrate,omitempty"`
	Humidity       string   `json:"humidity,omitempty"`
	LastWatered    *string  `json:"last_watered,omitempty"`
	LastFertilized *string  `json:"last_fertilized,omitempty"`
	HeightCm       *float64 `json:"height_cm,omitempty"`
	PotSizeCm      *float64 `json:"pot_size_cm,omitempty"`
}

// LoadSchema reads and parses a collection JSON file.
func LoadSchema(path string) (*CollectionSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema CollectionSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}

// Marshal renders schema as indented JSON.
func Marshal(schema *CollectionSchema) ([]byte, error) {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
