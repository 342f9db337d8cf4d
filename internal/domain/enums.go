package domain

import (
	"fmt"
	"strings"
)

type Season string

const (
	SeasonSummer       Season = "summer"
	SeasonSpringAutumn Season = "spring_autumn"
	SeasonWinter       Season = "winter"
)

// Seasons lists every season in rule-table order.
var Seasons = []Season{SeasonSummer, SeasonSpringAutumn, SeasonWinter}

type Proximity string

const (
	ProximityNear   Proximity = "near"
	ProximityMedium Proximity = "medium"
	ProximityFar    Proximity = "far"
)

var Proximities = []Proximity{ProximityNear, ProximityMedium, ProximityFar}

type PotMaterial string

const (
	PotTerracotta PotMaterial = "terracotta"
	PotPlastic    PotMaterial = "plastic"
)

var PotMaterials = []PotMaterial{PotTerracotta, PotPlastic}

type Substrate string

const (
	SubstrateLight    Substrate = "light"
	SubstrateStandard Substrate = "standard"
	SubstrateHeavy    Substrate = "heavy"
)

var Substrates = []Substrate{SubstrateLight, SubstrateStandard, SubstrateHeavy}

type Humidity string

const (
	HumidityStandard Humidity = "standard"
	HumidityLow      Humidity = "low"
)

type RoomType string

const (
	RoomLivingRoom RoomType = "living_room"
	RoomBedroom    RoomType = "bedroom"
	RoomKitchen    RoomType = "kitchen"
	RoomBathroom   RoomType = "bathroom"
	RoomHallway    RoomType = "hallway"
)

var RoomTypes = []RoomType{RoomLivingRoom, RoomBedroom, RoomKitchen, RoomBathroom, RoomHallway}

// SortOption selects a display order for plant listings. Only SortCustom
// reflects the persisted order index.
type SortOption string

const (
	SortCustom       SortOption = "custom"
	SortAlphabetical SortOption = "alphabetical"
	SortSpecies      SortOption = "species"
)

// Aliases accepted at input boundaries, including the short codes used by
// legacy rule tables (T/P pot codes, L/S/T substrate codes).
var (
	proximityAliases = map[string]Proximity{
		"near": ProximityNear, "close": ProximityNear, "blizko": ProximityNear,
		"medium": ProximityMedium, "mid": ProximityMedium, "stredne": ProximityMedium,
		"far": ProximityFar, "daleko": ProximityFar,
	}
	potAliases = map[string]PotMaterial{
		"terracotta": PotTerracotta, "clay": PotTerracotta, "t": PotTerracotta,
		"plastic": PotPlastic, "p": PotPlastic,
	}
	substrateAliases = map[string]Substrate{
		"light": SubstrateLight, "l": SubstrateLight,
		"standard": SubstrateStandard, "s": SubstrateStandard,
		"heavy": SubstrateHeavy, "t": SubstrateHeavy, "h": SubstrateHeavy,
	}
	humidityAliases = map[string]Humidity{
		"standard": HumidityStandard, "normal": HumidityStandard,
		"low": HumidityLow, "lower": HumidityLow, "nižší": HumidityLow,
	}
	roomTypeAliases = map[string]RoomType{
		"living_room": RoomLivingRoom, "livingroom": RoomLivingRoom, "living": RoomLivingRoom,
		"bedroom": RoomBedroom,
		"kitchen": RoomKitchen,
		"bathroom": RoomBathroom,
		"hallway": RoomHallway, "hall": RoomHallway,
	}
	sortAliases = map[string]SortOption{
		"custom": SortCustom, "manual": SortCustom,
		"alphabetical": SortAlphabetical, "name": SortAlphabetical,
		"species": SortSpecies, "type": SortSpecies,
	}
)

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func ParseProximity(s string) (Proximity, error) {
	if p, ok := proximityAliases[normalizeToken(s)]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown proximity %q (want near, medium or far)", s)
}

func ParsePotMaterial(s string) (PotMaterial, error) {
	if p, ok := potAliases[normalizeToken(s)]; ok {
		return p, nil
	}
	return "", fmt.Errorf("unknown pot material %q (want terracotta or plastic)", s)
}

func ParseSubstrate(s string) (Substrate, error) {
	if v, ok := substrateAliases[normalizeToken(s)]; ok {
		return v, nil
	}
	return "", fmt.Errorf("unknown substrate %q (want light, standard or heavy)", s)
}

func ParseHumidity(s string) (Humidity, error) {
	if v, ok := humidityAliases[normalizeToken(s)]; ok {
		return v, nil
	}
	return "", fmt.Errorf("unknown humidity %q (want standard or low)", s)
}

func ParseSortOption(s string) (SortOption, error) {
	if v, ok := sortAliases[normalizeToken(s)]; ok {
		return v, nil
	}
	return "", fmt.Errorf("unknown sort option %q (want custom, alphabetical or species)", s)
}

// RoomTypeOrDefault maps a stored or user-supplied room type to a known
// value. Unrecognized input falls back to RoomLivingRoom.
func RoomTypeOrDefault(s string) RoomType {
	if v, ok := roomTypeAliases[normalizeToken(s)]; ok {
		return v
	}
	return RoomLivingRoom
}

func (p Proximity) Valid() bool {
	return p == ProximityNear || p == ProximityMedium || p == ProximityFar
}

func (m PotMaterial) Valid() bool {
	return m == PotTerracotta || m == PotPlastic
}

func (s Substrate) Valid() bool {
	return s == SubstrateLight || s == SubstrateStandard || s == SubstrateHeavy
}

func (h Humidity) Valid() bool {
	return h == HumidityStandard || h == HumidityLow
}
