package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryTemple      Category = "Temple"
	CategoryBeach       Category = "Beach"
	CategoryHillStation Category = "Hill Station"
	CategoryMonument    Category = "Monument"
	CategoryWildlife    Category = "Wildlife"
	CategoryWaterfall   Category = "Waterfall"
	CategoryFort        Category = "Fort"
	CategoryGarden      Category = "Garden"
	CategoryMuseum      Category = "Museum"
	CategoryOther       Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryTemple,
	CategoryBeach,
	CategoryHillStation,
	CategoryMonument,
	CategoryWildlife,
	CategoryWaterfall,
	CategoryFort,
	CategoryGarden,
	CategoryMuseum,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Place is a catalog entry. Optional grounding fields are empty when unset.
type Place struct {
	ID               int64
	Name             string
	ImageURL         string
	Category         Category
	District         string
	ShortDescription string

	DetailedDescription string
	HowToReach          string
	BestTimeToVisit     string
	EntryFee            string
	Timings             string
	NearbyAttractions   string
	Accommodation       string

	Latitude  decimal.NullDecimal
	Longitude decimal.NullDecimal
	Featured  bool
	CreatedAt time.Time
}

// PlaceFilter narrows a catalog listing. Zero values mean "no filter".
type PlaceFilter struct {
	Search   string
	Category string
	District string
}

// PlacePage is one page of a filtered listing.
type PlacePage struct {
	Places     []Place
	Page       int
	TotalPages int
	Total      int64
}

func (p *PlacePage) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p *PlacePage) HasPrevious() bool {
	return p.Page > 1
}

// PlaceFacets holds the distinct values offered in filter dropdowns.
type PlaceFacets struct {
	Categories []string
	Districts  []string
}

// CatalogHome bundles everything the catalog landing view shows at once.
type CatalogHome struct {
	Page     *PlacePage
	Featured []Place
	Facets   PlaceFacets
}
