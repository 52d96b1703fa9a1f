package stationdb

import (
	"github.com/uptrace/bun"
)

// Station is a checkpoint on the event course. Order is a single event-global
// ordinal shared by all routes; relation queries compare it without regard to
// route membership.
type Station struct {
	bun.BaseModel `bun:"table:stations,alias:s"`

	Name    string `bun:"name,pk" json:"name"`
	Order   int    `bun:"ord,notnull,default:500" json:"order"`
	IsStart bool   `bun:"is_start,notnull,default:false" json:"is_start"`
	IsEnd   bool   `bun:"is_end,notnull,default:false" json:"is_end"`

	Routes []*Route `bun:"m2m:route_stations,join:Station=Route" json:"-"`
}

// Route is a named path through a subset of the stations.
type Route struct {
	bun.BaseModel `bun:"table:routes,alias:r"`

	Name  string `bun:"name,pk" json:"name"`
	Color string `bun:"color" json:"color"`

	Stations []*Station `bun:"m2m:route_stations,join:Route=Station" json:"-"`
}

// RouteStation links a station onto a route.
type RouteStation struct {
	bun.BaseModel `bun:"table:route_stations,alias:rs"`

	RouteName   string   `bun:"route_name,pk" json:"route"`
	Route       *Route   `bun:"rel:belongs-to,join:route_name=name" json:"-"`
	StationName string   `bun:"station_name,pk" json:"station"`
	Station     *Station `bun:"rel:belongs-to,join:station_name=name" json:"-"`
}
