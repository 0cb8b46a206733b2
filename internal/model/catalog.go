package model

import "time"

// Location is a city/country pair that routes reference by name.
// City names are unique.
type Location struct {
    ID        uint64    // locations.id
    City      string    // locations.city
    Country   string    // locations.country
    CreatedAt time.Time // locations.created_at
}

// Route connects an origin city to a destination city. The pair
// (origin, destination) is unique. Duration is a human-readable
// string such as "2h 15m"; DistanceKM is the route length.
type Route struct {
    ID         uint64    // routes.id
    Origin     string    // routes.origin
    Destination string   // routes.destination
    Duration   string    // routes.duration
    DistanceKM uint32    // routes.distance_km
    CreatedAt  time.Time // routes.created_at
}

// Airline identifies a carrier. Name and Code are both unique;
// codes are stored uppercased (e.g. "PK", "EK").
type Airline struct {
    ID        uint64    // airlines.id
    Name      string    // airlines.name
    Code      string    // airlines.code
    CreatedAt time.Time // airlines.created_at
}
