package core

import "time"

// Route is a delivery route: a named loop a vehicle drives each morning,
// with an ordered list of customer stops.
type Route struct {
	ID            int         `json:"id"`
	Name          string      `json:"name"`
	DriverName    string      `json:"driver_name,omitempty"`
	VehicleNumber string      `json:"vehicle_number,omitempty"`
	CustomerCount int         `json:"customer_count"`
	Stops         []RouteStop `json:"stops,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// RouteStop assigns one customer to a route at a position in the drop
// sequence. CustomerName is cached from the remote master data at assignment
// time so route sheets print without a remote round trip.
type RouteStop struct {
	RouteID      int       `json:"route_id"`
	CustomerID   int       `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	DropOrder    int       `json:"drop_order"`
	AssignedAt   time.Time `json:"assigned_at"`
}
