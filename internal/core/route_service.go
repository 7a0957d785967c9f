package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RouteService manages delivery routes and customer-to-route assignment.
// Routes are the one piece of master data the remote order service does not
// own, so they live in the local database.
type RouteService interface {
	CreateRoute(ctx context.Context, name, driverName, vehicleNumber string) (*Route, error)
	// GetRoutes returns all routes with their stop counts, ordered by name.
	GetRoutes(ctx context.Context) ([]Route, error)
	// GetRoute returns one route including its stops in drop order.
	GetRoute(ctx context.Context, routeID int) (*Route, error)
	// AssignCustomer adds a customer to a route. dropOrder 0 means
	// "append after the current last stop". Re-assigning a customer already
	// on the route updates its drop order instead of failing.
	AssignCustomer(ctx context.Context, routeID, customerID int, customerName string, dropOrder int) (*RouteStop, error)
	RemoveCustomer(ctx context.Context, routeID, customerID int) error
}

type routeService struct {
	pool *pgxpool.Pool
}

// NewRouteService constructs a RouteService backed by PostgreSQL.
func NewRouteService(pool *pgxpool.Pool) RouteService {
	return &routeService{pool: pool}
}

func (s *routeService) CreateRoute(ctx context.Context, name, driverName, vehicleNumber string) (*Route, error) {
	if name == "" {
		return nil, fmt.Errorf("route name is required")
	}

	r := &Route{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO routes (name, driver_name, vehicle_number)
		VALUES ($1, $2, $3)
		RETURNING id, name, driver_name, vehicle_number, created_at`,
		name, driverName, vehicleNumber,
	).Scan(&r.ID, &r.Name, &r.DriverName, &r.VehicleNumber, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create route %q: %w", name, err)
	}
	return r, nil
}

func (s *routeService) GetRoutes(ctx context.Context) ([]Route, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.name, r.driver_name, r.vehicle_number, r.created_at,
		       COUNT(rc.customer_id)
		FROM routes r
		LEFT JOIN route_customers rc ON rc.route_id = r.id
		GROUP BY r.id
		ORDER BY r.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("get routes: %w", err)
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.Name, &r.DriverName, &r.VehicleNumber, &r.CreatedAt, &r.CustomerCount); err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

func (s *routeService) GetRoute(ctx context.Context, routeID int) (*Route, error) {
	r := &Route{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, driver_name, vehicle_number, created_at
		FROM routes WHERE id = $1`,
		routeID,
	).Scan(&r.ID, &r.Name, &r.DriverName, &r.VehicleNumber, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("route %d not found", routeID)
		}
		return nil, fmt.Errorf("fetch route %d: %w", routeID, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT route_id, customer_id, customer_name, drop_order, assigned_at
		FROM route_customers
		WHERE route_id = $1
		ORDER BY drop_order, customer_id`,
		routeID,
	)
	if err != nil {
		return nil, fmt.Errorf("query route %d stops: %w", routeID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var st RouteStop
		if err := rows.Scan(&st.RouteID, &st.CustomerID, &st.CustomerName, &st.DropOrder, &st.AssignedAt); err != nil {
			return nil, fmt.Errorf("scan route stop: %w", err)
		}
		r.Stops = append(r.Stops, st)
	}
	r.CustomerCount = len(r.Stops)
	return r, rows.Err()
}

func (s *routeService) AssignCustomer(ctx context.Context, routeID, customerID int, customerName string, dropOrder int) (*RouteStop, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin assign tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists int
	if err := tx.QueryRow(ctx, "SELECT id FROM routes WHERE id = $1 FOR UPDATE", routeID).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("route %d not found", routeID)
		}
		return nil, fmt.Errorf("fetch route %d: %w", routeID, err)
	}

	if dropOrder <= 0 {
		if err := tx.QueryRow(ctx,
			"SELECT COALESCE(MAX(drop_order), 0) + 1 FROM route_customers WHERE route_id = $1",
			routeID,
		).Scan(&dropOrder); err != nil {
			return nil, fmt.Errorf("next drop order for route %d: %w", routeID, err)
		}
	}

	st := &RouteStop{}
	err = tx.QueryRow(ctx, `
		INSERT INTO route_customers (route_id, customer_id, customer_name, drop_order)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (route_id, customer_id)
		DO UPDATE SET drop_order = EXCLUDED.drop_order, customer_name = EXCLUDED.customer_name
		RETURNING route_id, customer_id, customer_name, drop_order, assigned_at`,
		routeID, customerID, customerName, dropOrder,
	).Scan(&st.RouteID, &st.CustomerID, &st.CustomerName, &st.DropOrder, &st.AssignedAt)
	if err != nil {
		return nil, fmt.Errorf("assign customer %d to route %d: %w", customerID, routeID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit assign: %w", err)
	}
	return st, nil
}

func (s *routeService) RemoveCustomer(ctx context.Context, routeID, customerID int) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM route_customers WHERE route_id = $1 AND customer_id = $2",
		routeID, customerID,
	)
	if err != nil {
		return fmt.Errorf("remove customer %d from route %d: %w", customerID, routeID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %d is not on route %d", customerID, routeID)
	}
	return nil
}
