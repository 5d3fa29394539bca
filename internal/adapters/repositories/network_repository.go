package repositories

import (
	"context"
	"database/sql"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/ports"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrNetworkNotSeeded is returned by LoadNetwork when no network is stored.
var ErrNetworkNotSeeded = errors.New("network_settings is empty (seed the database first)")

// Dialect selects the bind parameter syntax of the target database.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// rebind rewrites '?' placeholders into the dialect's syntax.
func (d Dialect) rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQL-backed implementation of the NetworkRepository port.
type SQLNetworkRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSqliteNetworkRepository(db *sql.DB) *SQLNetworkRepository {
	return &SQLNetworkRepository{DB: db, Dialect: DialectSQLite}
}

func NewPostgresNetworkRepository(db *sql.DB) *SQLNetworkRepository {
	return &SQLNetworkRepository{DB: db, Dialect: DialectPostgres}
}

// Load the stored network configuration.
func (s *SQLNetworkRepository) LoadNetwork(ctx context.Context) (domain.NetworkConfig, error) {
	if s.DB == nil {
		return domain.NetworkConfig{}, errors.New("network repository: DB is nil")
	}

	cfg := domain.NetworkConfig{
		Warehouses: make(map[string][]string),
		Distances:  make(map[domain.Edge]float64),
	}

	settingsQuery := `
	SELECT
		hub,
		unit_weight,
		cost_rate
	FROM network_settings
	WHERE id = 1;
	`
	err := s.DB.QueryRowContext(ctx, settingsQuery).Scan(&cfg.Hub, &cfg.UnitWeight, &cfg.CostRate)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NetworkConfig{}, fmt.Errorf("load network: %w", ErrNetworkNotSeeded)
	}
	if err != nil {
		return domain.NetworkConfig{}, fmt.Errorf("load network: query network_settings: %w", err)
	}

	productsQuery := `
	SELECT
		warehouse,
		product
	FROM warehouse_products
	ORDER BY warehouse, product;
	`
	rows, err := s.DB.QueryContext(ctx, productsQuery)
	if err != nil {
		return domain.NetworkConfig{}, fmt.Errorf("load network: query warehouse_products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var warehouse, product string
		if err := rows.Scan(&warehouse, &product); err != nil {
			return domain.NetworkConfig{}, fmt.Errorf("load network: scan warehouse_products: %w", err)
		}
		cfg.Warehouses[warehouse] = append(cfg.Warehouses[warehouse], product)
	}
	if err := rows.Err(); err != nil {
		return domain.NetworkConfig{}, fmt.Errorf("load network: warehouse_products iteration: %w", err)
	}

	distancesQuery := `
	SELECT
		origin,
		destination,
		distance
	FROM distances
	ORDER BY origin, destination;
	`
	drows, err := s.DB.QueryContext(ctx, distancesQuery)
	if err != nil {
		return domain.NetworkConfig{}, fmt.Errorf("load network: query distances: %w", err)
	}
	defer drows.Close()

	for drows.Next() {
		var e domain.Edge
		var d float64
		if err := drows.Scan(&e.Origin, &e.Destination, &d); err != nil {
			return domain.NetworkConfig{}, fmt.Errorf("load network: scan distances: %w", err)
		}
		cfg.Distances[e] = d
	}
	if err := drows.Err(); err != nil {
		return domain.NetworkConfig{}, fmt.Errorf("load network: distances iteration: %w", err)
	}

	return cfg, nil
}

// Replace the stored network with cfg in a single transaction.
func (s *SQLNetworkRepository) SaveNetwork(ctx context.Context, cfg domain.NetworkConfig) error {
	if s.DB == nil {
		return errors.New("network repository: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save network: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"distances", "warehouse_products", "network_settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+";"); err != nil {
			return fmt.Errorf("save network: clear %s: %w", table, err)
		}
	}

	settingsQuery := s.Dialect.rebind(`
	INSERT INTO network_settings (id, hub, unit_weight, cost_rate)
	VALUES (1, ?, ?, ?);
	`)
	if _, err := tx.ExecContext(ctx, settingsQuery, cfg.Hub, cfg.UnitWeight, cfg.CostRate); err != nil {
		return fmt.Errorf("save network: insert settings: %w", err)
	}

	productStmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(`
	INSERT INTO warehouse_products (product, warehouse)
	VALUES (?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save network: prepare product insert: %w", err)
	}
	defer productStmt.Close()

	warehouses := make([]string, 0, len(cfg.Warehouses))
	for w := range cfg.Warehouses {
		warehouses = append(warehouses, w)
	}
	slices.Sort(warehouses)

	for _, w := range warehouses {
		products := slices.Clone(cfg.Warehouses[w])
		slices.Sort(products)
		for _, p := range products {
			if _, err := productStmt.ExecContext(ctx, p, w); err != nil {
				return fmt.Errorf("save network: insert product=%q warehouse=%q: %w", p, w, err)
			}
		}
	}

	distanceStmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(`
	INSERT INTO distances (origin, destination, distance)
	VALUES (?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save network: prepare distance insert: %w", err)
	}
	defer distanceStmt.Close()

	edges := make([]domain.Edge, 0, len(cfg.Distances))
	for e := range cfg.Distances {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(a, b domain.Edge) int {
		if c := strings.Compare(a.Origin, b.Origin); c != 0 {
			return c
		}
		return strings.Compare(a.Destination, b.Destination)
	})

	for _, e := range edges {
		if _, err := distanceStmt.ExecContext(ctx, e.Origin, e.Destination, cfg.Distances[e]); err != nil {
			return fmt.Errorf("save network: insert distance %s: %w", e, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save network: commit tx: %w", err)
	}

	return nil
}

// Load a seed file and store it, replacing the current network.
func SeedFromFile(ctx context.Context, repo ports.NetworkRepository, path string) error {
	cfg, err := LoadNetworkSeed(path)
	if err != nil {
		return fmt.Errorf("seed network: %w", err)
	}

	// Reject a seed the service could not start with.
	if _, err := domain.NewNetwork(cfg); err != nil {
		return fmt.Errorf("seed network: %w", err)
	}

	if err := repo.SaveNetwork(ctx, cfg); err != nil {
		return fmt.Errorf("seed network: %w", err)
	}
	return nil
}

// Seed from path only when no network is stored yet. Reports whether it seeded.
func SeedIfEmpty(ctx context.Context, repo ports.NetworkRepository, path string) (bool, error) {
	_, err := repo.LoadNetwork(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNetworkNotSeeded) {
		return false, fmt.Errorf("seed network: %w", err)
	}

	if err := SeedFromFile(ctx, repo, path); err != nil {
		return false, err
	}
	return true, nil
}
