// Package database is the Oracle-backed comp source. It supplies subject and
// candidate records to the engine; the engine itself never touches the
// database.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/PowerfulRI/realestate-arv-calculator/internal/config"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/geo"
	"github.com/PowerfulRI/realestate-arv-calculator/internal/types"

	_ "github.com/sijms/go-ora/v2"
)

// dsn builds a properly encoded connection string for Oracle Autonomous
// Database.
func dsn(cfg config.Database) string {
	if cfg.WalletLocation != "" {
		// Wallet-based mTLS connection
		return fmt.Sprintf(
			"oracle://%s:%s@%s:%s/%s?ssl=true&wallet_location=%s",
			cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Service, url.PathEscape(cfg.WalletLocation))
	}

	return (&url.URL{
		Scheme:   "oracle",
		User:     url.UserPassword(cfg.Username, cfg.Password), // escapes automatically
		Host:     cfg.Host + ":" + cfg.Port,
		Path:     "/" + cfg.Service,
		RawQuery: "ssl=true", // ADB requires TCPS on 1522
	}).String()
}

// Database holds the connection and configuration.
type Database struct {
	db  *sql.DB
	cfg config.Database
}

// New opens and pings the sales database.
func New(cfg config.Database) (*Database, error) {
	db, err := sql.Open("oracle", dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{db: db, cfg: cfg}, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

const propertyColumns = `
	PROPERTY_ID, ADDRESS, CITY, STATE, ZIP_CODE, LATITUDE, LONGITUDE,
	BEDROOMS, BATHROOMS, SQUARE_FOOTAGE, LOT_SIZE, YEAR_BUILT, CONDITION`

// SubjectByAddress looks up one property record by normalized address.
// Returns (nil, nil) when no record matches.
func (d *Database) SubjectByAddress(ctx context.Context, address string) (*types.Property, error) {
	query := fmt.Sprintf(`
		SELECT %s, SALE_PRICE, SALE_DATE
		FROM %s
		WHERE UPPER(REPLACE(REPLACE(ADDRESS, ',', ''), '  ', ' ')) = :1`,
		propertyColumns, d.cfg.SalesTable)

	var p types.Property
	var salePrice sql.NullFloat64
	var saleDate sql.NullTime
	err := d.db.QueryRowContext(ctx, query, types.NormalizeAddress(address)).Scan(
		&p.ID, &p.Address, &p.City, &p.State, &p.ZipCode, &p.Latitude, &p.Longitude,
		&p.Bedrooms, &p.Bathrooms, &p.SquareFootage, &p.LotSize, &p.YearBuilt, &p.Condition,
		&salePrice, &saleDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // property not found
		}
		return nil, fmt.Errorf("failed to query property: %w", err)
	}
	p.LastSalePrice = salePrice.Float64
	if saleDate.Valid {
		p.LastSaleDate = saleDate.Time
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// CandidatesNear returns sale records inside the bounding box of the search
// radius with a sale date on or after since. The exact haversine cut happens
// in the selector; the box only trims the scan.
func (d *Database) CandidatesNear(ctx context.Context, lat, lon, radiusMiles float64, since time.Time) ([]types.ComparableSale, error) {
	minLat, minLon, maxLat, maxLon, err := geo.BoundingBox(lat, lon, radiusMiles)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s, SALE_PRICE, SALE_DATE
		FROM %s
		WHERE LATITUDE BETWEEN :1 AND :2
		  AND LONGITUDE BETWEEN :3 AND :4
		  AND SALE_DATE >= :5
		  AND SALE_PRICE > 0
		  AND SQUARE_FOOTAGE > 0`,
		propertyColumns, d.cfg.SalesTable)

	rows, err := d.db.QueryContext(ctx, query, minLat, maxLat, minLon, maxLon, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate sales: %w", err)
	}
	defer rows.Close()

	var candidates []types.ComparableSale
	for rows.Next() {
		var c types.ComparableSale
		err := rows.Scan(
			&c.ID, &c.Address, &c.City, &c.State, &c.ZipCode, &c.Latitude, &c.Longitude,
			&c.Bedrooms, &c.Bathrooms, &c.SquareFootage, &c.LotSize, &c.YearBuilt, &c.Condition,
			&c.SalePrice, &c.SaleDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate sale: %w", err)
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
