package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"donationpoints/internal/model"
	"donationpoints/internal/repository"
)

const pointColumns = `id, name, description, address, postal_code, city, province, autonomous_community,
		latitude, longitude, google_maps_url, phone, email, website, schedule, accepted_items,
		is_active, last_verification, verified_at, created_at, updated_at`

// DonationPointPostgres is a PostgreSQL implementation of repository.DonationPointRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DonationPointPostgres struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

// NewDonationPointPostgres creates a new DonationPointPostgres repository.
func NewDonationPointPostgres(db *sql.DB) *DonationPointPostgres {
	return &DonationPointPostgres{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

var _ repository.DonationPointRepository = (*DonationPointPostgres)(nil)

// Create inserts a new donation point row and returns the stored record.
func (r *DonationPointPostgres) Create(ctx context.Context, p *model.DonationPoint) (*model.DonationPoint, error) {
	const q = `
		INSERT INTO donation_points (
			id, name, description, address, postal_code, city, province, autonomous_community,
			latitude, longitude, google_maps_url, phone, email, website, schedule, accepted_items,
			is_active, last_verification, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING ` + pointColumns

	now := r.now()
	row := r.db.QueryRowContext(ctx, q,
		r.newID(),
		p.Name,
		p.Description,
		p.Address,
		p.PostalCode,
		p.City,
		p.Province,
		p.AutonomousCommunity,
		p.Latitude,
		p.Longitude,
		p.GoogleMapsURL,
		p.Phone,
		p.Email,
		p.Website,
		p.Schedule,
		p.ItemStrings(),
		p.IsActive,
		now,
		now,
		now,
	)
	out, err := scanPoint(pgtype.NewMap(), row)
	if err != nil {
		return nil, fmt.Errorf("insert donation point: %w", err)
	}
	return out, nil
}

// FindMany lists active donation points matching the filter, newest first.
func (r *DonationPointPostgres) FindMany(ctx context.Context, f model.ListFilter) ([]model.DonationPoint, error) {
	where, args := buildListWhere(f)
	q := `SELECT ` + pointColumns + `
		FROM donation_points
		WHERE ` + where + `
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list donation points: %w", err)
	}
	defer rows.Close()

	// pgtype.Map caches scan plans and is not safe for concurrent use; one per query.
	types := pgtype.NewMap()
	items := make([]model.DonationPoint, 0)
	for rows.Next() {
		p, err := scanPoint(types, rows)
		if err != nil {
			return nil, fmt.Errorf("scan donation point: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list donation points: %w", err)
	}
	return items, nil
}

// FindNearby returns the first point inside b regardless of is_active, or nil when there is none.
func (r *DonationPointPostgres) FindNearby(ctx context.Context, b model.Bounds) (*model.DonationPoint, error) {
	const q = `
		SELECT ` + pointColumns + `
		FROM donation_points
		WHERE latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, q, b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
	p, err := scanPoint(pgtype.NewMap(), row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find nearby donation point: %w", err)
	}
	return p, nil
}

// buildListWhere composes the conjunction of filters; is_active is always required.
func buildListWhere(f model.ListFilter) (string, []any) {
	conds := []string{"is_active = TRUE"}
	args := make([]any, 0, 4)

	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.AutonomousCommunity != "" {
		add("autonomous_community = $%d", f.AutonomousCommunity)
	}
	if f.Province != "" {
		add("province = $%d", f.Province)
	}
	if f.City != "" {
		add("city = $%d", f.City)
	}
	if len(f.AcceptedItems) > 0 {
		items := make([]string, len(f.AcceptedItems))
		for i, it := range f.AcceptedItems {
			items[i] = string(it)
		}
		add("accepted_items && $%d", items)
	}
	return strings.Join(conds, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

// scanPoint reads one row in pointColumns order. accepted_items is decoded from its text array form.
func scanPoint(types *pgtype.Map, s scanner) (*model.DonationPoint, error) {
	var (
		p     model.DonationPoint
		items []string
	)
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Address,
		&p.PostalCode,
		&p.City,
		&p.Province,
		&p.AutonomousCommunity,
		&p.Latitude,
		&p.Longitude,
		&p.GoogleMapsURL,
		&p.Phone,
		&p.Email,
		&p.Website,
		&p.Schedule,
		types.SQLScanner(&items),
		&p.IsActive,
		&p.LastVerification,
		&p.VerifiedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.AcceptedItems = make([]model.AcceptedItem, len(items))
	for i, it := range items {
		p.AcceptedItems[i] = model.AcceptedItem(it)
	}
	return &p, nil
}
