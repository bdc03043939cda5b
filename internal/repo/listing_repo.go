package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/mstanchev/vaxtrack/internal/model"
	"github.com/mstanchev/vaxtrack/internal/pkg/dbutil"
)

type ListingRepo struct {
	db *sql.DB
}

func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{db: db}
}

func (r *ListingRepo) Create(ctx context.Context, listing *model.Listing) error {
	data := map[string]interface{}{
		"v_id":    listing.ID,
		"status":  listing.Quantity,
		"loc1":    listing.Origin,
		"loc2":    listing.Destination,
		"type":    listing.VaccineType,
		"user_id": listing.UserID,
		"ctime":   listing.Ctime,
	}
	sqlStr, args, err := builder.BuildInsert("vaccines", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// ListAll returns every listing annotated with the owner's display
// name. A non-empty search filters on origin, destination, type or
// owner name, case-insensitive substring. Rows come back in insertion
// order (ctime, then id as tiebreak); the order is a choice of this
// implementation, not an inherited contract.
func (r *ListingRepo) ListAll(ctx context.Context, search string) ([]model.ListingWithOwner, error) {
	sqlStr := `SELECT v.v_id, v.status, v.loc1, v.loc2, v.type, v.user_id, v.ctime, u.name
		FROM vaccines v
		JOIN userinfo u ON u.user_id = v.user_id`
	var args []interface{}
	if search != "" {
		sqlStr += ` WHERE v.loc1 ILIKE ? OR v.loc2 ILIKE ? OR v.type ILIKE ? OR u.name ILIKE ?`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}
	sqlStr += ` ORDER BY v.ctime, v.v_id`
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.ListingWithOwner
	for rows.Next() {
		var item model.ListingWithOwner
		if err := rows.Scan(&item.ID, &item.Quantity, &item.Origin, &item.Destination, &item.VaccineType, &item.UserID, &item.Ctime, &item.OwnerName); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// ListByOwner returns only the given user's listings. Search matches
// origin, destination and type; owner name is excluded since the result
// is already scoped to one owner.
func (r *ListingRepo) ListByOwner(ctx context.Context, userID, search string) ([]model.Listing, error) {
	sqlStr := `SELECT v_id, status, loc1, loc2, type, user_id, ctime
		FROM vaccines
		WHERE user_id = ?`
	args := []interface{}{userID}
	if search != "" {
		sqlStr += ` AND (loc1 ILIKE ? OR loc2 ILIKE ? OR type ILIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	sqlStr += ` ORDER BY ctime, v_id`
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []model.Listing
	for rows.Next() {
		var item model.Listing
		if err := rows.Scan(&item.ID, &item.Quantity, &item.Origin, &item.Destination, &item.VaccineType, &item.UserID, &item.Ctime); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
