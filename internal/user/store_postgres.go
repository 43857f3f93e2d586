// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/medora/internal/platform/dberr"
	"github.com/taibuivan/medora/internal/platform/postgres"
	"github.com/taibuivan/medora/internal/platform/sec"
)

const userColumns = `id, first_name, last_name, email, phone, password_hash, role, profile_image,
		street, street2, city, state, postal_code, latitude, longitude, additional_info, created_at, updated_at`

const (
	queryInsertUser = `
		INSERT INTO users (id, first_name, last_name, email, phone, password_hash, role, profile_image,
		                   street, street2, city, state, postal_code, latitude, longitude, additional_info)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at`

	queryUserByID    = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	queryUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	queryListUsers   = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	queryUpdateUser = `
		UPDATE users
		SET first_name = $2, last_name = $3, phone = $4, profile_image = $5,
		    street = $6, street2 = $7, city = $8, state = $9, postal_code = $10,
		    latitude = $11, longitude = $12, additional_info = $13, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Queryer
}

// NewPostgresRepository constructs a PostgreSQL backed user store.
func NewPostgresRepository(db postgres.Queryer) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) queryer(ctx context.Context) postgres.Queryer {
	return postgres.QueryerFromContext(ctx, repository.db)
}

func (repository *PostgresRepository) Create(ctx context.Context, user *User) error {
	latitude, longitude := coordinates(user.Location)
	err := repository.queryer(ctx).QueryRow(ctx, queryInsertUser,
		user.ID, user.FirstName, user.LastName, user.Email, user.Phone, user.PasswordHash,
		string(user.Role), user.ProfileImage,
		user.Address.Street, user.Address.Street2, user.Address.City, user.Address.State, user.Address.PostalCode,
		latitude, longitude, user.AdditionalInfo,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresRepository) Update(ctx context.Context, user *User) error {
	latitude, longitude := coordinates(user.Location)
	err := repository.queryer(ctx).QueryRow(ctx, queryUpdateUser,
		user.ID, user.FirstName, user.LastName, user.Phone, user.ProfileImage,
		user.Address.Street, user.Address.Street2, user.Address.City, user.Address.State, user.Address.PostalCode,
		latitude, longitude, user.AdditionalInfo,
	).Scan(&user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return dberr.Wrap(err, "update_user")
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*User, error) {
	return scanUser(repository.queryer(ctx).QueryRow(ctx, queryUserByID, id))
}

func (repository *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return scanUser(repository.queryer(ctx).QueryRow(ctx, queryUserByEmail, email))
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*User, error) {
	rows, err := repository.queryer(ctx).Query(ctx, queryListUsers)
	if err != nil {
		return nil, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_users")
	}
	return users, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var (
		user      User
		role      string
		latitude  *float64
		longitude *float64
	)
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Phone, &user.PasswordHash, &role, &user.ProfileImage,
		&user.Address.Street, &user.Address.Street2, &user.Address.City, &user.Address.State, &user.Address.PostalCode,
		&latitude, &longitude, &user.AdditionalInfo, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, dberr.Wrap(err, "scan_user")
	}

	user.Role = sec.Role(role)
	if latitude != nil && longitude != nil {
		user.Location = &Location{Latitude: *latitude, Longitude: *longitude}
	}
	return &user, nil
}

// coordinates maps an optional location onto the two nullable columns.
func coordinates(location *Location) (*float64, *float64) {
	if location == nil {
		return nil, nil
	}
	return &location.Latitude, &location.Longitude
}
