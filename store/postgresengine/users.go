package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/bookstore/store"
	"github.com/AntonStoeckl/bookstore/store/postgresengine/internal/adapters"
)

const (
	operationRegisterUser  = "register_user"
	operationGetProfile    = "get_profile"
	operationUpdateProfile = "update_profile"
)

// RegisterUser stores a user together with its profile in one transaction.
// A taken username or user ID yields store.ErrDuplicateKey and stores nothing.
func (s Store) RegisterUser(ctx context.Context, user store.UserRecord, profile store.ProfileRecord) error {
	ctx, observer := s.startOperation(ctx, operationRegisterUser)

	err := s.withinTx(ctx, func(tx adapters.DBTx) error {
		insertUser := s.builder().
			Insert(s.table(tableUsers)).
			Rows(goqu.Record{
				colID:        user.ID.String(),
				colUsername:  user.Username,
				colCreatedAt: user.CreatedAt,
			}).
			Prepared(true)

		userQuery, userArgs, err := s.toSQL(insertUser)
		if err != nil {
			return err
		}

		if _, err = s.runExec(ctx, tx, operationRegisterUser, userQuery, userArgs); err != nil {
			return err
		}

		profileQuery, profileArgs, err := s.toSQL(s.buildInsertProfile(profile))
		if err != nil {
			return err
		}

		_, err = s.runExec(ctx, tx, operationRegisterUser, profileQuery, profileArgs)

		return err
	})

	return observer.finish(err, 1)
}

// GetProfile returns the profile of a user or store.ErrNotFound.
func (s Store) GetProfile(ctx context.Context, userID uuid.UUID) (store.ProfileRecord, error) {
	ctx, observer := s.startOperation(ctx, operationGetProfile)

	ds := s.builder().
		From(s.table(tableProfiles)).
		Select(colUserID, colLanguage, colDisplayName, colEmail, colPhoneNumber, colUpdatedAt).
		Where(goqu.C(colUserID).Eq(userID.String())).
		Prepared(true)

	sqlQuery, args, err := s.toSQL(ds)
	if err != nil {
		return store.ProfileRecord{}, observer.finish(err, 0)
	}

	rows, err := s.runQuery(ctx, s.db, operationGetProfile, sqlQuery, args)
	if err != nil {
		return store.ProfileRecord{}, observer.finish(err, 0)
	}

	profiles, err := scanAll(s, rows, scanProfile)
	if err == nil && len(profiles) == 0 {
		err = store.ErrNotFound
	}

	if err != nil {
		return store.ProfileRecord{}, observer.finish(err, 0)
	}

	return profiles[0], observer.finish(nil, 1)
}

// UpdateProfile overwrites the mutable fields of an existing profile.
func (s Store) UpdateProfile(ctx context.Context, profile store.ProfileRecord) error {
	ctx, observer := s.startOperation(ctx, operationUpdateProfile)

	update := s.builder().
		Update(s.table(tableProfiles)).
		Set(goqu.Record{
			colLanguage:    profile.Language,
			colDisplayName: profile.DisplayName,
			colEmail:       profile.Email,
			colPhoneNumber: profile.PhoneNumber,
			colUpdatedAt:   profile.UpdatedAt,
		}).
		Where(goqu.C(colUserID).Eq(profile.UserID.String())).
		Prepared(true)

	sqlQuery, args, err := s.toSQL(update)
	if err != nil {
		return observer.finish(err, 0)
	}

	rowsAffected, err := s.runExec(ctx, s.db, operationUpdateProfile, sqlQuery, args)
	if err == nil && rowsAffected == 0 {
		err = store.ErrNotFound
	}

	return observer.finish(err, int(rowsAffected))
}

func (s Store) buildInsertProfile(profile store.ProfileRecord) *goqu.InsertDataset {
	return s.builder().
		Insert(s.table(tableProfiles)).
		Rows(goqu.Record{
			colUserID:      profile.UserID.String(),
			colLanguage:    profile.Language,
			colDisplayName: profile.DisplayName,
			colEmail:       profile.Email,
			colPhoneNumber: profile.PhoneNumber,
			colUpdatedAt:   profile.UpdatedAt,
		}).
		Prepared(true)
}

func scanProfile(rows adapters.DBRows) (store.ProfileRecord, error) {
	var profile store.ProfileRecord

	err := rows.Scan(
		&profile.UserID,
		&profile.Language,
		&profile.DisplayName,
		&profile.Email,
		&profile.PhoneNumber,
		&profile.UpdatedAt,
	)

	return profile, err
}
