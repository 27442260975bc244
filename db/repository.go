package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CredentialRepository defines decoupled operations for credential
// persistence. Its method set matches the auth package's store contract, so
// a repository can back a token manager directly. Get returns the empty
// string for a slot with no value.
type CredentialRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// gormCredentialRepo is a GORM-backed implementation of
// CredentialRepository. Use constructor NewCredentialRepository to obtain
// an instance.
type gormCredentialRepo struct{ db *gorm.DB }

// NewCredentialRepository creates a CredentialRepository. Accepts *gorm.DB
// to avoid global access.
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &gormCredentialRepo{db: db}
}

func (r *gormCredentialRepo) Get(ctx context.Context, key string) (string, error) {
	if r.db == nil {
		return "", fmt.Errorf("repository not initialized")
	}
	var cred Credential
	err := r.db.WithContext(ctx).First(&cred, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return cred.Value, nil
}

func (r *gormCredentialRepo) Set(ctx context.Context, key, value string) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Credential{Key: key, Value: value}).Error
}

func (r *gormCredentialRepo) Delete(ctx context.Context, keys ...string) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&Credential{}, "key IN ?", keys).Error
}
