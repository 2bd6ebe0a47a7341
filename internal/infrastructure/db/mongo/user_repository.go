package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobdesk/portal-api/internal/core/domain"
)

const (
	usersCollection      = "users"
	employersCollection  = "employer_profiles"
	applicantsCollection = "applicant_profiles"

	emailIndex    = "email_unique"
	userNameIndex = "user_name_unique"
)

// UserRepository persists users and their role profiles in MongoDB.
type UserRepository struct {
	users      *mongo.Collection
	employers  *mongo.Collection
	applicants *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users:      db.Collection(usersCollection),
		employers:  db.Collection(employersCollection),
		applicants: db.Collection(applicantsCollection),
	}
}

type mongoUser struct {
	ID           string `bson:"_id"`
	UserName     string `bson:"user_name"`
	Name         string `bson:"name"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	PhoneNumber  string `bson:"phone_number,omitempty"`
	CreatedAt    int64  `bson:"created_at"`
	UpdatedAt    int64  `bson:"updated_at"`
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByEmailOrUserName(ctx context.Context, email, userName string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"user_name": userName},
	}})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.users.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// CreateWithProfile inserts the user row and its role-profile row inside a
// single transaction: both commit or both roll back, so a user never exists
// without its profile. A duplicate-key failure on the unique indexes — the
// losing side of a concurrent registration race — maps to the matching
// conflict error.
func (r *UserRepository) CreateWithProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	created := *user
	created.ID = uuid.NewString()

	session, err := r.users.Database().Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.users.InsertOne(sc, fromDomain(&created)); err != nil {
			return nil, err
		}
		switch created.Role {
		case domain.RoleEmployer:
			doc := bson.M{"_id": created.ID, "updated_at": created.CreatedAt.Unix()}
			if _, err := r.employers.InsertOne(sc, doc); err != nil {
				return nil, err
			}
		case domain.RoleApplicant:
			doc := bson.M{"_id": created.ID, "created_at": created.CreatedAt.Unix()}
			if _, err := r.applicants.InsertOne(sc, doc); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: role must be applicant or employer", domain.ErrValidation)
		}
		return nil, nil
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyConflict(err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &created, nil
}

// duplicateKeyConflict inspects which unique index rejected the write. The
// index name is part of the server's E11000 message.
func duplicateKeyConflict(err error) error {
	if strings.Contains(err.Error(), userNameIndex) {
		return domain.ErrUserNameTaken
	}
	return domain.ErrEmailTaken
}

func fromDomain(u *domain.User) mongoUser {
	return mongoUser{
		ID:           u.ID,
		UserName:     u.UserName,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		PhoneNumber:  u.PhoneNumber,
		CreatedAt:    u.CreatedAt.Unix(),
		UpdatedAt:    u.UpdatedAt.Unix(),
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID,
		UserName:     mu.UserName,
		Name:         mu.Name,
		Email:        mu.Email,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		PhoneNumber:  mu.PhoneNumber,
		CreatedAt:    unixToTime(mu.CreatedAt),
		UpdatedAt:    unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
