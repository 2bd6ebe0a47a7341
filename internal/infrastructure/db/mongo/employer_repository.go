package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobdesk/portal-api/internal/core/domain"
)

// EmployerRepository persists the employer profile extension rows.
type EmployerRepository struct {
	coll *mongo.Collection
}

func NewEmployerRepository(db *mongo.Database) *EmployerRepository {
	return &EmployerRepository{coll: db.Collection(employersCollection)}
}

type mongoEmployerProfile struct {
	ID                  string `bson:"_id"`
	Name                string `bson:"name,omitempty"`
	Description         string `bson:"description,omitempty"`
	OrganizationType    string `bson:"organization_type,omitempty"`
	TeamSize            string `bson:"team_size,omitempty"`
	Location            string `bson:"location,omitempty"`
	WebsiteURL          string `bson:"website_url,omitempty"`
	YearOfEstablishment *int   `bson:"year_of_establishment,omitempty"`
	BannerImageURL      string `bson:"banner_image_url,omitempty"`
	UpdatedAt           int64  `bson:"updated_at"`
}

func (r *EmployerRepository) FindByID(ctx context.Context, id string) (*domain.EmployerProfile, error) {
	var mp mongoEmployerProfile
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find employer profile: %w", err)
	}

	return &domain.EmployerProfile{
		ID:                  mp.ID,
		Name:                mp.Name,
		Description:         mp.Description,
		OrganizationType:    mp.OrganizationType,
		TeamSize:            mp.TeamSize,
		Location:            mp.Location,
		WebsiteURL:          mp.WebsiteURL,
		YearOfEstablishment: mp.YearOfEstablishment,
		BannerImageURL:      mp.BannerImageURL,
		UpdatedAt:           unixToTime(mp.UpdatedAt),
	}, nil
}

func (r *EmployerRepository) Update(ctx context.Context, profile *domain.EmployerProfile) error {
	update := bson.M{"$set": bson.M{
		"name":                  profile.Name,
		"description":           profile.Description,
		"organization_type":     profile.OrganizationType,
		"team_size":             profile.TeamSize,
		"location":              profile.Location,
		"website_url":           profile.WebsiteURL,
		"year_of_establishment": profile.YearOfEstablishment,
		"banner_image_url":      profile.BannerImageURL,
		"updated_at":            profile.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": profile.ID}, update)
	if err != nil {
		return fmt.Errorf("update employer profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
