package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/MASTER-2222/linkedin/core/domain"
	"github.com/MASTER-2222/linkedin/core/port/out"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionUsers = "users"

// UserAdapter implements out.UserRepository using MongoDB.
type UserAdapter struct {
	collection *mongo.Collection
}

var _ out.UserRepository = (*UserAdapter)(nil)

func NewUserAdapter(db *mongo.Database) *UserAdapter {
	return &UserAdapter{collection: db.Collection(collectionUsers)}
}

func (a *UserAdapter) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
	}

	_, err := a.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

type userDocument struct {
	ID               string           `bson:"id"`
	Email            string           `bson:"email"`
	Password         string           `bson:"password"`
	FirstName        string           `bson:"first_name"`
	LastName         string           `bson:"last_name"`
	Role             string           `bson:"role"`
	Headline         *string          `bson:"headline"`
	Summary          *string          `bson:"summary"`
	Location         *string          `bson:"location"`
	Industry         *string          `bson:"industry"`
	ExperienceYears  *int             `bson:"experience_years"`
	Skills           []string         `bson:"skills"`
	Education        []map[string]any `bson:"education"`
	Experience       []map[string]any `bson:"experience"`
	ProfilePicture   *string          `bson:"profile_picture"`
	ConnectionsCount int              `bson:"connections_count"`
	CreatedAt        time.Time        `bson:"created_at"`
	UpdatedAt        time.Time        `bson:"updated_at"`
}

func toUserDocument(u *domain.User) *userDocument {
	return &userDocument{
		ID:               u.ID,
		Email:            u.Email,
		Password:         u.PasswordHash,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Role:             string(u.Role),
		Headline:         u.Headline,
		Summary:          u.Summary,
		Location:         u.Location,
		Industry:         u.Industry,
		ExperienceYears:  u.ExperienceYears,
		Skills:           nonNil(u.Skills),
		Education:        nonNil(u.Education),
		Experience:       nonNil(u.Experience),
		ProfilePicture:   u.ProfilePicture,
		ConnectionsCount: u.ConnectionsCount,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func (d *userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:               d.ID,
		Email:            d.Email,
		PasswordHash:     d.Password,
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		Role:             domain.Role(d.Role),
		Headline:         d.Headline,
		Summary:          d.Summary,
		Location:         d.Location,
		Industry:         d.Industry,
		ExperienceYears:  d.ExperienceYears,
		Skills:           nonNil(d.Skills),
		Education:        nonNil(d.Education),
		Experience:       nonNil(d.Experience),
		ProfilePicture:   d.ProfilePicture,
		ConnectionsCount: d.ConnectionsCount,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (a *UserAdapter) Create(ctx context.Context, user *domain.User) error {
	_, err := a.collection.InsertOne(ctx, toUserDocument(user))
	return translate(err, "insert user")
}

func (a *UserAdapter) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	if err := a.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err, "get user")
	}
	return doc.toDomain(), nil
}

func (a *UserAdapter) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return a.findOne(ctx, bson.M{"id": id})
}

func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return a.findOne(ctx, bson.M{"email": email})
}

// userUpdateSet builds the $set document from the non-nil fields.
func userUpdateSet(update *domain.UserUpdate, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if update.FirstName != nil {
		set["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		set["last_name"] = *update.LastName
	}
	if update.Headline != nil {
		set["headline"] = *update.Headline
	}
	if update.Summary != nil {
		set["summary"] = *update.Summary
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}
	if update.Industry != nil {
		set["industry"] = *update.Industry
	}
	if update.ExperienceYears != nil {
		set["experience_years"] = *update.ExperienceYears
	}
	if update.Skills != nil {
		set["skills"] = update.Skills
	}
	if update.Education != nil {
		set["education"] = update.Education
	}
	if update.Experience != nil {
		set["experience"] = update.Experience
	}
	return set
}

func (a *UserAdapter) Update(ctx context.Context, id string, update *domain.UserUpdate, now time.Time) error {
	result, err := a.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": userUpdateSet(update, now)})
	if err != nil {
		return translate(err, "update user")
	}
	if result.MatchedCount == 0 {
		return out.ErrNotFound
	}
	return nil
}

func (a *UserAdapter) Search(ctx context.Context, filter *domain.UserFilter) ([]*domain.User, error) {
	findOpts := options.Find().SetSkip(int64(filter.Skip))
	if filter.Limit > 0 {
		findOpts.SetLimit(int64(filter.Limit))
	}
	return a.find(ctx, userSearchFilter(filter), findOpts)
}

func (a *UserAdapter) ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	return a.find(ctx, bson.M{"id": bson.M{"$in": ids}})
}

func (a *UserAdapter) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*domain.User, error) {
	cursor, err := a.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := []*domain.User{}
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	return users, cursor.Err()
}

func (a *UserAdapter) IncrementConnections(ctx context.Context, id string, delta int) error {
	_, err := a.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"connections_count": delta}})
	return translate(err, "increment connections_count")
}

func (a *UserAdapter) Count(ctx context.Context) (int64, error) {
	n, err := a.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
