package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jobdesk/portal-api/internal/core/domain"
)

const sessionsCollection = "sessions"

// SessionRepository persists login sessions keyed by the token's storage
// hash. expires_at is stored as a BSON date so the TTL index can reap rows
// the resolution path never revisits.
type SessionRepository struct {
	sessions *mongo.Collection
	users    *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{
		sessions: db.Collection(sessionsCollection),
		users:    db.Collection(usersCollection),
	}
}

type mongoSession struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	UserAgent string    `bson:"user_agent,omitempty"`
	IP        string    `bson:"ip,omitempty"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt int64     `bson:"created_at"`
}

func (r *SessionRepository) Insert(ctx context.Context, session *domain.Session) error {
	doc := mongoSession{
		ID:        session.ID,
		UserID:    session.UserID,
		UserAgent: session.UserAgent,
		IP:        session.IP,
		ExpiresAt: session.ExpiresAt.UTC(),
		CreatedAt: session.CreatedAt.Unix(),
	}
	if _, err := r.sessions.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// FindWithUser resolves the session row and joins to the owning user. A
// session whose user has vanished counts as no session.
func (r *SessionRepository) FindWithUser(ctx context.Context, id string) (*domain.Session, *domain.User, error) {
	var ms mongoSession
	if err := r.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, domain.ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("find session: %w", err)
	}

	var mu mongoUser
	if err := r.users.FindOne(ctx, bson.M{"_id": ms.UserID}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, domain.ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("find session user: %w", err)
	}

	session := &domain.Session{
		ID:        ms.ID,
		UserID:    ms.UserID,
		UserAgent: ms.UserAgent,
		IP:        ms.IP,
		ExpiresAt: ms.ExpiresAt.UTC(),
		CreatedAt: unixToTime(ms.CreatedAt),
	}
	return session, mu.toDomain(), nil
}

func (r *SessionRepository) UpdateExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	res, err := r.sessions.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"expires_at": expiresAt.UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update session expiry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Delete removes the session row. Deleting an absent row is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.sessions.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
