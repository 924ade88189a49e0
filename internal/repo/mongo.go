package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Skotchmaster/leave_management/internal/models"
)

const (
	usersCollection  = "users"
	leavesCollection = "leave_requests"
)

// MongoRepo stores users and leave requests as documents; comments are embedded in their request.
type MongoRepo struct {
	DB  *mongo.Database
	Now func() time.Time
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{DB: db}
}

func (r *MongoRepo) now() time.Time {
	if r.Now != nil {
		return r.Now().UTC()
	}
	return time.Now().UTC()
}

func (r *MongoRepo) users() *mongo.Collection  { return r.DB.Collection(usersCollection) }
func (r *MongoRepo) leaves() *mongo.Collection { return r.DB.Collection(leavesCollection) }

func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	if _, err := r.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	_, err := r.leaves().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	return r.DB.Client().Ping(ctx, nil)
}

func translateMongo(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	}
	return err
}

func (r *MongoRepo) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := r.users().InsertOne(ctx, u)
	return translateMongo(err)
}

func (r *MongoRepo) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.users().FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, translateMongo(err)
	}
	return &u, nil
}

func (r *MongoRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findUser(ctx, bson.M{"_id": id})
}

func (r *MongoRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, bson.M{"email": email})
}

func (r *MongoRepo) SetResetToken(ctx context.Context, id, token string, expiry time.Time) error {
	res, err := r.users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"reset_token":        token,
		"reset_token_expiry": expiry.UTC(),
		"updated_at":         r.now(),
	}})
	if err != nil {
		return translateMongo(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) ResetPassword(ctx context.Context, id, token, passwordHash string, now time.Time) error {
	filter := bson.M{
		"_id":                id,
		"reset_token":        token,
		"reset_token_expiry": bson.M{"$gt": now.UTC()},
	}
	update := bson.M{
		"$set":   bson.M{"password_hash": passwordHash, "updated_at": r.now()},
		"$unset": bson.M{"reset_token": "", "reset_token_expiry": ""},
	}
	res, err := r.users().UpdateOne(ctx, filter, update)
	if err != nil {
		return translateMongo(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) SetRole(ctx context.Context, email string, role models.Role) (*models.User, error) {
	var u models.User
	err := r.users().FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": role, "updated_at": r.now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return nil, translateMongo(err)
	}
	return &u, nil
}

func (r *MongoRepo) CreateLeave(ctx context.Context, lr *models.LeaveRequest) error {
	if lr.ID == "" {
		lr.ID = uuid.NewString()
	}
	if lr.Status == "" {
		lr.Status = models.StatusPending
	}
	normalizeLeave(lr)
	now := r.now()
	lr.CreatedAt, lr.UpdatedAt = now, now
	_, err := r.leaves().InsertOne(ctx, lr)
	return translateMongo(err)
}

func (r *MongoRepo) GetLeave(ctx context.Context, id string) (*models.LeaveRequest, error) {
	var lr models.LeaveRequest
	if err := r.leaves().FindOne(ctx, bson.M{"_id": id}).Decode(&lr); err != nil {
		return nil, translateMongo(err)
	}
	normalizeLeave(&lr)
	return &lr, nil
}

func (r *MongoRepo) listLeaves(ctx context.Context, filter bson.M) ([]models.LeaveRequest, error) {
	cur, err := r.leaves().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var list []models.LeaveRequest
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return normalizeLeaves(list), nil
}

func (r *MongoRepo) ListLeavesByUser(ctx context.Context, userID string) ([]models.LeaveRequest, error) {
	return r.listLeaves(ctx, bson.M{"user_id": userID})
}

func (r *MongoRepo) ListLeaves(ctx context.Context) ([]models.LeaveRequest, error) {
	return r.listLeaves(ctx, bson.M{})
}

func (r *MongoRepo) findAndUpdateLeave(ctx context.Context, id string, update bson.M) (*models.LeaveRequest, error) {
	var lr models.LeaveRequest
	err := r.leaves().FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&lr)
	if err != nil {
		return nil, translateMongo(err)
	}
	normalizeLeave(&lr)
	return &lr, nil
}

// UpdateLeaveStatus sets the status and pushes the comment in a single document update.
func (r *MongoRepo) UpdateLeaveStatus(ctx context.Context, id string, status models.LeaveStatus, c *models.Comment) (*models.LeaveRequest, error) {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": r.now()}}
	if c != nil {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = r.now()
		}
		update["$push"] = bson.M{"comments": c}
	}
	return r.findAndUpdateLeave(ctx, id, update)
}

func (r *MongoRepo) EditLeave(ctx context.Context, id string, patch models.LeavePatch) (*models.LeaveRequest, error) {
	if patch.Empty() {
		return r.GetLeave(ctx, id)
	}
	set := bson.M{"updated_at": r.now()}
	if patch.StartDate != nil {
		set["start_date"] = patch.StartDate.UTC()
	}
	if patch.EndDate != nil {
		set["end_date"] = patch.EndDate.UTC()
	}
	if patch.Reason != nil {
		set["reason"] = *patch.Reason
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.NumberOfDays != nil {
		set["number_of_days"] = *patch.NumberOfDays
	}
	if patch.Substitute != nil {
		set["substitute"] = *patch.Substitute
	}
	return r.findAndUpdateLeave(ctx, id, bson.M{"$set": set})
}

func (r *MongoRepo) deleteLeave(ctx context.Context, filter bson.M) error {
	res, err := r.leaves().DeleteOne(ctx, filter)
	if err != nil {
		return translateMongo(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepo) DeleteLeave(ctx context.Context, id string) error {
	return r.deleteLeave(ctx, bson.M{"_id": id})
}

func (r *MongoRepo) DeleteOwnLeave(ctx context.Context, id, userID string) error {
	return r.deleteLeave(ctx, bson.M{"_id": id, "user_id": userID})
}

func (r *MongoRepo) DeleteAllLeaves(ctx context.Context) (int64, error) {
	res, err := r.leaves().DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
