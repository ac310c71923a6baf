package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskwell/todo-system/internal/core/domain"
	"github.com/taskwell/todo-system/internal/core/ports"
)

const tasksCollection = "tasks"

// TaskRepository implements ports.TaskRepository using MongoDB. Every query
// includes the owner in the match, so foreign tasks are indistinguishable
// from absent ones.
type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID `bson:"owner_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Completed   bool               `bson:"completed"`
	Deleted     bool               `bson:"deleted"`
	Priority    string             `bson:"priority"`
	DueDate     *time.Time         `bson:"due_date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mt mongoTask) toDomain() *domain.Task {
	t := &domain.Task{
		ID:          mt.ID.Hex(),
		OwnerID:     mt.OwnerID.Hex(),
		Title:       mt.Title,
		Description: mt.Description,
		Completed:   mt.Completed,
		Deleted:     mt.Deleted,
		Priority:    domain.Priority(mt.Priority),
		CreatedAt:   mt.CreatedAt.UTC(),
		UpdatedAt:   mt.UpdatedAt.UTC(),
	}
	if mt.DueDate != nil {
		due := mt.DueDate.UTC()
		t.DueDate = &due
	}
	return t
}

// taskMatch builds the base filter scoping a query to one owner's task.
func taskMatch(ownerID, taskID string) (bson.M, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	return bson.M{"_id": id, "owner_id": owner}, nil
}

// List returns the owner's tasks for the given view, newest first.
// The "all" view excludes the trash; "deleted" ignores completion.
func (r *TaskRepository) List(ctx context.Context, ownerID string, filter domain.Filter) ([]*domain.Task, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	query := bson.M{"owner_id": owner}
	switch filter {
	case domain.FilterActive:
		query["completed"] = false
		query["deleted"] = false
	case domain.FilterCompleted:
		query["completed"] = true
		query["deleted"] = false
	case domain.FilterDeleted:
		query["deleted"] = true
	default:
		query["deleted"] = false
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, query,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := make([]*domain.Task, 0)
	for cursor.Next(ctx) {
		var mt mongoTask
		if err := cursor.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, mt.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	owner, err := primitive.ObjectIDFromHex(task.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("create task: invalid owner id %q", task.OwnerID)
	}

	doc := mongoTask{
		OwnerID:     owner,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Deleted:     task.Deleted,
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt.UTC(),
		UpdatedAt:   task.UpdatedAt.UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// Update applies the non-nil fields of upd in a single findOneAndUpdate so
// the returned document is exactly what was persisted.
func (r *TaskRepository) Update(ctx context.Context, ownerID, taskID string, upd ports.TaskUpdate, now time.Time) (*domain.Task, error) {
	match, err := taskMatch(ownerID, taskID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": now.UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Completed != nil {
		set["completed"] = *upd.Completed
	}
	if upd.Priority != nil {
		set["priority"] = string(*upd.Priority)
	}
	if upd.DueDate != nil {
		set["due_date"] = upd.DueDate.UTC()
	}

	return r.findOneAndUpdate(ctx, match, bson.M{"$set": set})
}

// SetDeleted flips the soft-delete flag. Restoring (deleted=false) only
// matches tasks currently in the trash.
func (r *TaskRepository) SetDeleted(ctx context.Context, ownerID, taskID string, deleted bool, now time.Time) (*domain.Task, error) {
	match, err := taskMatch(ownerID, taskID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		match["deleted"] = true
	}

	update := bson.M{"$set": bson.M{"deleted": deleted, "updated_at": now.UTC()}}
	return r.findOneAndUpdate(ctx, match, update)
}

func (r *TaskRepository) HardDelete(ctx context.Context, ownerID, taskID string) error {
	match, err := taskMatch(ownerID, taskID)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, match)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) findOneAndUpdate(ctx context.Context, match, update bson.M) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTask
	err := r.coll.FindOneAndUpdate(ctx, match, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return mt.toDomain(), nil
}

// EnsureIndexes creates the owner/lifecycle indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "deleted", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
