package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/users-api/internal/domain/entity"
	"github.com/jhoicas/users-api/internal/domain/repository"
	"github.com/jhoicas/users-api/pkg/paginate"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

type projectDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Milestones int                `bson:"milestones"`
	Owner      primitive.ObjectID `bson:"owner"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

// ProjectRepo implementación de ProjectRepository sobre MongoDB; "owner" se puebla desde users.
type ProjectRepo struct {
	coll *mongo.Collection
	docs *Collection[bson.M]
}

// NewProjectRepository construye el adaptador con la relación owner -> users._id registrada.
func NewProjectRepository(db *mongo.Database) *ProjectRepo {
	coll := db.Collection(ProjectsCollection)
	users := NewCollection[bson.M](db.Collection(UsersCollection))
	docs := NewCollection[bson.M](coll).WithRelation("owner", Relation{LocalField: "owner", Target: users})
	return &ProjectRepo{coll: coll, docs: docs}
}

// Create persiste un proyecto y asigna su ID.
func (r *ProjectRepo) Create(ctx context.Context, project *entity.Project) error {
	owner, err := parseID(project.Owner)
	if err != nil {
		return err
	}
	doc := projectDocument{
		ID:         primitive.NewObjectID(),
		Name:       project.Name,
		Milestones: project.Milestones,
		Owner:      owner,
		CreatedAt:  project.CreatedAt,
		UpdatedAt:  project.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	project.ID = doc.ID.Hex()
	return nil
}

// GetByID obtiene un proyecto; (nil, nil) si no existe.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc projectDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	return &entity.Project{
		ID:         doc.ID.Hex(),
		Name:       doc.Name,
		Milestones: doc.Milestones,
		Owner:      doc.Owner.Hex(),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
	}, nil
}

// DeleteAll vacía la colección (seeder).
func (r *ProjectRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("delete projects: %w", err)
	}
	return nil
}

// Paginate lista proyectos; admite populate=owner (y owner.<campo> anidado si users lo registra).
func (r *ProjectRepo) Paginate(ctx context.Context, filter paginate.Filter, opts paginate.Options) (*paginate.QueryResult[entity.Document], error) {
	filter = translateFilter(filter)
	if s, ok := filter["owner"].(string); ok {
		if oid, err := primitive.ObjectIDFromHex(s); err == nil {
			filter["owner"] = oid
		}
	}
	res, err := paginate.Paginate[bson.M](ctx, filter, opts, r.docs)
	if err != nil {
		return nil, err
	}
	return toDocuments(res), nil
}
