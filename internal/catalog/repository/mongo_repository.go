package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Pageblan/Carepulse/internal/catalog/domain"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) MedicineRepository {
	return &mongoRepository{
		collection: db.Collection("medicines"),
	}
}

func (m mongoRepository) List(ctx context.Context) ([]domain.Medicine, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list medicines: %w", err)
	}
	defer cursor.Close(ctx)

	var medicines []domain.Medicine
	if err := cursor.All(ctx, &medicines); err != nil {
		return nil, fmt.Errorf("failed to decode medicines: %w", err)
	}
	return medicines, nil
}

func (m mongoRepository) GetByID(ctx context.Context, id string) (*domain.Medicine, error) {
	var med domain.Medicine

	filter := bson.M{"_id": id}
	err := m.collection.FindOne(ctx, filter).Decode(&med)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMedicineNotFound
		}
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}

	return &med, nil
}

func (m mongoRepository) Create(ctx context.Context, med *domain.Medicine) error {
	now := time.Now()
	if med.ID == "" {
		med.ID = uuid.NewString()
	}
	if med.CreatedAt.IsZero() {
		med.CreatedAt = now
	}
	med.UpdatedAt = now

	_, err := m.collection.InsertOne(ctx, med)
	if err != nil {
		return fmt.Errorf("failed to create medicine: %w", err)
	}
	return nil
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
