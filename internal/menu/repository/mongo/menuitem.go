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

	"github.com/rohanbadgujar20011/food-delivery-app/internal/menu/domain"
	apperrors "github.com/rohanbadgujar20011/food-delivery-app/pkg/errors"
)

const collectionName = "menu_items"

// menuItemDoc is the BSON shape of a menu item. Kept separate from the
// domain type so the ObjectID _id never leaks out of this package.
type menuItemDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	RestaurantID string             `bson:"restaurant_id"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description"`
	Price        int64              `bson:"price"`
	ImageURL     string             `bson:"image_url"`
	Category     string             `bson:"category"`
	Available    bool               `bson:"available"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d *menuItemDoc) toDomain() *domain.MenuItem {
	return &domain.MenuItem{
		ID:           d.ID.Hex(),
		RestaurantID: d.RestaurantID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		ImageURL:     d.ImageURL,
		Category:     d.Category,
		Available:    d.Available,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// MenuRepository implements repository.MenuRepository on a MongoDB
// collection.
type MenuRepository struct {
	collection *mongo.Collection
}

// NewMenuRepository creates a new MongoDB-backed menu repository.
func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{
		collection: db.Collection(collectionName),
	}
}

// EnsureIndexes creates the indexes the list queries rely on. Safe to call
// on every startup.
func (r *MenuRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create menu indexes: %w", err)
	}
	return nil
}

// Create inserts a new menu item and fills in its generated ID.
func (r *MenuRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	doc := menuItemDoc{
		ID:           primitive.NewObjectID(),
		RestaurantID: item.RestaurantID,
		Name:         item.Name,
		Description:  item.Description,
		Price:        item.Price,
		ImageURL:     item.ImageURL,
		Category:     item.Category,
		Available:    item.Available,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}

	item.ID = doc.ID.Hex()
	return nil
}

// GetByID retrieves a menu item by its hex ID.
func (r *MenuRepository) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NotFound("menu item", id)
	}

	var doc menuItemDoc
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("menu item", id)
		}
		return nil, fmt.Errorf("find menu item: %w", err)
	}

	return doc.toDomain(), nil
}

// List returns menu items matching the filter, newest first.
func (r *MenuRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.MenuItem, error) {
	query := bson.M{}
	if filter.RestaurantID != "" {
		query["restaurant_id"] = filter.RestaurantID
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.OnlyAvailable {
		query["available"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]*domain.MenuItem, 0)
	for cursor.Next(ctx) {
		var doc menuItemDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode menu item: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate menu items: %w", err)
	}

	return items, nil
}

// Update replaces the mutable fields of an existing menu item.
func (r *MenuRepository) Update(ctx context.Context, item *domain.MenuItem) error {
	oid, err := primitive.ObjectIDFromHex(item.ID)
	if err != nil {
		return apperrors.NotFound("menu item", item.ID)
	}

	update := bson.M{"$set": bson.M{
		"restaurant_id": item.RestaurantID,
		"name":          item.Name,
		"description":   item.Description,
		"price":         item.Price,
		"image_url":     item.ImageURL,
		"category":      item.Category,
		"available":     item.Available,
		"updated_at":    item.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("menu item", item.ID)
	}

	return nil
}

// Delete removes a menu item by its hex ID.
func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NotFound("menu item", id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.NotFound("menu item", id)
	}

	return nil
}
