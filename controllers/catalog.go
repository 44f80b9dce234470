package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-acaishop/models"
	"go-acaishop/utils"
)

// CatalogController serves the menu projections and the admin CRUD
// over categories, products, addon categories and coupons
type CatalogController struct {
	CategoryCollection      *mongo.Collection
	ProductCollection       *mongo.Collection
	AddonCategoryCollection *mongo.Collection
	CouponCollection        *mongo.Collection
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(client *mongo.Client) *CatalogController {
	db := client.Database(utils.DatabaseName)
	return &CatalogController{
		CategoryCollection:      db.Collection("categories"),
		ProductCollection:       db.Collection("products"),
		AddonCategoryCollection: db.Collection("addon_categories"),
		CouponCollection:        db.Collection("coupons"),
	}
}

func decodeAll[T any](ctx context.Context, collection *mongo.Collection) ([]T, error) {
	cursor, err := collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := []T{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetCatalog returns the full menu: categories, products and addon
// categories in one response
func (cc *CatalogController) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	categories, err := decodeAll[models.Category](ctx, cc.CategoryCollection)
	if err != nil {
		http.Error(w, "Error fetching categories", http.StatusInternalServerError)
		return
	}
	products, err := decodeAll[models.Product](ctx, cc.ProductCollection)
	if err != nil {
		http.Error(w, "Error fetching products", http.StatusInternalServerError)
		return
	}
	addonCategories, err := decodeAll[models.AddonCategory](ctx, cc.AddonCategoryCollection)
	if err != nil {
		http.Error(w, "Error fetching addon categories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"categories":       categories,
		"products":         products,
		"addon_categories": addonCategories,
	})
}

// GetCoupons returns all redeemable coupons
func (cc *CatalogController) GetCoupons(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	coupons, err := decodeAll[models.Coupon](ctx, cc.CouponCollection)
	if err != nil {
		http.Error(w, "Error fetching coupons", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(coupons)
}

func (cc *CatalogController) collectionFor(resource string) *mongo.Collection {
	switch resource {
	case "categories":
		return cc.CategoryCollection
	case "products":
		return cc.ProductCollection
	case "addon-categories":
		return cc.AddonCategoryCollection
	case "coupons":
		return cc.CouponCollection
	}
	return nil
}

// CreateCatalogItem handles adding a catalog record (Admin only)
func (cc *CatalogController) CreateCatalogItem(w http.ResponseWriter, r *http.Request) {
	collection := cc.collectionFor(mux.Vars(r)["resource"])
	if collection == nil {
		http.Error(w, "Unknown catalog resource", http.StatusNotFound)
		return
	}

	var doc bson.M
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	delete(doc, "id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := collection.InsertOne(ctx, doc)
	if err != nil {
		http.Error(w, "Error creating record", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// UpdateCatalogItem handles updating a catalog record (Admin only)
func (cc *CatalogController) UpdateCatalogItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	collection := cc.collectionFor(params["resource"])
	if collection == nil {
		http.Error(w, "Unknown catalog resource", http.StatusNotFound)
		return
	}
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	var doc bson.M
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	delete(doc, "id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": doc})
	if err != nil {
		http.Error(w, "Error updating record", http.StatusInternalServerError)
		return
	}
	if result.MatchedCount == 0 {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(result)
}

// DeleteCatalogItem handles deleting a catalog record (Admin only)
func (cc *CatalogController) DeleteCatalogItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	collection := cc.collectionFor(params["resource"])
	if collection == nil {
		http.Error(w, "Unknown catalog resource", http.StatusNotFound)
		return
	}
	id, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	result, err := collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		http.Error(w, "Error deleting record", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(result)
}
