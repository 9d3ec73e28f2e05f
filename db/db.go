package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection      *mongo.Collection
	ApartmentCollection *mongo.Collection
	CartCollection      *mongo.Collection
	LeaseCollection     *mongo.Collection
	Client              *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("habitadb")
	UserCollection = database.Collection("users")
	ApartmentCollection = database.Collection("apartments")
	CartCollection = database.Collection("cart")
	LeaseCollection = database.Collection("leases")

	go ensureIndexes(database)
}

// ensureIndexes creates the uniqueness and lookup indexes the stores rely on.
// One cart line per (user, apartment, mode); unique ids on every entity.
// Runs in the background so startup does not block on a cold database.
func ensureIndexes(database *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := database.Collection("cart").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "apartmentId", Value: 1}, {Key: "mode", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("cart index: %v", err)
	}

	unique := func(coll, field string) {
		_, err := database.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			log.Printf("%s index: %v", coll, err)
		}
	}
	unique("users", "userid")
	unique("apartments", "apartmentId")
	unique("leases", "leaseId")

	_, err = database.Collection("leases").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		log.Printf("leases status index: %v", err)
	}
}
