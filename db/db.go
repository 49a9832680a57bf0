package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	AccountsCollection   *mongo.Collection
	BookingsCollection   *mongo.Collection
	UserCollection       *mongo.Collection
	HomeConfigCollection *mongo.Collection
	Client               *mongo.Client
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

	AccountsCollection = Client.Database("rentdb").Collection("accounts")
	BookingsCollection = Client.Database("rentdb").Collection("bookings")
	UserCollection = Client.Database("rentdb").Collection("users")
	HomeConfigCollection = Client.Database("rentdb").Collection("home_config")
}
