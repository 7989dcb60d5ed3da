package mongo

import (
	"log"
	"sync"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/inslanka/shop-api/pkg/global"
)

var (
	client     *mongo.Client
	clientOnce sync.Once
)

// GetMongoClient returns the shared client. Checkout runs multi-document
// transactions, so every caller must share one client and its sessions.
func GetMongoClient() *mongo.Client {
	clientOnce.Do(func() {
		serverAPI := options.ServerAPI(options.ServerAPIVersion1)
		clientOptions := options.Client().ApplyURI(global.GetMongoURI()).SetServerAPIOptions(serverAPI)

		c, err := mongo.Connect(clientOptions)
		if err != nil {
			log.Fatalf("Failed to create MongoDB client: %v", err)
		}
		client = c
	})
	return client
}

func GetDatabase() *mongo.Database {
	return GetMongoClient().Database(global.GetDatabaseName())
}

func GetCollection(collectionName string) *mongo.Collection {
	return GetDatabase().Collection(collectionName)
}

func InitMongoDB() {
	c := GetMongoClient()
	ctx, cancel := global.GetDefaultTimer()
	defer cancel()

	if err := c.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	log.Println("Connected to MongoDB successfully")
}
