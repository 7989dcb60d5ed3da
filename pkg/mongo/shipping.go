package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/inslanka/shop-api/pkg/models"
)

func CreateShippingZone(ctx context.Context, zone *models.ShippingZone) (*models.ShippingZone, error) {
	zone.ID = bson.NewObjectID()
	zone.IsActive = true
	zone.CreatedAt = time.Now()
	if err := models.Validate(zone); err != nil {
		return nil, err
	}
	if _, err := GetCollection("shipping_zones").InsertOne(ctx, zone); err != nil {
		return nil, err
	}
	return zone, nil
}

// CreateShippingMethod attaches a method to an existing zone
func CreateShippingMethod(ctx context.Context, method *models.ShippingMethod) (*models.ShippingMethod, error) {
	if _, err := getShippingZone(ctx, method.ZoneID); err != nil {
		return nil, err
	}

	method.ID = bson.NewObjectID()
	method.IsActive = true
	method.CreatedAt = time.Now()
	if err := models.Validate(method); err != nil {
		return nil, err
	}
	if _, err := GetCollection("shipping_methods").InsertOne(ctx, method); err != nil {
		return nil, err
	}
	return method, nil
}

func ListShippingZones(ctx context.Context) ([]models.ShippingZone, error) {
	cursor, err := GetCollection("shipping_zones").Find(ctx, bson.M{"is_active": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var zones []models.ShippingZone
	if err := cursor.All(ctx, &zones); err != nil {
		return nil, err
	}
	return zones, nil
}

// ListShippingMethodsForDistrict returns active methods whose zone covers
// the district, cheapest first.
func ListShippingMethodsForDistrict(ctx context.Context, district string) ([]models.ShippingMethod, error) {
	zones, err := ListShippingZones(ctx)
	if err != nil {
		return nil, err
	}

	zoneIDs := make([]bson.ObjectID, 0, len(zones))
	for _, zone := range zones {
		if zone.Covers(district) {
			zoneIDs = append(zoneIDs, zone.ID)
		}
	}
	if len(zoneIDs) == 0 {
		return []models.ShippingMethod{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "base_rate", Value: 1}})
	cursor, err := GetCollection("shipping_methods").Find(ctx, bson.M{
		"zone_id":   bson.M{"$in": zoneIDs},
		"is_active": true,
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var methods []models.ShippingMethod
	if err := cursor.All(ctx, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

func GetShippingMethod(ctx context.Context, id string) (*models.ShippingMethod, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrShippingMethodNotFound
	}

	var method models.ShippingMethod
	err = GetCollection("shipping_methods").FindOne(ctx, bson.M{"_id": objectID, "is_active": true}).Decode(&method)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrShippingMethodNotFound
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func getShippingZone(ctx context.Context, id bson.ObjectID) (*models.ShippingZone, error) {
	var zone models.ShippingZone
	err := GetCollection("shipping_zones").FindOne(ctx, bson.M{"_id": id}).Decode(&zone)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrZoneNotServed
	}
	if err != nil {
		return nil, err
	}
	return &zone, nil
}
