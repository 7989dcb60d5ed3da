package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/inslanka/shop-api/pkg/models"
)

func CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.ID = bson.NewObjectID()
	review.SetTimestamps()

	// verified purchase: the reviewer has an order containing the product
	count, err := GetCollection("orders").CountDocuments(ctx, bson.M{
		"user_id":          review.UserID,
		"items.product_id": review.ProductID,
	})
	if err != nil {
		return nil, err
	}
	review.VerifiedPurchase = count > 0

	if err := models.Validate(review); err != nil {
		return nil, err
	}
	if _, err := GetCollection("reviews").InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	return review, nil
}

func ListReviewsForProduct(ctx context.Context, productID bson.ObjectID, page, limit int) ([]models.Review, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := GetCollection("reviews").Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// DeleteReview removes the user's own review
func DeleteReview(ctx context.Context, userID, reviewID bson.ObjectID) error {
	res, err := GetCollection("reviews").DeleteOne(ctx, bson.M{"_id": reviewID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrReviewNotFound
	}
	return nil
}
