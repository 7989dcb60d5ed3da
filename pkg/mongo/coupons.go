package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/inslanka/shop-api/pkg/checkout"
	"github.com/inslanka/shop-api/pkg/models"
)

func CreateCoupon(ctx context.Context, req *models.CreateCouponRequest) (*models.Coupon, error) {
	coupon := &models.Coupon{
		ID:                 bson.NewObjectID(),
		Code:               strings.ToUpper(req.Code),
		Description:        req.Description,
		Type:               models.CouponType(req.Type),
		Value:              req.Value,
		MinimumOrderAmount: req.MinimumOrderAmount,
		MaxUses:            req.MaxUses,
		ValidFrom:          req.ValidFrom,
		ValidUntil:         req.ValidUntil,
		IsActive:           true,
		CreatedAt:          time.Now(),
	}
	if err := models.Validate(coupon); err != nil {
		return nil, err
	}

	if _, err := GetCollection("coupons").InsertOne(ctx, coupon); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrCouponCodeTaken
		}
		return nil, err
	}
	return coupon, nil
}

func ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := GetCollection("coupons").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var coupons []models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, err
	}
	return coupons, nil
}

func GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := GetCollection("coupons").FindOne(ctx, bson.M{"code": strings.ToUpper(code)}).Decode(&coupon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func DeactivateCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var coupon models.Coupon
	err := GetCollection("coupons").FindOneAndUpdate(
		ctx,
		bson.M{"code": strings.ToUpper(code)},
		bson.M{"$set": bson.M{"is_active": false}},
		opts,
	).Decode(&coupon)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// redeemCoupon increments used_count inside the checkout transaction.
// The filter repeats the usage-limit guard so two concurrent checkouts
// cannot both take the last use.
func redeemCoupon(ctx context.Context, coupon *models.Coupon) error {
	filter := bson.M{"code": coupon.Code}
	if coupon.MaxUses > 0 {
		filter["used_count"] = bson.M{"$lt": coupon.MaxUses}
	}

	res, err := GetCollection("coupons").UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"used_count": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &checkout.InvalidCouponError{Code: coupon.Code, Reason: "Coupon has reached its maximum usage limit"}
	}
	return nil
}

// Flash sales

func CreateFlashSale(ctx context.Context, sale *models.FlashSale) (*models.FlashSale, error) {
	sale.ID = bson.NewObjectID()
	sale.CreatedAt = time.Now()
	if err := models.Validate(sale); err != nil {
		return nil, err
	}
	if _, err := GetCollection("flash_sales").InsertOne(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// ListLiveFlashSales returns sales whose window covers the given instant
func ListLiveFlashSales(ctx context.Context, now time.Time) ([]models.FlashSale, error) {
	cursor, err := GetCollection("flash_sales").Find(ctx, bson.M{
		"is_active": true,
		"starts_at": bson.M{"$lte": now},
		"ends_at":   bson.M{"$gte": now},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sales []models.FlashSale
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
