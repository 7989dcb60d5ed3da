package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redisclient "github.com/redis/go-redis/v9"

	"github.com/inslanka/shop-api/pkg/models"
)

// Guest session carts. Each cart lives as a hash `guestcart:{sid}` plus
// one hash per line `guestcart:{sid}:item:{sku}`, all expiring together.
// These carts never reach checkout; they are merged into the user's
// MongoDB cart at login.

const sessionCartTTL = 24 * time.Hour

func GetSessionCart(ctx context.Context, sessionID string) (*models.SessionCart, error) {
	client := RedisClient()
	defer client.Close()

	cartKey := fmt.Sprintf("guestcart:%s", sessionID)

	exists, err := client.Exists(ctx, cartKey).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return emptySessionCart(sessionID), nil
	}

	cartData, err := client.HGetAll(ctx, cartKey).Result()
	if err != nil {
		return nil, err
	}

	itemPattern := fmt.Sprintf("guestcart:%s:item:*", sessionID)
	itemKeys, err := client.Keys(ctx, itemPattern).Result()
	if err != nil {
		return nil, err
	}

	items := make(map[string]*models.SessionCartItem)
	for _, itemKey := range itemKeys {
		itemData, err := client.HGetAll(ctx, itemKey).Result()
		if err != nil {
			continue
		}
		item := parseSessionCartItem(itemData)
		if item.SKU != "" {
			items[item.SKU] = item
		}
	}

	cart := &models.SessionCart{
		SessionID: sessionID,
		Items:     items,
	}
	if subtotal, err := strconv.ParseFloat(cartData["subtotal"], 64); err == nil {
		cart.Subtotal = subtotal
	}
	if itemCount, err := strconv.Atoi(cartData["item_count"]); err == nil {
		cart.ItemCount = itemCount
	}
	cart.LastUpdated = cartData["last_updated"]
	cart.ExpiresAt = cartData["expires_at"]
	return cart, nil
}

// AddToSessionCart upserts a line: same SKU increments quantity. The unit
// price stored here is display-only and refreshed on every add.
func AddToSessionCart(ctx context.Context, sessionID string, product *models.Product, sku string, quantity int) (*models.SessionCart, error) {
	cart, err := GetSessionCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	variant := product.FindVariant(sku)
	if variant == nil {
		return nil, fmt.Errorf("variant %s not found on product %s", sku, product.Slug)
	}
	unitPrice := variant.EffectivePrice(product)

	now := time.Now().UTC().Format(time.RFC3339)
	if existing, ok := cart.Items[sku]; ok {
		existing.Quantity += quantity
		existing.UnitPrice = unitPrice
		existing.LineTotal = float64(existing.Quantity) * unitPrice
	} else {
		cart.Items[sku] = &models.SessionCartItem{
			SKU:         sku,
			ProductName: product.Name,
			UnitPrice:   unitPrice,
			Quantity:    quantity,
			LineTotal:   float64(quantity) * unitPrice,
			AddedAt:     now,
		}
	}

	recalculateSessionCart(cart)
	cart.LastUpdated = now
	cart.ExpiresAt = time.Now().Add(sessionCartTTL).UTC().Format(time.RFC3339)

	if err := saveSessionCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateSessionCartItem sets a line's quantity; zero removes the line
func UpdateSessionCartItem(ctx context.Context, sessionID, sku string, quantity int) (*models.SessionCart, error) {
	client := RedisClient()
	defer client.Close()

	cart, err := GetSessionCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	item, ok := cart.Items[sku]
	if !ok {
		return nil, fmt.Errorf("item not found in cart")
	}

	if quantity <= 0 {
		delete(cart.Items, sku)
		client.Del(ctx, fmt.Sprintf("guestcart:%s:item:%s", sessionID, sku))
	} else {
		item.Quantity = quantity
		item.LineTotal = float64(quantity) * item.UnitPrice
	}

	recalculateSessionCart(cart)
	cart.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	cart.ExpiresAt = time.Now().Add(sessionCartTTL).UTC().Format(time.RFC3339)

	if err := saveSessionCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearSessionCart removes all keys belonging to the session cart
func ClearSessionCart(ctx context.Context, sessionID string) error {
	client := RedisClient()
	defer client.Close()

	pattern := fmt.Sprintf("guestcart:%s*", sessionID)
	keys, err := client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return client.Del(ctx, keys...).Err()
	}
	return nil
}

func emptySessionCart(sessionID string) *models.SessionCart {
	now := time.Now().UTC().Format(time.RFC3339)
	return &models.SessionCart{
		SessionID:   sessionID,
		Items:       make(map[string]*models.SessionCartItem),
		LastUpdated: now,
		ExpiresAt:   time.Now().Add(sessionCartTTL).UTC().Format(time.RFC3339),
	}
}

func parseSessionCartItem(data map[string]string) *models.SessionCartItem {
	item := &models.SessionCartItem{
		SKU:         data["sku"],
		ProductName: data["product_name"],
		AddedAt:     data["added_at"],
	}
	if price, err := strconv.ParseFloat(data["unit_price"], 64); err == nil {
		item.UnitPrice = price
	}
	if qty, err := strconv.Atoi(data["quantity"]); err == nil {
		item.Quantity = qty
	}
	if total, err := strconv.ParseFloat(data["line_total"], 64); err == nil {
		item.LineTotal = total
	}
	return item
}

func recalculateSessionCart(cart *models.SessionCart) {
	cart.Subtotal = 0
	cart.ItemCount = 0
	for _, item := range cart.Items {
		cart.Subtotal += item.LineTotal
		cart.ItemCount += item.Quantity
	}
}

func saveSessionCart(ctx context.Context, cart *models.SessionCart) error {
	client := RedisClient()
	defer client.Close()

	return saveSessionCartWith(ctx, client, cart)
}

func saveSessionCartWith(ctx context.Context, client *redisclient.Client, cart *models.SessionCart) error {
	cartKey := fmt.Sprintf("guestcart:%s", cart.SessionID)

	cartData := map[string]interface{}{
		"subtotal":     fmt.Sprintf("%.2f", cart.Subtotal),
		"item_count":   strconv.Itoa(cart.ItemCount),
		"last_updated": cart.LastUpdated,
		"expires_at":   cart.ExpiresAt,
	}
	if err := client.HSet(ctx, cartKey, cartData).Err(); err != nil {
		return err
	}
	client.Expire(ctx, cartKey, sessionCartTTL)

	for sku, item := range cart.Items {
		itemKey := fmt.Sprintf("guestcart:%s:item:%s", cart.SessionID, sku)
		itemData := map[string]interface{}{
			"sku":          item.SKU,
			"product_name": item.ProductName,
			"unit_price":   fmt.Sprintf("%.2f", item.UnitPrice),
			"quantity":     strconv.Itoa(item.Quantity),
			"line_total":   fmt.Sprintf("%.2f", item.LineTotal),
			"added_at":     item.AddedAt,
		}
		if err := client.HSet(ctx, itemKey, itemData).Err(); err != nil {
			return err
		}
		client.Expire(ctx, itemKey, sessionCartTTL)
	}
	return nil
}
