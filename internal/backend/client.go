// Package backend is the HTTP client for the store service: operation info
// (hours and holidays), the menu category tree and the store image list.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Client is an HTTP client for the store backend API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	limiter  *rate.Limiter
	redis    *redis.Client
	cacheTTL time.Duration
}

// NewClient constructs a client with baseURL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// UseRedisCache configures optional Redis caching for snapshot GETs.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// UseRateLimit paces outgoing requests.
func (c *Client) UseRateLimit(rps float64, burst int) {
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// GetOperationInfo fetches the hours/holidays snapshot for a store.
func (c *Client) GetOperationInfo(ctx context.Context, storeID int64) (*OperationInfo, error) {
	endpoint := fmt.Sprintf("%s/api/v1/stores/%d/operation", c.baseURL, storeID)
	cacheKey := fmt.Sprintf("operation:%d", storeID)
	var resp OperationInfo

	if c.readCache(ctx, cacheKey, &resp) {
		return &resp, nil
	}

	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, resp)
	return &resp, nil
}

// UpdateOperationInfo replaces the hours/holidays snapshot for a store.
func (c *Client) UpdateOperationInfo(ctx context.Context, storeID int64, info OperationInfo) error {
	endpoint := fmt.Sprintf("%s/api/v1/stores/%d/operation", c.baseURL, storeID)
	if err := c.doPut(ctx, endpoint, info, nil); err != nil {
		return err
	}
	c.dropCache(ctx, fmt.Sprintf("operation:%d", storeID))
	return nil
}

// GetMenuCategories fetches the ordered category tree for a store.
func (c *Client) GetMenuCategories(ctx context.Context, storeID int64) ([]MenuCategory, error) {
	endpoint := fmt.Sprintf("%s/api/v1/stores/%d/menus", c.baseURL, storeID)
	cacheKey := fmt.Sprintf("menus:%d", storeID)
	var wrap struct {
		Categories []MenuCategory `json:"categories"`
	}

	if c.readCache(ctx, cacheKey, &wrap) {
		return wrap.Categories, nil
	}

	if err := c.doGet(ctx, endpoint, &wrap); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, wrap)
	return wrap.Categories, nil
}

// UpdateMenuCategoryOrderAndNames replaces the category list: order, names
// and which categories exist. New categories carry a zero ID and are created
// by the backend; omitted confirmed categories are deleted with their items.
// The response echoes the list in request order with server ids assigned.
func (c *Client) UpdateMenuCategoryOrderAndNames(ctx context.Context, storeID int64, categories []CategoryHeader) ([]CategoryHeader, error) {
	endpoint := fmt.Sprintf("%s/api/v1/stores/%d/menus/categories", c.baseURL, storeID)
	body := struct {
		Categories []CategoryHeader `json:"categories"`
	}{Categories: categories}
	var resp struct {
		Categories []CategoryHeader `json:"categories"`
	}
	if err := c.doPut(ctx, endpoint, body, &resp); err != nil {
		return nil, err
	}
	c.dropCache(ctx, fmt.Sprintf("menus:%d", storeID))
	return resp.Categories, nil
}

// SaveMenuItem creates or updates a single menu item and returns its server
// id. A nil request ID means create.
func (c *Client) SaveMenuItem(ctx context.Context, storeID int64, req SaveMenuItemRequest) (int64, error) {
	endpoint := fmt.Sprintf("%s/api/v1/stores/%d/menus/items", c.baseURL, storeID)
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := c.doPost(ctx, endpoint, req, &resp); err != nil {
		return 0, err
	}
	c.dropCache(ctx, fmt.Sprintf("menus:%d", storeID))
	return resp.ID, nil
}

// DeleteMenuItem deletes a persisted menu item.
func (c *Client) DeleteMenuItem(ctx context.Context, storeID, itemID int64) error {
	endpoint := fmt.Sprintf("%s/api/v1/stores/%d/menus/items/%d", c.baseURL, storeID, itemID)
	if err := c.doDelete(ctx, endpoint); err != nil {
		return err
	}
	c.dropCache(ctx, fmt.Sprintf("menus:%d", storeID))
	return nil
}

// GetStoreImages fetches the photo list for a store.
func (c *Client) GetStoreImages(ctx context.Context, storeID int64) ([]StoreImage, error) {
	endpoint := fmt.Sprintf("%s/api/v1/stores/%d/images", c.baseURL, storeID)
	cacheKey := fmt.Sprintf("images:%d", storeID)
	var wrap struct {
		Images []StoreImage `json:"images"`
	}

	if c.readCache(ctx, cacheKey, &wrap) {
		return wrap.Images, nil
	}

	if err := c.doGet(ctx, endpoint, &wrap); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, wrap)
	return wrap.Images, nil
}

// UpdateStoreImages replaces the photo list for a store.
func (c *Client) UpdateStoreImages(ctx context.Context, storeID int64, images []StoreImageUpdate) error {
	endpoint := fmt.Sprintf("%s/api/v1/stores/%d/images", c.baseURL, storeID)
	body := struct {
		Images []StoreImageUpdate `json:"images"`
	}{Images: images}
	if err := c.doPut(ctx, endpoint, body, nil); err != nil {
		return err
	}
	c.dropCache(ctx, fmt.Sprintf("images:%d", storeID))
	return nil
}

// HealthCheck checks if the backend is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/healthz", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.cacheTTL).Err()
}

func (c *Client) dropCache(ctx context.Context, key string) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, key).Err()
}

func (c *Client) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) doPost(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) doPut(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, endpoint, body, out)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) doDelete(ctx context.Context, endpoint string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, http.NoBody)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return err
		}
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	return dec.Decode(out)
}
