package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ShopifyClient talks to the Shopify Admin REST API for a single shop.
type ShopifyClient struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
}

// NewShopifyClient creates a new ShopifyClient.
func NewShopifyClient(shopName, apiKey, apiSecret, apiVersion string) *ShopifyClient {
	return &ShopifyClient{
		baseURL:   fmt.Sprintf("https://%s.myshopify.com/admin/api/%s", shopName, apiVersion),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- Shopify API request/response structs ----

type shopifyLineItem struct {
	VariantID int64 `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

type shopifyDraftOrder struct {
	LineItems       []shopifyLineItem      `json:"line_items"`
	Email           string                 `json:"email"`
	ShippingAddress map[string]interface{} `json:"shipping_address,omitempty"`
	BillingAddress  map[string]interface{} `json:"billing_address,omitempty"`
}

type shopifyDraftOrderRequest struct {
	DraftOrder shopifyDraftOrder `json:"draft_order"`
}

type shopifyDraftOrderResponse struct {
	DraftOrder struct {
		ID         int64  `json:"id"`
		InvoiceURL string `json:"invoice_url"`
		Status     string `json:"status"`
	} `json:"draft_order"`
}

// DraftOrder is the slice of a created draft order the service cares about.
type DraftOrder struct {
	ID          int64
	CheckoutURL string
}

// CreateDraftOrder creates a draft order and returns its id and hosted
// invoice (checkout) URL.
func (c *ShopifyClient) CreateDraftOrder(ctx context.Context, lineItems []LineItem, customer CustomerInfo) (*DraftOrder, error) {
	billing := customer.BillingAddress
	if billing == nil {
		billing = customer.ShippingAddress
	}

	items := make([]shopifyLineItem, 0, len(lineItems))
	for _, item := range lineItems {
		items = append(items, shopifyLineItem{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}

	reqBody := shopifyDraftOrderRequest{
		DraftOrder: shopifyDraftOrder{
			LineItems:       items,
			Email:           customer.Email,
			ShippingAddress: customer.ShippingAddress,
			BillingAddress:  billing,
		},
	}

	var resp shopifyDraftOrderResponse
	if err := c.doRequest(ctx, http.MethodPost, "/draft_orders.json", reqBody, &resp); err != nil {
		return nil, fmt.Errorf("shopify CreateDraftOrder: %w", err)
	}

	return &DraftOrder{
		ID:          resp.DraftOrder.ID,
		CheckoutURL: resp.DraftOrder.InvoiceURL,
	}, nil
}

// ---- HTTP helper ----

func (c *ShopifyClient) doRequest(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, c.apiSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("shopify API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
