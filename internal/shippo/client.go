package shippo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/thriftly/checkout-service/internal/config"
	"github.com/thriftly/checkout-service/internal/entities"
)

// Client talks to the Shippo REST API. Both addresses come from the caller:
// the seller's origin address is resolved from our own storage and never
// crosses the public API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(cfg config.Shippo) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		// таймаут обязателен, иначе зависший запрос блокирует квотирование
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type address struct {
	Name    string `json:"name,omitempty"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZIP     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

type parcel struct {
	Length       string `json:"length"`
	Width        string `json:"width"`
	Height       string `json:"height"`
	DistanceUnit string `json:"distance_unit"`
	Weight       string `json:"weight"`
	MassUnit     string `json:"mass_unit"`
}

type shipmentRequest struct {
	AddressFrom address  `json:"address_from"`
	AddressTo   address  `json:"address_to"`
	Parcels     []parcel `json:"parcels"`
	Async       bool     `json:"async"`
}

type rate struct {
	ObjectID      string `json:"object_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Provider      string `json:"provider"`
	ServiceLevel  struct {
		Name string `json:"name"`
	} `json:"servicelevel"`
	EstimatedDays int `json:"estimated_days"`
}

type shipmentResponse struct {
	Rates    []rate   `json:"rates"`
	Messages []struct {
		Text string `json:"text"`
	} `json:"messages"`
}

func (c *Client) GetRates(ctx context.Context, from, to entities.Address, p entities.Parcel) ([]entities.Rate, error) {
	payload := shipmentRequest{
		AddressFrom: toWire(from),
		AddressTo:   toWire(to),
		Parcels: []parcel{{
			Length:       strconv.FormatFloat(p.Length, 'f', 2, 64),
			Width:        strconv.FormatFloat(p.Width, 'f', 2, 64),
			Height:       strconv.FormatFloat(p.Height, 'f', 2, 64),
			DistanceUnit: "in",
			Weight:       strconv.FormatFloat(p.WeightOz, 'f', 2, 64),
			MassUnit:     "oz",
		}},
		Async: false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shipment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/shipments/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "ShippoToken "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shippo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shippo returned status %d", resp.StatusCode)
	}

	var shipment shipmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&shipment); err != nil {
		return nil, fmt.Errorf("failed to decode shippo response: %w", err)
	}

	if len(shipment.Rates) == 0 && len(shipment.Messages) > 0 {
		return nil, fmt.Errorf("shippo: %s", shipment.Messages[0].Text)
	}

	rates := make([]entities.Rate, 0, len(shipment.Rates))
	for _, r := range shipment.Rates {
		cents, err := dollarsToCents(r.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid rate amount %q: %w", r.Amount, err)
		}
		rates = append(rates, entities.Rate{
			ObjectID:      r.ObjectID,
			AmountCents:   cents,
			Currency:      r.Currency,
			Provider:      r.Provider,
			ServiceLevel:  r.ServiceLevel.Name,
			EstimatedDays: r.EstimatedDays,
		})
	}
	return rates, nil
}

func toWire(a entities.Address) address {
	country := a.Country
	if country == "" {
		country = "US"
	}
	return address{
		Name:    a.Name,
		Street1: a.Street1,
		Street2: a.Street2,
		City:    a.City,
		State:   a.State,
		ZIP:     a.ZIP,
		Country: country,
		Phone:   a.Phone,
		Email:   a.Email,
	}
}

func dollarsToCents(amount string) (int64, error) {
	f, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(f * 100)), nil
}
