package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"
)

type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewResendMailer(from string) (*ResendMailer, error) {
	key := os.Getenv("RESEND_API_KEY")
	if key == "" {
		return nil, errors.New("RESEND_API_KEY not set")
	}

	return &ResendMailer{
		apiKey: key,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) SendOrderConfirmation(
	ctx context.Context,
	toEmail string,
	order *model.Order,
) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{toEmail},
		Subject: "Your Farmer Place order " + order.OrderID,
		HTML:    orderHTML(order),
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New(
			"failed to send order confirmation: " + buf.String(),
		)
	}

	return nil
}

func orderHTML(order *model.Order) string {
	var items bytes.Buffer
	for _, it := range order.Items {
		fmt.Fprintf(&items, "<li>%s x%d — $%.2f</li>", it.Name, it.Quantity, it.Price*float64(it.Quantity))
	}
	return fmt.Sprintf(`
		<p>Thank you for your order, %s!</p>
		<p>Order <strong>%s</strong> is confirmed and being prepared.</p>
		<ul>%s</ul>
		<p>Subtotal: $%.2f<br>
		Delivery: $%.2f<br>
		Discount: -$%.2f<br>
		<strong>Total: $%.2f</strong></p>
	`,
		order.Delivery.Location.FirstName,
		order.OrderID,
		items.String(),
		order.Totals.Subtotal,
		order.Totals.DeliveryFee,
		order.Totals.Discount,
		order.Totals.Total,
	)
}
