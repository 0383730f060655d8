package whatsapp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fekusatech/inoutcome-wa/internal/config"
)

// Client sends proactive WhatsApp messages through the Twilio REST API.
// Webhook replies don't need it; it exists for out-of-band sends.
type Client struct {
	accountSID string
	authToken  string
	fromWA     string
	http       *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		accountSID: cfg.TwilioAccountSID,
		authToken:  cfg.TwilioAuthToken,
		fromWA:     cfg.TwilioWhatsAppFrom,
		http:       http.DefaultClient,
	}
}

func (c *Client) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("From", c.fromWA)
	form.Set("To", "whatsapp:"+to)
	form.Set("Body", body)

	endpoint := "https://api.twilio.com/2010-04-01/Accounts/" + c.accountSID + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		b, _ := io.ReadAll(res.Body)
		return &sendError{Status: res.StatusCode, Body: string(b)}
	}
	return nil
}

type sendError struct {
	Status int
	Body   string
}

func (e *sendError) Error() string {
	return fmt.Sprintf("whatsapp send failed: status %d", e.Status)
}
