// Package mailer dispatches finished reports through the internal
// email API: a multipart POST carrying the CSV attachment.
package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// ErrEmailRejected marks a failed dispatch. Fatal to the run; retries
// belong to the outer job scheduler.
var ErrEmailRejected = errors.New("email dispatch failed")

// Message is one report email: recipients, summary body, and the CSV
// artifact as an attachment.
type Message struct {
	To         []string
	Subject    string
	Body       string
	Filename   string
	Attachment []byte
}

// Client posts report emails to the email API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Send dispatches msg. Any transport failure or non-2xx response maps
// to ErrEmailRejected.
func (c *Client) Send(ctx context.Context, msg Message) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	formFields := map[string]string{
		"to":          strings.Join(msg.To, ", "),
		"subject":     msg.Subject,
		"body":        msg.Body,
		"table_title": msg.Subject,
	}
	for field, value := range formFields {
		if err := mw.WriteField(field, value); err != nil {
			return fmt.Errorf("%w: encoding field %s: %v", ErrEmailRejected, field, err)
		}
	}

	fw, err := mw.CreateFormFile("files", msg.Filename)
	if err != nil {
		return fmt.Errorf("%w: encoding attachment: %v", ErrEmailRejected, err)
	}
	if _, err := fw.Write(msg.Attachment); err != nil {
		return fmt.Errorf("%w: encoding attachment: %v", ErrEmailRejected, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("%w: finalizing request body: %v", ErrEmailRejected, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emailReport/", &buf)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrEmailRejected, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("API_KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEmailRejected, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d, response: %s", ErrEmailRejected, resp.StatusCode, body)
	}

	return nil
}
