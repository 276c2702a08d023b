package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент сервиса каталога консультантов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetConsultant получает профиль консультанта по ID
func (c *Client) GetConsultant(ctx context.Context, consultantID int64) (*Consultant, error) {
	url := fmt.Sprintf("%s/internal/consultants/%d", c.baseURL, consultantID)

	var consultant Consultant
	if err := c.getJSON(ctx, url, &consultant, ErrConsultantNotFound); err != nil {
		return nil, err
	}

	return &consultant, nil
}

// GetClientProfile получает профиль клиента по ID
// Используется для денормализации отображаемого имени при создании встречи
func (c *Client) GetClientProfile(ctx context.Context, clientID int64) (*ClientProfile, error) {
	url := fmt.Sprintf("%s/internal/clients/%d", c.baseURL, clientID)

	var profile ClientProfile
	if err := c.getJSON(ctx, url, &profile, ErrClientNotFound); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
