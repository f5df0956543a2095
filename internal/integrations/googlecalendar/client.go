package googlecalendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

const defaultBaseURL = "https://www.googleapis.com/calendar/v3"

var scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://www.googleapis.com/auth/calendar.events",
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент Google Calendar API v3 с авторизацией по service account.
// Календарь рассматривается как внешний источник занятых интервалов и
// приёмник событий; своего состояния клиент не хранит.
type Client struct {
	baseURL    string
	calendarID string
	httpClient *http.Client
	location   *time.Location
	log        Logger
}

// NewClient создает клиент календаря. location задает таймзону салона,
// в которой трактуются all-day события. privateKey может приходить из
// конфигурации с литеральными "\n" — они нормализуются в настоящие переводы строк.
func NewClient(calendarID, clientEmail, privateKey string, timeout time.Duration, location *time.Location, log Logger) *Client {
	conf := &jwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(normalizePrivateKey(privateKey)),
		Scopes:     scopes,
		TokenURL:   google.JWTTokenURL,
	}

	httpClient := conf.Client(context.Background())
	httpClient.Timeout = timeout

	if calendarID == "" {
		calendarID = "primary"
	}
	if location == nil {
		location = time.UTC
	}

	return &Client{
		baseURL:    defaultBaseURL,
		calendarID: calendarID,
		httpClient: httpClient,
		location:   location,
		log:        log,
	}
}

// NewClientWithBaseURL создает клиент с произвольным base URL (для тестов)
func NewClientWithBaseURL(baseURL, calendarID string, httpClient *http.Client, location *time.Location, log Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	if location == nil {
		location = time.UTC
	}
	return &Client{
		baseURL:    baseURL,
		calendarID: calendarID,
		httpClient: httpClient,
		location:   location,
		log:        log,
	}
}

// ListBusy возвращает занятые интервалы календаря в диапазоне [from, to).
// Однодневные (all-day) события трактуются как блокирующие весь день.
func (c *Client) ListBusy(ctx context.Context, from, to time.Time) ([]BusyInterval, error) {
	query := url.Values{}
	query.Set("timeMin", from.Format(time.RFC3339))
	query.Set("timeMax", to.Format(time.RFC3339))
	query.Set("singleEvents", "true")
	query.Set("orderBy", "startTime")

	listURL := fmt.Sprintf("%s/calendars/%s/events?%s", c.baseURL, url.PathEscape(c.calendarID), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: list events status=%d body=%s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var list eventList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	intervals := make([]BusyInterval, 0, len(list.Items))
	for _, item := range list.Items {
		if item.Status == "cancelled" {
			continue
		}
		start, okStart := parseEventTime(item.Start, c.location)
		end, okEnd := parseEventTime(item.End, c.location)
		if !okStart || !okEnd {
			c.log.Warn("ListBusy: skipping event id=%s with unparseable time", item.ID)
			continue
		}
		intervals = append(intervals, BusyInterval{Start: start, End: end})
	}

	return intervals, nil
}

// CreateEvent создает событие в календаре и возвращает его ID
func (c *Client) CreateEvent(ctx context.Context, event Event) (string, error) {
	resource := eventResource{
		Summary:     event.Summary,
		Description: event.Description,
		Start: eventDateTime{
			DateTime: event.Start.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
		End: eventDateTime{
			DateTime: event.End.Format(time.RFC3339),
			TimeZone: event.Timezone,
		},
	}

	body, err := json.Marshal(resource)
	if err != nil {
		return "", fmt.Errorf("%w: marshal event: %v", ErrInternal, err)
	}

	insertURL := fmt.Sprintf("%s/calendars/%s/events", c.baseURL, url.PathEscape(c.calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, insertURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrEventNotCreated, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status=%d body=%s", ErrEventNotCreated, resp.StatusCode, string(respBody))
	}

	var created eventResource
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: response without event id", ErrInvalidResponse)
	}

	return created.ID, nil
}

// DeleteEvent удаляет событие календаря. Пути очистки игнорируют ошибку
// этого вызова (логируют и продолжают), поэтому она никогда не должна
// прерывать удаление внутренней записи.
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	deleteURL := fmt.Sprintf("%s/calendars/%s/events/%s",
		c.baseURL, url.PathEscape(c.calendarID), url.PathEscape(eventID))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// 404/410 означает, что событие уже удалено — считаем успехом
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: delete event status=%d body=%s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	return nil
}

// parseEventTime разбирает время события. All-day события приходят как
// голая дата и привязываются к полуночи в таймзоне салона, иначе границы
// блокировки сместятся на соседний день.
func parseEventTime(dt eventDateTime, loc *time.Location) (time.Time, bool) {
	if dt.DateTime != "" {
		t, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	if dt.Date != "" {
		t, err := time.ParseInLocation("2006-01-02", dt.Date, loc)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// normalizePrivateKey приводит ключ из конфигурации к PEM:
// убирает обрамляющие кавычки и превращает литеральные "\n" в переводы строк
func normalizePrivateKey(key string) string {
	key = strings.TrimSpace(key)
	if strings.HasPrefix(key, `"`) && strings.HasSuffix(key, `"`) && len(key) >= 2 {
		key = key[1 : len(key)-1]
	}
	return strings.ReplaceAll(key, `\n`, "\n")
}
